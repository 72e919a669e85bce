// Copyright 2025 Certen Protocol
//
// The Petition Graph tracks, for one signing run, which factor instances
// have signed or been neglected against each entity's role matrix, per
// spec §4.5. It is transient: built fresh per batch of transactions and
// discarded once the Signatures Collector finishes.

package petition

import (
	"github.com/radixdlt/walletmfa/pkg/entity"
	"github.com/radixdlt/walletmfa/pkg/factorinstance"
	"github.com/radixdlt/walletmfa/pkg/factorsource"
	"github.com/radixdlt/walletmfa/pkg/interactors"
	"github.com/radixdlt/walletmfa/pkg/matrix"
)

// NeglectReason is why a factor source was not used to produce a
// signature, per spec §4.6. It is an alias of interactors.NeglectReason so
// a SigningOutcome reported by a SigningInteractor can be threaded
// straight onto a petition without conversion.
type NeglectReason = interactors.NeglectReason

const (
	NeglectUserExplicitlySkipped = interactors.NeglectUserExplicitlySkipped
	NeglectFailure               = interactors.NeglectFailure
	NeglectSimulation            = interactors.NeglectSimulation
	NeglectIrrelevant            = interactors.NeglectIrrelevant
)

// Status is the three-valued outcome of a PetitionForFactors, an entity's
// petition, or a transaction's petition.
type Status int

const (
	StatusInProgress Status = iota
	StatusFinishedSuccess
	StatusFinishedFail
)

func (s Status) String() string {
	switch s {
	case StatusFinishedSuccess:
		return "Finished(Success)"
	case StatusFinishedFail:
		return "Finished(Fail)"
	default:
		return "InProgress"
	}
}

// NeglectedFactor records one neglected factor source and why.
type NeglectedFactor struct {
	FactorSourceID factorsource.ID
	Reason         NeglectReason
}

// PetitionForFactors tracks signature progress for one list (threshold or
// override) of an entity's role matrix.
type PetitionForFactors struct {
	factors     []factorinstance.HierarchicalDeterministicFactorInstance
	threshold   int // only meaningful for threshold lists; 0 otherwise
	isThreshold bool

	signatures []interactors.HDSignature
	neglected  []NeglectedFactor
}

func newPetitionForFactors(factors []factorinstance.HierarchicalDeterministicFactorInstance, threshold int, isThreshold bool) *PetitionForFactors {
	return &PetitionForFactors{factors: factors, threshold: threshold, isThreshold: isThreshold}
}

// AddSignature records sig as having come in for this list.
func (p *PetitionForFactors) AddSignature(sig interactors.HDSignature) {
	p.signatures = append(p.signatures, sig)
}

// AddNeglected records fsid as neglected for reason.
func (p *PetitionForFactors) AddNeglected(fsid factorsource.ID, reason NeglectReason) {
	p.neglected = append(p.neglected, NeglectedFactor{FactorSourceID: fsid, Reason: reason})
}

// HasFactorSource reports whether fsid owns one of this list's instances.
func (p *PetitionForFactors) HasFactorSource(fsid factorsource.ID) bool {
	for _, f := range p.factors {
		if f.FactorSourceID.Equal(fsid) {
			return true
		}
	}
	return false
}

// InstancesOwnedBy returns this list's factor instances belonging to fsid.
func (p *PetitionForFactors) InstancesOwnedBy(fsid factorsource.ID) []factorinstance.HierarchicalDeterministicFactorInstance {
	var owned []factorinstance.HierarchicalDeterministicFactorInstance
	for _, f := range p.factors {
		if f.FactorSourceID.Equal(fsid) {
			owned = append(owned, f)
		}
	}
	return owned
}

// Status evaluates this list's status per spec §4.5's threshold/override
// rules.
func (p *PetitionForFactors) Status() Status {
	if p.isThreshold {
		if len(p.signatures) >= p.threshold {
			return StatusFinishedSuccess
		}
		if len(p.factors)-len(p.neglected) < p.threshold {
			return StatusFinishedFail
		}
		return StatusInProgress
	}
	// Override list.
	if len(p.signatures) > 0 {
		return StatusFinishedSuccess
	}
	if len(p.neglected) >= len(p.factors) {
		return StatusFinishedFail
	}
	return StatusInProgress
}

// clone returns a deep-enough copy for hypothetical neglect evaluation.
func (p *PetitionForFactors) clone() *PetitionForFactors {
	return &PetitionForFactors{
		factors:     append([]factorinstance.HierarchicalDeterministicFactorInstance(nil), p.factors...),
		threshold:   p.threshold,
		isThreshold: p.isThreshold,
		signatures:  append([]interactors.HDSignature(nil), p.signatures...),
		neglected:   append([]NeglectedFactor(nil), p.neglected...),
	}
}

// ForEntity tracks signature progress for one entity within one
// transaction: an Unsecured entity has only a Threshold list (threshold 1,
// one factor); a Securified entity has a Threshold list from its primary
// role, plus an Override list when that role has override factors.
type ForEntity struct {
	Entity    entity.Address
	Threshold *PetitionForFactors
	Override  *PetitionForFactors
}

// ForUnsecuredEntity builds the single threshold-of-1 petition described
// in spec §4.5 for an entity still controlled by its lone VECI.
func ForUnsecuredEntity(address entity.Address, veci factorinstance.HierarchicalDeterministicFactorInstance) *ForEntity {
	return &ForEntity{
		Entity:    address,
		Threshold: newPetitionForFactors([]factorinstance.HierarchicalDeterministicFactorInstance{veci}, 1, true),
	}
}

// ForSecurifiedEntity builds the threshold+override petition from a
// securified entity's primary-role matrix, verbatim.
func ForSecurifiedEntity(address entity.Address, primary matrix.MatrixOfFactorInstances) *ForEntity {
	fe := &ForEntity{Entity: address}
	fe.Threshold = newPetitionForFactors(primary.ThresholdFactors, int(primary.Threshold), true)
	if len(primary.OverrideFactors) > 0 {
		fe.Override = newPetitionForFactors(primary.OverrideFactors, 0, false)
	}
	return fe
}

// Status combines Threshold and Override per spec §4.5: Success if either
// succeeds, Fail only if both fail (or the sole list fails), else
// InProgress.
func (fe *ForEntity) Status() Status {
	thresholdStatus := fe.Threshold.Status()
	if fe.Override == nil {
		return thresholdStatus
	}
	overrideStatus := fe.Override.Status()
	if thresholdStatus == StatusFinishedSuccess || overrideStatus == StatusFinishedSuccess {
		return StatusFinishedSuccess
	}
	if thresholdStatus == StatusFinishedFail && overrideStatus == StatusFinishedFail {
		return StatusFinishedFail
	}
	return StatusInProgress
}

// lists returns every PetitionForFactors this entity petition holds.
func (fe *ForEntity) lists() []*PetitionForFactors {
	lists := []*PetitionForFactors{fe.Threshold}
	if fe.Override != nil {
		lists = append(lists, fe.Override)
	}
	return lists
}

func (fe *ForEntity) clone() *ForEntity {
	clone := &ForEntity{Entity: fe.Entity, Threshold: fe.Threshold.clone()}
	if fe.Override != nil {
		clone.Override = fe.Override.clone()
	}
	return clone
}

// ForTransaction is the per-transaction petition: one ForEntity per entity
// requiring authentication.
type ForTransaction struct {
	IntentHash  [32]byte
	ForEntities map[entity.Address]*ForEntity
}

// Status is Success iff every entity succeeds.
func (ft *ForTransaction) Status() Status {
	allSuccess := true
	for _, fe := range ft.ForEntities {
		switch fe.Status() {
		case StatusFinishedFail:
			return StatusFinishedFail
		case StatusInProgress:
			allSuccess = false
		}
	}
	if allSuccess {
		return StatusFinishedSuccess
	}
	return StatusInProgress
}

func (ft *ForTransaction) clone() *ForTransaction {
	clone := &ForTransaction{IntentHash: ft.IntentHash, ForEntities: make(map[entity.Address]*ForEntity, len(ft.ForEntities))}
	for addr, fe := range ft.ForEntities {
		clone.ForEntities[addr] = fe.clone()
	}
	return clone
}
