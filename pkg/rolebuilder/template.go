// Copyright 2025 Certen Protocol
//
// MatrixTemplate and FactorSourceIdAssigner implement the template-to-
// matrix resolution described in spec §4.1: a template names placeholder
// roles by (kind, slot index); an assigner seeded with a concrete pool of
// factor source IDs binds each placeholder to the first unused ID of
// matching kind, memoizing the binding so a placeholder seen twice resolves
// to the same ID both times.

package rolebuilder

import (
	"fmt"

	"github.com/radixdlt/walletmfa/pkg/factorsource"
	"github.com/radixdlt/walletmfa/pkg/matrix"
)

// Placeholder identifies one template slot by kind and position among
// slots of that kind.
type Placeholder struct {
	Kind      factorsource.Kind
	SlotIndex int
}

// MatrixTemplate is a MatrixOfFactors over Placeholder instead of a
// concrete factor source ID.
type MatrixTemplate = matrix.MatrixOfFactors[Placeholder]

// FactorSourceIdAssigner binds template placeholders to concrete factor
// source IDs, popping from an ordered per-kind pool and memoizing bindings
// so repeated placeholders resolve consistently.
type FactorSourceIdAssigner struct {
	pool     map[factorsource.Kind][]factorsource.ID
	bound    map[Placeholder]factorsource.ID
	bindings []Placeholder // insertion order, for deterministic iteration
}

// NewFactorSourceIdAssigner seeds an assigner from an ordered list of
// concrete factor source IDs, bucketed by kind in the order given.
func NewFactorSourceIdAssigner(ids []factorsource.ID) *FactorSourceIdAssigner {
	pool := make(map[factorsource.Kind][]factorsource.ID)
	for _, id := range ids {
		pool[id.Kind] = append(pool[id.Kind], id)
	}
	return &FactorSourceIdAssigner{
		pool:  pool,
		bound: make(map[Placeholder]factorsource.ID),
	}
}

// Resolve returns the factor source ID bound to p, binding a fresh one
// from the pool on first sight. Returns ErrNoCandidateOfKind if the pool
// for p.Kind is exhausted.
func (a *FactorSourceIdAssigner) Resolve(p Placeholder) (factorsource.ID, error) {
	if id, ok := a.bound[p]; ok {
		return id, nil
	}
	remaining := a.pool[p.Kind]
	if len(remaining) == 0 {
		return factorsource.ID{}, fmt.Errorf("%w: kind %s", ErrNoCandidateOfKind, p.Kind)
	}
	id := remaining[0]
	a.pool[p.Kind] = remaining[1:]
	a.bound[p] = id
	a.bindings = append(a.bindings, p)
	return id, nil
}

// Fulfill resolves every placeholder in t, in insertion order, producing a
// MatrixOfFactorSourceIDs. Fails if any placeholder's kind pool is
// exhausted.
func (a *FactorSourceIdAssigner) Fulfill(t MatrixTemplate) (matrix.MatrixOfFactorSourceIDs, error) {
	thresholdIDs := make([]factorsource.ID, len(t.ThresholdFactors))
	for i, p := range t.ThresholdFactors {
		id, err := a.Resolve(p)
		if err != nil {
			return matrix.MatrixOfFactorSourceIDs{}, err
		}
		thresholdIDs[i] = id
	}
	overrideIDs := make([]factorsource.ID, len(t.OverrideFactors))
	for i, p := range t.OverrideFactors {
		id, err := a.Resolve(p)
		if err != nil {
			return matrix.MatrixOfFactorSourceIDs{}, err
		}
		overrideIDs[i] = id
	}
	return matrix.New(thresholdIDs, t.Threshold, overrideIDs)
}
