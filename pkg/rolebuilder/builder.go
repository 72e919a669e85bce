// Copyright 2025 Certen Protocol
//
// Builder is a stateful, per-role builder for a MatrixOfFactorSourceIDs. It
// mirrors spec §4.1: every mutation returns a ValidationResult; ok and
// not-yet-valid both commit, forever-invalid and basic-violation do not.
// build() succeeds only once a full replay of accepted additions validates
// clean.

package rolebuilder

import (
	"github.com/radixdlt/walletmfa/pkg/factorinstance"
	"github.com/radixdlt/walletmfa/pkg/factorsource"
	"github.com/radixdlt/walletmfa/pkg/matrix"
)

// addition is one accepted mutation, replayed to revalidate the builder
// from a clean sibling.
type addition struct {
	list ListKind
	id   factorsource.ID
}

// Builder accumulates factor source IDs for one role (Primary, Recovery,
// or Confirmation) under the per-role/per-kind admission rules.
type Builder struct {
	role      matrix.Role
	threshold uint8

	thresholdFactors []factorsource.ID
	overrideFactors  []factorsource.ID

	// transcript is the ordered list of accepted additions, used to
	// replay-validate on build().
	transcript []addition
}

// New creates an empty builder for role.
func New(role matrix.Role) *Builder {
	return &Builder{role: role}
}

// Role reports which role this builder is building.
func (b *Builder) Role() matrix.Role { return b.role }

// Threshold reports the current threshold (Primary only; always 0 for
// Recovery/Confirmation).
func (b *Builder) Threshold() uint8 { return b.threshold }

// ThresholdFactors returns a copy of the current threshold-list IDs.
func (b *Builder) ThresholdFactors() []factorsource.ID {
	return append([]factorsource.ID(nil), b.thresholdFactors...)
}

// OverrideFactors returns a copy of the current override-list IDs.
func (b *Builder) OverrideFactors() []factorsource.ID {
	return append([]factorsource.ID(nil), b.overrideFactors...)
}

func (b *Builder) contains(id factorsource.ID) bool {
	for _, existing := range b.thresholdFactors {
		if existing.Equal(id) {
			return true
		}
	}
	for _, existing := range b.overrideFactors {
		if existing.Equal(id) {
			return true
		}
	}
	return false
}

func (b *Builder) countKind(k factorsource.Kind) int {
	n := 0
	for _, id := range b.thresholdFactors {
		if id.Kind == k {
			n++
		}
	}
	for _, id := range b.overrideFactors {
		if id.Kind == k {
			n++
		}
	}
	return n
}

// ValidationForAdditionOfKindToList predicts the outcome of adding a
// factor of kind to list, without mutating the builder.
func (b *Builder) ValidationForAdditionOfKindToList(kind factorsource.Kind, list ListKind) ValidationResult {
	return b.validateAddition(kind, list, nil)
}

// validateAddition is the shared decision function behind both the dry-run
// predictor and AddFactorSourceToThreshold/AddFactorSourceToOverride. When
// id is non-nil it also applies the FactorSourceAlreadyPresent check.
func (b *Builder) validateAddition(kind factorsource.Kind, list ListKind, id *factorsource.ID) ValidationResult {
	if list == ListThreshold && b.role != matrix.RolePrimary {
		return BasicViolation(ReasonAddToThresholdOnNonPrimaryRole)
	}

	if id != nil && b.contains(*id) {
		return ForeverInvalid(ReasonFactorSourceAlreadyPresent)
	}

	switch kind {
	case factorsource.KindDevice:
		return b.validateDevice(list)
	case factorsource.KindLedger, factorsource.KindArculus, factorsource.KindYubikey, factorsource.KindOffDeviceMnemonic:
		return Ok
	case factorsource.KindPassword:
		return b.validatePassword(list)
	case factorsource.KindSecurityQuestions:
		return b.validateSecurityQuestions(list)
	case factorsource.KindTrustedContact:
		return b.validateTrustedContact(list)
	default:
		return ForeverInvalid(ReasonUnknownFactorSourceKind)
	}
}

func (b *Builder) validateDevice(list ListKind) ValidationResult {
	switch b.role {
	case matrix.RolePrimary:
		if b.countKind(factorsource.KindDevice) >= 1 {
			return ForeverInvalid(ReasonPrimaryCannotHaveMultipleDevicesAcrossThresholdAndOverride)
		}
		return Ok
	case matrix.RoleRecovery:
		// Override only (threshold is rejected earlier); multiples ok.
		return Ok
	default: // RoleConfirmation
		return Ok
	}
}

func (b *Builder) validatePassword(list ListKind) ValidationResult {
	switch b.role {
	case matrix.RolePrimary:
		if list == ListOverride {
			return ForeverInvalid(ReasonPrimaryCannotHavePasswordInOverrideList)
		}
		// Threshold: allowed, but NotYetValid until threshold >= 2 and at
		// least one non-password factor accompanies it. We evaluate this
		// against the state *after* the addition would land.
		nonPasswordCount := 0
		for _, id := range b.thresholdFactors {
			if id.Kind != factorsource.KindPassword {
				nonPasswordCount++
			}
		}
		projectedThreshold := b.threshold
		if int(projectedThreshold) < 2 || nonPasswordCount < 1 {
			return NotYetValid(ReasonPrimaryRoleWithPasswordInThresholdListMustHaveAnotherFactor)
		}
		return Ok
	case matrix.RoleRecovery:
		return ForeverInvalid(ReasonRecoveryRolePasswordNotSupported)
	default: // RoleConfirmation
		return Ok
	}
}

func (b *Builder) validateSecurityQuestions(list ListKind) ValidationResult {
	switch b.role {
	case matrix.RolePrimary:
		return ForeverInvalid(ReasonPrimaryCannotContainSecurityQuestions)
	case matrix.RoleRecovery:
		return ForeverInvalid(ReasonRecoveryRoleSecurityQuestionsNotSupported)
	default: // RoleConfirmation
		return Ok
	}
}

func (b *Builder) validateTrustedContact(list ListKind) ValidationResult {
	switch b.role {
	case matrix.RolePrimary:
		return ForeverInvalid(ReasonPrimaryCannotContainTrustedContact)
	case matrix.RoleRecovery:
		return Ok
	default: // RoleConfirmation
		return ForeverInvalid(ReasonConfirmationRoleTrustedContactNotSupported)
	}
}

// AddFactorSourceToThreshold adds id to the threshold list. Primary only;
// any other role returns BasicViolation.
func (b *Builder) AddFactorSourceToThreshold(id factorsource.ID) ValidationResult {
	result := b.validateAddition(id.Kind, ListThreshold, &id)
	if !result.AdvancesState() {
		return result
	}
	b.thresholdFactors = append(b.thresholdFactors, id)
	b.transcript = append(b.transcript, addition{list: ListThreshold, id: id})
	return result
}

// AddFactorSourceToOverride adds id to the override list. Valid for every
// role, subject to the per-role/per-kind rules.
func (b *Builder) AddFactorSourceToOverride(id factorsource.ID) ValidationResult {
	result := b.validateAddition(id.Kind, ListOverride, &id)
	if !result.AdvancesState() {
		return result
	}
	b.overrideFactors = append(b.overrideFactors, id)
	b.transcript = append(b.transcript, addition{list: ListOverride, id: id})
	return result
}

// SetThreshold sets the threshold count. Primary only.
func (b *Builder) SetThreshold(n uint8) ValidationResult {
	if b.role != matrix.RolePrimary {
		return BasicViolation(ReasonSetThresholdOnNonPrimaryRole)
	}
	b.threshold = n
	if int(n) > len(b.thresholdFactors) {
		return NotYetValid(ReasonThresholdExceedsThresholdFactorsLen)
	}
	return Ok
}

// RemoveFactorSource removes id from whichever list it is in. If it was in
// the threshold list and the removal makes threshold > len(remaining),
// threshold is lowered to len(remaining); removal from the override list
// never touches threshold. The matching addition is also dropped from the
// transcript, so a later replayValidate (and a later re-add of the same
// id) doesn't see it twice.
func (b *Builder) RemoveFactorSource(id factorsource.ID) {
	for i, existing := range b.thresholdFactors {
		if existing.Equal(id) {
			b.thresholdFactors = append(b.thresholdFactors[:i], b.thresholdFactors[i+1:]...)
			if int(b.threshold) > len(b.thresholdFactors) {
				b.threshold = uint8(len(b.thresholdFactors))
			}
			b.removeFromTranscript(ListThreshold, id)
			return
		}
	}
	for i, existing := range b.overrideFactors {
		if existing.Equal(id) {
			b.overrideFactors = append(b.overrideFactors[:i], b.overrideFactors[i+1:]...)
			b.removeFromTranscript(ListOverride, id)
			return
		}
	}
}

// removeFromTranscript drops the first recorded addition of id to list.
func (b *Builder) removeFromTranscript(list ListKind, id factorsource.ID) {
	for i, a := range b.transcript {
		if a.list == list && a.id.Equal(id) {
			b.transcript = append(b.transcript[:i], b.transcript[i+1:]...)
			return
		}
	}
}

// replayValidate rebuilds a clean sibling from b's transcript and reports
// whether the replay is clean: every addition still advances state (no
// ForeverInvalid or BasicViolation), threshold <= len(threshold factors),
// at least one factor total, and, for Primary, any password in the
// threshold list has a non-password companion with threshold >= 2.
func (b *Builder) replayValidate() ValidationResult {
	sibling := New(b.role)
	for _, a := range b.transcript {
		var result ValidationResult
		if a.list == ListThreshold {
			result = sibling.AddFactorSourceToThreshold(a.id)
		} else {
			result = sibling.AddFactorSourceToOverride(a.id)
		}
		if !result.AdvancesState() {
			// The transcript only ever records advancing additions, so
			// this would indicate a builder invariant violation.
			return result
		}
	}
	sibling.threshold = b.threshold

	if int(sibling.threshold) > len(sibling.thresholdFactors) {
		return NotYetValid(ReasonThresholdExceedsThresholdFactorsLen)
	}
	if sibling.TotalFactorCount() == 0 {
		return NotYetValid(ReasonMatrixMustHaveAtLeastOneFactor)
	}
	for _, id := range sibling.thresholdFactors {
		if id.Kind == factorsource.KindPassword {
			if sibling.role == matrix.RolePrimary {
				nonPassword := 0
				for _, other := range sibling.thresholdFactors {
					if other.Kind != factorsource.KindPassword {
						nonPassword++
					}
				}
				if int(sibling.threshold) < 2 || nonPassword < 1 {
					return NotYetValid(ReasonPrimaryRoleWithPasswordInThresholdListMustHaveAnotherFactor)
				}
			}
		}
	}
	return Ok
}

// TotalFactorCount is the combined size of both lists.
func (b *Builder) TotalFactorCount() int {
	return len(b.thresholdFactors) + len(b.overrideFactors)
}

// Build validates the full transcript by replay and, if clean, returns the
// MatrixOfFactorSourceIDs built from the current state. It does not derive
// factor instances; that is the Factor-Instance Provider's job.
func (b *Builder) Build() (matrix.MatrixOfFactorSourceIDs, ValidationResult) {
	result := b.replayValidate()
	if !result.IsBuildable() {
		return matrix.MatrixOfFactorSourceIDs{}, result
	}
	m, err := matrix.New(b.thresholdFactors, b.threshold, b.overrideFactors)
	if err != nil {
		return matrix.MatrixOfFactorSourceIDs{}, ForeverInvalid(ReasonThresholdExceedsThresholdFactorsLen)
	}
	return m, Ok
}

// ResolveTemplate resolves a MatrixOfFactorSourceIDs into a
// MatrixOfFactorInstances by looking up each factor source ID's concrete
// derived instance in resolved. It is the final step after the Provider
// has fulfilled every placeholder in m.
func ResolveTemplate(m matrix.MatrixOfFactorSourceIDs, resolved map[factorsource.ID]factorinstance.HierarchicalDeterministicFactorInstance) (matrix.MatrixOfFactorInstances, error) {
	thresholdInstances := make([]factorinstance.HierarchicalDeterministicFactorInstance, len(m.ThresholdFactors))
	for i, id := range m.ThresholdFactors {
		instance, ok := resolved[id]
		if !ok {
			return matrix.MatrixOfFactorInstances{}, ErrUnresolvedFactorSource
		}
		thresholdInstances[i] = instance
	}
	overrideInstances := make([]factorinstance.HierarchicalDeterministicFactorInstance, len(m.OverrideFactors))
	for i, id := range m.OverrideFactors {
		instance, ok := resolved[id]
		if !ok {
			return matrix.MatrixOfFactorInstances{}, ErrUnresolvedFactorSource
		}
		overrideInstances[i] = instance
	}
	return matrix.New(thresholdInstances, m.Threshold, overrideInstances)
}
