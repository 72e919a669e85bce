// Copyright 2025 Certen Protocol
//
// MatrixOfFactors is a threshold-plus-override list of factors, generic
// over the factor representation (factor source IDs at build time, factor
// instances after fulfilment).

package matrix

import "fmt"

// MatrixOfFactors is an ordered threshold list plus an ordered override
// list of factors of type T, per spec §3.
//
// Invariants enforced by New / the role builder rather than by the zero
// value: threshold <= len(ThresholdFactors); if len(ThresholdFactors) == 0
// then threshold == 0; len(ThresholdFactors) + len(OverrideFactors) >= 1
// for any matrix that has completed a successful build().
type MatrixOfFactors[T any] struct {
	ThresholdFactors []T
	Threshold        uint8
	OverrideFactors  []T
}

// New builds a matrix, validating the threshold-arity invariant. It does
// not enforce the "at least one factor total" rule — that is a build-time
// (not construction-time) property checked by the role builder, since an
// empty matrix is a legitimate intermediate state while a role is being
// composed.
func New[T any](thresholdFactors []T, threshold uint8, overrideFactors []T) (MatrixOfFactors[T], error) {
	if int(threshold) > len(thresholdFactors) {
		return MatrixOfFactors[T]{}, fmt.Errorf("%w: threshold %d exceeds %d threshold factors", ErrInvalidThreshold, threshold, len(thresholdFactors))
	}
	if len(thresholdFactors) == 0 && threshold != 0 {
		return MatrixOfFactors[T]{}, fmt.Errorf("%w: threshold %d with zero threshold factors", ErrInvalidThreshold, threshold)
	}
	return MatrixOfFactors[T]{
		ThresholdFactors: append([]T(nil), thresholdFactors...),
		Threshold:        threshold,
		OverrideFactors:  append([]T(nil), overrideFactors...),
	}, nil
}

// TotalFactorCount is the combined size of both lists.
func (m MatrixOfFactors[T]) TotalFactorCount() int {
	return len(m.ThresholdFactors) + len(m.OverrideFactors)
}
