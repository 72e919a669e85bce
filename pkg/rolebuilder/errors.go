// Copyright 2025 Certen Protocol

package rolebuilder

import "errors"

// Sentinel errors for template resolution.
var (
	// ErrUnresolvedFactorSource is returned when ResolveTemplate is given
	// a matrix referencing a factor source ID with no entry in the
	// resolved-instance map.
	ErrUnresolvedFactorSource = errors.New("rolebuilder: factor source id has no resolved instance")

	// ErrNoCandidateOfKind is returned when a FactorSourceIdAssigner's
	// pool for a placeholder's kind is exhausted.
	ErrNoCandidateOfKind = errors.New("rolebuilder: no remaining factor source candidate of required kind")
)
