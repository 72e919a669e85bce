// Copyright 2025 Certen Protocol

package provider

import "errors"

// Sentinel errors for Provider operations.
var (
	// ErrMixedPresetBatch is returned when With is called with requests
	// spanning more than one preset or network in a single batch.
	ErrMixedPresetBatch = errors.New("provider: batch mixes more than one preset or network")

	// ErrDerivationFailed wraps any error returned by the derivation
	// interactor; the Provider never retries.
	ErrDerivationFailed = errors.New("provider: derivation interactor failed")

	// ErrMissingProfileForIndexAssignment is reserved for callers that
	// want to treat an explicitly-missing profile as fatal. The Provider
	// itself never returns it: passing profile.Empty is the documented
	// no-profile mode and always falls back to index 0.
	ErrMissingProfileForIndexAssignment = errors.New("provider: preset requires a profile for index assignment")
)
