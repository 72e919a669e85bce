// Copyright 2025 Certen Protocol

package matrix

import "errors"

// Sentinel errors for matrix construction.
var (
	// ErrInvalidThreshold is returned when threshold and threshold-factor
	// count are mutually inconsistent.
	ErrInvalidThreshold = errors.New("matrix: threshold inconsistent with threshold factor count")
)
