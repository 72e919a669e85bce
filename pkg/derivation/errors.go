// Copyright 2025 Certen Protocol
//
// Package derivation provides sentinel errors for path and component
// construction.

package derivation

import "errors"

// Sentinel errors for derivation path operations.
var (
	// ErrIndexOutOfRange is returned when a base index falls outside its
	// half-space's valid range.
	ErrIndexOutOfRange = errors.New("derivation index out of range for key-space")
)
