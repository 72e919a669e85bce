// Copyright 2025 Certen Protocol
//
// Entity security states: an entity starts life Unsecured (controlled by a
// single VECI factor instance) and may later become Securified (controlled
// by a MatrixOfFactorInstances plus an AccessController).

package entity

import (
	"crypto/sha256"

	"github.com/radixdlt/walletmfa/pkg/accessrule"
	"github.com/radixdlt/walletmfa/pkg/factorinstance"
	"github.com/radixdlt/walletmfa/pkg/matrix"
)

// Address is an on-ledger entity address, derived from a public-key hash
// at creation time. Address formatting itself is out of scope; Address is
// treated here as an opaque content-addressed handle.
type Address [32]byte

// AddressFromPublicKeyHash derives the address an entity gets when it is
// first created from h.
func AddressFromPublicKeyHash(h factorinstance.Hash) Address {
	sum := sha256.Sum256(h[:])
	var a Address
	copy(a[:], sum[:])
	return a
}

// SecurityStateKind discriminates the EntitySecurityState tagged union.
type SecurityStateKind int

const (
	SecurityStateUnsecured SecurityStateKind = iota
	SecurityStateSecurified
)

// SecurifiedEntityControl is the control state of a securified entity: the
// matrix of factor instances backing it, the AccessController encoding of
// that matrix, and (optionally) the VECI that created its address before
// securification.
type SecurifiedEntityControl struct {
	Matrix            matrix.MatrixOfFactorInstances
	AccessController  accessrule.AccessController
	VECI              *factorinstance.HierarchicalDeterministicFactorInstance
}

// EntitySecurityState is the tagged union described in spec §3: an entity
// is either Unsecured (a single factor instance controls it) or Securified
// (a matrix does). Exactly one of the two fields is set, governed by Kind.
type EntitySecurityState struct {
	Kind       SecurityStateKind
	Unsecured  factorinstance.HierarchicalDeterministicFactorInstance
	Securified SecurifiedEntityControl
}

// NewUnsecured wraps a single factor instance as an Unsecured state.
func NewUnsecured(instance factorinstance.HierarchicalDeterministicFactorInstance) EntitySecurityState {
	return EntitySecurityState{Kind: SecurityStateUnsecured, Unsecured: instance}
}

// NewSecurified wraps control into a Securified state.
func NewSecurified(control SecurifiedEntityControl) EntitySecurityState {
	return EntitySecurityState{Kind: SecurityStateSecurified, Securified: control}
}

// IsSecurified reports whether s is the Securified variant.
func (s EntitySecurityState) IsSecurified() bool {
	return s.Kind == SecurityStateSecurified
}

// Entity pairs an address with its current security state.
type Entity struct {
	Address Address
	Kind    Kind
	State   EntitySecurityState
}

// Kind distinguishes accounts from personas/identities, mirroring
// derivation.EntityKind but scoped to the entity package so callers outside
// derivation don't need to import it just to tell accounts from personas.
type Kind int

const (
	KindAccount Kind = iota
	KindIdentity
)

func (k Kind) String() string {
	if k == KindIdentity {
		return "Identity"
	}
	return "Account"
}
