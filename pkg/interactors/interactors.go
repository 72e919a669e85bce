// Copyright 2025 Certen Protocol
//
// Package interactors defines the capability interfaces the core depends
// on but does not implement: derivation, signing, the read-only gateway,
// and user prompting. Concrete implementations live outside this package
// (see pkg/interactors/refimpl for in-memory reference implementations
// used by tests and the demo CLI).

package interactors

import (
	"context"

	"github.com/radixdlt/walletmfa/pkg/derivation"
	"github.com/radixdlt/walletmfa/pkg/entity"
	"github.com/radixdlt/walletmfa/pkg/factorinstance"
	"github.com/radixdlt/walletmfa/pkg/factorsource"
)

// DerivationRequest is one factor source's batch of paths to derive keys
// at, per spec §6.1.
type DerivationRequest struct {
	FactorSourceID factorsource.ID
	Paths          []derivation.Path
}

// DerivationInteractor operates a factor source's root key material to
// derive public keys at requested paths. Every returned instance's
// DerivationPath must equal one of the requested paths; failing to
// produce an instance for a required path is a hard error (spec §6.1,
// §7's DerivationInteractorFailure).
type DerivationInteractor interface {
	Derive(ctx context.Context, requests []DerivationRequest) (map[factorsource.ID][]factorinstance.HierarchicalDeterministicFactorInstance, error)
}

// SigningRequestForFactorSource is what the Signatures Collector asks one
// factor source to sign, across possibly many transactions in the batch.
type SigningRequestForFactorSource struct {
	FactorSourceID factorsource.ID
	PerTransaction []SigningRequestForTransaction
}

// SigningRequestForTransaction is the per-transaction payload inside one
// factor source's signing request.
type SigningRequestForTransaction struct {
	IntentHash      [32]byte
	FactorInstances []factorinstance.HierarchicalDeterministicFactorInstance
}

// HDSignature is one signature bound to the exact factor instance and
// intent hash it was produced for.
type HDSignature struct {
	FactorInstance factorinstance.HierarchicalDeterministicFactorInstance
	IntentHash     [32]byte
	Signature      []byte
}

// IntentHash identifies a transaction within a signing batch. It is an
// alias, not a distinct type, so it interoperates freely with the raw
// [32]byte intent hashes used throughout the petition graph.
type IntentHash = [32]byte

// NeglectReason is why a factor source was not used to produce a
// signature, per spec §4.6. Defined here, rather than in pkg/petition,
// so a SigningOutcome can report it without interactors importing
// pkg/petition (which itself imports interactors).
type NeglectReason int

const (
	// NeglectUserExplicitlySkipped is the zero value: the most common
	// interactive case, where a human declines before any signing attempt
	// is even made.
	NeglectUserExplicitlySkipped NeglectReason = iota
	NeglectFailure
	NeglectSimulation
	NeglectIrrelevant
)

func (r NeglectReason) String() string {
	switch r {
	case NeglectUserExplicitlySkipped:
		return "UserExplicitlySkipped"
	case NeglectFailure:
		return "Failure"
	case NeglectSimulation:
		return "Simulation"
	default:
		return "Irrelevant"
	}
}

// SigningOutcome is the per-factor-source response from a SigningInteractor
// invocation: either signatures keyed by intent hash, or a neglect verdict
// for the whole factor source, with the reason it was neglected (spec §6.2).
type SigningOutcome struct {
	Neglected  bool
	Reason     NeglectReason
	Signatures map[IntentHash][]HDSignature
}

// SigningInteractor drives one factor source's signing, per invocation.
// Signatures for other factor sources or transactions than requested are
// ignored by the caller.
type SigningInteractor interface {
	Sign(ctx context.Context, request SigningRequestForFactorSource) (SigningOutcome, error)
}

// OnChainState is the Gateway's read-only view of one entity's control
// state, per spec §6.3.
type OnChainState struct {
	Securified      bool
	SingleKeyHash   factorinstance.Hash
	AccessRuleBytes []byte
}

// Gateway is the abstract, read-only on-ledger query surface the core
// consumes. The core never writes to the gateway.
type Gateway interface {
	AddressesReferencing(ctx context.Context, publicKeyHashes []factorinstance.Hash) ([]entity.Address, error)
	EntityOnChainState(ctx context.Context, address entity.Address) (OnChainState, error)
}

// UserInteractor is the abstract user-prompting surface: the Collector
// asks it, before signing with a factor source, whether the user wants to
// neglect that source given which transactions would be invalidated by
// doing so (spec §4.6).
type UserInteractor interface {
	ShouldNeglectFactorSource(ctx context.Context, fsID factorsource.ID, invalidated []IntentHash) bool
}
