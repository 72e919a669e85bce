// Copyright 2025 Certen Protocol
//
// InMemorySigningInteractor is a reference SigningInteractor: it signs
// with an Ed25519 key seeded from each factor source ID's body (not with
// the factor instances' derived keys), and supports scripting
// a factor source to neglect (for test scenarios exercising the
// threshold/override fail paths).

package refimpl

import (
	"context"
	"crypto/ed25519"

	"github.com/radixdlt/walletmfa/pkg/factorsource"
	"github.com/radixdlt/walletmfa/pkg/interactors"
)

// InMemorySigningInteractor signs every instance it is handed with a
// deterministic per-factor-source key, unless that factor source has been
// scripted to neglect.
type InMemorySigningInteractor struct {
	keys    map[factorsource.ID]ed25519.PrivateKey
	neglect map[factorsource.ID]bool
}

// NewInMemorySigningInteractor builds an interactor with no neglected
// sources; use ScriptNeglect to simulate a failing or skipped factor
// source before a run.
func NewInMemorySigningInteractor() *InMemorySigningInteractor {
	return &InMemorySigningInteractor{
		keys:    make(map[factorsource.ID]ed25519.PrivateKey),
		neglect: make(map[factorsource.ID]bool),
	}
}

// ScriptNeglect makes fsid report Neglected on its next (and every
// subsequent) Sign call.
func (s *InMemorySigningInteractor) ScriptNeglect(fsid factorsource.ID) {
	s.neglect[fsid] = true
}

// Sign implements interactors.SigningInteractor.
func (s *InMemorySigningInteractor) Sign(_ context.Context, request interactors.SigningRequestForFactorSource) (interactors.SigningOutcome, error) {
	if s.neglect[request.FactorSourceID] {
		return interactors.SigningOutcome{Neglected: true, Reason: interactors.NeglectFailure}, nil
	}

	priv := s.keyFor(request.FactorSourceID)
	out := interactors.SigningOutcome{Signatures: make(map[[32]byte][]interactors.HDSignature)}
	for _, pt := range request.PerTransaction {
		for _, inst := range pt.FactorInstances {
			sig := ed25519.Sign(priv, pt.IntentHash[:])
			out.Signatures[pt.IntentHash] = append(out.Signatures[pt.IntentHash], interactors.HDSignature{
				FactorInstance: inst,
				IntentHash:     pt.IntentHash,
				Signature:      sig,
			})
		}
	}
	return out, nil
}

// keyFor lazily derives a deterministic signing key from fsid's body so
// repeated calls against the same factor source reuse the same key.
func (s *InMemorySigningInteractor) keyFor(fsid factorsource.ID) ed25519.PrivateKey {
	if priv, ok := s.keys[fsid]; ok {
		return priv
	}
	priv := ed25519.NewKeyFromSeed(fsid.Body[:])
	s.keys[fsid] = priv
	return priv
}
