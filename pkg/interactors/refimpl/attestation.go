// Copyright 2025 Certen Protocol
//
// TrustedContact factor sources never hold transaction-signing key
// material (factorsource.KindTrustedContact.CanSign() is false) — a
// trusted contact instead vouches for a recovery attempt by producing a
// BLS12-381 attestation over the entity address and recovery session
// nonce, the same primitive the teacher's validator attestation flow
// uses for multi-party sign-off.

package refimpl

import (
	"github.com/radixdlt/walletmfa/pkg/crypto/bls"
	"github.com/radixdlt/walletmfa/pkg/entity"
)

const domainTrustedContactRecovery = "WALLETMFA_TRUSTED_CONTACT_RECOVERY_V1"

// TrustedContactAttestor signs recovery attestations on behalf of one
// trusted contact factor source.
type TrustedContactAttestor struct {
	privateKey *bls.PrivateKey
}

// NewTrustedContactAttestor generates a fresh BLS key pair for a trusted
// contact, deterministic from seed so tests are reproducible.
func NewTrustedContactAttestor(seed []byte) (*TrustedContactAttestor, error) {
	return NewTrustedContactAttestorFromStore(bls.NewKeyStore(""), seed)
}

// NewTrustedContactAttestorFromStore loads a persisted key from store, or
// derives and saves one from seed if none exists yet. Pass a store built
// from config.Config.TrustedContactSeedPath so a contact's recovery key
// survives process restarts.
func NewTrustedContactAttestorFromStore(store *bls.KeyStore, seed []byte) (*TrustedContactAttestor, error) {
	if err := store.LoadOrGenerate(seed); err != nil {
		return nil, err
	}
	return &TrustedContactAttestor{privateKey: store.PrivateKey()}, nil
}

// PublicKey returns the contact's BLS public key, published at enrolment
// so recovering parties can later verify Attest's output.
func (a *TrustedContactAttestor) PublicKey() *bls.PublicKey {
	return a.privateKey.PublicKey()
}

// Attest vouches that this contact witnessed a recovery attempt for
// address under the given session nonce.
func (a *TrustedContactAttestor) Attest(address entity.Address, sessionNonce [32]byte) *bls.Signature {
	return a.privateKey.SignWithDomain(attestationMessage(address, sessionNonce), domainTrustedContactRecovery)
}

// VerifyTrustedContactAttestation checks sig against the contact's public
// key for the given recovery attempt.
func VerifyTrustedContactAttestation(pk *bls.PublicKey, address entity.Address, sessionNonce [32]byte, sig *bls.Signature) bool {
	return pk.VerifyWithDomain(sig, attestationMessage(address, sessionNonce), domainTrustedContactRecovery)
}

func attestationMessage(address entity.Address, sessionNonce [32]byte) []byte {
	msg := make([]byte, 0, 64)
	msg = append(msg, address[:]...)
	msg = append(msg, sessionNonce[:]...)
	return msg
}
