// Copyright 2025 Certen Protocol

package refimpl

import (
	"context"
	"testing"

	"github.com/radixdlt/walletmfa/pkg/derivation"
	"github.com/radixdlt/walletmfa/pkg/entity"
	"github.com/radixdlt/walletmfa/pkg/factorinstance"
	"github.com/radixdlt/walletmfa/pkg/factorsource"
	"github.com/radixdlt/walletmfa/pkg/interactors"
)

func TestDerivationIsDeterministicPerFactorSourceAndPath(t *testing.T) {
	d := NewInMemoryDerivationInteractor()
	fsid := factorsource.NewHashID(factorsource.KindDevice, []byte("seed"))
	idx, err := derivation.NewUnsecurified(0)
	if err != nil {
		t.Fatal(err)
	}
	path := derivation.PresetAccountVeci.AgnosticPath(derivation.NetworkMainnet).WithIndex(idx)

	first, err := d.Derive(context.Background(), []interactors.DerivationRequest{{FactorSourceID: fsid, Paths: []derivation.Path{path}}})
	if err != nil {
		t.Fatal(err)
	}
	second, err := d.Derive(context.Background(), []interactors.DerivationRequest{{FactorSourceID: fsid, Paths: []derivation.Path{path}}})
	if err != nil {
		t.Fatal(err)
	}
	if !first[fsid][0].Equal(second[fsid][0]) {
		t.Fatal("expected identical instances across repeated derivation at the same path")
	}
}

func TestDerivationDiffersAcrossKinds(t *testing.T) {
	d := NewInMemoryDerivationInteractor()
	idx, _ := derivation.NewUnsecurified(0)
	path := derivation.PresetAccountVeci.AgnosticPath(derivation.NetworkMainnet).WithIndex(idx)

	deviceID := factorsource.NewHashID(factorsource.KindDevice, []byte("x"))
	ledgerID := factorsource.NewHashID(factorsource.KindLedger, []byte("x"))

	deviceOut, err := d.Derive(context.Background(), []interactors.DerivationRequest{{FactorSourceID: deviceID, Paths: []derivation.Path{path}}})
	if err != nil {
		t.Fatal(err)
	}
	ledgerOut, err := d.Derive(context.Background(), []interactors.DerivationRequest{{FactorSourceID: ledgerID, Paths: []derivation.Path{path}}})
	if err != nil {
		t.Fatal(err)
	}
	if deviceOut[deviceID][0].PublicKey.Curve == ledgerOut[ledgerID][0].PublicKey.Curve {
		t.Fatal("expected device (curve25519) and ledger (secp256k1) to use different curves")
	}
}

func TestSigningNeglectIsScripted(t *testing.T) {
	s := NewInMemorySigningInteractor()
	fsid := factorsource.NewHashID(factorsource.KindDevice, []byte("a"))
	s.ScriptNeglect(fsid)

	outcome, err := s.Sign(context.Background(), interactors.SigningRequestForFactorSource{FactorSourceID: fsid})
	if err != nil {
		t.Fatal(err)
	}
	if !outcome.Neglected {
		t.Fatal("expected scripted neglect to be honored")
	}
}

func TestScriptedUserInteractorDefaultsAndDecideOverride(t *testing.T) {
	fsid := factorsource.NewHashID(factorsource.KindDevice, []byte("a"))
	invalidated := []interactors.IntentHash{{0x01}}

	defaulted := &ScriptedUserInteractor{Default: true}
	if !defaulted.ShouldNeglectFactorSource(context.Background(), fsid, invalidated) {
		t.Fatal("expected Default to be honored when Decide is unset")
	}

	var seenFsid factorsource.ID
	var seenInvalidated []interactors.IntentHash
	decided := &ScriptedUserInteractor{Decide: func(fsID factorsource.ID, inv []interactors.IntentHash) bool {
		seenFsid = fsID
		seenInvalidated = inv
		return false
	}}
	if decided.ShouldNeglectFactorSource(context.Background(), fsid, invalidated) {
		t.Fatal("expected Decide's return value to override Default")
	}
	if !seenFsid.Equal(fsid) || len(seenInvalidated) != 1 {
		t.Fatalf("expected Decide to observe the factor source and invalidated list, got %v %v", seenFsid, seenInvalidated)
	}
}

func TestTrustedContactAttestationRoundTrip(t *testing.T) {
	attestor, err := NewTrustedContactAttestor([]byte("contact-seed"))
	if err != nil {
		t.Fatal(err)
	}
	var addr entity.Address
	addr[0] = 0x01
	var nonce [32]byte
	nonce[0] = 0x02

	sig := attestor.Attest(addr, nonce)
	if !VerifyTrustedContactAttestation(attestor.PublicKey(), addr, nonce, sig) {
		t.Fatal("expected attestation to verify against the contact's own public key")
	}

	var otherNonce [32]byte
	otherNonce[0] = 0x03
	if VerifyTrustedContactAttestation(attestor.PublicKey(), addr, otherNonce, sig) {
		t.Fatal("expected attestation to fail verification against a different session nonce")
	}
}

func TestStaticGatewayRoundTrip(t *testing.T) {
	g := NewStaticGateway()
	var h factorinstance.Hash
	h[0] = 0x42
	var addr entity.Address
	addr[0] = 0x99

	g.SeedReference(h, addr)
	addrs, err := g.AddressesReferencing(context.Background(), []factorinstance.Hash{h})
	if err != nil {
		t.Fatal(err)
	}
	if len(addrs) != 1 || addrs[0] != addr {
		t.Fatalf("expected seeded reference, got %v", addrs)
	}
}
