// Copyright 2025 Certen Protocol

package entity

import (
	"testing"

	"github.com/radixdlt/walletmfa/pkg/derivation"
	"github.com/radixdlt/walletmfa/pkg/factorinstance"
	"github.com/radixdlt/walletmfa/pkg/factorsource"
)

func mkVeci(t *testing.T) factorinstance.HierarchicalDeterministicFactorInstance {
	t.Helper()
	comp, err := derivation.NewUnsecurified(0)
	if err != nil {
		t.Fatal(err)
	}
	return factorinstance.HierarchicalDeterministicFactorInstance{
		FactorSourceID: factorsource.NewHashID(factorsource.KindDevice, []byte("root")),
		DerivationPath: derivation.Path{
			Network: derivation.NetworkMainnet,
			Entity:  derivation.EntityKindAccount,
			Key:     derivation.KeyKindTransactionSigning,
			Index:   comp,
		},
		PublicKey: factorinstance.PublicKey{Curve: factorinstance.CurveCurve25519, Bytes: []byte{1, 2, 3}},
	}
}

func TestNewUnsecuredIsNotSecurified(t *testing.T) {
	state := NewUnsecured(mkVeci(t))
	if state.IsSecurified() {
		t.Fatal("unsecured state must not report IsSecurified")
	}
}

func TestAddressDerivationIsDeterministic(t *testing.T) {
	veci := mkVeci(t)
	a1 := AddressFromPublicKeyHash(veci.PublicKeyHash())
	a2 := AddressFromPublicKeyHash(veci.PublicKeyHash())
	if a1 != a2 {
		t.Fatal("same public key hash must derive the same address")
	}
}

func TestKindString(t *testing.T) {
	if KindAccount.String() != "Account" {
		t.Fatalf("unexpected account string: %s", KindAccount)
	}
	if KindIdentity.String() != "Identity" {
		t.Fatalf("unexpected identity string: %s", KindIdentity)
	}
}
