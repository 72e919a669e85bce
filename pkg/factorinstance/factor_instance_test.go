// Copyright 2025 Certen Protocol

package factorinstance

import (
	"testing"

	"github.com/radixdlt/walletmfa/pkg/derivation"
	"github.com/radixdlt/walletmfa/pkg/factorsource"
)

func mkInstance(t *testing.T, idx uint32, pubkey byte) HierarchicalDeterministicFactorInstance {
	t.Helper()
	comp, err := derivation.NewUnsecurified(idx)
	if err != nil {
		t.Fatal(err)
	}
	return HierarchicalDeterministicFactorInstance{
		FactorSourceID: factorsource.NewHashID(factorsource.KindDevice, []byte("root-key-material")),
		DerivationPath: derivation.Path{
			Network: derivation.NetworkMainnet,
			Entity:  derivation.EntityKindAccount,
			Key:     derivation.KeyKindTransactionSigning,
			Index:   comp,
		},
		PublicKey: PublicKey{Curve: CurveCurve25519, Bytes: []byte{pubkey, 0x01, 0x02}},
	}
}

func TestPublicKeyHashDeterministic(t *testing.T) {
	a := mkInstance(t, 0, 0xAA)
	b := mkInstance(t, 0, 0xAA)
	if a.PublicKeyHash() != b.PublicKeyHash() {
		t.Fatal("identical public keys must hash identically")
	}
}

func TestPublicKeyHashDiffersByBytes(t *testing.T) {
	a := mkInstance(t, 0, 0xAA)
	b := mkInstance(t, 0, 0xBB)
	if a.PublicKeyHash() == b.PublicKeyHash() {
		t.Fatal("distinct public key bytes must not collide")
	}
}

func TestEqualRequiresSamePathAndKey(t *testing.T) {
	a := mkInstance(t, 0, 0xAA)
	b := mkInstance(t, 1, 0xAA)
	if a.Equal(b) {
		t.Fatal("instances at different derivation indices must not be equal")
	}
	c := mkInstance(t, 0, 0xAA)
	if !a.Equal(c) {
		t.Fatal("structurally identical instances must be equal")
	}
}
