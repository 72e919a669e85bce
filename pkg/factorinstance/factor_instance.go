// Copyright 2025 Certen Protocol
//
// HierarchicalDeterministicFactorInstance binds a public key to the exact
// derivation path and factor source it came from.

package factorinstance

import (
	"crypto/sha256"

	"github.com/radixdlt/walletmfa/pkg/derivation"
	"github.com/radixdlt/walletmfa/pkg/factorsource"
)

// PublicKey is a derived public key together with the curve it was derived
// on. Curve is carried explicitly because different factor source kinds
// back different curves (e.g. Device uses Curve25519, Ledger/Arculus use
// secp256k1, Yubikey uses secp256r1).
type PublicKey struct {
	Curve Curve
	Bytes []byte
}

// Curve identifies the elliptic curve a PublicKey was derived on.
type Curve int

const (
	CurveCurve25519 Curve = iota
	CurveSecp256k1
	CurveSecp256r1
)

func (c Curve) String() string {
	switch c {
	case CurveSecp256k1:
		return "secp256k1"
	case CurveSecp256r1:
		return "secp256r1"
	default:
		return "curve25519"
	}
}

// Hash is a content-addressed digest of a PublicKey, used by access-rule
// encodings that reference factor instances by hash rather than by value.
type Hash [32]byte

// HashOf returns the SHA-256 digest of pk's curve tag and bytes.
func HashOf(pk PublicKey) Hash {
	h := sha256.New()
	h.Write([]byte{byte(pk.Curve)})
	h.Write(pk.Bytes)
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// HierarchicalDeterministicFactorInstance is one concrete derived key: the
// factor source it came from, the exact path it was derived at, and the
// resulting public key.
type HierarchicalDeterministicFactorInstance struct {
	FactorSourceID factorsource.ID
	DerivationPath derivation.Path
	PublicKey      PublicKey
}

// PublicKeyHash returns the content-addressed hash of i's public key.
func (i HierarchicalDeterministicFactorInstance) PublicKeyHash() Hash {
	return HashOf(i.PublicKey)
}

// Equal reports whether i and other are the same instance (same factor
// source, path, and public key bytes).
func (i HierarchicalDeterministicFactorInstance) Equal(other HierarchicalDeterministicFactorInstance) bool {
	if !i.FactorSourceID.Equal(other.FactorSourceID) {
		return false
	}
	if !i.DerivationPath.Equal(other.DerivationPath) {
		return false
	}
	if i.PublicKey.Curve != other.PublicKey.Curve {
		return false
	}
	if len(i.PublicKey.Bytes) != len(other.PublicKey.Bytes) {
		return false
	}
	for j := range i.PublicKey.Bytes {
		if i.PublicKey.Bytes[j] != other.PublicKey.Bytes[j] {
			return false
		}
	}
	return true
}
