// Copyright 2025 Certen Protocol
//
// InMemoryDerivationInteractor is a reference DerivationInteractor for
// tests and the demo CLI: it derives deterministic key material per
// factor source root seed via HKDF, then produces a curve-appropriate
// public key per factor source kind (secp256k1 for Ledger/Arculus, P-256
// for Yubikey, Ed25519 for every other kind, including Device,
// OffDeviceMnemonic and SecurityQuestions).

package refimpl

import (
	"context"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/big"
	"sync"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/hkdf"

	"github.com/radixdlt/walletmfa/pkg/derivation"
	"github.com/radixdlt/walletmfa/pkg/factorinstance"
	"github.com/radixdlt/walletmfa/pkg/factorsource"
	"github.com/radixdlt/walletmfa/pkg/interactors"
)

// InMemoryDerivationInteractor holds one root seed per factor source ID
// and derives instances from it on demand. It never persists key
// material outside process memory.
type InMemoryDerivationInteractor struct {
	mu   sync.Mutex
	seed map[factorsource.ID][]byte
}

// NewInMemoryDerivationInteractor builds an empty interactor; seeds are
// created lazily on first use of a factor source ID so callers don't need
// to pre-register every factor source.
func NewInMemoryDerivationInteractor() *InMemoryDerivationInteractor {
	return &InMemoryDerivationInteractor{seed: make(map[factorsource.ID][]byte)}
}

// Derive implements interactors.DerivationInteractor.
func (d *InMemoryDerivationInteractor) Derive(_ context.Context, requests []interactors.DerivationRequest) (map[factorsource.ID][]factorinstance.HierarchicalDeterministicFactorInstance, error) {
	out := make(map[factorsource.ID][]factorinstance.HierarchicalDeterministicFactorInstance)
	for _, req := range requests {
		root := d.rootFor(req.FactorSourceID)
		instances := make([]factorinstance.HierarchicalDeterministicFactorInstance, 0, len(req.Paths))
		for _, path := range req.Paths {
			pk, err := derivePublicKey(root, path, req.FactorSourceID.Kind)
			if err != nil {
				return nil, fmt.Errorf("derive path %v for %s: %w", path, req.FactorSourceID, err)
			}
			instances = append(instances, factorinstance.HierarchicalDeterministicFactorInstance{
				FactorSourceID: req.FactorSourceID,
				DerivationPath: path,
				PublicKey:      pk,
			})
		}
		out[req.FactorSourceID] = instances
	}
	return out, nil
}

// rootFor lazily creates and caches a root seed for fsid so repeated
// derivations against the same factor source stay deterministic within
// this interactor's lifetime.
func (d *InMemoryDerivationInteractor) rootFor(fsid factorsource.ID) []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	if root, ok := d.seed[fsid]; ok {
		return root
	}
	sum := sha256.Sum256(fsid.Body[:])
	root := sum[:]
	d.seed[fsid] = root
	return root
}

// derivePublicKey expands root via HKDF keyed on the path's wire encoding
// to get path-specific key material, then produces a curve-appropriate
// public key for kind.
func derivePublicKey(root []byte, path derivation.Path, kind factorsource.Kind) (factorinstance.PublicKey, error) {
	info := pathInfo(path)
	h := hkdf.New(sha256.New, root, nil, info)
	material := make([]byte, 32)
	if _, err := h.Read(material); err != nil {
		return factorinstance.PublicKey{}, fmt.Errorf("hkdf expand: %w", err)
	}

	switch curveFor(kind) {
	case factorinstance.CurveSecp256k1:
		priv, err := gethcrypto.ToECDSA(material)
		if err != nil {
			return factorinstance.PublicKey{}, fmt.Errorf("secp256k1 key from material: %w", err)
		}
		return factorinstance.PublicKey{Curve: factorinstance.CurveSecp256k1, Bytes: gethcrypto.CompressPubkey(&priv.PublicKey)}, nil
	case factorinstance.CurveSecp256r1:
		priv := new(ecdsa.PrivateKey)
		priv.PublicKey.Curve = elliptic.P256()
		priv.D = new(big.Int).SetBytes(material)
		priv.PublicKey.X, priv.PublicKey.Y = elliptic.P256().ScalarBaseMult(material)
		bytes := elliptic.MarshalCompressed(elliptic.P256(), priv.PublicKey.X, priv.PublicKey.Y)
		return factorinstance.PublicKey{Curve: factorinstance.CurveSecp256r1, Bytes: bytes}, nil
	default:
		seed := material
		priv := ed25519.NewKeyFromSeed(seed)
		pub := priv.Public().(ed25519.PublicKey)
		return factorinstance.PublicKey{Curve: factorinstance.CurveCurve25519, Bytes: []byte(pub)}, nil
	}
}

// curveFor maps a factor source kind to the curve its keys are produced
// on: hardware wallets with card/dongle secure elements use secp256k1,
// Yubikey uses P-256 to mirror common FIDO2/WebAuthn key shapes, and every
// other kind (Device, OffDeviceMnemonic, SecurityQuestions) uses Ed25519.
func curveFor(kind factorsource.Kind) factorinstance.Curve {
	switch kind {
	case factorsource.KindLedger, factorsource.KindArculus:
		return factorinstance.CurveSecp256k1
	case factorsource.KindYubikey:
		return factorinstance.CurveSecp256r1
	default:
		return factorinstance.CurveCurve25519
	}
}

// pathInfo renders a derivation.Path's components into HKDF's info
// parameter so distinct paths never collide.
func pathInfo(path derivation.Path) []byte {
	buf := make([]byte, 0, 16)
	buf = binary.BigEndian.AppendUint16(buf, uint16(path.Network))
	buf = binary.BigEndian.AppendUint16(buf, uint16(path.Entity))
	buf = binary.BigEndian.AppendUint16(buf, uint16(path.Key))
	buf = binary.BigEndian.AppendUint32(buf, path.Index.Hardened())
	return buf
}
