// Copyright 2025 Certen Protocol
//
// AccessController encodes a fulfilled primary-role matrix as the on-ledger
// access rule shape: Protected(AnyOf[CountOf(threshold, threshold_key_hashes),
// AnyOf(override_key_hashes)]). The encoding round-trips losslessly up to
// ordering against MatrixOfKeyHashes (spec §6.4, testable property 7).

package accessrule

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/radixdlt/walletmfa/pkg/commitment"
	"github.com/radixdlt/walletmfa/pkg/factorinstance"
	"github.com/radixdlt/walletmfa/pkg/matrix"
)

// MatrixOfKeyHashes is the public-key-hash projection of a
// MatrixOfFactorInstances: the threshold arity plus the ordered hash lists
// of both the threshold and override factors, with all key material erased.
type MatrixOfKeyHashes struct {
	Threshold            uint8
	ThresholdKeyHashes   []factorinstance.Hash
	OverrideKeyHashes    []factorinstance.Hash
}

// CountOf requires at least N signatures among the listed key hashes.
type CountOf struct {
	Threshold uint8
	KeyHashes []factorinstance.Hash
}

// AnyOfOverride requires any one signature among the listed key hashes.
type AnyOfOverride struct {
	KeyHashes []factorinstance.Hash
}

// AccessController is the on-ledger access rule an entity's primary role
// compiles to: Protected(AnyOf[CountOf(...), AnyOf(...)]).
type AccessController struct {
	Threshold CountOf
	Override  AnyOfOverride
}

// FromMatrixOfKeyHashes builds the AccessController encoding of m.
func FromMatrixOfKeyHashes(m MatrixOfKeyHashes) AccessController {
	return AccessController{
		Threshold: CountOf{Threshold: m.Threshold, KeyHashes: append([]factorinstance.Hash(nil), m.ThresholdKeyHashes...)},
		Override:  AnyOfOverride{KeyHashes: append([]factorinstance.Hash(nil), m.OverrideKeyHashes...)},
	}
}

// ToMatrixOfKeyHashes recovers the MatrixOfKeyHashes that produced ac. The
// round trip is lossless up to ordering: FromMatrixOfKeyHashes and
// ToMatrixOfKeyHashes are mutual inverses on the threshold, the threshold
// key hashes (in order), and the override key hashes (in order).
func (ac AccessController) ToMatrixOfKeyHashes() MatrixOfKeyHashes {
	return MatrixOfKeyHashes{
		Threshold:          ac.Threshold.Threshold,
		ThresholdKeyHashes: append([]factorinstance.Hash(nil), ac.Threshold.KeyHashes...),
		OverrideKeyHashes:  append([]factorinstance.Hash(nil), ac.Override.KeyHashes...),
	}
}

// FromPrimaryMatrix projects a fulfilled primary-role matrix down to its
// public-key-hash shape and encodes it as an AccessController. Only the
// primary role compiles to an on-ledger AccessController; recovery and
// confirmation matrices are not encoded by this package.
func FromPrimaryMatrix(m matrix.MatrixOfFactorInstances) AccessController {
	thresholdHashes := make([]factorinstance.Hash, len(m.ThresholdFactors))
	for i, f := range m.ThresholdFactors {
		thresholdHashes[i] = f.PublicKeyHash()
	}
	overrideHashes := make([]factorinstance.Hash, len(m.OverrideFactors))
	for i, f := range m.OverrideFactors {
		overrideHashes[i] = f.PublicKeyHash()
	}
	return FromMatrixOfKeyHashes(MatrixOfKeyHashes{
		Threshold:          m.Threshold,
		ThresholdKeyHashes: thresholdHashes,
		OverrideKeyHashes:  overrideHashes,
	})
}

// accessControllerJSON is the plain-JSON shape ac canonicalizes to before
// hashing; field order here doesn't matter since CanonicalBytes sorts keys.
type accessControllerJSON struct {
	ThresholdCount int      `json:"threshold_count"`
	ThresholdHex   []string `json:"threshold_key_hashes"`
	OverrideHex    []string `json:"override_key_hashes"`
}

// CanonicalBytes renders ac as deterministic, key-sorted JSON, independent
// of the in-memory slice/struct layout above. Two AccessControllers built
// from the same matrix in different orderings of equal hashes still
// produce byte-identical output.
func (ac AccessController) CanonicalBytes() ([]byte, error) {
	raw := accessControllerJSON{
		ThresholdCount: int(ac.Threshold.Threshold),
		ThresholdHex:   hexAll(ac.Threshold.KeyHashes),
		OverrideHex:    hexAll(ac.Override.KeyHashes),
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("accessrule: marshal canonical form: %w", err)
	}
	return commitment.CanonicalizeJSON(encoded)
}

// CommitmentHash is the content hash of ac's canonical encoding, the value
// a gateway's OnChainState.AccessRuleBytes is expected to match once the
// entity's securification transaction has been submitted and observed.
func (ac AccessController) CommitmentHash() ([32]byte, error) {
	canonical, err := ac.CanonicalBytes()
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(canonical), nil
}

func hexAll(hashes []factorinstance.Hash) []string {
	out := make([]string, len(hashes))
	for i, h := range hashes {
		out[i] = fmt.Sprintf("%x", h[:])
	}
	return out
}

// String renders ac in the Protected(AnyOf[CountOf(...), AnyOf(...)]) shape
// named by spec §6.4, for logging and debugging.
func (ac AccessController) String() string {
	return fmt.Sprintf("Protected(AnyOf[CountOf(%d, %d hashes), AnyOf(%d hashes)])",
		ac.Threshold.Threshold, len(ac.Threshold.KeyHashes), len(ac.Override.KeyHashes))
}
