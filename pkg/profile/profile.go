// Copyright 2025 Certen Protocol
//
// Profile is a read-only snapshot of enrolled factor sources and entities,
// consulted by the Next-Derivation-Index Assigner. The Provider never
// writes through Profile: the caller applies the Provider's outcome to its
// own persistent profile store after the call returns (spec §5: "writes
// happen only after the Provider returns and before the next Provider
// call").

package profile

import (
	"github.com/radixdlt/walletmfa/pkg/derivation"
	"github.com/radixdlt/walletmfa/pkg/entity"
	"github.com/radixdlt/walletmfa/pkg/factorsource"
)

// Snapshot is an immutable view of profile state at one point in time.
type Snapshot struct {
	FactorSources []factorsource.FactorSource
	Accounts      []entity.Entity
	Personas      []entity.Entity
}

// Empty is the zero-value snapshot used in no-profile mode (e.g. onboarding
// recovery scans), where the Assigner falls back to starting every index
// at 0.
var Empty = Snapshot{}

func (s Snapshot) entitiesOfKind(kind entity.Kind) []entity.Entity {
	if kind == entity.KindIdentity {
		return s.Personas
	}
	return s.Accounts
}

// MaxUnsecurifiedBaseIndex returns the highest base index, among every
// Unsecured entity's lone factor instance on network matching
// (fsid, entityKind, keyKind), or -1 if there is no match. The Assigner
// adds 1 to get the next index, per spec §4.3's Unsecurified rule.
func (s Snapshot) MaxUnsecurifiedBaseIndex(fsid factorsource.ID, network derivation.NetworkID, entityKind derivation.EntityKind, keyKind derivation.KeyKind) int64 {
	kind := entity.KindAccount
	if entityKind == derivation.EntityKindIdentity {
		kind = entity.KindIdentity
	}
	best := int64(-1)
	for _, e := range s.entitiesOfKind(kind) {
		if e.State.IsSecurified() {
			continue
		}
		instance := e.State.Unsecured
		path := instance.DerivationPath
		if path.Network != network || path.Entity != entityKind || path.Key != keyKind {
			continue
		}
		if !instance.FactorSourceID.Equal(fsid) {
			continue
		}
		if path.Index.Space() != derivation.KeySpaceUnsecurified {
			continue
		}
		if base := int64(path.Index.Base()); base > best {
			best = base
		}
	}
	return best
}

// MaxSecurifiedIndex returns the highest derivation index, among every
// factor instance appearing in any Securified entity's matrix (threshold
// or override) on network matching (fsid, entityKind, keyKind), or -1 if
// there is no match.
func (s Snapshot) MaxSecurifiedIndex(fsid factorsource.ID, network derivation.NetworkID, entityKind derivation.EntityKind, keyKind derivation.KeyKind) int64 {
	kind := entity.KindAccount
	if entityKind == derivation.EntityKindIdentity {
		kind = entity.KindIdentity
	}
	best := int64(-1)
	consider := func(path derivation.Path, instanceFsid factorsource.ID) {
		if path.Network != network || path.Entity != entityKind || path.Key != keyKind {
			return
		}
		if !instanceFsid.Equal(fsid) {
			return
		}
		if path.Index.Space() != derivation.KeySpaceSecurified {
			return
		}
		if base := int64(path.Index.Base()); base > best {
			best = base
		}
	}
	for _, e := range s.entitiesOfKind(kind) {
		if !e.State.IsSecurified() {
			continue
		}
		control := e.State.Securified
		for _, f := range control.Matrix.ThresholdFactors {
			consider(f.DerivationPath, f.FactorSourceID)
		}
		for _, f := range control.Matrix.OverrideFactors {
			consider(f.DerivationPath, f.FactorSourceID)
		}
	}
	return best
}
