// Copyright 2025 Certen Protocol
//
// Assigner is the Next-Derivation-Index Assigner (spec §4.3): a stateful,
// per-provider-invocation oracle that hands out strictly increasing
// derivation indices, consulting a read-only Profile snapshot for the
// starting point and a local offset map for every index it has already
// handed out during this invocation.

package indexassigner

import (
	"log"
	"sync"

	"github.com/radixdlt/walletmfa/pkg/derivation"
	"github.com/radixdlt/walletmfa/pkg/factorsource"
	"github.com/radixdlt/walletmfa/pkg/profile"
)

type localKey struct {
	fsid factorsource.ID
	path derivation.IndexAgnosticPath
}

// Assigner hands out HDPathComponents in the correct key-space, keyed on
// (FactorSourceID, IndexAgnosticPath). Create a fresh Assigner per Provider
// invocation; its local offsets must not outlive one call.
type Assigner struct {
	mu       sync.Mutex
	snapshot profile.Snapshot
	offsets  map[localKey]uint32
	logger   *log.Logger
}

// New creates an Assigner consulting snapshot. Pass profile.Empty for
// no-profile mode (spec §4.4's onboarding/recovery-scan case): every index
// then starts at 0, as there is no profile context to consult.
func New(snapshot profile.Snapshot) *Assigner {
	return &Assigner{
		snapshot: snapshot,
		offsets:  make(map[localKey]uint32),
		logger:   log.New(log.Writer(), "[IndexAssigner] ", log.LstdFlags),
	}
}

// Next yields the next HDPathComponent for (fsid, path), in the key-space
// implied by path.KeySpace, and advances the local offset so a repeated
// call within this invocation produces a strictly increasing index.
func (a *Assigner) Next(fsid factorsource.ID, path derivation.IndexAgnosticPath) (derivation.HDPathComponent, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	k := localKey{fsid: fsid, path: path}
	offset, seen := a.offsets[k]
	if !seen {
		offset = a.startingOffset(fsid, path)
	}

	var component derivation.HDPathComponent
	var err error
	if path.KeySpace == derivation.KeySpaceSecurified {
		component, err = derivation.NewSecurified(offset)
	} else {
		component, err = derivation.NewUnsecurified(offset)
	}
	if err != nil {
		return derivation.HDPathComponent{}, err
	}

	a.offsets[k] = offset + 1
	return component, nil
}

// startingOffset computes the base index to hand out first for
// (fsid, path), per spec §4.3's Unsecurified/Securified derivation rules.
func (a *Assigner) startingOffset(fsid factorsource.ID, path derivation.IndexAgnosticPath) uint32 {
	var max int64
	if path.KeySpace == derivation.KeySpaceSecurified {
		max = a.snapshot.MaxSecurifiedIndex(fsid, path.Network, path.Entity, path.Key)
	} else {
		max = a.snapshot.MaxUnsecurifiedBaseIndex(fsid, path.Network, path.Entity, path.Key)
	}
	if max < 0 {
		return 0
	}
	return uint32(max) + 1
}
