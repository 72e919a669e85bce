// Copyright 2025 Certen Protocol
//
// Cache is the two-level pre-derived factor instance store: FactorSourceID
// -> IndexAgnosticPath -> ordered instance list, guarded by a single mutex
// in the manner of the teacher's AccountCache. Removal always consumes the
// lowest derivation indices first; insertion is append-only and assumes
// strictly increasing indices, an invariant the Next-Derivation-Index
// Assigner is responsible for maintaining.

package cache

import (
	"sort"
	"sync"

	"github.com/radixdlt/walletmfa/pkg/derivation"
	"github.com/radixdlt/walletmfa/pkg/factorinstance"
	"github.com/radixdlt/walletmfa/pkg/factorsource"
)

// DefaultFillQuantity is the cache-filling quantity constant Q described in
// spec §4.2.
const DefaultFillQuantity = 30

// RemovalKind discriminates the three-valued outcome of Remove.
type RemovalKind int

const (
	// RemovalEmpty: nothing was available for (fsid, path).
	RemovalEmpty RemovalKind = iota
	// RemovalPartial: fewer than n instances were available; all of them
	// were returned and Remaining reports the shortfall.
	RemovalPartial
	// RemovalFull: n instances were available and returned in full.
	RemovalFull
)

// RemovalOutcome is the result of Remove.
type RemovalOutcome struct {
	Kind      RemovalKind
	Instances []factorinstance.HierarchicalDeterministicFactorInstance
	Remaining int
}

type key struct {
	fsid factorsource.ID
	path derivation.IndexAgnosticPath
}

// Cache is the Provider's pre-derived factor instance store.
type Cache struct {
	mu   sync.Mutex
	pool map[key][]factorinstance.HierarchicalDeterministicFactorInstance
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{pool: make(map[key][]factorinstance.HierarchicalDeterministicFactorInstance)}
}

func (c *Cache) sortedCopy(k key) []factorinstance.HierarchicalDeterministicFactorInstance {
	instances := append([]factorinstance.HierarchicalDeterministicFactorInstance(nil), c.pool[k]...)
	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].DerivationPath.Index.Less(instances[j].DerivationPath.Index)
	})
	return instances
}

// Peek returns a read-only copy of the instances currently cached for
// (fsid, path), in derivation-index order, without consuming them.
func (c *Cache) Peek(fsid factorsource.ID, path derivation.IndexAgnosticPath) []factorinstance.HierarchicalDeterministicFactorInstance {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortedCopy(key{fsid: fsid, path: path})
}

// Remove takes the first min(n, available) instances for (fsid, path), by
// ascending derivation index, and re-stores any tail beyond n.
func (c *Cache) Remove(fsid factorsource.ID, path derivation.IndexAgnosticPath, n int) RemovalOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key{fsid: fsid, path: path}
	available := c.sortedCopy(k)

	if len(available) == 0 {
		return RemovalOutcome{Kind: RemovalEmpty, Remaining: n}
	}

	take := n
	if take > len(available) {
		take = len(available)
	}
	taken := available[:take]
	tail := available[take:]

	if len(tail) > 0 {
		c.pool[k] = tail
	} else {
		delete(c.pool, k)
	}

	if take < n {
		return RemovalOutcome{Kind: RemovalPartial, Instances: taken, Remaining: n - take}
	}
	return RemovalOutcome{Kind: RemovalFull, Instances: taken, Remaining: 0}
}

// Insert appends instances for (fsid, path), preserving derivation-index
// order. Callers (the Provider, via the Assigner) must ensure instances
// have strictly increasing indices relative to anything already cached;
// Insert re-sorts defensively but does not itself validate strict
// monotonicity.
func (c *Cache) Insert(fsid factorsource.ID, path derivation.IndexAgnosticPath, instances []factorinstance.HierarchicalDeterministicFactorInstance) {
	if len(instances) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key{fsid: fsid, path: path}
	c.pool[k] = append(c.pool[k], instances...)
	sort.SliceStable(c.pool[k], func(i, j int) bool {
		return c.pool[k][i].DerivationPath.Index.Less(c.pool[k][j].DerivationPath.Index)
	})
}

// IsFull reports whether, for the given network and factor source, every
// one of the four DerivationPresets holds exactly quantity instances.
func (c *Cache) IsFull(network derivation.NetworkID, fsid factorsource.ID, quantity int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, preset := range derivation.AllPresets() {
		path := preset.AgnosticPath(network)
		if len(c.pool[key{fsid: fsid, path: path}]) != quantity {
			return false
		}
	}
	return true
}
