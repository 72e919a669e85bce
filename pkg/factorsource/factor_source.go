// Copyright 2025 Certen Protocol

package factorsource

import (
	"sort"
	"time"
)

// FactorSource is a root of trust at the enrolment layer: a device, a
// hardware wallet, a mnemonic, etc.
type FactorSource struct {
	ID       ID
	LastUsed time.Time
}

// Less orders first by kind (friction order), then by LastUsed ascending,
// per spec §3 ("FactorSource ... Ordered first by kind, then by last_used
// ascending").
func (f FactorSource) Less(other FactorSource) bool {
	if f.ID.Kind != other.ID.Kind {
		return f.ID.Kind.Less(other.ID.Kind)
	}
	return f.LastUsed.Before(other.LastUsed)
}

// Sort sorts factor sources in place per the ordering above.
func Sort(sources []FactorSource) {
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Less(sources[j])
	})
}

// GroupByKind buckets sources by kind, in the friction order of
// OrderedKinds, preserving the relative (insertion) order of sources
// within each bucket. Sources whose kind cannot sign (see Kind.CanSign)
// are omitted — the caller (the Signatures Collector) never invokes them.
func GroupByKind(sources []FactorSource) []KindGroup {
	index := make(map[Kind]int, len(orderedKinds))
	groups := make([]KindGroup, 0, len(orderedKinds))
	for _, k := range orderedKinds {
		index[k] = len(groups)
		groups = append(groups, KindGroup{Kind: k})
	}
	for _, fs := range sources {
		if !fs.ID.Kind.CanSign() {
			continue
		}
		i := index[fs.ID.Kind]
		groups[i].Sources = append(groups[i].Sources, fs)
	}
	return groups
}

// KindGroup is all factor sources of one kind, in insertion order.
type KindGroup struct {
	Kind    Kind
	Sources []FactorSource
}
