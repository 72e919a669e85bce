// Copyright 2025 Certen Protocol
//
// Provider is the Factor-Instance Provider (spec §4.4): it fulfils typed
// requests for derived HD factor instances by consulting the cache first,
// topping up shortfalls and every other DerivationPreset via the
// Assigner and a DerivationInteractor, and splitting results into
// to-use-directly and to-cache sets.

package provider

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/radixdlt/walletmfa/pkg/cache"
	"github.com/radixdlt/walletmfa/pkg/derivation"
	"github.com/radixdlt/walletmfa/pkg/factorinstance"
	"github.com/radixdlt/walletmfa/pkg/factorsource"
	"github.com/radixdlt/walletmfa/pkg/indexassigner"
	"github.com/radixdlt/walletmfa/pkg/interactors"
	"github.com/radixdlt/walletmfa/pkg/metrics"
	"github.com/radixdlt/walletmfa/pkg/profile"
)

// Request is one quantified ask: derive/fetch qty instances for fsid at
// the given network+preset.
type Request struct {
	FactorSourceID factorsource.ID
	Network        derivation.NetworkID
	Preset         derivation.Preset
	Quantity       int
}

// Outcome is the per-factor-source result of a Provider run, per spec
// §4.4 step 6.
type Outcome struct {
	ToCache       []factorinstance.HierarchicalDeterministicFactorInstance
	ToUseDirectly []factorinstance.HierarchicalDeterministicFactorInstance
	FoundInCache  []factorinstance.HierarchicalDeterministicFactorInstance
	NewlyDerived  []factorinstance.HierarchicalDeterministicFactorInstance
}

// Provider is the Factor-Instance Provider. Construct one per logical
// session; it is safe to reuse across independent (homogeneous) With calls
// since it carries no call-scoped state itself (the Assigner it is given
// per call is what must not outlive one invocation).
type Provider struct {
	cache      *cache.Cache
	derivation interactors.DerivationInteractor
	fillQty    int
	metrics    *metrics.Recorder
	logger     *log.Logger
}

// Option configures a Provider at construction time.
type Option func(*Provider)

// WithFillQuantity overrides the default cache-filling quantity Q.
func WithFillQuantity(q int) Option {
	return func(p *Provider) { p.fillQty = q }
}

// WithMetrics attaches a metrics recorder; nil (the default) disables
// metrics recording entirely.
func WithMetrics(m *metrics.Recorder) Option {
	return func(p *Provider) { p.metrics = m }
}

// New creates a Provider backed by c, invoking di to derive new keys.
func New(c *cache.Cache, di interactors.DerivationInteractor, opts ...Option) *Provider {
	p := &Provider{
		cache:      c,
		derivation: di,
		fillQty:    cache.DefaultFillQuantity,
		logger:     log.New(log.Writer(), "[Provider] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// With fulfils a homogeneous batch of requests (all sharing one preset) on
// one network, using snapshot to seed a fresh per-call Assigner. Mixing
// presets in one call is an API error.
func (p *Provider) With(ctx context.Context, snapshot profile.Snapshot, requests []Request) (map[factorsource.ID]Outcome, error) {
	if len(requests) == 0 {
		return map[factorsource.ID]Outcome{}, nil
	}
	preset := requests[0].Preset
	network := requests[0].Network
	for _, r := range requests[1:] {
		if r.Preset != preset || r.Network != network {
			return nil, ErrMixedPresetBatch
		}
	}

	assigner := indexassigner.New(snapshot)
	outcomes := make(map[factorsource.ID]Outcome, len(requests))

	type plan struct {
		fsid      factorsource.ID
		remaining int
		found     []factorinstance.HierarchicalDeterministicFactorInstance
	}
	plans := make([]plan, 0, len(requests))

	for _, r := range requests {
		path := preset.AgnosticPath(network)
		removal := p.cache.Remove(r.FactorSourceID, path, r.Quantity)
		p.recordCacheOutcome(removal)
		plans = append(plans, plan{fsid: r.FactorSourceID, remaining: removal.Remaining, found: removal.Instances})
	}

	anyShortfall := false
	for _, pl := range plans {
		if pl.remaining > 0 {
			anyShortfall = true
		}
	}

	derivationResults := make(map[factorsource.ID][]factorinstance.HierarchicalDeterministicFactorInstance)
	if anyShortfall {
		var reqs []interactors.DerivationRequest
		for _, pl := range plans {
			// buildDerivationPaths always plans all four presets, so a
			// factor source with no shortfall on the requested preset
			// still gets its other three presets topped up here.
			paths, err := p.buildDerivationPaths(assigner, pl.fsid, network, preset, pl.remaining)
			if err != nil {
				return nil, err
			}
			if len(paths) > 0 {
				reqs = append(reqs, interactors.DerivationRequest{FactorSourceID: pl.fsid, Paths: paths})
			}
		}
		results, err := p.derivation.Derive(ctx, reqs)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
		}
		derivationResults = results
		if p.metrics != nil {
			for _, instances := range results {
				p.metrics.AddInstancesDerived(len(instances))
			}
		}
	}

	requestedPath := preset.AgnosticPath(network)
	for _, pl := range plans {
		derived := derivationResults[pl.fsid]

		var toUseFromDerivation []factorinstance.HierarchicalDeterministicFactorInstance
		var toCache []factorinstance.HierarchicalDeterministicFactorInstance
		for _, inst := range derived {
			if inst.DerivationPath.AgnosticPath() == requestedPath {
				toUseFromDerivation = append(toUseFromDerivation, inst)
			} else {
				toCache = append(toCache, inst)
			}
		}
		sort.SliceStable(toUseFromDerivation, func(i, j int) bool {
			return toUseFromDerivation[i].DerivationPath.Index.Less(toUseFromDerivation[j].DerivationPath.Index)
		})

		take := pl.remaining
		if take > len(toUseFromDerivation) {
			take = len(toUseFromDerivation)
		}
		useDirectly := append([]factorinstance.HierarchicalDeterministicFactorInstance(nil), pl.found...)
		useDirectly = append(useDirectly, toUseFromDerivation[:take]...)
		toCache = append(toCache, toUseFromDerivation[take:]...)

		if len(toCache) > 0 {
			byPath := make(map[derivation.IndexAgnosticPath][]factorinstance.HierarchicalDeterministicFactorInstance)
			for _, inst := range toCache {
				agnostic := inst.DerivationPath.AgnosticPath()
				byPath[agnostic] = append(byPath[agnostic], inst)
			}
			for agnostic, instances := range byPath {
				p.cache.Insert(pl.fsid, agnostic, instances)
			}
		}

		outcomes[pl.fsid] = Outcome{
			ToCache:       toCache,
			ToUseDirectly: useDirectly,
			FoundInCache:  pl.found,
			NewlyDerived:  derived,
		}
	}

	return outcomes, nil
}

// buildDerivationPaths constructs the full four-preset derivation plan for
// one factor source (spec §4.4 step 2): `remaining + Q` for the requested
// preset, `Q` for each of the other three.
func (p *Provider) buildDerivationPaths(assigner *indexassigner.Assigner, fsid factorsource.ID, network derivation.NetworkID, requestedPreset derivation.Preset, remaining int) ([]derivation.Path, error) {
	var paths []derivation.Path
	for _, preset := range derivation.AllPresets() {
		qty := p.fillQty
		if preset == requestedPreset {
			qty = remaining + p.fillQty
		}
		agnostic := preset.AgnosticPath(network)
		for i := 0; i < qty; i++ {
			component, err := assigner.Next(fsid, agnostic)
			if err != nil {
				return nil, err
			}
			paths = append(paths, agnostic.WithIndex(component))
		}
	}
	return paths, nil
}

func (p *Provider) recordCacheOutcome(removal cache.RemovalOutcome) {
	if p.metrics == nil {
		return
	}
	if removal.Kind == cache.RemovalEmpty {
		p.metrics.IncCacheMiss()
	} else {
		p.metrics.IncCacheHit()
	}
}
