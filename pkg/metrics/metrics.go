// Copyright 2025 Certen Protocol
//
// Package metrics exposes Prometheus counters for the cache, provider, and
// signing subsystems, in the style of the teacher's declared (if unused)
// prometheus/client_golang dependency.

package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder wraps the Prometheus collectors the core increments during a
// Provider or Collector run. The zero value is not usable; construct via
// New or NewWithRegisterer.
type Recorder struct {
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	instancesDerived    prometheus.Counter
	signaturesCollected prometheus.Counter
	factorsNeglected    prometheus.Counter
}

// New creates a Recorder and registers its collectors with the default
// Prometheus registry.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates a Recorder registered against reg, for callers
// (tests, multiple Provider instances in one process) that need an
// isolated registry.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "walletmfa",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Factor instance cache removals that found at least one instance.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "walletmfa",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Factor instance cache removals that found nothing.",
		}),
		instancesDerived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "walletmfa",
			Subsystem: "provider",
			Name:      "instances_derived_total",
			Help:      "Factor instances produced by the derivation interactor.",
		}),
		signaturesCollected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "walletmfa",
			Subsystem: "signing",
			Name:      "signatures_collected_total",
			Help:      "Signatures accepted by the Signatures Collector.",
		}),
		factorsNeglected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "walletmfa",
			Subsystem: "signing",
			Name:      "factors_neglected_total",
			Help:      "Factor sources neglected (failed or skipped) during signing.",
		}),
	}
	reg.MustRegister(r.cacheHits, r.cacheMisses, r.instancesDerived, r.signaturesCollected, r.factorsNeglected)
	return r
}

// IncCacheHit records a cache removal that found at least one instance.
func (r *Recorder) IncCacheHit() { r.cacheHits.Inc() }

// IncCacheMiss records a cache removal that found nothing.
func (r *Recorder) IncCacheMiss() { r.cacheMisses.Inc() }

// AddInstancesDerived records n freshly derived factor instances.
func (r *Recorder) AddInstancesDerived(n int) { r.instancesDerived.Add(float64(n)) }

// AddSignaturesCollected records n signatures accepted by the collector.
func (r *Recorder) AddSignaturesCollected(n int) { r.signaturesCollected.Add(float64(n)) }

// IncFactorNeglected records one neglected factor source.
func (r *Recorder) IncFactorNeglected() { r.factorsNeglected.Inc() }
