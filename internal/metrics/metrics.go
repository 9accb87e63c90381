// Package metrics provides the Prometheus metrics recorded by a compile run.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/KirkDiggler/feat-weaver/internal/errors"
)

const namespace = "featweaver"

// Collector holds all Prometheus metrics for one run.
type Collector struct {
	registry *prometheus.Registry

	// Read metrics
	PackagesRead    prometheus.Counter
	PackagesSkipped prometheus.Counter
	FilesSkipped    prometheus.Counter
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter

	// Merge metrics
	ModulesMerged prometheus.Gauge

	// Weave metrics
	Feats             prometheus.Counter
	FeatsUnsupported  prometheus.Counter
	SpellsGenerated   prometheus.Counter
	BoostsGenerated   prometheus.Counter
	CandidatesPruned  prometheus.Counter
	RunDuration       prometheus.Gauge
	LastRunSuccessful prometheus.Gauge
}

// New creates a collector registered on its own registry
func New() *Collector {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry creates a collector registered on reg
func NewWithRegistry(reg *prometheus.Registry) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		PackagesRead: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packages_read_total",
			Help:      "Total number of packages whose snapshots were loaded",
		}),
		PackagesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packages_skipped_total",
			Help:      "Total number of packages that could not be opened or read",
		}),
		FilesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_skipped_total",
			Help:      "Total number of package files skipped after a read error",
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Packages served from the snapshot cache",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Packages read from disk because no cached snapshot existed",
		}),

		ModulesMerged: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "modules_merged",
			Help:      "Number of modules in the computed load order",
		}),

		Feats: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feats_total",
			Help:      "Total number of feats woven",
		}),
		FeatsUnsupported: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feats_unsupported_total",
			Help:      "Feats registered without generated spells",
		}),
		SpellsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spells_generated_total",
			Help:      "Total number of spell entries generated",
		}),
		BoostsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "boosts_generated_total",
			Help:      "Total number of boost entries generated",
		}),
		CandidatesPruned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_pruned_total",
			Help:      "Candidates skipped because their increment cap was reached",
		}),
		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run",
		}),
		LastRunSuccessful: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_successful",
			Help:      "1 when the last run wrote its artifacts, 0 otherwise",
		}),
	}
}

// Gatherer exposes the registry the collector is registered on
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteTextfile writes every metric in the node-exporter textfile format
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return errors.Wrapf(err, "failed to write metrics to %s", path)
	}
	return nil
}
