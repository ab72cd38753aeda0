// Package prommetrics exports assetkit manager metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	m := assetkit.New(assetkit.WithMetricsCollector(prommetrics.New(reg)))
package prommetrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/assetkit"
)

// DefaultNamespace is the metric namespace used when none is configured.
const DefaultNamespace = "assetkit"

// Options configures a Collector.
type Options struct {
	Namespace string
	Subsystem string
	// Buckets are the load duration histogram buckets in seconds.
	Buckets []float64
}

// Collector implements assetkit.MetricsCollector with Prometheus metrics.
//
// Metrics:
//   - assetkit_loads_total: Physical loads by result (ok, error)
//   - assetkit_load_duration_seconds: Resolve and decode latency
//   - assetkit_cache_hits_total: Loads served from the cache
//   - assetkit_unloads_total: Unload calls by whether the name was known
//   - assetkit_unload_all_total: UnloadAll calls
//   - assetkit_disposed_total: Values disposed by UnloadAll
type Collector struct {
	loadsTotal     *prometheus.CounterVec
	loadDuration   prometheus.Histogram
	cacheHitsTotal prometheus.Counter
	unloadsTotal   *prometheus.CounterVec
	unloadAllTotal prometheus.Counter
	disposedTotal  prometheus.Counter
}

var _ assetkit.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics with registry.
func New(registry prometheus.Registerer, optFns ...func(*Options)) *Collector {
	opts := Options{
		Namespace: DefaultNamespace,
		Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	c := &Collector{
		loadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: opts.Namespace,
				Subsystem: opts.Subsystem,
				Name:      "loads_total",
				Help:      "Total number of physical asset loads",
			},
			[]string{"result"},
		),

		loadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: opts.Namespace,
				Subsystem: opts.Subsystem,
				Name:      "load_duration_seconds",
				Help:      "Time spent resolving and decoding assets",
				Buckets:   opts.Buckets,
			},
		),

		cacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: opts.Namespace,
				Subsystem: opts.Subsystem,
				Name:      "cache_hits_total",
				Help:      "Total number of loads served from the cache",
			},
		),

		unloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: opts.Namespace,
				Subsystem: opts.Subsystem,
				Name:      "unloads_total",
				Help:      "Total number of unload calls",
			},
			[]string{"removed"},
		),

		unloadAllTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: opts.Namespace,
				Subsystem: opts.Subsystem,
				Name:      "unload_all_total",
				Help:      "Total number of bulk unloads",
			},
		),

		disposedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: opts.Namespace,
				Subsystem: opts.Subsystem,
				Name:      "disposed_total",
				Help:      "Total number of values disposed by bulk unloads",
			},
		),
	}

	registry.MustRegister(
		c.loadsTotal,
		c.loadDuration,
		c.cacheHitsTotal,
		c.unloadsTotal,
		c.unloadAllTotal,
		c.disposedTotal,
	)

	return c
}

// RecordLoad implements assetkit.MetricsCollector.
func (c *Collector) RecordLoad(_ string, duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.loadsTotal.WithLabelValues(result).Inc()
	c.loadDuration.Observe(duration.Seconds())
}

// RecordCacheHit implements assetkit.MetricsCollector.
func (c *Collector) RecordCacheHit(string) {
	c.cacheHitsTotal.Inc()
}

// RecordUnload implements assetkit.MetricsCollector.
func (c *Collector) RecordUnload(_ string, removed bool) {
	c.unloadsTotal.WithLabelValues(strconv.FormatBool(removed)).Inc()
}

// RecordUnloadAll implements assetkit.MetricsCollector.
func (c *Collector) RecordUnloadAll(count int) {
	c.unloadAllTotal.Inc()
	c.disposedTotal.Add(float64(count))
}
