package assetkit

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see package prommetrics).
type MetricsCollector interface {
	// RecordLoad is called after each physical load (resolve and decode).
	// duration is the total time taken, err is nil if successful.
	RecordLoad(name string, duration time.Duration, err error)

	// RecordCacheHit is called when a load is served from the cache.
	RecordCacheHit(name string)

	// RecordUnload is called after each Unload. removed reports whether the
	// name was known to the manager.
	RecordUnload(name string, removed bool)

	// RecordUnloadAll is called after each UnloadAll with the number of
	// disposed values.
	RecordUnloadAll(count int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(string, time.Duration, error) {}
func (NoopMetricsCollector) RecordCacheHit(string)                   {}
func (NoopMetricsCollector) RecordUnload(string, bool)               {}
func (NoopMetricsCollector) RecordUnloadAll(int)                     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount      atomic.Int64
	LoadErrors     atomic.Int64
	LoadTotalNanos atomic.Int64
	CacheHits      atomic.Int64
	UnloadCount    atomic.Int64
	UnloadMisses   atomic.Int64
	UnloadAllCount atomic.Int64
	DisposedTotal  atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(_ string, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordCacheHit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheHit(string) {
	b.CacheHits.Add(1)
}

// RecordUnload implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUnload(_ string, removed bool) {
	b.UnloadCount.Add(1)
	if !removed {
		b.UnloadMisses.Add(1)
	}
}

// RecordUnloadAll implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUnloadAll(count int) {
	b.UnloadAllCount.Add(1)
	b.DisposedTotal.Add(int64(count))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:      b.LoadCount.Load(),
		LoadErrors:     b.LoadErrors.Load(),
		LoadAvgNanos:   b.getAvgLoadNanos(),
		CacheHits:      b.CacheHits.Load(),
		UnloadCount:    b.UnloadCount.Load(),
		UnloadMisses:   b.UnloadMisses.Load(),
		UnloadAllCount: b.UnloadAllCount.Load(),
		DisposedTotal:  b.DisposedTotal.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgLoadNanos() int64 {
	count := b.LoadCount.Load()
	if count == 0 {
		return 0
	}
	return b.LoadTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount      int64
	LoadErrors     int64
	LoadAvgNanos   int64
	CacheHits      int64
	UnloadCount    int64
	UnloadMisses   int64
	UnloadAllCount int64
	DisposedTotal  int64
}
