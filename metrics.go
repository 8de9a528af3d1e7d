package pixelclust

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems;
// PrometheusCollector is a ready-made implementation.
type MetricsCollector interface {
	// RecordRun is called after each clustering run.
	// algorithm is the configured algorithm kind, clusters is 0 on failure.
	RecordRun(algorithm string, points, clusters int, duration time.Duration, err error)

	// RecordValidation is called after each validation index computation.
	RecordValidation(index string, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(string, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordValidation(string, time.Duration)           {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount             atomic.Int64
	RunErrors            atomic.Int64
	RunTotalNanos        atomic.Int64
	PointsClustered      atomic.Int64
	LastClusterCount     atomic.Int64
	ValidationCount      atomic.Int64
	ValidationTotalNanos atomic.Int64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_ string, points, clusters int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	b.PointsClustered.Add(int64(points))
	b.LastClusterCount.Store(int64(clusters))
}

// RecordValidation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordValidation(_ string, duration time.Duration) {
	b.ValidationCount.Add(1)
	b.ValidationTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:           b.RunCount.Load(),
		RunErrors:          b.RunErrors.Load(),
		RunAvgNanos:        avg(b.RunTotalNanos.Load(), b.RunCount.Load()),
		PointsClustered:    b.PointsClustered.Load(),
		LastClusterCount:   b.LastClusterCount.Load(),
		ValidationCount:    b.ValidationCount.Load(),
		ValidationAvgNanos: avg(b.ValidationTotalNanos.Load(), b.ValidationCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount           int64
	RunErrors          int64
	RunAvgNanos        int64
	PointsClustered    int64
	LastClusterCount   int64
	ValidationCount    int64
	ValidationAvgNanos int64
}
