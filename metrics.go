package sphergo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    indexCounter      prometheus.Counter
//	    envelopeHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordEnvelope(duration time.Duration, ranges int, err error) {
//	    p.envelopeHistogram.Observe(duration.Seconds())
//	    // ... record error state, result size, etc.
//	}
type MetricsCollector interface {
	// RecordIndex is called after each point-to-cell lookup.
	RecordIndex(duration time.Duration)

	// RecordEnvelope is called after each envelope query. ranges is the
	// number of intervals in the result, err is nil if successful.
	RecordEnvelope(duration time.Duration, ranges int, err error)

	// RecordInterior is called after each interior query. ranges is the
	// number of intervals in the result, err is nil if successful.
	RecordInterior(duration time.Duration, ranges int, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIndex(time.Duration)                {}
func (NoopMetricsCollector) RecordEnvelope(time.Duration, int, error) {}
func (NoopMetricsCollector) RecordInterior(time.Duration, int, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	IndexCount         atomic.Int64
	IndexTotalNanos    atomic.Int64
	EnvelopeCount      atomic.Int64
	EnvelopeErrors     atomic.Int64
	EnvelopeRanges     atomic.Int64
	EnvelopeTotalNanos atomic.Int64
	InteriorCount      atomic.Int64
	InteriorErrors     atomic.Int64
	InteriorRanges     atomic.Int64
	InteriorTotalNanos atomic.Int64
}

// RecordIndex implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIndex(duration time.Duration) {
	b.IndexCount.Add(1)
	b.IndexTotalNanos.Add(duration.Nanoseconds())
}

// RecordEnvelope implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEnvelope(duration time.Duration, ranges int, err error) {
	b.EnvelopeCount.Add(1)
	b.EnvelopeRanges.Add(int64(ranges))
	b.EnvelopeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EnvelopeErrors.Add(1)
	}
}

// RecordInterior implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInterior(duration time.Duration, ranges int, err error) {
	b.InteriorCount.Add(1)
	b.InteriorRanges.Add(int64(ranges))
	b.InteriorTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InteriorErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		IndexCount:     b.IndexCount.Load(),
		IndexAvgNanos:  avgNanos(b.IndexTotalNanos.Load(), b.IndexCount.Load()),
		EnvelopeCount:  b.EnvelopeCount.Load(),
		EnvelopeErrors: b.EnvelopeErrors.Load(),
		EnvelopeRanges: b.EnvelopeRanges.Load(),
		InteriorCount:  b.InteriorCount.Load(),
		InteriorErrors: b.InteriorErrors.Load(),
		InteriorRanges: b.InteriorRanges.Load(),
	}
}

// BasicMetricsStats is a point-in-time snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	IndexCount     int64
	IndexAvgNanos  int64
	EnvelopeCount  int64
	EnvelopeErrors int64
	EnvelopeRanges int64
	InteriorCount  int64
	InteriorErrors int64
	InteriorRanges int64
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}
