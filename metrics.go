package graphattr

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives operational metrics from an Engine.
// Implementations must be safe for concurrent use.
//
// The metrics/prometheus package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordConversion is called after each value written through the
	// engine. err is nil if the value was accepted.
	RecordConversion(typeName string, err error)

	// RecordEvaluation is called after each operation evaluated through
	// the engine.
	RecordEvaluation(op string, duration time.Duration, err error)

	// RecordBinPass is called after bins were computed for elements.
	RecordBinPass(shape string, elements int, duration time.Duration)

	// RecordSnapshot is called after a snapshot save or load. op is
	// "save" or "load".
	RecordSnapshot(op string, bytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordConversion(string, error)                     {}
func (NoopMetricsCollector) RecordEvaluation(string, time.Duration, error)      {}
func (NoopMetricsCollector) RecordBinPass(string, int, time.Duration)           {}
func (NoopMetricsCollector) RecordSnapshot(string, int64, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	Conversions        atomic.Int64
	ConversionErrors   atomic.Int64
	Evaluations        atomic.Int64
	EvaluationErrors   atomic.Int64
	BinPasses          atomic.Int64
	BinElements        atomic.Int64
	BinTotalNanos      atomic.Int64
	SnapshotSaves      atomic.Int64
	SnapshotLoads      atomic.Int64
	SnapshotErrors     atomic.Int64
	SnapshotBytes      atomic.Int64
	SnapshotTotalNanos atomic.Int64
}

// RecordConversion implements MetricsCollector.
func (b *BasicMetricsCollector) RecordConversion(_ string, err error) {
	b.Conversions.Add(1)
	if err != nil {
		b.ConversionErrors.Add(1)
	}
}

// RecordEvaluation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEvaluation(_ string, _ time.Duration, err error) {
	b.Evaluations.Add(1)
	if err != nil {
		b.EvaluationErrors.Add(1)
	}
}

// RecordBinPass implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBinPass(_ string, elements int, duration time.Duration) {
	b.BinPasses.Add(1)
	b.BinElements.Add(int64(elements))
	b.BinTotalNanos.Add(duration.Nanoseconds())
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(op string, bytes int64, duration time.Duration, err error) {
	if op == "load" {
		b.SnapshotLoads.Add(1)
	} else {
		b.SnapshotSaves.Add(1)
	}
	if err != nil {
		b.SnapshotErrors.Add(1)
		return
	}
	b.SnapshotBytes.Add(bytes)
	b.SnapshotTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		Conversions:      b.Conversions.Load(),
		ConversionErrors: b.ConversionErrors.Load(),
		Evaluations:      b.Evaluations.Load(),
		EvaluationErrors: b.EvaluationErrors.Load(),
		BinPasses:        b.BinPasses.Load(),
		BinElements:      b.BinElements.Load(),
		BinAvgNanos:      avg(b.BinTotalNanos.Load(), b.BinPasses.Load()),
		SnapshotSaves:    b.SnapshotSaves.Load(),
		SnapshotLoads:    b.SnapshotLoads.Load(),
		SnapshotErrors:   b.SnapshotErrors.Load(),
		SnapshotBytes:    b.SnapshotBytes.Load(),
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
	Conversions      int64
	ConversionErrors int64
	Evaluations      int64
	EvaluationErrors int64
	BinPasses        int64
	BinElements      int64
	BinAvgNanos      int64
	SnapshotSaves    int64
	SnapshotLoads    int64
	SnapshotErrors   int64
	SnapshotBytes    int64
}
