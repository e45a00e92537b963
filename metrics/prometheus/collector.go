// Package prometheus exports engine metrics to Prometheus.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/graphattr"
)

var _ graphattr.MetricsCollector = (*Collector)(nil)

// Collector implements graphattr.MetricsCollector with Prometheus metrics.
type Collector struct {
	conversions      *prometheus.CounterVec
	evaluations      *prometheus.CounterVec
	evaluationTime   *prometheus.HistogramVec
	binPasses        *prometheus.CounterVec
	binElements      *prometheus.CounterVec
	binTime          *prometheus.HistogramVec
	snapshotTime     *prometheus.HistogramVec
	snapshotBytes    *prometheus.CounterVec
	snapshotFailures *prometheus.CounterVec
}

// New creates a Collector and registers its metrics with reg. A nil reg
// uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	const ns = "graphattr"

	return &Collector{
		conversions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "conversions_total",
			Help:      "Attribute values written, by type and result.",
		}, []string{"type", "result"}),
		evaluations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "evaluations_total",
			Help:      "Operations evaluated, by operation and result.",
		}, []string{"operation", "result"}),
		evaluationTime: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "evaluation_duration_seconds",
			Help:      "Time to resolve an operation.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		}, []string{"operation"}),
		binPasses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "bin_passes_total",
			Help:      "Bin passes computed, by bin shape.",
		}, []string{"bin"}),
		binElements: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "bin_elements_total",
			Help:      "Elements binned, by bin shape.",
		}, []string{"bin"}),
		binTime: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "bin_pass_duration_seconds",
			Help:      "Time to compute one bin pass.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"bin"}),
		snapshotTime: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "snapshot_duration_seconds",
			Help:      "Time to save or load a snapshot.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"op"}),
		snapshotBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "snapshot_bytes_total",
			Help:      "Column bytes saved or loaded.",
		}, []string{"op"}),
		snapshotFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "snapshot_failures_total",
			Help:      "Failed snapshot saves and loads.",
		}, []string{"op"}),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordConversion implements graphattr.MetricsCollector.
func (c *Collector) RecordConversion(typeName string, err error) {
	c.conversions.WithLabelValues(typeName, result(err)).Inc()
}

// RecordEvaluation implements graphattr.MetricsCollector.
func (c *Collector) RecordEvaluation(op string, d time.Duration, err error) {
	c.evaluations.WithLabelValues(op, result(err)).Inc()
	if err == nil {
		c.evaluationTime.WithLabelValues(op).Observe(d.Seconds())
	}
}

// RecordBinPass implements graphattr.MetricsCollector.
func (c *Collector) RecordBinPass(shape string, elements int, d time.Duration) {
	c.binPasses.WithLabelValues(shape).Inc()
	c.binElements.WithLabelValues(shape).Add(float64(elements))
	c.binTime.WithLabelValues(shape).Observe(d.Seconds())
}

// RecordSnapshot implements graphattr.MetricsCollector.
func (c *Collector) RecordSnapshot(op string, bytes int64, d time.Duration, err error) {
	if err != nil {
		c.snapshotFailures.WithLabelValues(op).Inc()
		return
	}
	c.snapshotTime.WithLabelValues(op).Observe(d.Seconds())
	c.snapshotBytes.WithLabelValues(op).Add(float64(bytes))
}
