package graphattr

import (
	"log/slog"

	"github.com/hupe1980/graphattr/attribute/temporal"
	"github.com/hupe1980/graphattr/codec"
	"github.com/hupe1980/graphattr/operator"
	"github.com/hupe1980/graphattr/persistence"
	"github.com/hupe1980/graphattr/resource"
)

type options struct {
	operators        *operator.Operators
	mode             temporal.Mode
	workers          int
	maxColumnLength  int
	codec            codec.Codec
	compression      persistence.Compression
	resources        *resource.Config
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures an Engine.
type Option func(*options)

// WithOperators replaces the process-wide operator set. Use it to add
// operations without registering them globally.
func WithOperators(ops *operator.Operators) Option {
	return func(o *options) {
		o.operators = ops
	}
}

// WithTemporalMode selects how datetime and date text is validated.
// The default is temporal.Lenient.
func WithTemporalMode(m temporal.Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithWorkers bounds the goroutines used for one bin pass.
// 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMaxColumnLength bounds the slots of each column restored by Open.
// 0 keeps attribute.DefaultMaxLength.
func WithMaxColumnLength(n int) Option {
	return func(o *options) {
		o.maxColumnLength = n
	}
}

// WithCodec configures the codec used for snapshot manifests.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression selects the column compression of saved snapshots.
func WithCompression(c persistence.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithResourceLimits bounds snapshot transfers.
//
// Example:
//
//	eng := graphattr.New(graphattr.WithResourceLimits(resource.Config{
//	    MaxWorkers:         4,
//	    IOLimitBytesPerSec: 64 << 20,
//	}))
func WithResourceLimits(cfg resource.Config) Option {
	return func(o *options) {
		o.resources = &cfg
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &graphattr.BasicMetricsCollector{}
//	eng := graphattr.New(graphattr.WithMetricsCollector(metrics))
//	// ... use eng ...
//	stats := metrics.GetStats()
//	fmt.Printf("conversions: %d, rejected: %d\n", stats.Conversions, stats.ConversionErrors)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		mode:             temporal.Lenient,
		codec:            codec.Default,
		compression:      persistence.CompressionZstd,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.operators == nil {
		o.operators = operator.Default()
	}
	return o
}
