package graphattr

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with graphattr-specific fields.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithAttribute tags the logger with an attribute id and name.
func (l *Logger) WithAttribute(id int, name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("attribute_id", id, "attribute", name),
	}
}

// WithPrefix tags the logger with a snapshot prefix.
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{
		Logger: l.Logger.With("prefix", prefix),
	}
}

// LogConversion logs a rejected attribute value. Successful conversions
// are too frequent to log.
func (l *Logger) LogConversion(ctx context.Context, attr, element int, err error) {
	if err == nil {
		return
	}
	l.DebugContext(ctx, "conversion rejected",
		"attribute_id", attr,
		"element", element,
		"error", err,
	)
}

// LogBinPass logs one bin computation over many elements.
func (l *Logger) LogBinPass(ctx context.Context, shape string, elements int, d time.Duration) {
	l.DebugContext(ctx, "bin pass completed",
		"bin", shape,
		"elements", elements,
		"duration", d,
	)
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(ctx context.Context, op, prefix string, attributes int, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot "+op+" failed",
			"prefix", prefix,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "snapshot "+op+" completed",
		"prefix", prefix,
		"attributes", attributes,
		"bytes", bytes,
	)
}
