// Package observability carries per-reaction logging context (run id, event,
// entry index) through context.Context so nested components log consistently.
package observability

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/staticfiles/internal/logfields"
)

// LogContext holds structured logging context information.
type LogContext struct {
	RunID string
	Event string
	Entry int // 1-based; zero means "not inside an entry"
}

type logContextKeyType string

const logContextKey logContextKeyType = "log-context"

// WithRunID adds a reaction run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	lc := extractLogContext(ctx)
	lc.RunID = runID
	return context.WithValue(ctx, logContextKey, lc)
}

// WithEvent adds the build event kind to the context.
func WithEvent(ctx context.Context, event string) context.Context {
	lc := extractLogContext(ctx)
	lc.Event = event
	return context.WithValue(ctx, logContextKey, lc)
}

// WithEntry marks the context as processing the configuration entry at index (0-based).
func WithEntry(ctx context.Context, index int) context.Context {
	lc := extractLogContext(ctx)
	lc.Entry = index + 1
	return context.WithValue(ctx, logContextKey, lc)
}

func extractLogContext(ctx context.Context) LogContext {
	if lc, ok := ctx.Value(logContextKey).(LogContext); ok {
		return lc
	}
	return LogContext{}
}

// GetContext returns the structured log context from the provided context.
func GetContext(ctx context.Context) LogContext {
	return extractLogContext(ctx)
}

func getLogAttrs(ctx context.Context) []slog.Attr {
	lc := extractLogContext(ctx)
	attrs := []slog.Attr{}
	if lc.RunID != "" {
		attrs = append(attrs, logfields.RunID(lc.RunID))
	}
	if lc.Event != "" {
		attrs = append(attrs, logfields.Event(lc.Event))
	}
	if lc.Entry > 0 {
		attrs = append(attrs, logfields.Entry(lc.Entry-1))
	}
	return attrs
}

// Logger returns base (or slog.Default) decorated with the context's attributes.
func Logger(ctx context.Context, base *slog.Logger) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}
	attrs := getLogAttrs(ctx)
	if len(attrs) == 0 {
		return base
	}
	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a)
	}
	return base.With(args...)
}

// DebugContext logs a debug message through the default logger with context information.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelDebug, msg, append(getLogAttrs(ctx), attrs...)...)
}
