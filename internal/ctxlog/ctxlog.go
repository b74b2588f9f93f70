// Package ctxlog carries a run-scoped slog.Logger through context.Context so
// that the loader, prompter and exporter log with the same attributes.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is an unexported type to prevent collisions with context keys from other packages.
type key struct{}

// loggerKey is the key for the slog.Logger in a context.Context.
var loggerKey = key{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// With returns a context whose logger has the given attributes appended.
func With(ctx context.Context, args ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(args...))
}

// FromContext extracts the slog.Logger from a context. If no logger is
// found, it returns the default global logger.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
