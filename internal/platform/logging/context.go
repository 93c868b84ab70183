package logging

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

var defaultLogger = slog.Default()

// FromContext returns the request-scoped logger, or the process default
// when ctx (possibly nil) carries none.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := lookup(ctx); ok {
		return logger
	}

	return defaultLogger
}

// FromContextOr returns the context logger, or fallback when ctx carries none.
func FromContextOr(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := lookup(ctx); ok {
		return logger
	}

	if fallback != nil {
		return fallback
	}

	return defaultLogger
}

func lookup(ctx context.Context) (*slog.Logger, bool) {
	if ctx == nil {
		return nil, false
	}

	logger, ok := ctx.Value(ctxKey{}).(*slog.Logger)

	return logger, ok && logger != nil
}

// WithContext returns ctx carrying logger.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithRequestID tags every later line logged through ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return withAttr(ctx, "request_id", id)
}

func WithTraceID(ctx context.Context, id string) context.Context {
	return withAttr(ctx, "trace_id", id)
}

func WithCorrelationID(ctx context.Context, id string) context.Context {
	return withAttr(ctx, "correlation_id", id)
}

// WithChartID scopes the lines of one chart computation.
func WithChartID(ctx context.Context, id string) context.Context {
	return withAttr(ctx, "chart_id", id)
}

func withAttr(ctx context.Context, key, value string) context.Context {
	return WithContext(ctx, FromContext(ctx).With(slog.String(key, value)))
}

// SetDefault installs logger as both this package's fallback and slog's.
func SetDefault(logger *slog.Logger) {
	defaultLogger = logger
	slog.SetDefault(logger)
}
