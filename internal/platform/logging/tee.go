package logging

import (
	"context"
	"errors"
	"log/slog"
)

// TeeHandler sends each record to every sink enabled for its level. The
// service uses it to write the console stream and the rotating JSON file
// from one logger.
type TeeHandler struct {
	sinks []slog.Handler
}

// NewTeeHandler returns a handler over sinks. Nil sinks are skipped.
func NewTeeHandler(sinks ...slog.Handler) *TeeHandler {
	kept := make([]slog.Handler, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}

	return &TeeHandler{sinks: kept}
}

// Enabled implements slog.Handler.
func (t *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range t.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle implements slog.Handler. A failing sink does not stop the others;
// all failures are returned joined.
func (t *TeeHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	var errs []error

	for _, s := range t.sinks {
		if !s.Enabled(ctx, r.Level) {
			continue
		}

		if err := s.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// WithAttrs implements slog.Handler.
func (t *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.each(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

// WithGroup implements slog.Handler.
func (t *TeeHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return t
	}

	return t.each(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}

func (t *TeeHandler) each(fn func(slog.Handler) slog.Handler) *TeeHandler {
	sinks := make([]slog.Handler, len(t.sinks))
	for i, s := range t.sinks {
		sinks[i] = fn(s)
	}

	return &TeeHandler{sinks: sinks}
}
