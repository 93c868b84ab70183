package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen/natal-chart-service/internal/domain"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/telemetry"
	"github.com/jsamuelsen/natal-chart-service/internal/ports"
)

// ErrInitExhausted is wrapped in the NotInitializedError returned once every
// initialization attempt has failed.
var ErrInitExhausted = errors.New("initialization attempts exhausted")

// Readiness defaults.
const (
	DefaultInitAttempts = 10
	DefaultInitInterval = 500 * time.Millisecond
)

type readinessState int

const (
	statePending readinessState = iota
	stateReady
	stateFailed
)

// ReadinessConfig bounds the initialization polling.
type ReadinessConfig struct {
	Attempts int
	Interval time.Duration
	Logger   *slog.Logger

	// Metrics exports the gate state. Optional.
	Metrics *telemetry.ChartMetrics
}

// Readiness gates chart requests on the provider's one-time initialization.
//
// Ensure runs at most Attempts calls to Init, Interval apart. Concurrent
// callers share one in-flight attempt. Success is permanent. Exhausting the
// budget is terminal until Reset.
type Readiness struct {
	provider string
	init     ports.Initializer
	attempts int
	interval time.Duration
	logger   *slog.Logger
	metrics  *telemetry.ChartMetrics

	mu       sync.Mutex
	state    readinessState
	err      error
	inflight chan struct{}
}

// NewReadiness creates a gate for provider. A nil Initializer is ready immediately.
func NewReadiness(provider string, init ports.Initializer, cfg ReadinessConfig) *Readiness {
	r := &Readiness{
		provider: provider,
		init:     init,
		attempts: cfg.Attempts,
		interval: cfg.Interval,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
	}

	if r.attempts <= 0 {
		r.attempts = DefaultInitAttempts
	}

	if r.interval <= 0 {
		r.interval = DefaultInitInterval
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	if init == nil {
		r.state = stateReady
	}

	r.metrics.SetReady(r.state == stateReady)

	return r
}

// Ensure blocks until the provider is initialized, the budget is spent, or
// ctx is done.
func (r *Readiness) Ensure(ctx context.Context) error {
	for {
		r.mu.Lock()

		switch r.state {
		case stateReady:
			r.mu.Unlock()

			return nil
		case stateFailed:
			err := r.err
			r.mu.Unlock()

			return err
		case statePending:
		}

		if wait := r.inflight; wait != nil {
			r.mu.Unlock()

			select {
			case <-wait:
				continue
			case <-ctx.Done():
				return domain.NewNotInitializedError(r.provider, "initialization in progress", ctx.Err())
			}
		}

		done := make(chan struct{})
		r.inflight = done
		r.mu.Unlock()

		err := r.run(ctx)

		r.mu.Lock()
		r.inflight = nil
		close(done)
		r.mu.Unlock()

		return err
	}
}

// run performs the attempts. A cancelled ctx leaves the gate pending so a
// later caller can start over.
func (r *Readiness) run(ctx context.Context) error {
	var lastErr error

	for attempt := 1; attempt <= r.attempts; attempt++ {
		lastErr = r.init.Init(ctx)
		if lastErr == nil {
			r.mu.Lock()
			r.state = stateReady
			r.err = nil
			r.mu.Unlock()

			r.metrics.SetReady(true)
			r.logger.InfoContext(ctx, "ephemeris initialized",
				slog.String("provider", r.provider),
				slog.Int("attempt", attempt),
			)

			return nil
		}

		r.logger.WarnContext(ctx, "ephemeris initialization attempt failed",
			slog.String("provider", r.provider),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", r.attempts),
			slog.Any("error", lastErr),
		)

		if attempt == r.attempts {
			break
		}

		timer := time.NewTimer(r.interval)

		select {
		case <-ctx.Done():
			timer.Stop()

			return domain.NewNotInitializedError(r.provider, "initialization interrupted", ctx.Err())
		case <-timer.C:
		}
	}

	err := domain.NewNotInitializedError(r.provider, "",
		fmt.Errorf("%w after %d attempts: %w", ErrInitExhausted, r.attempts, lastErr))

	r.mu.Lock()
	r.state = stateFailed
	r.err = err
	r.mu.Unlock()

	r.metrics.SetReady(false)
	r.logger.ErrorContext(ctx, "ephemeris initialization gave up",
		slog.String("provider", r.provider),
		slog.Any("error", lastErr),
	)

	return err
}

// Start runs Ensure in the background. The returned channel receives its
// result and is then closed.
func (r *Readiness) Start(ctx context.Context) <-chan error {
	out := make(chan error, 1)

	go func() {
		defer close(out)
		out <- r.Ensure(ctx)
	}()

	return out
}

// Ready reports whether initialization succeeded.
func (r *Readiness) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state == stateReady
}

// Err returns the terminal error, if the budget was exhausted.
func (r *Readiness) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.err
}

// Require returns nil when ready, otherwise a NotInitializedError. It never blocks.
func (r *Readiness) Require() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case stateReady:
		return nil
	case stateFailed:
		return r.err
	default:
		return domain.NewNotInitializedError(r.provider, "initialization pending", nil)
	}
}

// Reset returns a failed gate to pending. It is a no-op while an attempt is
// in flight or after success.
func (r *Readiness) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == stateFailed && r.inflight == nil {
		r.state = statePending
		r.err = nil
	}
}

// Name implements ports.HealthChecker.
func (r *Readiness) Name() string {
	return "ephemeris"
}

// Check implements ports.HealthChecker.
func (r *Readiness) Check(_ context.Context) error {
	return r.Require()
}
