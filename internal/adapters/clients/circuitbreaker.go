package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker"

	"github.com/jsamuelsen/natal-chart-service/internal/platform/config"
)

// newBreaker builds the circuit breaker guarding one downstream service.
//
// State machine:
//
//	CLOSED ──(MaxFailures consecutive failures)──► OPEN
//	   ▲                                            │
//	   │                                         Timeout
//	   │                                            ▼
//	   └──(HalfOpenLimit successes)────────── HALF-OPEN ──(failure)──► OPEN
//
// Caller cancellation is not held against the downstream service.
func newBreaker(name string, cfg config.CircuitBreakerConfig, logger *slog.Logger) *gobreaker.CircuitBreaker {
	maxFailures := uint32(max(cfg.MaxFailures, 1))

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: uint32(max(cfg.HalfOpenLimit, 1)),
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
}

// breakerError translates gobreaker rejections into ErrCircuitOpen and
// passes every other error through.
func breakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	}

	return err
}
