package clients

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/jsamuelsen/natal-chart-service/internal/platform/config"
)

// backoff is exponential with symmetric jitter: attempt n waits
// initial·multiplierⁿ, capped at ceiling, then moved by up to ±jitter of itself.
type backoff struct {
	initial    time.Duration
	ceiling    time.Duration
	multiplier float64
	jitter     float64
}

func newBackoff(cfg config.RetryConfig) backoff {
	return backoff{
		initial:    cfg.InitialInterval,
		ceiling:    cfg.MaxInterval,
		multiplier: cfg.Multiplier,
		jitter:     cfg.JitterFactor,
	}
}

func (b backoff) delay(attempt int) time.Duration {
	d := math.Min(
		float64(b.initial)*math.Pow(b.multiplier, float64(attempt)),
		float64(b.ceiling),
	)

	if b.jitter > 0 {
		d += d * b.jitter * (2*rand.Float64() - 1) //nolint:gosec // jitter needs no crypto randomness
	}

	return time.Duration(d)
}

// retrier sends one request up to attempts times. Transport timeouts,
// refused dials and 5xx answers are retried; everything else is final.
type retrier struct {
	attempts int
	backoff  backoff
	send     func(*http.Request) (*http.Response, error)
}

func (r retrier) do(ctx context.Context, req *http.Request, logger *slog.Logger) (*http.Response, error) {
	var lastErr error

	for attempt := range r.attempts {
		if attempt > 0 {
			if err := r.pause(ctx, attempt, logger); err != nil {
				return nil, err
			}
		}

		resp, err := r.send(req.WithContext(ctx))
		if err == nil && resp.StatusCode < http.StatusInternalServerError {
			return resp, nil
		}

		retryable := true
		if err != nil {
			retryable = isRetryableError(err)
		} else {
			_ = resp.Body.Close()
			err = &StatusError{StatusCode: resp.StatusCode}
		}

		logger.DebugContext(ctx, "attempt failed",
			slog.Int("attempt", attempt+1),
			slog.Bool("retryable", retryable),
			slog.Any("error", err),
		)

		lastErr = err
		if !retryable {
			break
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, lastErr)
}

func (r retrier) pause(ctx context.Context, attempt int, logger *slog.Logger) error {
	wait := r.backoff.delay(attempt)
	logger.DebugContext(ctx, "retrying request", slog.Int("attempt", attempt+1), slog.Duration("backoff", wait))

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
