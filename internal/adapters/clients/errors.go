// Package clients provides the resilient HTTP client used for remote
// ephemeris services.
package clients

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Transport failures. The acl package translates them to
// domain.ErrUnavailable; nothing above the adapters sees them.
var (
	ErrCircuitOpen        = errors.New("circuit breaker open")
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")

	// ErrRateLimited means the caller's context ended while queued on the
	// client-side limiter; the remote service never saw the request.
	ErrRateLimited = errors.New("rate limit wait aborted")
)

// StatusError is the final 5xx answer after retries.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// isRetryableError reports whether a transport error is worth another
// attempt. Cancellation and deadlines belong to the caller and never are.
func isRetryableError(err error) bool {
	switch {
	case err == nil,
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
