//go:build integration

package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/natal-chart-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/natal-chart-service/internal/domain"
)

// TestHorizonsClient_RetryRecovers_Integration verifies a transient Horizons
// failure is retried and the position still arrives.
func TestHorizonsClient_RetryRecovers_Integration(t *testing.T) {
	fake := newFakeHorizons(t)

	var failures atomic.Int32

	failures.Store(1)

	flaky := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failures.Add(-1) >= 0 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		fake.Config.Handler.ServeHTTP(w, r)
	}))
	t.Cleanup(flaky.Close)

	provider := newHorizonsProvider(t, testClientConfig(flaky.URL), nil)

	pos, err := provider.BodyPosition(context.Background(), 2448058.104166667, domain.Mars, 0)

	require.NoError(t, err)
	assert.InDelta(t, 355.5, pos.Longitude, 1e-6)
	assert.Zero(t, pos.LongitudeSpeed, "speed is only derived when asked for")
}

// TestHorizonsClient_BadQuery_Integration verifies a 200 response that
// carries a Horizons error message is reported as unavailable.
func TestHorizonsClient_BadQuery_Integration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"signature":{"version":"1.2"},"error":"Cannot interpret date"}`))
	}))
	t.Cleanup(server.Close)

	provider := newHorizonsProvider(t, testClientConfig(server.URL), nil)

	_, err := provider.BodyPosition(context.Background(), 2448058.1, domain.Sun, 0)

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.Contains(t, err.Error(), "Cannot interpret date")
}

// TestHorizonsClient_RateLimit_Integration verifies outgoing requests are
// paced by the client-side limiter.
func TestHorizonsClient_RateLimit_Integration(t *testing.T) {
	fake := newFakeHorizons(t)

	cfg := testClientConfig(fake.URL)
	cfg.RateLimit = 20
	cfg.RateBurst = 1

	provider := newHorizonsProvider(t, cfg, nil)
	ctx := context.Background()

	start := time.Now()

	for _, body := range []domain.Body{domain.Sun, domain.Moon, domain.Mars, domain.Venus} {
		_, err := provider.BodyPosition(ctx, 2448058.1, body, 0)
		require.NoError(t, err)
	}

	// One request from the burst, then three spaced 50ms apart.
	assert.GreaterOrEqual(t, time.Since(start), 140*time.Millisecond)
	assert.Equal(t, int32(4), fake.ephemerisCalls.Load())
}

// TestHorizonsClient_RateLimitCancelled_Integration verifies a caller that
// gives up while waiting for the limiter gets an unavailable error.
func TestHorizonsClient_RateLimitCancelled_Integration(t *testing.T) {
	fake := newFakeHorizons(t)

	cfg := testClientConfig(fake.URL)
	cfg.RateLimit = 0.01
	cfg.RateBurst = 1

	provider := newHorizonsProvider(t, cfg, nil)

	_, err := provider.BodyPosition(context.Background(), 2448058.1, domain.Sun, 0)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = provider.BodyPosition(ctx, 2448058.1, domain.Moon, 0)

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err), "got %v", err)
	assert.Equal(t, int32(1), fake.ephemerisCalls.Load())
}

// TestHorizonsClient_HeaderPropagation_Integration verifies request and
// correlation IDs from an incoming API call reach Horizons.
func TestHorizonsClient_HeaderPropagation_Integration(t *testing.T) {
	fake := newFakeHorizons(t)

	cfg := testClientConfig(fake.URL)
	cfg.UserAgent = "natal-chart-service/test"

	provider := newHorizonsProvider(t, cfg, nil)
	s := newStack(t, stackOptions{provider: provider, initializer: provider}).start(t)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost,
		s.server.URL+"/api/v1/charts/bodies/sun", strings.NewReader(londonJSON))
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderRequestID, "req-integration-123")
	req.Header.Set(middleware.HeaderCorrelationID, "corr-integration-456")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := fake.header()
	require.NotNil(t, got)
	assert.Equal(t, "req-integration-123", got.Get(middleware.HeaderRequestID))
	assert.Equal(t, "corr-integration-456", got.Get(middleware.HeaderCorrelationID))
	assert.Equal(t, "natal-chart-service/test", got.Get("User-Agent"))
}

// TestHorizonsClient_ContextCancellation_Integration verifies a slow
// Horizons response is abandoned when the caller's context ends.
func TestHorizonsClient_ContextCancellation_Integration(t *testing.T) {
	fake := newFakeHorizons(t)
	fake.delay.Store(int64(5 * time.Second))

	cfg := testClientConfig(fake.URL)
	cfg.Timeout = 10 * time.Second

	provider := newHorizonsProvider(t, cfg, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := provider.BodyPosition(ctx, 2448058.1, domain.Sun, 0)

	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second, "cancellation should be prompt")
}
