package middleware

import (
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen/natal-chart-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/logging"
)

// DefaultClientIdle is how long a client's limiter is kept after its last
// request.
const DefaultClientIdle = 10 * time.Minute

// RateLimitConfig configures per-client request throttling.
type RateLimitConfig struct {
	// Rate is the sustained requests per second allowed per client.
	Rate float64

	// Burst is the number of requests a client may make at once.
	Burst int

	// Idle evicts a client's limiter after this long without requests.
	Idle time.Duration

	// KeyFunc identifies the client. Defaults to gin's ClientIP.
	KeyFunc func(*gin.Context) string
}

// RateLimit returns middleware that throttles each client with its own token
// bucket. Requests over the limit get 429 with a Retry-After header.
// A non-positive Rate disables throttling.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Rate <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	if cfg.Burst < 1 {
		cfg.Burst = 1
	}

	if cfg.Idle <= 0 {
		cfg.Idle = DefaultClientIdle
	}

	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	clients := gocache.New(cfg.Idle, 2*cfg.Idle)
	limit := rate.Limit(cfg.Rate)

	limiterFor := func(key string) *rate.Limiter {
		if v, ok := clients.Get(key); ok {
			l, _ := v.(*rate.Limiter)
			clients.SetDefault(key, l)

			return l
		}

		l := rate.NewLimiter(limit, cfg.Burst)
		if err := clients.Add(key, l, gocache.DefaultExpiration); err != nil {
			// Another request for the same client won the race.
			if v, ok := clients.Get(key); ok {
				l, _ = v.(*rate.Limiter)
			}
		}

		return l
	}

	return func(c *gin.Context) {
		key := cfg.KeyFunc(c)

		r := limiterFor(key).Reserve()
		if delay := r.Delay(); delay > 0 {
			r.Cancel()

			ctx := c.Request.Context()
			logging.FromContext(ctx).WarnContext(ctx, "rate limit exceeded",
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.String("client", key),
			)

			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
			dto.AbortWithErrorCode(c, dto.ErrorCodeRateLimited, "rate limit exceeded")

			return
		}

		c.Next()
	}
}
