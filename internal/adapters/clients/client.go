package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen/natal-chart-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/config"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/logging"
)

const instrumentationName = "github.com/jsamuelsen/natal-chart-service/internal/adapters/clients"

// defaultTimeout applies when Config.Timeout is unset.
const defaultTimeout = 30 * time.Second

// Config configures a Client.
type Config struct {
	BaseURL     string // e.g. "https://ssd.jpl.nasa.gov"
	ServiceName string // names the downstream in logs, spans and metrics

	// Timeout bounds one attempt. Retries and backoff can take longer.
	Timeout time.Duration

	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig // zero values take net/http defaults

	// RateLimit caps outgoing requests per second; zero disables the
	// limiter. RateBurst is raised to 1 when the limiter is on.
	RateLimit float64
	RateBurst int

	UserAgent string
	Logger    *slog.Logger
}

// Client calls one downstream service. Each request waits on the rate
// limiter, passes the circuit breaker, and is retried with backoff inside
// it; request and correlation IDs and the trace context travel along.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	userAgent   string
	cfg         *Config
	logger      *slog.Logger
	cb          *gobreaker.CircuitBreaker
	limiter     *rate.Limiter
	retry       retrier

	tracer   trace.Tracer
	duration metric.Float64Histogram
	total    metric.Int64Counter
}

// New builds a Client. A missing timeout or attempt count takes a default.
func New(cfg *Config) (*Client, error) {
	switch {
	case cfg == nil:
		return nil, errors.New("config is required")
	case cfg.ServiceName == "":
		return nil, errors.New("service name is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	cfg.Retry.MaxAttempts = max(cfg.Retry.MaxAttempts, 1)

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "clients.Client"), slog.String("downstream", cfg.ServiceName))

	meter := otel.Meter(instrumentationName)

	duration, err := meter.Float64Histogram("http.client.request.duration",
		metric.WithDescription("Duration of HTTP client requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	total, err := meter.Int64Counter("http.client.request.total",
		metric.WithDescription("Total number of HTTP client requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	c := &Client{
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        cfg.Transport.MaxIdleConns,
				MaxIdleConnsPerHost: cfg.Transport.MaxIdleConnsPerHost,
				IdleConnTimeout:     cfg.Transport.IdleConnTimeout,
			},
		},
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName: cfg.ServiceName,
		userAgent:   cfg.UserAgent,
		cfg:         cfg,
		logger:      logger,
		cb:          newBreaker(cfg.ServiceName, cfg.Circuit, logger),
		tracer:      otel.Tracer(instrumentationName),
		duration:    duration,
		total:       total,
	}

	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.RateBurst, 1))
	}

	c.retry = retrier{attempts: cfg.Retry.MaxAttempts, backoff: newBackoff(cfg.Retry), send: c.http.Do}

	return c, nil
}

// Get issues a GET for path below the base URL. query may be nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	target := c.buildURL(path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	return c.Do(ctx, req)
}

// Do sends req. Only bodiless requests are safe to retry. Responses below
// 500 are returned as they are; mapping 4xx is the caller's business.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := logging.FromContextOr(ctx, c.logger).With(
		slog.String("downstream", c.serviceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.record(ctx, req.Method, 0, start, "rate_limited")
			return nil, fmt.Errorf("%w: %w", ErrRateLimited, err)
		}
	}

	c.injectHeaders(ctx, req)

	ctx, span := c.tracer.Start(ctx, "HTTP "+req.Method+" "+c.serviceName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	out, err := c.cb.Execute(func() (any, error) {
		return c.retry.do(ctx, req, logger)
	})

	switch err = breakerError(err); {
	case errors.Is(err, ErrCircuitOpen):
		c.record(ctx, req.Method, 0, start, "circuit_open")
		span.SetStatus(codes.Error, err.Error())
		logger.WarnContext(ctx, "request blocked by circuit breaker")

		return nil, err

	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.record(ctx, req.Method, 0, start, "error")
		logger.ErrorContext(ctx, "request failed", slog.Duration("duration", time.Since(start)), slog.Any("error", err))

		return nil, err
	}

	resp := out.(*http.Response) //nolint:forcetypeassert // retrier returns *http.Response or an error

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, resp.Status)
	}

	c.record(ctx, req.Method, resp.StatusCode, start, fmt.Sprintf("%dxx", resp.StatusCode/100))
	logger.DebugContext(ctx, "request completed", slog.Int("status", resp.StatusCode), slog.Duration("duration", time.Since(start)))

	return resp, nil
}

func (c *Client) CircuitState() gobreaker.State {
	return c.cb.State()
}

func (c *Client) ServiceName() string {
	return c.serviceName
}

func (c *Client) injectHeaders(ctx context.Context, req *http.Request) {
	for header, id := range map[string]string{
		middleware.HeaderRequestID:     middleware.RequestIDFromContext(ctx),
		middleware.HeaderCorrelationID: middleware.CorrelationIDFromContext(ctx),
		"User-Agent":                   c.userAgent,
	} {
		if id != "" {
			req.Header.Set(header, id)
		}
	}
}

func (c *Client) buildURL(path string) string {
	return c.baseURL + "/" + strings.TrimPrefix(path, "/")
}

func (c *Client) record(ctx context.Context, method string, status int, start time.Time, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}
	if status > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", status))
	}

	set := metric.WithAttributes(attrs...)
	c.duration.Record(ctx, time.Since(start).Seconds(), set)
	c.total.Add(ctx, 1, set)
}
