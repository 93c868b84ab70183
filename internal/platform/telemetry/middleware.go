package telemetry

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/natal-chart-service/internal/platform/logging"
)

const instrumentationName = "github.com/jsamuelsen/natal-chart-service/telemetry"

// TraceIDHeader carries the server span's trace ID back to the caller, so a
// failed chart can be found in the tracing backend.
const TraceIDHeader = "X-Trace-ID"

// HTTPMetrics are the OTel HTTP server instruments.
type HTTPMetrics struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
	inFlight metric.Int64UpDownCounter
}

// NewHTTPMetrics creates the instruments on meter.
func NewHTTPMetrics(meter metric.Meter) (*HTTPMetrics, error) {
	duration, durErr := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	total, totalErr := meter.Int64Counter("http.server.request.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	inFlight, inFlightErr := meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)

	if err := errors.Join(durErr, totalErr, inFlightErr); err != nil {
		return nil, err
	}

	return &HTTPMetrics{duration: duration, total: total, inFlight: inFlight}, nil
}

// Middleware returns otelgin's server span handler followed by one that
// records HTTP metrics, echoes the trace ID and tags the request logger
// with it. Instrument errors are reported to otel and only disable metrics.
func Middleware(serviceName string) gin.HandlersChain {
	metrics, err := NewHTTPMetrics(otel.Meter(instrumentationName))
	if err != nil {
		otel.Handle(err)
	}

	return gin.HandlersChain{otelgin.Middleware(serviceName), metrics.handler()}
}

func (m *HTTPMetrics) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			traceID := sc.TraceID().String()
			c.Header(TraceIDHeader, traceID)
			c.Request = c.Request.WithContext(logging.WithTraceID(c.Request.Context(), traceID))
		}

		if m == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		labels := []attribute.KeyValue{
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", c.FullPath()),
		}

		m.inFlight.Add(ctx, 1, metric.WithAttributes(labels...))
		defer m.inFlight.Add(ctx, -1, metric.WithAttributes(labels...))

		c.Next()

		done := metric.WithAttributes(append(labels, attribute.Int("http.status_code", c.Writer.Status()))...)
		m.duration.Record(ctx, time.Since(start).Seconds(), done)
		m.total.Add(ctx, 1, done)
	}
}
