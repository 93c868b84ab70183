package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/natal-chart-service/internal/platform/logging"
)

// Header names and gin.Context keys for the tracing IDs. A request ID names
// one HTTP exchange; a correlation ID follows a chart through every service
// that touches it, such as the Horizons proxy.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"

	ContextKeyRequestID     = "request_id"
	ContextKeyCorrelationID = "correlation_id"
)

// maxIDLength bounds caller-supplied IDs. Longer values are replaced.
const maxIDLength = 128

// tracingID describes one propagated ID.
type tracingID struct {
	header string
	key    string

	// fallback supplies the ID when the caller sent none.
	fallback func(c *gin.Context) string

	// attach stores the ID on the request context for loggers and
	// outgoing clients.
	attach func(ctx context.Context, id string) context.Context
}

var (
	requestIDHeader = tracingID{
		header:   HeaderRequestID,
		key:      ContextKeyRequestID,
		fallback: func(*gin.Context) string { return mintID() },
		attach:   func(ctx context.Context, id string) context.Context {
			return logging.WithRequestID(ContextWithRequestID(ctx, id), id)
		},
	}

	correlationIDHeader = tracingID{
		header: HeaderCorrelationID,
		key:    ContextKeyCorrelationID,
		// A chart request that opens a transaction reuses its request ID,
		// so a single value greps across both log fields.
		fallback: func(c *gin.Context) string {
			if id := GetRequestID(c); id != "" {
				return id
			}
			return mintID()
		},
		attach: func(ctx context.Context, id string) context.Context {
			return logging.WithCorrelationID(ContextWithCorrelationID(ctx, id), id)
		},
	}
)

// RequestID adopts a valid X-Request-ID or mints a UUIDv7, then echoes it in
// the response and exposes it through GetRequestID and RequestIDFromContext.
func RequestID() gin.HandlerFunc {
	return requestIDHeader.handler()
}

// CorrelationID adopts a valid X-Correlation-ID from upstream. Without one
// the request ID becomes the correlation ID when RequestID ran first.
func CorrelationID() gin.HandlerFunc {
	return correlationIDHeader.handler()
}

func (s tracingID) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(s.header)
		if !validID(id) {
			id = s.fallback(c)
		}

		c.Set(s.key, id)
		c.Header(s.header, id)
		c.Request = c.Request.WithContext(s.attach(c.Request.Context(), id))

		c.Next()
	}
}

// GetRequestID returns the request ID, or "" outside the middleware.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// MustGetRequestID is GetRequestID with "unknown" for a missing ID.
func MustGetRequestID(c *gin.Context) string {
	return orUnknown(GetRequestID(c))
}

// GetCorrelationID returns the correlation ID, or "".
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}

// MustGetCorrelationID is GetCorrelationID with "unknown" for a missing ID.
func MustGetCorrelationID(c *gin.Context) string {
	return orUnknown(GetCorrelationID(c))
}

func orUnknown(id string) string {
	if id == "" {
		return "unknown"
	}
	return id
}

// mintID prefers time-ordered UUIDs so IDs sort with the log stream.
func mintID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// validID accepts non-empty printable ASCII up to maxIDLength. IDs land in
// log lines and outgoing headers.
func validID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}

	for i := range len(id) {
		if id[i] < '!' || id[i] > '~' {
			return false
		}
	}

	return true
}
