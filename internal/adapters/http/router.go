package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/natal-chart-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/config"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/telemetry"
)

// DefaultRequestTimeout applies when the configuration sets none.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig wires handlers and API policy into SetupRouter. Nil handlers
// leave their routes unregistered.
type RouterConfig struct {
	Logger      *slog.Logger
	ServiceName string // labels traces and HTTP metrics

	HealthHandler  *handlers.HealthHandler
	ChartHandler   *handlers.ChartHandler
	CatalogHandler *handlers.CatalogHandler

	// Timeout is the deadline of every /api/v1 request.
	Timeout time.Duration

	// RateLimit throttles /api/v1 per client. A zero Rate disables it.
	RateLimit middleware.RateLimitConfig
}

// NewRouterConfig derives the API policy from cfg. Chart and catalog
// handlers are left for the caller.
func NewRouterConfig(logger *slog.Logger, cfg *config.Config, healthHandler *handlers.HealthHandler) RouterConfig {
	timeout := cfg.API.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return RouterConfig{
		Logger:        logger,
		ServiceName:   cfg.App.Name,
		HealthHandler: healthHandler,
		Timeout:       timeout,
		RateLimit: middleware.RateLimitConfig{
			Rate:  cfg.API.RateLimit,
			Burst: cfg.API.RateBurst,
		},
	}
}

// SetupRouter mounts the probes under /-/ and the chart API under /api/v1.
//
// Every request passes recovery, then the request and correlation IDs,
// tracing and metrics, then the access log. Only /api/v1 runs under the
// request timeout and the per-client rate limit, so probes keep answering
// while the API is saturated.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.Logging(cfg.Logger))

	engine.NoRoute(func(c *gin.Context) {
		dto.AbortWithErrorCode(c, dto.ErrorCodeNotFound, "no route for "+c.Request.Method+" "+c.Request.URL.Path)
	})

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	api := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		api.Use(middleware.Timeout(cfg.Timeout))
	}
	api.Use(middleware.RateLimit(cfg.RateLimit))

	if cfg.ChartHandler != nil {
		cfg.ChartHandler.RegisterChartRoutes(api)
	}

	if cfg.CatalogHandler != nil {
		cfg.CatalogHandler.RegisterCatalogRoutes(api)
	}
}

// SetupMinimalRouter serves only the probes, for processes that expose
// health without the chart API.
func SetupMinimalRouter(engine *gin.Engine, logger *slog.Logger, healthHandler *handlers.HealthHandler) {
	engine.Use(middleware.Recovery(logger), middleware.RequestID())

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}
