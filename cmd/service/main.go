// Package main is the entry point for the natal chart HTTP service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/natal-chart-service/internal/adapters/cache"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/catalog"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/clients"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/ephemeris"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/http"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/natal-chart-service/internal/app"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/config"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/logging"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/telemetry"
	"github.com/jsamuelsen/natal-chart-service/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is a local convenience; real deployments set the environment.
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logger.Warn("ignoring unreadable .env file", slog.Any("error", envErr))
	}

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("ephemeris", cfg.Ephemeris.Provider),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
		Ephemeris:    cfg.Ephemeris.Provider,
		Insecure:     cfg.Telemetry.Insecure,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	metrics, err := telemetry.NewChartMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("registering chart metrics: %w", err)
	}

	// 5. Ephemeris provider behind the readiness gate
	healthRegistry := ports.NewHealthRegistry()

	provider, initializer, err := newEphemeris(cfg, logger, metrics, healthRegistry)
	if err != nil {
		return err
	}

	readiness := app.NewReadiness(provider.Name(), initializer, app.ReadinessConfig{
		Attempts: cfg.Ephemeris.InitAttempts,
		Interval: cfg.Ephemeris.InitInterval,
		Logger:   logger,
		Metrics:  metrics,
	})

	if err := healthRegistry.Register(readiness); err != nil {
		return fmt.Errorf("registering readiness check: %w", err)
	}

	// 6. Application services
	chartCfg, err := app.NewChartServiceConfig(cfg.Chart, logger, metrics)
	if err != nil {
		return fmt.Errorf("invalid chart defaults: %w", err)
	}

	charts := app.NewChartService(provider, readiness, chartCfg)

	cities, err := catalog.NewCities(nil)
	if err != nil {
		return fmt.Errorf("loading cities: %w", err)
	}

	interpretations, err := catalog.NewInterpretations(catalog.InterpretationsConfig{
		OverridePath: cfg.Catalog.InterpretationsPath,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("loading interpretations: %w", err)
	}

	// 7. Handlers and router
	healthHandler := handlers.NewHealthHandler(healthRegistry, handlers.NewBuildInfo(Version, Commit, BuildTime).WithEphemeris(provider.Name()))

	routerCfg := http.NewRouterConfig(logger, cfg, healthHandler)
	routerCfg.ChartHandler = handlers.NewChartHandler(handlers.ChartHandlerConfig{
		Charts:          charts,
		Interpretations: app.NewInterpretationService(interpretations),
		Renderer:        app.NewWheelRenderer(app.DefaultWheelStyle(), metrics),
		Catalog:         cities,
		BatchMax:        cfg.Chart.BatchMax,
		WheelWidth:      cfg.Render.Width,
		WheelHeight:     cfg.Render.Height,
	})
	routerCfg.CatalogHandler = handlers.NewCatalogHandler(handlers.CatalogHandlerConfig{
		Catalog:      cities,
		Resolver:     interpretations,
		DefaultLimit: cfg.API.DefaultPageSize,
		MaxLimit:     cfg.API.MaxPageSize,
	})

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), routerCfg)

	// 8. Run until a signal arrives or a component fails
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(gctx)
	})

	g.Go(func() error {
		// A failed initialization leaves the service up; charts answer
		// 503 NOT_INITIALIZED and the readiness probe reports it.
		if err := <-readiness.Start(gctx); err != nil && gctx.Err() == nil {
			logger.Warn("ephemeris not available", slog.Any("error", err))
		}

		return nil
	})

	if cfg.Catalog.Watch && cfg.Catalog.InterpretationsPath != "" {
		g.Go(func() error {
			return interpretations.Watch(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("service stopped: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}

// newEphemeris builds the configured provider. The analytic provider always
// exists: it is the default and the Horizons provider's house solver.
func newEphemeris(
	cfg *config.Config,
	logger *slog.Logger,
	metrics *telemetry.ChartMetrics,
	registry ports.HealthRegistry,
) (ports.EphemerisProvider, ports.Initializer, error) {
	analytic := ephemeris.New(&ephemeris.Config{Logger: logger})

	if cfg.Ephemeris.Provider != config.ProviderHorizons {
		return analytic, analytic, nil
	}

	client, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Horizons.BaseURL,
		ServiceName: cfg.Services.Horizons.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		RateLimit:   cfg.Ephemeris.Horizons.RateLimit,
		RateBurst:   cfg.Ephemeris.Horizons.RateBurst,
		UserAgent:   cfg.App.Name + "/" + Version,
		Logger:      logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating horizons client: %w", err)
	}

	horizons := acl.NewHorizonsProvider(acl.HorizonsConfig{
		Client:   client,
		Solver:   analytic,
		Cache:    cache.NewMemory(cfg.Ephemeris.Horizons.CacheTTL, cfg.Ephemeris.Horizons.CacheCleanup),
		CacheTTL: cfg.Ephemeris.Horizons.CacheTTL,
		Metrics:  metrics,
		Logger:   logger,
	})

	if err := registry.Register(horizons); err != nil {
		return nil, nil, fmt.Errorf("registering horizons health check: %w", err)
	}

	return horizons, horizons, nil
}
