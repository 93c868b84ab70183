//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/natal-chart-service/internal/adapters/catalog"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/clients"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/ephemeris"
	httpadapter "github.com/jsamuelsen/natal-chart-service/internal/adapters/http"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/natal-chart-service/internal/app"
	"github.com/jsamuelsen/natal-chart-service/internal/domain"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/config"
	"github.com/jsamuelsen/natal-chart-service/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// londonJSON is the HTTP form of londonRequest.
const londonJSON = `{"year":1990,"month":6,"day":15,"hour":14,"minute":30,"city":"London"}`

// londonRequest is 15 June 1990, 14:30 UTC in London.
func londonRequest(t *testing.T) app.ChartRequest {
	t.Helper()

	moment, err := domain.NewBirthMoment(1990, 6, 15, 14, 30, domain.PeriodNone)
	require.NoError(t, err)

	loc, err := domain.NewGeoLocation(51.5074, -0.1278)
	require.NoError(t, err)

	return app.ChartRequest{Moment: moment, Location: loc}
}

// fakeLongitudes are the ecliptic longitudes the fake Horizons server
// reports, keyed by Horizons target ID.
var fakeLongitudes = map[string]float64{
	"10":  84.25,  // Sun, Gemini
	"301": 201.5,  // Moon, Libra
	"199": 70.75,  // Mercury, Gemini
	"299": 40.0,   // Venus, Taurus
	"499": 355.5,  // Mars, Pisces
	"599": 95.125, // Jupiter, Cancer
	"699": 294.0,  // Saturn, Capricorn
	"799": 278.5,  // Uranus, Capricorn, retrograde
	"899": 283.25, // Neptune, Capricorn, retrograde
	"999": 225.0,  // Pluto, Scorpio, retrograde
}

var fakeTargets = map[domain.Body]string{
	domain.Sun:     "10",
	domain.Moon:    "301",
	domain.Mercury: "199",
	domain.Venus:   "299",
	domain.Mars:    "499",
	domain.Jupiter: "599",
	domain.Saturn:  "699",
	domain.Uranus:  "799",
	domain.Neptune: "899",
	domain.Pluto:   "999",
}

// fakeHorizons mimics the Horizons API closely enough for the provider:
// a probe without ephemeris and a two-epoch observer table per target.
type fakeHorizons struct {
	*httptest.Server

	ephemerisCalls atomic.Int32
	failStatus     atomic.Int32
	delay          atomic.Int64
	lastHeader     atomic.Value
}

func newFakeHorizons(t *testing.T) *fakeHorizons {
	t.Helper()

	f := &fakeHorizons{}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)

	return f
}

func (f *fakeHorizons) serve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	w.Header().Set("Content-Type", "application/json")

	if q.Get("MAKE_EPHEM") == "'NO'" {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"signature": map[string]string{"source": "NASA/JPL Horizons API", "version": "1.2"},
		})

		return
	}

	f.ephemerisCalls.Add(1)
	f.lastHeader.Store(r.Header.Clone())

	if d := time.Duration(f.delay.Load()); d > 0 {
		select {
		case <-time.After(d):
		case <-r.Context().Done():
			return
		}
	}

	if status := int(f.failStatus.Load()); status != 0 {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":"service is busy"}`))

		return
	}

	target := strings.Trim(q.Get("COMMAND"), "'")

	lon, ok := fakeLongitudes[target]
	if !ok {
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "no such object " + target})
		return
	}

	// Outer planets move backwards in the second epoch.
	step := 0.04
	if target == "799" || target == "899" || target == "999" {
		step = -0.002
	}

	table := fmt.Sprintf("$$SOE\n 1990-Jun-15 14:30:00.000, , , 1.0152, 0.1, %.7f, 0.0012,\n"+
		" 1990-Jun-15 15:30:00.000, , , 1.0153, 0.1, %.7f, 0.0013,\n$$EOE\n", lon, lon+step)

	_ = json.NewEncoder(w).Encode(map[string]any{
		"signature": map[string]string{"source": "NASA/JPL Horizons API", "version": "1.2"},
		"result":    table,
	})
}

// header returns the headers of the most recent ephemeris request.
func (f *fakeHorizons) header() http.Header {
	h, _ := f.lastHeader.Load().(http.Header)
	return h
}

func testClientConfig(baseURL string) *clients.Config {
	return &clients.Config{
		BaseURL:     baseURL,
		ServiceName: "jpl-horizons",
		Timeout:     2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     2,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     50 * time.Millisecond,
			Multiplier:      2,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
		Logger: discardLogger(),
	}
}

func newHorizonsProvider(t *testing.T, cfg *clients.Config, c ports.Cache) *acl.HorizonsProvider {
	t.Helper()

	client, err := clients.New(cfg)
	require.NoError(t, err)

	return acl.NewHorizonsProvider(acl.HorizonsConfig{
		Client:   client,
		Solver:   ephemeris.New(&ephemeris.Config{Logger: discardLogger()}),
		Cache:    c,
		CacheTTL: time.Hour,
		Logger:   discardLogger(),
	})
}

// stack is the service assembled the way cmd/service assembles it.
type stack struct {
	server    *httptest.Server
	readiness *app.Readiness
	charts    *app.ChartService
}

type stackOptions struct {
	provider    ports.EphemerisProvider
	initializer ports.Initializer
	rateLimit   float64
	batchMax    int
}

func newStack(t *testing.T, opts stackOptions) *stack {
	t.Helper()

	logger := discardLogger()

	if opts.provider == nil {
		analytic := ephemeris.New(&ephemeris.Config{Logger: logger})
		opts.provider, opts.initializer = analytic, analytic
	}

	registry := ports.NewHealthRegistry()

	readiness := app.NewReadiness(opts.provider.Name(), opts.initializer, app.ReadinessConfig{
		Attempts: 1,
		Logger:   logger,
	})
	require.NoError(t, registry.Register(readiness))

	if checker, ok := opts.provider.(ports.HealthChecker); ok {
		require.NoError(t, registry.Register(checker))
	}

	charts := app.NewChartService(opts.provider, readiness, &app.ChartServiceConfig{Logger: logger})

	cities, err := catalog.NewCities(nil)
	require.NoError(t, err)

	interpretations, err := catalog.NewInterpretations(catalog.InterpretationsConfig{Logger: logger})
	require.NoError(t, err)

	cfg := &config.Config{
		App: config.AppConfig{Name: "natal-chart-service"},
		API: config.APIConfig{
			RequestTimeout:  10 * time.Second,
			RateLimit:       opts.rateLimit,
			RateBurst:       max(1, int(opts.rateLimit)),
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
	}

	rc := httpadapter.NewRouterConfig(logger, cfg, handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "abc123", "now")))
	rc.ChartHandler = handlers.NewChartHandler(handlers.ChartHandlerConfig{
		Charts:          charts,
		Interpretations: app.NewInterpretationService(interpretations),
		Renderer:        app.NewWheelRenderer(app.DefaultWheelStyle(), nil),
		Catalog:         cities,
		BatchMax:        opts.batchMax,
		WheelWidth:      config.DefaultWheelSize,
		WheelHeight:     config.DefaultWheelSize,
	})
	rc.CatalogHandler = handlers.NewCatalogHandler(handlers.CatalogHandlerConfig{
		Catalog:      cities,
		Resolver:     interpretations,
		DefaultLimit: cfg.API.DefaultPageSize,
		MaxLimit:     cfg.API.MaxPageSize,
	})

	engine := gin.New()
	httpadapter.SetupRouter(engine, rc)

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	return &stack{server: server, readiness: readiness, charts: charts}
}

// start initializes the ephemeris and fails the test if it cannot.
func (s *stack) start(t *testing.T) *stack {
	t.Helper()

	require.NoError(t, s.readiness.Ensure(context.Background()))

	return s
}

// do sends one request without touching t, so it is safe off the test
// goroutine.
func (s *stack) do(method, path, body string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(context.Background(), method, s.server.URL+path, strings.NewReader(body))
	if err != nil {
		return 0, nil, err
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.server.Client().Do(req)
	if err != nil {
		return 0, nil, err
	}

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)

	return resp.StatusCode, raw, err
}

func (s *stack) post(t *testing.T, path, body string) (int, []byte) {
	t.Helper()

	status, raw, err := s.do(http.MethodPost, path, body)
	require.NoError(t, err)

	return status, raw
}

func (s *stack) get(t *testing.T, path string) (int, []byte) {
	t.Helper()

	status, raw, err := s.do(http.MethodGet, path, "")
	require.NoError(t, err)

	return status, raw
}
