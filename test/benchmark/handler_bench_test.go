package benchmark

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/natal-chart-service/internal/adapters/catalog"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/ephemeris"
	httpadapter "github.com/jsamuelsen/natal-chart-service/internal/adapters/http"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/surface"
	"github.com/jsamuelsen/natal-chart-service/internal/app"
	"github.com/jsamuelsen/natal-chart-service/internal/domain"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/config"
	"github.com/jsamuelsen/natal-chart-service/internal/ports"
)

const londonJSON = `{"year":1990,"month":6,"day":15,"hour":14,"minute":30,"city":"London"}`

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newChartService returns a ready chart service on the analytic ephemeris.
func newChartService(b *testing.B) *app.ChartService {
	b.Helper()

	provider := ephemeris.New(&ephemeris.Config{Logger: discardLogger()})
	gate := app.NewReadiness(provider.Name(), provider, app.ReadinessConfig{Attempts: 1, Logger: discardLogger()})

	if err := gate.Ensure(context.Background()); err != nil {
		b.Fatal(err)
	}

	return app.NewChartService(provider, gate, &app.ChartServiceConfig{Logger: discardLogger()})
}

func londonRequest(b *testing.B) app.ChartRequest {
	b.Helper()

	moment, err := domain.NewBirthMoment(1990, 6, 15, 14, 30, domain.PeriodNone)
	if err != nil {
		b.Fatal(err)
	}

	loc, err := domain.NewGeoLocation(51.5074, -0.1278)
	if err != nil {
		b.Fatal(err)
	}

	return app.ChartRequest{Moment: moment, Location: loc}
}

// newRouter wires the full middleware chain and chart routes.
func newRouter(b *testing.B) *gin.Engine {
	b.Helper()

	cities, err := catalog.NewCities(nil)
	if err != nil {
		b.Fatal(err)
	}

	interps, err := catalog.NewInterpretations(catalog.InterpretationsConfig{})
	if err != nil {
		b.Fatal(err)
	}

	rc := httpadapter.NewRouterConfig(discardLogger(), &config.Config{
		App: config.AppConfig{Name: "natal-chart-service"},
		API: config.APIConfig{RequestTimeout: 30 * time.Second},
	}, handlers.NewHealthHandler(ports.NewHealthRegistry(), handlers.NewBuildInfo("1.0.0", "abc123", "2026-01-01T00:00:00Z")))

	rc.ChartHandler = handlers.NewChartHandler(handlers.ChartHandlerConfig{
		Charts:          newChartService(b),
		Interpretations: app.NewInterpretationService(interps),
		Renderer:        app.NewWheelRenderer(app.DefaultWheelStyle(), nil),
		Catalog:         cities,
		BatchMax:        50,
	})
	rc.CatalogHandler = handlers.NewCatalogHandler(handlers.CatalogHandlerConfig{Catalog: cities, Resolver: interps})

	engine := gin.New()
	httpadapter.SetupRouter(engine, rc)

	return engine
}

func servePost(b *testing.B, engine *gin.Engine, path, body string) {
	b.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		b.Fatalf("%s: status %d: %s", path, w.Code, w.Body.String())
	}
}

// BenchmarkComputeChart measures a full chart on the analytic ephemeris:
// default bodies, Placidus houses and aspects.
func BenchmarkComputeChart(b *testing.B) {
	charts := newChartService(b)
	req := londonRequest(b)
	ctx := context.Background()

	b.ReportAllocs()

	for b.Loop() {
		if _, err := charts.ComputeChart(ctx, req); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkComputeChart_HouseSystems(b *testing.B) {
	charts := newChartService(b)
	ctx := context.Background()

	for _, system := range []domain.HouseSystemCode{
		domain.HousePlacidus,
		domain.HousePorphyry,
		domain.HouseEqual,
		domain.HouseWholeSign,
	} {
		b.Run(system.String(), func(b *testing.B) {
			req := londonRequest(b)
			req.HouseSystem = system

			b.ReportAllocs()

			for b.Loop() {
				if _, err := charts.ComputeChart(ctx, req); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkComputeBatch(b *testing.B) {
	charts := newChartService(b)
	ctx := context.Background()

	reqs := make([]app.ChartRequest, 16)
	for i := range reqs {
		reqs[i] = londonRequest(b)
	}

	b.ReportAllocs()

	for b.Loop() {
		for _, r := range charts.ComputeBatch(ctx, reqs) {
			if r.Err != nil {
				b.Fatal(r.Err)
			}
		}
	}
}

// BenchmarkRenderWheel measures drawing a computed chart onto an SVG surface.
func BenchmarkRenderWheel(b *testing.B) {
	chart, err := newChartService(b).ComputeChart(context.Background(), londonRequest(b))
	if err != nil {
		b.Fatal(err)
	}

	renderer := app.NewWheelRenderer(app.DefaultWheelStyle(), nil)

	b.ReportAllocs()

	for b.Loop() {
		svg := surface.NewSVG(600, 600)
		if err := renderer.Render(svg, chart); err != nil {
			b.Fatal(err)
		}

		if _, err := svg.WriteTo(io.Discard); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkChartEndpoint measures POST /api/v1/charts through the middleware chain.
func BenchmarkChartEndpoint(b *testing.B) {
	engine := newRouter(b)

	b.ReportAllocs()

	for b.Loop() {
		servePost(b, engine, "/api/v1/charts", londonJSON)
	}
}

func BenchmarkChartEndpoint_Interpreted(b *testing.B) {
	engine := newRouter(b)

	b.ReportAllocs()

	for b.Loop() {
		servePost(b, engine, "/api/v1/charts?interpret=true", londonJSON)
	}
}

func BenchmarkWheelEndpoint(b *testing.B) {
	engine := newRouter(b)

	b.ReportAllocs()

	for b.Loop() {
		servePost(b, engine, "/api/v1/charts/wheel?legend=true", londonJSON)
	}
}

func BenchmarkBatchEndpoint(b *testing.B) {
	engine := newRouter(b)

	entries := make([]string, 10)
	for i := range entries {
		entries[i] = londonJSON
	}

	body := `{"charts":[` + strings.Join(entries, ",") + `]}`

	b.ReportAllocs()

	for b.Loop() {
		servePost(b, engine, "/api/v1/charts/batch", body)
	}
}

// BenchmarkLivenessEndpoint is the floor: the middleware chain around a
// handler that does no work.
func BenchmarkLivenessEndpoint(b *testing.B) {
	engine := newRouter(b)
	req := httptest.NewRequest(http.MethodGet, "/-/live", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		engine.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func BenchmarkListLocations(b *testing.B) {
	engine := newRouter(b)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/locations?region=Europe&limit=20", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		engine.ServeHTTP(httptest.NewRecorder(), req)
	}
}
