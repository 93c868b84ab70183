package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/natal-chart-service/internal/adapters/catalog"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/ephemeris"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/natal-chart-service/internal/app"
	"github.com/jsamuelsen/natal-chart-service/internal/domain"
	"github.com/jsamuelsen/natal-chart-service/internal/mocks"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/logging"
	"github.com/jsamuelsen/natal-chart-service/internal/ports"
)

const londonBirth = `{"year":1990,"month":6,"day":15,"hour":2,"minute":30,"period":"PM","location":"51.5074,-0.1278"}`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newChartEngine serves the chart routes. A nil provider uses the analytic
// ephemeris, initialized up front.
func newChartEngine(t *testing.T, provider ports.EphemerisProvider, gate ports.ReadinessGate, batchMax int) *gin.Engine {
	t.Helper()

	if provider == nil {
		analytic := ephemeris.New(&ephemeris.Config{Logger: quietLogger()})
		require.NoError(t, analytic.Init(context.Background()))

		provider = analytic
	}

	cities, err := catalog.NewCities(nil)
	require.NoError(t, err)

	interps, err := catalog.NewInterpretations(catalog.InterpretationsConfig{})
	require.NoError(t, err)

	h := NewChartHandler(ChartHandlerConfig{
		Charts:          app.NewChartService(provider, gate, &app.ChartServiceConfig{Logger: quietLogger()}),
		Interpretations: app.NewInterpretationService(interps),
		Renderer:        app.NewWheelRenderer(app.DefaultWheelStyle(), nil),
		Catalog:         cities,
		BatchMax:        batchMax,
	})

	engine := gin.New()
	h.RegisterChartRoutes(engine.Group("/api/v1"))

	return engine
}

func post(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	engine.ServeHTTP(w, req)

	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())

	return resp
}

func TestNewChartHandler_Defaults(t *testing.T) {
	h := NewChartHandler(ChartHandlerConfig{})

	assert.Equal(t, DefaultBatchMax, h.batchMax)
	assert.Equal(t, DefaultWheelSize, h.width)
	assert.Equal(t, DefaultWheelSize, h.height)
}

func TestChartHandler_CreateChart(t *testing.T) {
	engine := newChartEngine(t, nil, nil, 0)

	t.Run("computes a chart", func(t *testing.T) {
		w := post(engine, "/api/v1/charts", londonBirth)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp dto.ChartResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(t, "analytic", resp.Provider)
		assert.Equal(t, "tropical", resp.Zodiac)
		assert.Equal(t, "P", resp.Houses.Code)
		assert.Len(t, resp.Bodies, len(domain.DefaultBodies))
		assert.Equal(t, "Sun", resp.Bodies[0].Body)
		assert.Equal(t, "Gemini", resp.Bodies[0].Sign)
		assert.InDelta(t, 51.5074, resp.Location.Latitude, 1e-9)
		assert.Empty(t, resp.Interpretations)
	})

	t.Run("city and options", func(t *testing.T) {
		body := `{"year":"1990","month":"6","day":"15","hour":"14","minute":"30",` +
			`"city":"london","bodies":["Sun","Moon"],"houseSystem":"whole sign","zodiac":"sidereal"}`

		w := post(engine, "/api/v1/charts", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp dto.ChartResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(t, "W", resp.Houses.Code)
		assert.Equal(t, "sidereal", resp.Zodiac)
		require.Len(t, resp.Bodies, 2)
		assert.Equal(t, "Moon", resp.Bodies[1].Body)
	})

	t.Run("interpretations on request", func(t *testing.T) {
		w := post(engine, "/api/v1/charts?interpret=true", londonBirth)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp dto.ChartResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		require.Len(t, resp.Interpretations, len(resp.Bodies)+2)
		assert.Equal(t, "Sun", resp.Interpretations[0].Subject)
		assert.Equal(t, "Midheaven", resp.Interpretations[len(resp.Interpretations)-1].Subject)
		assert.NotEmpty(t, resp.Interpretations[0].Text)
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed json",
			body:       `{"year":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeBadRequest,
		},
		{
			name:       "missing year",
			body:       `{"month":6,"day":15,"hour":2,"minute":30,"location":"0,0"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeValidation,
		},
		{
			name:       "location and city together",
			body:       `{"year":1990,"month":6,"day":15,"hour":2,"minute":30,"location":"0,0","city":"London"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeValidation,
		},
		{
			name:       "month out of range",
			body:       `{"year":1990,"month":13,"day":15,"hour":2,"minute":30,"location":"0,0"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeValidation,
		},
		{
			name:       "latitude out of range",
			body:       `{"year":1990,"month":6,"day":15,"hour":2,"minute":30,"location":"91,0"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeValidation,
		},
		{
			name:       "unknown body",
			body:       `{"year":1990,"month":6,"day":15,"hour":2,"minute":30,"location":"0,0","bodies":["Chiron"]}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeValidation,
		},
		{
			name:       "unknown house system",
			body:       `{"year":1990,"month":6,"day":15,"hour":2,"minute":30,"location":"0,0","houseSystem":"Koch"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeValidation,
		},
		{
			name:       "unknown city",
			body:       `{"year":1990,"month":6,"day":15,"hour":2,"minute":30,"city":"Atlantis"}`,
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrorCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(engine, "/api/v1/charts", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCode, decodeError(t, w).Error.Code)
		})
	}
}

func TestChartHandler_CreateChartNotInitialized(t *testing.T) {
	analytic := ephemeris.New(&ephemeris.Config{Logger: quietLogger()})

	// Never started, so the gate stays pending.
	gate := app.NewReadiness(analytic.Name(), mocks.NewMockInitializer(t), app.ReadinessConfig{Logger: quietLogger()})

	engine := newChartEngine(t, analytic, gate, 0)

	w := post(engine, "/api/v1/charts", londonBirth)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, dto.ErrorCodeNotInitialized, decodeError(t, w).Error.Code)
}

func TestChartHandler_CreateChartCalculationError(t *testing.T) {
	provider := mocks.NewMockEphemerisProvider(t)
	provider.EXPECT().Name().Return("mock").Maybe()
	provider.EXPECT().JulianDay(1990, 6, 15, mock.Anything).Return(2448058.104)
	provider.EXPECT().Houses(mock.Anything, 2448058.104, mock.Anything, mock.Anything, domain.HousePlacidus).
		Return(domain.HouseCusps{}, errors.New("solver diverged"))

	engine := newChartEngine(t, provider, nil, 0)

	w := post(engine, "/api/v1/charts", londonBirth)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeCalculation, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "Placidus")
}

func TestChartHandler_FailureLogNamesStep(t *testing.T) {
	provider := mocks.NewMockEphemerisProvider(t)
	provider.EXPECT().Name().Return("mock").Maybe()
	provider.EXPECT().JulianDay(1990, 6, 15, mock.Anything).Return(2448058.104)
	provider.EXPECT().Houses(mock.Anything, 2448058.104, mock.Anything, mock.Anything, domain.HousePlacidus).
		Return(domain.HouseCusps{}, errors.New("solver diverged"))

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	h := NewChartHandler(ChartHandlerConfig{
		Charts: app.NewChartService(provider, nil, &app.ChartServiceConfig{Logger: quietLogger()}),
	})

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		c.Next()
	})
	h.RegisterChartRoutes(engine.Group("/api/v1"))

	w := post(engine, "/api/v1/charts", londonBirth)
	require.Equal(t, http.StatusBadGateway, w.Code)

	var failed map[string]any
	for line := range strings.Lines(logs.String()) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))

		if entry["msg"] == "request failed" {
			failed = entry
		}
	}

	require.NotNil(t, failed, logs.String())
	assert.Equal(t, "perform", failed["step"])
	assert.Equal(t, dto.ErrorCodeCalculation, failed["code"])
}

func TestChartHandler_CreateWheel(t *testing.T) {
	engine := newChartEngine(t, nil, nil, 0)

	t.Run("default size", func(t *testing.T) {
		w := post(engine, "/api/v1/charts/wheel", londonBirth)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, svgContentType, w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), `<svg xmlns="http://www.w3.org/2000/svg" width="600" height="600"`)
		assert.NotContains(t, w.Body.String(), `class="legend"`)
	})

	t.Run("size and legend", func(t *testing.T) {
		w := post(engine, "/api/v1/charts/wheel?size=300&legend=true", londonBirth)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `width="480" height="300"`)
		assert.Contains(t, w.Body.String(), `class="legend"`)
	})

	t.Run("size out of range", func(t *testing.T) {
		w := post(engine, "/api/v1/charts/wheel?size=10", londonBirth)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrorCodeValidation, decodeError(t, w).Error.Code)
	})
}

func TestChartHandler_CreateBatch(t *testing.T) {
	engine := newChartEngine(t, nil, nil, 3)

	t.Run("partial failure", func(t *testing.T) {
		const firstID = "5f0c1c1e-3f3b-4a9e-9d3e-2b7a1c0d4e5f"

		body := `{"charts":[` +
			`{"id":"` + firstID + `","year":1990,"month":6,"day":15,"hour":14,"minute":30,"location":"51.5,-0.13"},` +
			`{"year":1985,"month":1,"day":1,"hour":0,"minute":0,"city":"Atlantis"},` +
			`{"year":2000,"month":1,"day":1,"hour":12,"minute":0,"city":"Tokyo"}]}`

		w := post(engine, "/api/v1/charts/batch", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp dto.BatchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(t, 2, resp.Succeeded)
		assert.Equal(t, 1, resp.Failed)
		require.Len(t, resp.Results, 3)

		assert.Equal(t, firstID, resp.Results[0].ID)
		assert.NotNil(t, resp.Results[0].Chart)
		assert.Nil(t, resp.Results[0].Error)

		require.NotNil(t, resp.Results[1].Error)
		assert.Equal(t, dto.ErrorCodeNotFound, resp.Results[1].Error.Code)
		assert.Nil(t, resp.Results[1].Chart)

		_, err := uuid.Parse(resp.Results[2].ID)
		require.NoError(t, err, "missing ids are generated")
		assert.InDelta(t, 35.6762, resp.Results[2].Chart.Location.Latitude, 1e-4)
	})

	tests := []struct {
		name string
		body string
	}{
		{name: "empty batch", body: `{"charts":[]}`},
		{name: "bad id", body: `{"charts":[{"id":"x","year":1990,"month":6,"day":15,"hour":2,"minute":30,"location":"0,0"}]}`},
		{name: "too many entries", body: `{"charts":[` + strings.Repeat(`{"year":1990,"month":6,"day":15,"hour":2,"minute":30,"location":"0,0"},`, 3) +
			`{"year":1990,"month":6,"day":15,"hour":2,"minute":30,"location":"0,0"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(engine, "/api/v1/charts/batch", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, dto.ErrorCodeValidation, decodeError(t, w).Error.Code)
		})
	}
}

func TestChartHandler_CreateBatchComputeFailures(t *testing.T) {
	analytic := ephemeris.New(&ephemeris.Config{Logger: quietLogger()})
	gate := app.NewReadiness(analytic.Name(), mocks.NewMockInitializer(t), app.ReadinessConfig{Logger: quietLogger()})
	engine := newChartEngine(t, analytic, gate, 0)

	body := `{"charts":[` +
		`{"year":1990,"month":6,"day":15,"hour":14,"minute":30,"location":"51.5,-0.13"},` +
		`{"year":1990,"month":2,"day":30,"hour":14,"minute":30,"location":"51.5,-0.13"}]}`

	w := post(engine, "/api/v1/charts/batch", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.BatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Zero(t, resp.Succeeded)
	assert.Equal(t, 2, resp.Failed)
	require.Len(t, resp.Results, 2)
	require.NotNil(t, resp.Results[0].Error)
	assert.Equal(t, dto.ErrorCodeNotInitialized, resp.Results[0].Error.Code)
	assert.Nil(t, resp.Results[0].Chart)
	require.NotNil(t, resp.Results[1].Error)
	assert.Equal(t, dto.ErrorCodeValidation, resp.Results[1].Error.Code)
}

func TestChartHandler_CreateBodyPosition(t *testing.T) {
	engine := newChartEngine(t, nil, nil, 0)

	t.Run("known body", func(t *testing.T) {
		w := post(engine, "/api/v1/charts/bodies/moon", londonBirth)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp dto.BodyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(t, "Moon", resp.Body)
		assert.GreaterOrEqual(t, resp.House, 1)
		assert.LessOrEqual(t, resp.House, 12)
		assert.GreaterOrEqual(t, resp.Longitude, 0.0)
		assert.Less(t, resp.Longitude, 360.0)
	})

	t.Run("unknown body", func(t *testing.T) {
		w := post(engine, "/api/v1/charts/bodies/chiron", londonBirth)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrorCodeNotFound, decodeError(t, w).Error.Code)
	})
}
