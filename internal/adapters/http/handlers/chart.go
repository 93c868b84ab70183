package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/natal-chart-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/surface"
	"github.com/jsamuelsen/natal-chart-service/internal/app"
	"github.com/jsamuelsen/natal-chart-service/internal/domain"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/logging"
	"github.com/jsamuelsen/natal-chart-service/internal/ports"
)

// Handler defaults used when ChartHandlerConfig leaves them unset.
const (
	DefaultBatchMax  = 20
	DefaultWheelSize = 600
	svgContentType   = "image/svg+xml; charset=utf-8"
)

// ChartHandlerConfig wires the chart endpoints.
type ChartHandlerConfig struct {
	Charts          *app.ChartService
	Interpretations *app.InterpretationService
	Renderer        *app.WheelRenderer
	Catalog         ports.LocationCatalog

	// BatchMax caps the entries of one batch request.
	BatchMax int

	// WheelWidth and WheelHeight size the SVG when the request has no size.
	WheelWidth  int
	WheelHeight int
}

// ChartHandler handles the chart endpoints.
type ChartHandler struct {
	charts          *app.ChartService
	interpretations *app.InterpretationService
	renderer        *app.WheelRenderer
	catalog         ports.LocationCatalog
	batchMax        int
	width, height   int
}

// NewChartHandler creates a chart handler.
func NewChartHandler(cfg ChartHandlerConfig) *ChartHandler {
	h := &ChartHandler{
		charts:          cfg.Charts,
		interpretations: cfg.Interpretations,
		renderer:        cfg.Renderer,
		catalog:         cfg.Catalog,
		batchMax:        cfg.BatchMax,
		width:           cfg.WheelWidth,
		height:          cfg.WheelHeight,
	}

	if h.batchMax <= 0 {
		h.batchMax = DefaultBatchMax
	}

	if h.width <= 0 {
		h.width = DefaultWheelSize
	}

	if h.height <= 0 {
		h.height = DefaultWheelSize
	}

	return h
}

// toChartRequest normalizes raw request fields. Every error it returns is a
// validation or not-found error; no ephemeris call has happened yet.
func (h *ChartHandler) toChartRequest(ctx context.Context, req *dto.ChartRequest) (app.ChartRequest, error) {
	moment, err := domain.ParseBirthMoment(req.BirthFields())
	if err != nil {
		return app.ChartRequest{}, err
	}

	loc, err := h.resolveLocation(ctx, req)
	if err != nil {
		return app.ChartRequest{}, err
	}

	out := app.ChartRequest{
		Moment:      moment,
		Location:    loc,
		HouseSystem: domain.HouseSystemCode(req.HouseSystem),
		Zodiac:      domain.ZodiacMode(req.Zodiac),
	}

	if len(req.Bodies) > 0 {
		out.Bodies, err = domain.ParseBodies(req.Bodies)
		if err != nil {
			return app.ChartRequest{}, err
		}
	}

	return out, nil
}

func (h *ChartHandler) resolveLocation(ctx context.Context, req *dto.ChartRequest) (domain.GeoLocation, error) {
	if req.City == "" {
		return domain.ParseGeoLocation(req.Location)
	}

	if h.catalog == nil {
		return domain.GeoLocation{}, domain.NewValidationError("city", "city lookup is not available")
	}

	city, err := h.catalog.Find(ctx, req.City)
	if err != nil {
		return domain.GeoLocation{}, err
	}

	return city.Location, nil
}

// fail writes the error envelope. Chart failures carry their pipeline step
// into the request log.
func (h *ChartHandler) fail(c *gin.Context, err error) {
	if step, ok := app.FailedStep(err); ok {
		ctx := c.Request.Context()
		logger := logging.FromContext(ctx).With(slog.String("step", string(step)))
		c.Request = c.Request.WithContext(logging.WithContext(ctx, logger))
	}

	dto.HandleError(c, err)
}

func (h *ChartHandler) chartResponse(chart *domain.ChartResult, interpret bool) *dto.ChartResponse {
	resp := dto.NewChartResponse(chart, h.charts.Provider())

	if interpret && h.interpretations != nil {
		for _, r := range h.interpretations.ForChart(chart) {
			resp.Interpretations = append(resp.Interpretations, dto.ReadingResponse{
				Subject: r.Subject,
				Sign:    r.Sign.String(),
				House:   r.House,
				Text:    r.Text,
			})
		}
	}

	return resp
}

// CreateChart handles POST /api/v1/charts.
// With ?interpret=true the response carries a reading per body and angle.
func (h *ChartHandler) CreateChart(c *gin.Context) {
	var query dto.ChartQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	var body dto.ChartRequest
	if err := dto.BindAndValidate(c, &body); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	ctx := c.Request.Context()

	req, err := h.toChartRequest(ctx, &body)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	chart, err := h.charts.ComputeChart(ctx, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, h.chartResponse(chart, query.Interpret))
}

// CreateWheel handles POST /api/v1/charts/wheel and returns the chart
// drawn as SVG. Query size sets a square canvas; legend=true adds the
// color key.
func (h *ChartHandler) CreateWheel(c *gin.Context) {
	var query dto.WheelQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	var body dto.ChartRequest
	if err := dto.BindAndValidate(c, &body); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	ctx := c.Request.Context()

	req, err := h.toChartRequest(ctx, &body)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	chart, err := h.charts.ComputeChart(ctx, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	w, ht := float64(h.width), float64(h.height)
	if query.Size > 0 {
		w, ht = float64(query.Size), float64(query.Size)
	}

	var opts []surface.Option
	if query.Legend {
		bodies := make([]domain.Body, len(chart.Bodies))
		for i, p := range chart.Bodies {
			bodies[i] = p.Body
		}

		opts = append(opts, surface.WithLegend(h.renderer.Style().Legend(bodies)))
	}

	svg := surface.NewSVG(w, ht, opts...)
	if err := h.renderer.Render(svg, chart); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, svgContentType, svg.Bytes())
}

// CreateBatch handles POST /api/v1/charts/batch. Entries are computed
// concurrently; each result carries either a chart or its own error, so one
// bad entry does not fail the batch.
func (h *ChartHandler) CreateBatch(c *gin.Context) {
	var body dto.BatchRequest
	if err := dto.BindAndValidate(c, &body); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	if len(body.Charts) > h.batchMax {
		dto.RespondWithValidationErrors(c, map[string]string{
			"charts": "must contain at most " + strconv.Itoa(h.batchMax) + " entries",
		})

		return
	}

	ctx := c.Request.Context()
	results := make([]dto.BatchResult, len(body.Charts))

	// Entries that fail normalization get their error now; the rest are
	// computed together and mapped back by index.
	var (
		reqs    []app.ChartRequest
		indexes []int
	)

	for i := range body.Charts {
		entry := &body.Charts[i]

		id := entry.ID
		if id == "" {
			id = uuid.NewString()
		}

		results[i].ID = id

		req, err := h.toChartRequest(ctx, &entry.ChartRequest)
		if err != nil {
			results[i].Error = &dto.MapDomainError(err).Error
			continue
		}

		reqs = append(reqs, req)
		indexes = append(indexes, i)
	}

	resp := dto.BatchResponse{Results: results}

	charts, errs := app.Values(h.charts.ComputeBatch(ctx, reqs))

	for j, chart := range charts {
		i := indexes[j]
		if errs != nil && errs[j] != nil {
			results[i].Error = &dto.MapDomainError(errs[j]).Error
			continue
		}

		results[i].Chart = h.chartResponse(chart, false)
	}

	for _, r := range results {
		if r.Error != nil {
			resp.Failed++
		} else {
			resp.Succeeded++
		}
	}

	logging.FromContext(ctx).InfoContext(ctx, "batch computed",
		slog.Int("succeeded", resp.Succeeded),
		slog.Int("failed", resp.Failed),
	)

	c.JSON(http.StatusOK, resp)
}

// CreateBodyPosition handles POST /api/v1/charts/bodies/:body and places a
// single body. An unknown body name is a 404.
func (h *ChartHandler) CreateBodyPosition(c *gin.Context) {
	body, err := domain.ParseBody(c.Param("body"))
	if err != nil {
		dto.HandleError(c, domain.NewNotFoundError("body", c.Param("body")))
		return
	}

	var req dto.ChartRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	ctx := c.Request.Context()

	chartReq, err := h.toChartRequest(ctx, &req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	pos, err := h.charts.ComputeBodyPosition(ctx, chartReq, body)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBodyResponse(pos))
}

// RegisterChartRoutes registers chart routes on the given router group.
func (h *ChartHandler) RegisterChartRoutes(rg *gin.RouterGroup) {
	charts := rg.Group("/charts")
	charts.POST("", h.CreateChart)
	charts.POST("/wheel", h.CreateWheel)
	charts.POST("/batch", h.CreateBatch)
	charts.POST("/bodies/:body", h.CreateBodyPosition)
}
