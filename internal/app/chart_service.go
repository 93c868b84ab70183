// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
//
// What does NOT belong here:
//   - HTTP/CLI specifics (that's adapters)
//   - Orbital mechanics (that's the ephemeris adapters)
//   - Sign, house and aspect rules (that's the domain layer)
package app

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/natal-chart-service/internal/domain"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/config"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/logging"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/telemetry"
	"github.com/jsamuelsen/natal-chart-service/internal/ports"
)

// DefaultBatchLimit bounds concurrent charts in one batch.
const DefaultBatchLimit = 4

// ChartRequest is a validated birth moment and place plus chart options.
// Zero-valued options take the service defaults.
type ChartRequest struct {
	Moment      domain.BirthMoment
	Location    domain.GeoLocation
	Bodies      []domain.Body
	HouseSystem domain.HouseSystemCode
	Zodiac      domain.ZodiacMode
}

// ChartServiceConfig holds optional configuration for the chart service.
type ChartServiceConfig struct {
	Logger             *slog.Logger
	Metrics            *telemetry.ChartMetrics
	TieBreak           domain.TieBreak
	BatchLimit         int
	DefaultHouseSystem domain.HouseSystemCode
	DefaultBodies      []domain.Body
	DefaultZodiac      domain.ZodiacMode
}

// NewChartServiceConfig parses the configured chart defaults.
func NewChartServiceConfig(cfg config.ChartConfig, logger *slog.Logger, metrics *telemetry.ChartMetrics) (*ChartServiceConfig, error) {
	houses, err := domain.ParseHouseSystem(cfg.HouseSystem)
	if err != nil {
		return nil, err
	}

	zodiac, err := domain.ParseZodiacMode(cfg.Zodiac)
	if err != nil {
		return nil, err
	}

	tieBreak, err := domain.ParseTieBreak(cfg.AspectTieBreak)
	if err != nil {
		return nil, err
	}

	bodies, err := domain.ParseBodies(cfg.Bodies)
	if err != nil {
		return nil, err
	}

	return &ChartServiceConfig{
		Logger:             logger,
		Metrics:            metrics,
		TieBreak:           tieBreak,
		BatchLimit:         cfg.BatchLimit,
		DefaultHouseSystem: houses,
		DefaultBodies:      bodies,
		DefaultZodiac:      zodiac,
	}, nil
}

// ChartService computes birth charts from an ephemeris provider.
// It holds no per-chart state; one instance serves concurrent requests.
type ChartService struct {
	provider ports.EphemerisProvider
	gate     ports.ReadinessGate
	logger   *slog.Logger
	metrics  *telemetry.ChartMetrics
	tracer   trace.Tracer

	tieBreak    domain.TieBreak
	batchLimit  int
	houseSystem domain.HouseSystemCode
	bodies      []domain.Body
	zodiac      domain.ZodiacMode
}

// NewChartService creates a chart service. gate may be nil when the
// provider needs no initialization.
func NewChartService(provider ports.EphemerisProvider, gate ports.ReadinessGate, cfg *ChartServiceConfig) *ChartService {
	if cfg == nil {
		cfg = &ChartServiceConfig{}
	}

	s := &ChartService{
		provider:    provider,
		gate:        gate,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		tracer:      telemetry.Tracer("app"),
		tieBreak:    cfg.TieBreak,
		batchLimit:  cfg.BatchLimit,
		houseSystem: cfg.DefaultHouseSystem,
		bodies:      slices.Clone(cfg.DefaultBodies),
		zodiac:      cfg.DefaultZodiac,
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	if s.tieBreak == "" {
		s.tieBreak = domain.TieBreakPriority
	}

	if s.batchLimit <= 0 {
		s.batchLimit = DefaultBatchLimit
	}

	if s.houseSystem == "" {
		s.houseSystem = domain.HousePlacidus
	}

	if len(s.bodies) == 0 {
		s.bodies = slices.Clone(domain.DefaultBodies)
	}

	if s.zodiac == "" {
		s.zodiac = domain.ZodiacTropical
	}

	return s
}

// Provider returns the name of the ephemeris provider.
func (s *ChartService) Provider() string {
	return s.provider.Name()
}

// Ready reports whether charts can be computed now.
func (s *ChartService) Ready() error {
	if s.gate == nil {
		return nil
	}

	return s.gate.Require()
}

// ComputeChart builds a full chart. On any failure the result is nil.
func (s *ChartService) ComputeChart(ctx context.Context, req ChartRequest) (*domain.ChartResult, error) {
	req = s.withDefaults(req)

	ctx, span := s.tracer.Start(ctx, "chart.compute", trace.WithAttributes(
		attribute.String("ephemeris.provider", s.provider.Name()),
		attribute.String("chart.house_system", string(req.HouseSystem)),
		attribute.String("chart.zodiac", string(req.Zodiac)),
		attribute.Int("chart.bodies", len(req.Bodies)),
	))
	defer span.End()

	ctx = logging.WithChartID(logging.WithContext(ctx, logging.FromContextOr(ctx, s.logger)), uuid.NewString())
	start := time.Now()

	pipeline := Pipeline[ChartRequest, *domain.ChartResult]{
		Name:     "compute_chart",
		Validate: s.validate,
		Perform:  s.perform,
		Verify: func(_ context.Context, in ChartRequest, chart *domain.ChartResult) error {
			if len(chart.Bodies) != len(in.Bodies) {
				return domain.NewCalculationError(domain.StageVerify, "bodies", nil)
			}

			return chart.Verify()
		},
		Observe: func(step Step, elapsed time.Duration, err error) {
			s.metrics.StepObserved(string(step), elapsed)

			if err != nil {
				s.metrics.ChartFailed(s.provider.Name(), string(step))
			}
		},
	}

	chart, err := pipeline.Run(ctx, s.logger, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "chart computation failed")

		return nil, err
	}

	s.metrics.ChartComputed(s.provider.Name(), req.HouseSystem.String(), string(req.Zodiac), time.Since(start))
	span.SetAttributes(attribute.Int("chart.aspects", len(chart.Aspects)))

	return chart, nil
}

// ComputeBodyPosition places a single body for the given moment and place.
func (s *ChartService) ComputeBodyPosition(ctx context.Context, req ChartRequest, body domain.Body) (domain.BodyPosition, error) {
	req.Bodies = []domain.Body{body}

	chart, err := s.ComputeChart(ctx, req)
	if err != nil {
		return domain.BodyPosition{}, err
	}

	pos, _ := chart.Position(body)

	return pos, nil
}

// ComputeBatch computes independent charts concurrently. The result has one
// entry per request, in request order.
func (s *ChartService) ComputeBatch(ctx context.Context, reqs []ChartRequest) []PartialResult[*domain.ChartResult] {
	fns := make([]func(context.Context) (*domain.ChartResult, error), len(reqs))

	for i, req := range reqs {
		fns[i] = func(ctx context.Context) (*domain.ChartResult, error) {
			return s.ComputeChart(ctx, req)
		}
	}

	return ParallelPartialLimit(ctx, s.batchLimit, fns...)
}

func (s *ChartService) withDefaults(req ChartRequest) ChartRequest {
	if len(req.Bodies) == 0 {
		req.Bodies = slices.Clone(s.bodies)
	}

	if req.HouseSystem == "" {
		req.HouseSystem = s.houseSystem
	}

	if req.Zodiac == "" {
		req.Zodiac = s.zodiac
	}

	// Names like "whole sign" become codes here; unknown values are left
	// for validate to reject.
	if code, err := domain.ParseHouseSystem(string(req.HouseSystem)); err == nil {
		req.HouseSystem = code
	}

	if mode, err := domain.ParseZodiacMode(string(req.Zodiac)); err == nil {
		req.Zodiac = mode
	}

	return req
}

// validate runs before any provider call.
func (s *ChartService) validate(_ context.Context, req ChartRequest) error {
	if err := s.Ready(); err != nil {
		return err
	}

	if req.Moment.IsZero() {
		return domain.NewValidationError("moment", "is required")
	}

	if _, err := domain.ParseHouseSystem(string(req.HouseSystem)); err != nil {
		return err
	}

	if _, err := domain.ParseZodiacMode(string(req.Zodiac)); err != nil {
		return err
	}

	seen := make(map[domain.Body]bool, len(req.Bodies))
	for _, b := range req.Bodies {
		if !b.Valid() {
			return domain.NewValidationErrorWithValue("bodies", "unknown body", int(b))
		}

		if seen[b] {
			return domain.NewValidationErrorWithValue("bodies", "duplicate body", b.String())
		}

		seen[b] = true
	}

	return nil
}

func (s *ChartService) perform(ctx context.Context, req ChartRequest) (*domain.ChartResult, error) {
	m := req.Moment

	jd := s.provider.JulianDay(m.Year(), m.Month(), m.Day(), m.FractionalHour())
	if !finite(jd) {
		return nil, domain.NewCalculationError(domain.StageJulianDay, "", nil)
	}

	cusps, err := s.houses(ctx, jd, req)
	if err != nil {
		return nil, err
	}

	houses := domain.HouseSystem{Code: req.HouseSystem, HouseCusps: cusps}

	flags := ports.FlagSpeed
	if req.Zodiac == domain.ZodiacSidereal {
		flags |= ports.FlagSidereal
	}

	positions := make([]domain.BodyPosition, 0, len(req.Bodies))

	for _, body := range req.Bodies {
		pos, err := s.bodyPosition(ctx, jd, body, flags)
		if err != nil {
			return nil, err
		}

		positions = append(positions, domain.PlaceBody(body, pos, houses))
	}

	logging.FromContext(ctx).DebugContext(ctx, "chart assembled",
		slog.Float64("julian_day", jd),
		slog.Int("bodies", len(positions)),
	)

	return &domain.ChartResult{
		Moment:            req.Moment,
		Location:          req.Location,
		JulianDay:         jd,
		LocalSiderealTime: domain.NormalizeDegrees(cusps.ARMC) / 15,
		Zodiac:            req.Zodiac,
		Bodies:            positions,
		Houses:            houses,
		Aspects:           domain.FindAspects(positions, s.tieBreak),
		Ascendant:         domain.NewChartAngle("Ascendant", cusps.Ascendant),
		Midheaven:         domain.NewChartAngle("Midheaven", cusps.Midheaven),
	}, nil
}

func (s *ChartService) houses(ctx context.Context, jd float64, req ChartRequest) (domain.HouseCusps, error) {
	ctx, span := s.tracer.Start(ctx, "ephemeris.houses")
	defer span.End()

	cusps, err := s.provider.Houses(ctx, jd, req.Location.Latitude(), req.Location.Longitude(), req.HouseSystem)
	s.metrics.ProviderCall(s.provider.Name(), "houses", err)

	if err != nil {
		span.RecordError(err)

		return domain.HouseCusps{}, domain.NewCalculationError(domain.StageHouses, req.HouseSystem.String(), err)
	}

	if !cusps.Finite() {
		return domain.HouseCusps{}, domain.NewCalculationError(domain.StageHouses, "cusps", nil)
	}

	if req.Zodiac == domain.ZodiacSidereal {
		if ap, ok := s.provider.(ports.AyanamsaProvider); ok {
			cusps = cusps.Shift(ap.Ayanamsa(jd), req.HouseSystem)
		}
	}

	return cusps, nil
}

func (s *ChartService) bodyPosition(ctx context.Context, jd float64, body domain.Body, flags ports.CalcFlags) (domain.EclipticPosition, error) {
	if err := ctx.Err(); err != nil {
		return domain.EclipticPosition{}, domain.NewCalculationError(domain.StageBody, body.String(), err)
	}

	ctx, span := s.tracer.Start(ctx, "ephemeris.body_position",
		trace.WithAttributes(attribute.String("ephemeris.body", body.String())))
	defer span.End()

	pos, err := s.provider.BodyPosition(ctx, jd, body, flags)
	s.metrics.ProviderCall(s.provider.Name(), "body_position", err)

	if err != nil {
		span.RecordError(err)

		return domain.EclipticPosition{}, domain.NewCalculationError(domain.StageBody, body.String(), err)
	}

	if !pos.Finite() {
		return domain.EclipticPosition{}, domain.NewCalculationError(domain.StageBody, body.String(), nil)
	}

	logging.FromContext(ctx).Log(ctx, logging.LevelTrace, "body position",
		slog.String("body", body.String()),
		slog.Float64("ecliptic_longitude", pos.Longitude),
	)

	return pos, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
