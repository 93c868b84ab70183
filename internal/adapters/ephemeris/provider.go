// Package ephemeris provides the built-in analytic ephemeris.
//
// Planet positions come from JPL's approximate Keplerian elements and the
// Moon from a truncated lunar series. Accuracy is on the order of an
// arcminute for the inner planets between 1800 and 2050, which is well
// inside the aspect orbs charts are judged by. Houses are computed from
// sidereal time and obliquity without any table.
package ephemeris

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"github.com/jsamuelsen/natal-chart-service/internal/domain"
	"github.com/jsamuelsen/natal-chart-service/internal/ports"
)

// ProviderName identifies the analytic provider in logs and metrics.
const ProviderName = "analytic"

// speedStep is the half-width, in days, of the central difference used
// for speeds.
const speedStep = 0.5

// Config configures the analytic provider.
type Config struct {
	// Elements replaces the embedded element table. Used by tests.
	Elements []byte

	// Logger is an optional logger. If nil, a default logger is used.
	Logger *slog.Logger
}

// Provider is the analytic ephemeris. Init must succeed before
// BodyPosition is used; JulianDay and Houses need no initialization.
type Provider struct {
	raw    []byte
	logger *slog.Logger

	mu    sync.RWMutex
	table *elementTable
}

var (
	_ ports.EphemerisProvider = (*Provider)(nil)
	_ ports.Initializer       = (*Provider)(nil)
	_ ports.AyanamsaProvider  = (*Provider)(nil)
)

// New creates an analytic provider.
func New(cfg *Config) *Provider {
	if cfg == nil {
		cfg = &Config{}
	}

	raw := cfg.Elements
	if raw == nil {
		raw = defaultElements
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Provider{
		raw:    raw,
		logger: logger.With(slog.String("component", "ephemeris.analytic")),
	}
}

// Name implements ports.EphemerisProvider.
func (p *Provider) Name() string {
	return ProviderName
}

// Init parses the element table. It is safe to call repeatedly.
func (p *Provider) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.table != nil {
		return nil
	}

	table, err := parseElements(p.raw)
	if err != nil {
		return err
	}

	p.table = table

	p.logger.DebugContext(ctx, "element table loaded",
		slog.Int("planets", len(table.Planets)),
		slog.Int("lunar_terms", len(table.Moon.Longitude)+len(table.Moon.Latitude)+len(table.Moon.Distance)),
	)

	return nil
}

// JulianDay implements ports.EphemerisProvider.
func (p *Provider) JulianDay(year, month, day int, hour float64) float64 {
	return JulianDay(year, month, day, hour)
}

// BodyPosition implements ports.EphemerisProvider. FlagTopocentric is
// ignored; positions are geocentric.
func (p *Provider) BodyPosition(ctx context.Context, jd float64, body domain.Body, flags ports.CalcFlags) (domain.EclipticPosition, error) {
	if err := ctx.Err(); err != nil {
		return domain.EclipticPosition{}, err
	}

	if !body.Valid() {
		return domain.EclipticPosition{}, domain.NewValidationErrorWithValue("body", "unknown body", int(body))
	}

	p.mu.RLock()
	table := p.table
	p.mu.RUnlock()

	if table == nil {
		return domain.EclipticPosition{}, domain.NewNotInitializedError(ProviderName, "element table not loaded", nil)
	}

	lon, lat, dist := table.geocentric(body, jd)
	pos := domain.EclipticPosition{Longitude: lon, Latitude: lat, Distance: dist}

	if flags.Has(ports.FlagSpeed) {
		lon0, lat0, dist0 := table.geocentric(body, jd-speedStep)
		lon1, lat1, dist1 := table.geocentric(body, jd+speedStep)

		span := 2 * speedStep
		pos.LongitudeSpeed = math.Remainder(lon1-lon0, 360) / span
		pos.LatitudeSpeed = (lat1 - lat0) / span
		pos.DistanceSpeed = (dist1 - dist0) / span
	}

	if flags.Has(ports.FlagSidereal) {
		pos.Longitude = domain.NormalizeDegrees(pos.Longitude - lahiri(jd))
	}

	return pos, nil
}

// Houses implements ports.EphemerisProvider. Placidus falls back to
// Porphyry at or beyond PolarLatitude.
func (p *Provider) Houses(ctx context.Context, jd, lat, lon float64, system domain.HouseSystemCode) (domain.HouseCusps, error) {
	if err := ctx.Err(); err != nil {
		return domain.HouseCusps{}, err
	}

	if system == domain.HousePlacidus && math.Abs(lat) >= PolarLatitude {
		p.logger.DebugContext(ctx, "placidus undefined at latitude, using porphyry cusps", slog.Float64("latitude", lat))
	}

	return ComputeHouses(jd, lat, lon, system)
}

// Ayanamsa implements ports.AyanamsaProvider using the Lahiri ayanamsa.
func (p *Provider) Ayanamsa(jd float64) float64 {
	return lahiri(jd)
}
