package acl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jsamuelsen/natal-chart-service/internal/adapters/clients"
	"github.com/jsamuelsen/natal-chart-service/internal/domain"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/logging"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/telemetry"
	"github.com/jsamuelsen/natal-chart-service/internal/ports"
)

// HorizonsProviderName identifies the Horizons provider in logs and metrics.
const HorizonsProviderName = "horizons"

const (
	horizonsPath = "/api/horizons.api"

	// speedInterval is the spacing, in days, of the second epoch requested
	// alongside each position to derive speeds.
	speedInterval = 1.0 / 24

	// observerColumns is the count of trailing numeric columns in a row of
	// quantities 20 and 31: delta, deldot, ObsEcLon, ObsEcLat.
	observerColumns = 4

	markerStart = "$$SOE"
	markerEnd   = "$$EOE"
)

// horizonsTargets maps bodies to Horizons major-body IDs.
var horizonsTargets = map[domain.Body]string{
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

// errNoEphemeris means a 200 response carried no $$SOE block, which is how
// Horizons reports most query errors.
var errNoEphemeris = errors.New("response has no ephemeris block")

// HouseSolver supplies what Horizons cannot: Julian Days, house cusps and
// the ayanamsa.
type HouseSolver interface {
	JulianDay(year, month, day int, hour float64) float64
	Houses(ctx context.Context, jd, lat, lon float64, system domain.HouseSystemCode) (domain.HouseCusps, error)
	Ayanamsa(jd float64) float64
}

// HorizonsConfig configures the Horizons provider.
type HorizonsConfig struct {
	// Client talks to the Horizons API. Its BaseURL is the API host.
	Client *clients.Client

	// Solver answers house and time queries.
	Solver HouseSolver

	// Cache holds raw ephemeris blocks. Optional.
	Cache ports.Cache

	// CacheTTL bounds how long a block is reused. Zero uses the cache default.
	CacheTTL time.Duration

	// Metrics counts cache hits and misses. Optional.
	Metrics *telemetry.ChartMetrics

	// Logger is the structured logger.
	Logger *slog.Logger
}

// HorizonsProvider implements ports.EphemerisProvider against the JPL
// Horizons API. Retries, the circuit breaker and throttling live in the
// embedded client; this type only speaks the Horizons query format.
type HorizonsProvider struct {
	BaseAdapter

	solver  HouseSolver
	cache   ports.Cache
	ttl     time.Duration
	metrics *telemetry.ChartMetrics
	logger  *slog.Logger
}

var (
	_ ports.EphemerisProvider = (*HorizonsProvider)(nil)
	_ ports.Initializer       = (*HorizonsProvider)(nil)
	_ ports.AyanamsaProvider  = (*HorizonsProvider)(nil)
	_ ports.OptionalChecker   = (*HorizonsProvider)(nil)
)

// NewHorizonsProvider creates a Horizons provider.
// Panics if Client or Solver is nil.
func NewHorizonsProvider(cfg HorizonsConfig) *HorizonsProvider {
	if cfg.Client == nil {
		panic("HorizonsProvider: Client is required")
	}

	if cfg.Solver == nil {
		panic("HorizonsProvider: Solver is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &HorizonsProvider{
		BaseAdapter: NewBaseAdapter(cfg.Client, cfg.Client.ServiceName()),
		solver:      cfg.Solver,
		cache:       cfg.Cache,
		ttl:         cfg.CacheTTL,
		metrics:     cfg.Metrics,
		logger:      logger.With(slog.String("component", "ephemeris.horizons")),
	}
}

// horizonsResponse is the external DTO of the Horizons API.
type horizonsResponse struct {
	Result    string `json:"result"`
	Error     string `json:"error"`
	Signature struct {
		Source  string `json:"source"`
		Version string `json:"version"`
	} `json:"signature"`
}

// observerRow is one epoch of an observer table.
type observerRow struct {
	Delta     float64 // au
	Longitude float64
	Latitude  float64
}

// Name implements ports.EphemerisProvider.
func (p *HorizonsProvider) Name() string {
	return HorizonsProviderName
}

// Init checks that the API answers. It implements ports.Initializer.
func (p *HorizonsProvider) Init(ctx context.Context) error {
	q := url.Values{
		"format":     {"json"},
		"COMMAND":    {"'10'"},
		"OBJ_DATA":   {"'NO'"},
		"MAKE_EPHEM": {"'NO'"},
	}

	body, err := p.Get(ctx, horizonsPath, q, "probe")
	if err != nil {
		return err
	}

	resp, err := DecodeResponse[horizonsResponse](body)
	if err != nil {
		return domain.NewUnavailableError(p.ServiceName(), err.Error())
	}

	if resp.Error != "" {
		return domain.NewUnavailableError(p.ServiceName(), resp.Error)
	}

	p.logger.InfoContext(ctx, "horizons reachable",
		slog.String("api_version", resp.Signature.Version),
	)

	return nil
}

// JulianDay implements ports.EphemerisProvider.
func (p *HorizonsProvider) JulianDay(year, month, day int, hour float64) float64 {
	return p.solver.JulianDay(year, month, day, hour)
}

// Houses implements ports.EphemerisProvider. Horizons has no house service,
// so the solver answers.
func (p *HorizonsProvider) Houses(ctx context.Context, jd, lat, lon float64, system domain.HouseSystemCode) (domain.HouseCusps, error) {
	return p.solver.Houses(ctx, jd, lat, lon, system)
}

// Ayanamsa implements ports.AyanamsaProvider.
func (p *HorizonsProvider) Ayanamsa(jd float64) float64 {
	return p.solver.Ayanamsa(jd)
}

// BodyPosition implements ports.EphemerisProvider. Positions are geocentric;
// FlagTopocentric is ignored.
func (p *HorizonsProvider) BodyPosition(ctx context.Context, jd float64, body domain.Body, flags ports.CalcFlags) (domain.EclipticPosition, error) {
	target, ok := horizonsTargets[body]
	if !ok {
		return domain.EclipticPosition{}, domain.NewValidationErrorWithValue("body", "unknown body", int(body))
	}

	rows, err := p.observerRows(ctx, target, jd)
	if err != nil {
		return domain.EclipticPosition{}, err
	}

	if len(rows) < 2 {
		return domain.EclipticPosition{}, domain.NewUnavailableError(p.ServiceName(),
			fmt.Sprintf("expected 2 epochs, got %d", len(rows)))
	}

	now, next := rows[0], rows[1]
	pos := domain.EclipticPosition{
		Longitude: domain.NormalizeDegrees(now.Longitude),
		Latitude:  now.Latitude,
		Distance:  now.Delta,
	}

	if flags.Has(ports.FlagSpeed) {
		pos.LongitudeSpeed = math.Remainder(next.Longitude-now.Longitude, 360) / speedInterval
		pos.LatitudeSpeed = (next.Latitude - now.Latitude) / speedInterval
		pos.DistanceSpeed = (next.Delta - now.Delta) / speedInterval
	}

	if flags.Has(ports.FlagSidereal) {
		pos.Longitude = domain.NormalizeDegrees(pos.Longitude - p.solver.Ayanamsa(jd))
	}

	return pos, nil
}

// observerRows returns the table for jd and jd+speedInterval, from the
// cache when possible. Flags are applied after the cache, so they are not
// part of the key.
func (p *HorizonsProvider) observerRows(ctx context.Context, target string, jd float64) ([]*observerRow, error) {
	key := fmt.Sprintf("horizons:%s:%.6f", target, jd)
	logger := logging.FromContextOr(ctx, p.logger)

	if p.cache != nil {
		raw, err := p.cache.Get(ctx, key)
		switch {
		case err == nil:
			if rows, perr := parseObserverTable(string(raw)); perr == nil {
				p.metrics.CacheLookup(true)
				logger.Log(ctx, logging.LevelTrace, "horizons cache hit", slog.String("key", key))

				return rows, nil
			}

			_ = p.cache.Delete(ctx, key)
		case !domain.IsNotFound(err):
			logger.WarnContext(ctx, "horizons cache read failed", slog.Any("error", err))
		}

		p.metrics.CacheLookup(false)
	}

	result, err := p.fetch(ctx, target, jd)
	if err != nil {
		return nil, err
	}

	rows, err := parseObserverTable(result)
	if err != nil {
		return nil, domain.NewUnavailableError(p.ServiceName(), err.Error())
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, key, []byte(result), int(p.ttl.Seconds())); err != nil {
			logger.WarnContext(ctx, "horizons cache write failed", slog.Any("error", err))
		}
	}

	return rows, nil
}

func (p *HorizonsProvider) fetch(ctx context.Context, target string, jd float64) (string, error) {
	q := url.Values{
		"format":      {"json"},
		"COMMAND":     {"'" + target + "'"},
		"OBJ_DATA":    {"'NO'"},
		"MAKE_EPHEM":  {"'YES'"},
		"EPHEM_TYPE":  {"'OBSERVER'"},
		"CENTER":      {"'500@399'"},
		"QUANTITIES":  {"'20,31'"},
		"TLIST_TYPE":  {"'JD'"},
		"TIME_TYPE":   {"'UT'"},
		"TLIST":       {fmt.Sprintf("'%.9f','%.9f'", jd, jd+speedInterval)},
		"CSV_FORMAT":  {"'YES'"},
		"ANG_FORMAT":  {"'DEG'"},
		"EXTRA_PREC":  {"'YES'"},
		"RANGE_UNITS": {"'AU'"},
	}

	body, err := p.Get(ctx, horizonsPath, q, "body position")
	if err != nil {
		return "", err
	}

	resp, err := DecodeResponse[horizonsResponse](body)
	if err != nil {
		return "", domain.NewUnavailableError(p.ServiceName(), err.Error())
	}

	if resp.Error != "" {
		return "", domain.NewUnavailableError(p.ServiceName(), resp.Error)
	}

	return resp.Result, nil
}

// parseObserverTable extracts the rows between $$SOE and $$EOE.
func parseObserverTable(result string) ([]*observerRow, error) {
	start := strings.Index(result, markerStart)
	end := strings.Index(result, markerEnd)

	if start < 0 || end < start {
		return nil, errNoEphemeris
	}

	block := strings.TrimSpace(result[start+len(markerStart) : end])
	if block == "" {
		return nil, errNoEphemeris
	}

	return TranslateSlice[string, observerRow](strings.Split(block, "\n"), parseObserverRow)
}

// parseObserverRow reads the trailing numeric columns of a CSV row. The
// calendar date and the blank or flagged presence columns come first.
func parseObserverRow(line *string) (*observerRow, error) {
	var nums []float64

	for _, field := range strings.Split(*line, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err == nil {
			nums = append(nums, v)
		}
	}

	if len(nums) < observerColumns {
		return nil, fmt.Errorf("row %q: expected %d numeric columns, got %d", strings.TrimSpace(*line), observerColumns, len(nums))
	}

	tail := nums[len(nums)-observerColumns:]

	return &observerRow{Delta: tail[0], Longitude: tail[2], Latitude: tail[3]}, nil
}

// Check reports whether the client's circuit is open. It never calls
// Horizons. Implements ports.HealthChecker.
func (p *HorizonsProvider) Check(_ context.Context) error {
	if p.Client().CircuitState() == gobreaker.StateOpen {
		return domain.NewUnavailableError(p.ServiceName(), "circuit breaker open")
	}

	return nil
}

// Optional implements ports.OptionalChecker. A Horizons outage degrades
// the service; cached epochs may still be answered.
func (p *HorizonsProvider) Optional() bool {
	return true
}
