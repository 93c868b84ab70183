package app

import (
	"cmp"
	"math"
	"slices"
	"strconv"

	"github.com/jsamuelsen/natal-chart-service/internal/domain"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/telemetry"
	"github.com/jsamuelsen/natal-chart-service/internal/ports"
)

// Wheel proportions, relative to the outer ring radius.
const (
	outerRadiusFactor = 0.45 // of min(width, height)
	innerRadiusFactor = 0.8
	bodyRadiusFactor  = 0.9
	declutterFactor   = 0.03
	houseLabelFactor  = 0.9 // of the inner radius

	retrogradeOffset = 15.0
	retrogradeGlyph  = "℞"
)

var aspectDash = []float64{5, 5}

// WheelStyle holds the colors and sizes used to draw a wheel.
type WheelStyle struct {
	Ring        string
	Division    string
	Cusp        string
	Text        string
	SignSize    float64
	HouseSize   float64
	BodySize    float64
	BodyColors  map[domain.Body]string
	AspectColor map[domain.AspectKind]string
}

// DefaultWheelStyle returns the standard palette.
func DefaultWheelStyle() WheelStyle {
	return WheelStyle{
		Ring:      "#000000",
		Division:  "#000000",
		Cusp:      "#666666",
		Text:      "#000000",
		SignSize:  16,
		HouseSize: 14,
		BodySize:  12,
		BodyColors: map[domain.Body]string{
			domain.Sun:     "#FFD700",
			domain.Moon:    "#C0C0C0",
			domain.Mercury: "#9966CC",
			domain.Venus:   "#FF69B4",
			domain.Mars:    "#FF0000",
			domain.Jupiter: "#4B0082",
			domain.Saturn:  "#8B4513",
			domain.Uranus:  "#00FFFF",
			domain.Neptune: "#000080",
			domain.Pluto:   "#800000",
		},
		AspectColor: map[domain.AspectKind]string{
			domain.Conjunction: "#000000",
			domain.Sextile:     "#00FF00",
			domain.Square:      "#FF0000",
			domain.Trine:       "#0000FF",
			domain.Opposition:  "#FF00FF",
		},
	}
}

// BodyColor returns the body's color, black when unset.
func (s WheelStyle) BodyColor(b domain.Body) string {
	if c, ok := s.BodyColors[b]; ok {
		return c
	}

	return "#000000"
}

// AspectKindColor returns the aspect's color, black when unset.
func (s WheelStyle) AspectKindColor(k domain.AspectKind) string {
	if c, ok := s.AspectColor[k]; ok {
		return c
	}

	return "#000000"
}

// Legend lists the colors used for bodies and every aspect kind, in
// drawing order.
func (s WheelStyle) Legend(bodies []domain.Body) []ports.LegendEntry {
	entries := make([]ports.LegendEntry, 0, len(bodies)+len(domain.AspectRules))

	for _, b := range bodies {
		entries = append(entries, ports.LegendEntry{
			Glyph: b.Symbol(),
			Label: b.String(),
			Color: s.BodyColor(b),
		})
	}

	for _, rule := range domain.AspectRules {
		entries = append(entries, ports.LegendEntry{
			Label: string(rule.Kind),
			Color: s.AspectKindColor(rule.Kind),
			Dash:  aspectDash,
		})
	}

	return entries
}

// WheelRenderer draws a chart as a radial wheel. It is stateless: the same
// chart on a surface of the same size always yields the same draw calls.
type WheelRenderer struct {
	style   WheelStyle
	metrics *telemetry.ChartMetrics
}

// NewWheelRenderer creates a renderer. A nil metrics is allowed.
func NewWheelRenderer(style WheelStyle, metrics *telemetry.ChartMetrics) *WheelRenderer {
	return &WheelRenderer{style: style, metrics: metrics}
}

// Style returns the renderer's palette.
func (r *WheelRenderer) Style() WheelStyle {
	return r.style
}

// ScreenAngle maps an ecliptic longitude to a screen angle in radians,
// putting 0° Aries at the top of the wheel.
func ScreenAngle(longitude float64) float64 {
	return (longitude - 90) * math.Pi / 180
}

// Polar converts a radius and screen angle around (cx, cy) to x, y.
func Polar(cx, cy, r, angle float64) (float64, float64) {
	return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
}

// wheelGeometry is derived from the surface size once per render.
type wheelGeometry struct {
	cx, cy       float64
	outer, inner float64
	body         float64
}

func newWheelGeometry(w, h float64) wheelGeometry {
	outer := min(w, h) * outerRadiusFactor

	return wheelGeometry{
		cx:    w / 2,
		cy:    h / 2,
		outer: outer,
		inner: outer * innerRadiusFactor,
		body:  outer * bodyRadiusFactor,
	}
}

// PlacedBody is a body's drawn position after decluttering.
type PlacedBody struct {
	Position domain.BodyPosition
	Radius   float64
	X, Y     float64
}

// Layout returns where each body of chart lands on a w×h surface, in
// drawing order (ascending longitude, ties by body id).
func Layout(chart *domain.ChartResult, w, h float64) []PlacedBody {
	g := newWheelGeometry(w, h)

	sorted := slices.Clone(chart.Bodies)
	slices.SortStableFunc(sorted, func(a, b domain.BodyPosition) int {
		if c := cmp.Compare(a.Longitude, b.Longitude); c != 0 {
			return c
		}

		return cmp.Compare(a.Body, b.Body)
	})

	placed := make([]PlacedBody, len(sorted))

	for i, p := range sorted {
		r := g.body + float64(i)*g.outer*declutterFactor
		x, y := Polar(g.cx, g.cy, r, ScreenAngle(p.Longitude))
		placed[i] = PlacedBody{Position: p, Radius: r, X: x, Y: y}
	}

	return placed
}

// Render clears surface and draws chart onto it. It does not consult the
// readiness gate; chart is expected to come from ComputeChart, which does.
func (r *WheelRenderer) Render(surface ports.Surface, chart *domain.ChartResult) error {
	if chart == nil {
		return domain.NewValidationError("chart", "is required")
	}

	if surface == nil {
		return domain.NewValidationError("surface", "is required")
	}

	surface.Clear()

	w, h := surface.Size()
	if w <= 0 || h <= 0 {
		return domain.NewValidationErrorWithValue("surface", "must have a positive size", [2]float64{w, h})
	}

	g := newWheelGeometry(w, h)

	r.drawRings(surface, g)
	r.drawSigns(surface, g)
	r.drawHouses(surface, g, chart.Houses.Cusps)

	placed := Layout(chart, w, h)
	r.drawBodies(surface, placed)
	r.drawAspects(surface, placed, chart.Aspects)

	r.metrics.WheelRendered()

	return nil
}

func (r *WheelRenderer) drawRings(s ports.Surface, g wheelGeometry) {
	ring := ports.Stroke{Color: r.style.Ring, Width: 2}

	s.Arc(g.cx, g.cy, g.outer, 0, 2*math.Pi, ring)
	s.Arc(g.cx, g.cy, g.inner, 0, 2*math.Pi, ring)
}

func (r *WheelRenderer) drawSigns(s ports.Surface, g wheelGeometry) {
	division := ports.Stroke{Color: r.style.Division, Width: 1}
	labelRadius := (g.outer + g.inner) / 2

	for i := range 12 {
		a := ScreenAngle(float64(i) * domain.DegreesPerSign)
		x1, y1 := Polar(g.cx, g.cy, g.inner, a)
		x2, y2 := Polar(g.cx, g.cy, g.outer, a)
		s.Line(x1, y1, x2, y2, division)

		mid := ScreenAngle(float64(i)*domain.DegreesPerSign + domain.DegreesPerSign/2)
		x, y := Polar(g.cx, g.cy, labelRadius, mid)
		s.Text(x, y, domain.Sign(i).Symbol(), ports.TextStyle{
			Color:    r.style.Text,
			Size:     r.style.SignSize,
			Rotation: mid + math.Pi/2,
			Anchor:   ports.AnchorMiddle,
		})
	}
}

func (r *WheelRenderer) drawHouses(s ports.Surface, g wheelGeometry, cusps [12]float64) {
	stroke := ports.Stroke{Color: r.style.Cusp, Width: 1}
	labelRadius := g.inner * houseLabelFactor

	for i, cusp := range cusps {
		x, y := Polar(g.cx, g.cy, g.inner, ScreenAngle(cusp))
		s.Line(g.cx, g.cy, x, y, stroke)

		span := domain.NormalizeDegrees(cusps[(i+1)%12] - cusp)
		lx, ly := Polar(g.cx, g.cy, labelRadius, ScreenAngle(cusp+span/2))
		s.Text(lx, ly, strconv.Itoa(i+1), ports.TextStyle{
			Color:  r.style.Cusp,
			Size:   r.style.HouseSize,
			Anchor: ports.AnchorMiddle,
		})
	}
}

func (r *WheelRenderer) drawBodies(s ports.Surface, placed []PlacedBody) {
	for _, p := range placed {
		color := r.style.BodyColor(p.Position.Body)

		s.Text(p.X, p.Y, p.Position.Body.Symbol(), ports.TextStyle{
			Color:  color,
			Size:   r.style.BodySize,
			Anchor: ports.AnchorMiddle,
		})

		if p.Position.Retrograde {
			// Polar about the origin gives the offset along the body's radial.
			dx, dy := Polar(0, 0, retrogradeOffset, ScreenAngle(p.Position.Longitude))
			s.Text(p.X+dx, p.Y+dy, retrogradeGlyph, ports.TextStyle{
				Color:  color,
				Size:   r.style.BodySize * 0.75,
				Anchor: ports.AnchorMiddle,
			})
		}
	}
}

func (r *WheelRenderer) drawAspects(s ports.Surface, placed []PlacedBody, aspects []domain.Aspect) {
	at := make(map[domain.Body]PlacedBody, len(placed))
	for _, p := range placed {
		at[p.Position.Body] = p
	}

	for _, a := range aspects {
		first, ok1 := at[a.First]
		second, ok2 := at[a.Second]

		if !ok1 || !ok2 {
			continue
		}

		s.Line(first.X, first.Y, second.X, second.Y, ports.Stroke{
			Color: r.style.AspectKindColor(a.Kind),
			Width: 1,
			Dash:  aspectDash,
		})
	}
}
