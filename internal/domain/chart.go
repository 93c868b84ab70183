package domain

// EclipticPosition is what an ephemeris returns for one body at one instant.
type EclipticPosition struct {
	Longitude      float64
	Latitude       float64
	Distance       float64
	LongitudeSpeed float64
	LatitudeSpeed  float64
	DistanceSpeed  float64
}

// Finite reports whether every component is a finite number.
func (p EclipticPosition) Finite() bool {
	return isFinite(p.Longitude) && isFinite(p.Latitude) && isFinite(p.Distance) &&
		isFinite(p.LongitudeSpeed) && isFinite(p.LatitudeSpeed) && isFinite(p.DistanceSpeed)
}

// BodyPosition is a body placed in a chart.
type BodyPosition struct {
	Body           Body
	Longitude      float64
	Latitude       float64
	Distance       float64
	LongitudeSpeed float64
	Sign           Sign
	DegreeInSign   float64
	House          int
	Retrograde     bool
}

// PlaceBody derives sign, house and retrograde flag from a raw position.
func PlaceBody(body Body, pos EclipticPosition, houses HouseSystem) BodyPosition {
	lon := NormalizeDegrees(pos.Longitude)

	return BodyPosition{
		Body:           body,
		Longitude:      lon,
		Latitude:       pos.Latitude,
		Distance:       pos.Distance,
		LongitudeSpeed: pos.LongitudeSpeed,
		Sign:           SignOf(lon),
		DegreeInSign:   DegreeInSign(lon),
		House:          houses.HouseOf(lon),
		Retrograde:     pos.LongitudeSpeed < 0,
	}
}

// ChartAngle is a sensitive point of the chart such as the Ascendant.
type ChartAngle struct {
	Name         string
	Longitude    float64
	Sign         Sign
	DegreeInSign float64
}

// NewChartAngle builds a named angle from a longitude.
func NewChartAngle(name string, longitude float64) ChartAngle {
	lon := NormalizeDegrees(longitude)

	return ChartAngle{Name: name, Longitude: lon, Sign: SignOf(lon), DegreeInSign: DegreeInSign(lon)}
}

// ChartResult is a fully computed birth chart.
type ChartResult struct {
	Moment            BirthMoment
	Location          GeoLocation
	JulianDay         float64
	LocalSiderealTime float64
	Zodiac            ZodiacMode
	Bodies            []BodyPosition
	Houses            HouseSystem
	Aspects           []Aspect
	Ascendant         ChartAngle
	Midheaven         ChartAngle
}

// Position returns the placement of body b, if it is in the chart.
func (c *ChartResult) Position(b Body) (BodyPosition, bool) {
	for _, p := range c.Bodies {
		if p.Body == b {
			return p, true
		}
	}

	return BodyPosition{}, false
}

// Verify checks the invariants every computed chart must satisfy.
func (c *ChartResult) Verify() error {
	if !c.Houses.Finite() {
		return NewCalculationError(StageVerify, "houses", nil)
	}

	for _, p := range c.Bodies {
		if !isFinite(p.Longitude) || p.Longitude < 0 || p.Longitude >= 360 {
			return NewCalculationError(StageVerify, p.Body.String(), nil)
		}

		if p.House < 1 || p.House > 12 {
			return NewCalculationError(StageVerify, p.Body.String(), nil)
		}
	}

	return nil
}
