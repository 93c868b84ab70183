package dto

import (
	"encoding/json"
	"time"

	"github.com/jsamuelsen/natal-chart-service/internal/domain"
)

// ChartRequest is the body of the chart endpoints. Date and time fields
// accept JSON numbers or numeric strings, matching what HTML forms submit.
// Exactly one of Location ("lat,lon") and City is required.
type ChartRequest struct {
	Year        json.Number `json:"year"                  validate:"required"`
	Month       json.Number `json:"month"                 validate:"required"`
	Day         json.Number `json:"day"                   validate:"required"`
	Hour        json.Number `json:"hour"                  validate:"required"`
	Minute      json.Number `json:"minute"                validate:"required"`
	Period      string      `json:"period,omitempty"      validate:"omitempty,period"`
	Location    string      `json:"location,omitempty"    validate:"required_without=City,excluded_with=City"`
	City        string      `json:"city,omitempty"        validate:"required_without=Location"`
	Bodies      []string    `json:"bodies,omitempty"      validate:"omitempty,max=10,unique,dive,body"`
	HouseSystem string      `json:"houseSystem,omitempty" validate:"omitempty,housesystem"`
	Zodiac      string      `json:"zodiac,omitempty"      validate:"omitempty,zodiac"`
}

// BirthFields returns the raw date and time fields for domain parsing.
func (r *ChartRequest) BirthFields() domain.BirthFields {
	return domain.BirthFields{
		Year:   r.Year.String(),
		Month:  r.Month.String(),
		Day:    r.Day.String(),
		Hour:   r.Hour.String(),
		Minute: r.Minute.String(),
		Period: r.Period,
	}
}

// BatchChartRequest is one entry of a batch. ID is echoed back; a UUID is
// assigned when it is empty.
type BatchChartRequest struct {
	ID string `json:"id,omitempty" validate:"omitempty,uuid"`
	ChartRequest
}

// BatchRequest is the body of POST /charts/batch.
type BatchRequest struct {
	Charts []BatchChartRequest `json:"charts" validate:"required,min=1,dive"`
}

// WheelQuery holds the query parameters of POST /charts/wheel.
type WheelQuery struct {
	Size   int  `form:"size"   validate:"omitempty,gte=100,lte=4096"`
	Legend bool `form:"legend"`
}

// ChartQuery holds the query parameters of POST /charts.
type ChartQuery struct {
	Interpret bool `form:"interpret"`
}

// LocationResponse is a geographic coordinate pair.
type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// BodyResponse is one placed body.
type BodyResponse struct {
	Body         string  `json:"body"`
	Symbol       string  `json:"symbol"`
	Longitude    float64 `json:"longitude"`
	Latitude     float64 `json:"latitude"`
	Distance     float64 `json:"distance"`
	Speed        float64 `json:"speed"`
	Sign         string  `json:"sign"`
	SignSymbol   string  `json:"signSymbol"`
	DegreeInSign float64 `json:"degreeInSign"`
	House        int     `json:"house"`
	Retrograde   bool    `json:"retrograde"`
}

// AngleResponse is the Ascendant or the Midheaven.
type AngleResponse struct {
	Name         string  `json:"name"`
	Longitude    float64 `json:"longitude"`
	Sign         string  `json:"sign"`
	DegreeInSign float64 `json:"degreeInSign"`
}

// HousesResponse is the chart's house division.
type HousesResponse struct {
	System string      `json:"system"`
	Code   string      `json:"code"`
	Cusps  [12]float64 `json:"cusps"`
	ARMC   float64     `json:"armc"`
	Vertex float64     `json:"vertex"`
}

// AspectResponse is one aspect between two bodies.
type AspectResponse struct {
	First  string  `json:"first"`
	Second string  `json:"second"`
	Kind   string  `json:"kind"`
	Angle  float64 `json:"angle"`
	Orb    float64 `json:"orb"`
}

// ReadingResponse is the interpretation of one chart point.
type ReadingResponse struct {
	Subject string `json:"subject"`
	Sign    string `json:"sign"`
	House   int    `json:"house,omitempty"`
	Text    string `json:"text"`
}

// ChartResponse is a computed chart.
type ChartResponse struct {
	Moment            time.Time         `json:"moment"`
	Location          LocationResponse  `json:"location"`
	JulianDay         float64           `json:"julianDay"`
	LocalSiderealTime float64           `json:"localSiderealTime"`
	Zodiac            string            `json:"zodiac"`
	Provider          string            `json:"provider"`
	Ascendant         AngleResponse     `json:"ascendant"`
	Midheaven         AngleResponse     `json:"midheaven"`
	Houses            HousesResponse    `json:"houses"`
	Bodies            []BodyResponse    `json:"bodies"`
	Aspects           []AspectResponse  `json:"aspects"`
	Interpretations   []ReadingResponse `json:"interpretations,omitempty"`
}

// BatchResult is the outcome of one batch entry: a chart or an error.
type BatchResult struct {
	ID    string         `json:"id"`
	Chart *ChartResponse `json:"chart,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// BatchResponse lists batch results in request order.
type BatchResponse struct {
	Results   []BatchResult `json:"results"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}

// CityResponse is one catalog city.
type CityResponse struct {
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationsQuery holds the query parameters of GET /locations.
type LocationsQuery struct {
	PaginationRequest
	Region string `form:"region"`
}

// InterpretationResponse is a single resolver lookup.
type InterpretationResponse struct {
	Subject string `json:"subject"`
	Sign    string `json:"sign"`
	Text    string `json:"text"`
}

// NewBodyResponse converts a placed body.
func NewBodyResponse(p domain.BodyPosition) BodyResponse {
	return BodyResponse{
		Body:         p.Body.String(),
		Symbol:       p.Body.Symbol(),
		Longitude:    p.Longitude,
		Latitude:     p.Latitude,
		Distance:     p.Distance,
		Speed:        p.LongitudeSpeed,
		Sign:         p.Sign.String(),
		SignSymbol:   p.Sign.Symbol(),
		DegreeInSign: p.DegreeInSign,
		House:        p.House,
		Retrograde:   p.Retrograde,
	}
}

func newAngleResponse(a domain.ChartAngle) AngleResponse {
	return AngleResponse{
		Name:         a.Name,
		Longitude:    a.Longitude,
		Sign:         a.Sign.String(),
		DegreeInSign: a.DegreeInSign,
	}
}

// NewChartResponse converts a computed chart. provider names the ephemeris
// that produced it.
func NewChartResponse(chart *domain.ChartResult, provider string) *ChartResponse {
	bodies := make([]BodyResponse, len(chart.Bodies))
	for i, p := range chart.Bodies {
		bodies[i] = NewBodyResponse(p)
	}

	aspects := make([]AspectResponse, len(chart.Aspects))
	for i, a := range chart.Aspects {
		aspects[i] = AspectResponse{
			First:  a.First.String(),
			Second: a.Second.String(),
			Kind:   string(a.Kind),
			Angle:  a.Angle,
			Orb:    a.Orb,
		}
	}

	return &ChartResponse{
		Moment: chart.Moment.UTC(),
		Location: LocationResponse{
			Latitude:  chart.Location.Latitude(),
			Longitude: chart.Location.Longitude(),
		},
		JulianDay:         chart.JulianDay,
		LocalSiderealTime: chart.LocalSiderealTime,
		Zodiac:            string(chart.Zodiac),
		Provider:          provider,
		Ascendant:         newAngleResponse(chart.Ascendant),
		Midheaven:         newAngleResponse(chart.Midheaven),
		Houses: HousesResponse{
			System: chart.Houses.Code.String(),
			Code:   string(chart.Houses.Code),
			Cusps:  chart.Houses.Cusps,
			ARMC:   chart.Houses.ARMC,
			Vertex: chart.Houses.Vertex,
		},
		Bodies:  bodies,
		Aspects: aspects,
	}
}

// NewCityResponse converts a catalog city.
func NewCityResponse(c domain.City) CityResponse {
	return CityResponse{
		Name:      c.Name,
		Region:    c.Region,
		Latitude:  c.Location.Latitude(),
		Longitude: c.Location.Longitude(),
	}
}
