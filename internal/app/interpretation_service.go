package app

import (
	"github.com/jsamuelsen/natal-chart-service/internal/domain"
	"github.com/jsamuelsen/natal-chart-service/internal/ports"
)

// Reading is the interpretation of one chart point.
type Reading struct {
	Subject string
	Sign    domain.Sign
	House   int // zero for the angles
	Text    string

	// Aspects lists the chart aspects touching the body; nil for the angles.
	Aspects []domain.Aspect
}

// InterpretationService turns a chart into readings.
type InterpretationService struct {
	resolver ports.InterpretationResolver
}

// NewInterpretationService creates an interpretation service.
func NewInterpretationService(resolver ports.InterpretationResolver) *InterpretationService {
	return &InterpretationService{resolver: resolver}
}

// Lookup resolves a single body/sign pair.
func (s *InterpretationService) Lookup(body domain.Body, sign domain.Sign) string {
	return s.resolver.Lookup(body.String(), sign.String())
}

// ForChart returns one reading per body in chart order, then the Ascendant
// and the Midheaven.
func (s *InterpretationService) ForChart(chart *domain.ChartResult) []Reading {
	if chart == nil {
		return nil
	}

	readings := make([]Reading, 0, len(chart.Bodies)+2)

	for _, p := range chart.Bodies {
		readings = append(readings, Reading{
			Subject: p.Body.String(),
			Sign:    p.Sign,
			House:   p.House,
			Text:    s.resolver.Lookup(p.Body.String(), p.Sign.String()),
			Aspects: aspectsOf(chart.Aspects, p.Body),
		})
	}

	for _, angle := range []domain.ChartAngle{chart.Ascendant, chart.Midheaven} {
		readings = append(readings, Reading{
			Subject: angle.Name,
			Sign:    angle.Sign,
			Text:    s.resolver.Lookup(angle.Name, angle.Sign.String()),
		})
	}

	return readings
}

func aspectsOf(aspects []domain.Aspect, body domain.Body) []domain.Aspect {
	var out []domain.Aspect

	for _, a := range aspects {
		if a.Involves(body) {
			out = append(out, a)
		}
	}

	return out
}
