package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/natal-chart-service/internal/domain"
	"github.com/jsamuelsen/natal-chart-service/internal/mocks"
)

func TestInterpretationService_ForChart(t *testing.T) {
	resolver := mocks.NewMockInterpretationResolver(t)
	resolver.EXPECT().Lookup("Sun", "Leo").Return("sun text").Once()
	resolver.EXPECT().Lookup("Moon", "Pisces").Return("moon text").Once()
	resolver.EXPECT().Lookup("Ascendant", "Aries").Return("rising text").Once()
	resolver.EXPECT().Lookup("Midheaven", "Capricorn").Return("mc text").Once()

	chart := &domain.ChartResult{
		Bodies: []domain.BodyPosition{
			{Body: domain.Sun, Sign: domain.Leo, House: 5},
			{Body: domain.Moon, Sign: domain.Pisces, House: 12},
		},
		Ascendant: domain.NewChartAngle("Ascendant", 10),
		Midheaven: domain.NewChartAngle("Midheaven", 280),
	}

	readings := NewInterpretationService(resolver).ForChart(chart)

	require.Len(t, readings, 4)
	assert.Equal(t, Reading{Subject: "Sun", Sign: domain.Leo, House: 5, Text: "sun text"}, readings[0])
	assert.Equal(t, Reading{Subject: "Moon", Sign: domain.Pisces, House: 12, Text: "moon text"}, readings[1])
	assert.Equal(t, "rising text", readings[2].Text)
	assert.Zero(t, readings[2].House)
	assert.Equal(t, "Midheaven", readings[3].Subject)
}

func TestInterpretationService_Lookup(t *testing.T) {
	resolver := mocks.NewMockInterpretationResolver(t)
	resolver.EXPECT().Lookup("Venus", "Taurus").Return("venus text")

	assert.Equal(t, "venus text", NewInterpretationService(resolver).Lookup(domain.Venus, domain.Taurus))
}

func TestInterpretationService_NilChart(t *testing.T) {
	assert.Nil(t, NewInterpretationService(mocks.NewMockInterpretationResolver(t)).ForChart(nil))
}

func TestInterpretationService_ForChartListsBodyAspects(t *testing.T) {
	resolver := mocks.NewMockInterpretationResolver(t)
	resolver.EXPECT().Lookup(mock.Anything, mock.Anything).Return("text")

	trine := domain.Aspect{First: domain.Sun, Second: domain.Moon, Kind: domain.Trine, Angle: 120, Orb: 1.5}
	square := domain.Aspect{First: domain.Moon, Second: domain.Mars, Kind: domain.Square, Angle: 90, Orb: 0.5}

	chart := &domain.ChartResult{
		Bodies: []domain.BodyPosition{
			{Body: domain.Sun, Sign: domain.Aries, House: 1},
			{Body: domain.Moon, Sign: domain.Leo, House: 5},
			{Body: domain.Mars, Sign: domain.Taurus, House: 2},
			{Body: domain.Venus, Sign: domain.Gemini, House: 3},
		},
		Aspects: []domain.Aspect{trine, square},
	}

	readings := NewInterpretationService(resolver).ForChart(chart)

	require.Len(t, readings, 6)
	assert.Equal(t, []domain.Aspect{trine}, readings[0].Aspects)
	assert.Equal(t, []domain.Aspect{trine, square}, readings[1].Aspects)
	assert.Equal(t, []domain.Aspect{square}, readings[2].Aspects)
	assert.Nil(t, readings[3].Aspects)
	assert.Nil(t, readings[4].Aspects, "angles carry no aspects")
}
