package ephemeris

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/natal-chart-service/internal/domain"
)

const eps2000 = 23.4392911

func angleDelta(a, b float64) float64 {
	return math.Abs(math.Remainder(a-b, 360))
}

func TestHousesFromARMC_Angles(t *testing.T) {
	tests := []struct {
		armc, lat     float64
		wantMC        float64
		wantAscendant float64
	}{
		{armc: 0, lat: 0, wantMC: 0, wantAscendant: 90},
		{armc: 90, lat: 0, wantMC: 90, wantAscendant: 180},
		{armc: 180, lat: 0, wantMC: 180, wantAscendant: 270},
		{armc: 270, lat: 0, wantMC: 270, wantAscendant: 0},
	}

	for _, tt := range tests {
		h, err := housesFromARMC(tt.armc, tt.lat, eps2000, domain.HouseEqual)
		require.NoError(t, err)

		assert.InDelta(t, 0, angleDelta(tt.wantMC, h.Midheaven), 1e-9, "armc %v", tt.armc)
		assert.InDelta(t, 0, angleDelta(tt.wantAscendant, h.Ascendant), 1e-9, "armc %v", tt.armc)
		assert.InDelta(t, tt.armc, h.ARMC, 1e-9)
	}
}

func TestHousesFromARMC_Systems(t *testing.T) {
	const armc, lat = 123.4, 51.5

	t.Run("equal", func(t *testing.T) {
		h, err := housesFromARMC(armc, lat, eps2000, domain.HouseEqual)
		require.NoError(t, err)

		assert.InDelta(t, h.Ascendant, h.Cusps[0], 1e-9)
		for i := range 12 {
			assert.InDelta(t, 30, domain.NormalizeDegrees(h.Cusps[(i+1)%12]-h.Cusps[i]), 1e-9)
		}
	})

	t.Run("whole sign", func(t *testing.T) {
		h, err := housesFromARMC(armc, lat, eps2000, domain.HouseWholeSign)
		require.NoError(t, err)

		assert.Equal(t, domain.SignOf(h.Ascendant), domain.SignOf(h.Cusps[0]))
		for _, c := range h.Cusps {
			assert.InDelta(t, 0, math.Mod(c, 30), 1e-9)
		}
	})

	for _, system := range []domain.HouseSystemCode{domain.HousePorphyry, domain.HousePlacidus} {
		t.Run(system.String(), func(t *testing.T) {
			h, err := housesFromARMC(armc, lat, eps2000, system)
			require.NoError(t, err)

			assert.InDelta(t, h.Ascendant, h.Cusps[0], 1e-9)
			assert.InDelta(t, h.Midheaven, h.Cusps[9], 1e-9)
			assert.InDelta(t, 0, angleDelta(h.Midheaven+180, h.Cusps[3]), 1e-9)

			// Cusps advance around the circle exactly once.
			var total float64
			for i := range 12 {
				step := domain.NormalizeDegrees(h.Cusps[(i+1)%12] - h.Cusps[i])
				assert.Positive(t, step)
				total += step
			}

			assert.InDelta(t, 360, total, 1e-6)
		})
	}
}

func TestPlacidus_EquatorTrisectsRightAscension(t *testing.T) {
	const armc = 40.0

	h, err := housesFromARMC(armc, 0, eps2000, domain.HousePlacidus)
	require.NoError(t, err)

	// Semi-arcs are 90° at the equator, so cusps fall at fixed right ascensions.
	assert.InDelta(t, 0, angleDelta(raToEcliptic(armc+30, eps2000), h.Cusps[10]), 1e-6)
	assert.InDelta(t, 0, angleDelta(raToEcliptic(armc+60, eps2000), h.Cusps[11]), 1e-6)
	assert.InDelta(t, 0, angleDelta(raToEcliptic(armc+120, eps2000), h.Cusps[1]), 1e-6)
	assert.InDelta(t, 0, angleDelta(raToEcliptic(armc+150, eps2000), h.Cusps[2]), 1e-6)
}

func TestPlacidus_PolarFallsBackToPorphyry(t *testing.T) {
	placidus, err := housesFromARMC(200, 70, eps2000, domain.HousePlacidus)
	require.NoError(t, err)

	porphyry, err := housesFromARMC(200, 70, eps2000, domain.HousePorphyry)
	require.NoError(t, err)

	assert.Equal(t, porphyry.Cusps, placidus.Cusps)
}

func TestComputeHouses_UnsupportedSystem(t *testing.T) {
	_, err := ComputeHouses(J2000, 0, 0, "K")

	assert.True(t, domain.IsValidation(err))
}

func TestComputeHouses_UsesLocalSiderealTime(t *testing.T) {
	greenwich, err := ComputeHouses(J2000, 51.5, 0, domain.HouseEqual)
	require.NoError(t, err)

	east, err := ComputeHouses(J2000, 51.5, 15, domain.HouseEqual)
	require.NoError(t, err)

	assert.InDelta(t, 0, angleDelta(greenwich.ARMC+15, east.ARMC), 1e-9)
	assert.InDelta(t, 280.46, greenwich.ARMC, 0.01)
}
