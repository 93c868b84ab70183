package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(b Body, lon float64) BodyPosition {
	return BodyPosition{Body: b, Longitude: lon}
}

func TestFindAspect(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float64
		want     AspectKind
		wantOrb  float64
		noAspect bool
	}{
		{name: "exact sextile", a: 10, b: 70, want: Sextile, wantOrb: 0},
		{name: "identical longitudes", a: 123.4, b: 123.4, want: Conjunction, wantOrb: 0},
		{name: "conjunction across zero", a: 355, b: 3, want: Conjunction, wantOrb: 8},
		{name: "square", a: 0, b: 275, want: Square, wantOrb: 5},
		{name: "trine", a: 100, b: 221, want: Trine, wantOrb: 1},
		{name: "opposition", a: 15, b: 195, want: Opposition, wantOrb: 0},
		{name: "just outside conjunction orb", a: 0, b: 8.5, noAspect: true},
		{name: "between sextile and square", a: 0, b: 75, noAspect: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aspect, ok := FindAspect(at(Sun, tt.a), at(Moon, tt.b), TieBreakPriority)

			if tt.noAspect {
				assert.False(t, ok)

				return
			}

			require.True(t, ok)
			assert.Equal(t, tt.want, aspect.Kind)
			assert.InDelta(t, tt.wantOrb, aspect.Orb, 1e-9)
		})
	}
}

func TestFindAspect_Symmetric(t *testing.T) {
	for a := 0.0; a < 360; a += 17.5 {
		for b := 0.0; b < 360; b += 11.25 {
			ab, okAB := FindAspect(at(Mars, a), at(Venus, b), TieBreakPriority)
			ba, okBA := FindAspect(at(Venus, b), at(Mars, a), TieBreakPriority)

			require.Equal(t, okAB, okBA)
			require.Equal(t, ab, ba)

			if okAB {
				assert.Equal(t, Venus, ab.First)
				assert.Equal(t, Mars, ab.Second)
			}
		}
	}
}

func TestFindAspects(t *testing.T) {
	positions := []BodyPosition{at(Mars, 240), at(Sun, 0), at(Moon, 120), at(Saturn, 45)}

	aspects := FindAspects(positions, TieBreakPriority)

	require.Len(t, aspects, 3)

	for _, a := range aspects {
		assert.Equal(t, Trine, a.Kind)
		assert.Less(t, a.First, a.Second)
		assert.False(t, a.Involves(Saturn))
	}

	assert.NotNil(t, FindAspects(nil, TieBreakPriority))
}

func TestClassifySeparation_PoliciesAgreeOnDisjointTable(t *testing.T) {
	for diff := 0.0; diff <= 180; diff += 0.5 {
		p, pOrb, pOK := ClassifySeparation(diff, TieBreakPriority)
		s, sOrb, sOK := ClassifySeparation(diff, TieBreakTightest)

		require.Equal(t, pOK, sOK, "diff %v", diff)

		if pOK {
			assert.Equal(t, p.Kind, s.Kind)
			assert.InDelta(t, pOrb, sOrb, 1e-12)
		}
	}
}

func TestParseTieBreak(t *testing.T) {
	p, err := ParseTieBreak("")
	require.NoError(t, err)
	assert.Equal(t, TieBreakPriority, p)

	p, err = ParseTieBreak("Tightest")
	require.NoError(t, err)
	assert.Equal(t, TieBreakTightest, p)

	_, err = ParseTieBreak("loosest")
	assert.True(t, IsValidation(err))
}

func TestSeparation(t *testing.T) {
	assert.InDelta(t, 20, Separation(350, 10), 1e-12)
	assert.InDelta(t, 180, Separation(0, 180), 1e-12)
	assert.InDelta(t, Separation(33, 271), Separation(271, 33), 1e-12)
}
