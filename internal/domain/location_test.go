package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeoLocation(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantLat float64
		wantLon float64
		wantErr bool
	}{
		{name: "new york", raw: "40.7128,-74.0060", wantLat: 40.7128, wantLon: -74.006},
		{name: "spaces around tokens", raw: " -33.8688 , 151.2093 ", wantLat: -33.8688, wantLon: 151.2093},
		{name: "poles and antimeridian", raw: "90,180", wantLat: 90, wantLon: 180},
		{name: "non numeric latitude", raw: "abc,123", wantErr: true},
		{name: "non numeric longitude", raw: "12,east", wantErr: true},
		{name: "missing longitude", raw: "12", wantErr: true},
		{name: "too many parts", raw: "1,2,3", wantErr: true},
		{name: "latitude out of range", raw: "91,0", wantErr: true},
		{name: "longitude out of range", raw: "0,-180.5", wantErr: true},
		{name: "NaN rejected", raw: "NaN,0", wantErr: true},
		{name: "Inf rejected", raw: "0,Inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseGeoLocation(tt.raw)

			if tt.wantErr {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.True(t, IsValidation(err))

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.wantLat, loc.Latitude(), 1e-9)
			assert.InDelta(t, tt.wantLon, loc.Longitude(), 1e-9)
		})
	}
}

func TestGeoLocation_String(t *testing.T) {
	loc, err := NewGeoLocation(51.5074, -0.1278)
	require.NoError(t, err)

	assert.Equal(t, "51.5074,-0.1278", loc.String())

	round, err := ParseGeoLocation(loc.String())
	require.NoError(t, err)
	assert.Equal(t, loc, round)
}
