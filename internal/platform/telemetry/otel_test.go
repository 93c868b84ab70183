package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestNew_Disabled(t *testing.T) {
	p, err := New(context.Background(), &Config{Enabled: false, Endpoint: "unused:4317"})
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNewResource(t *testing.T) {
	tests := []struct {
		name          string
		ephemeris     string
		wantEphemeris bool
	}{
		{name: "with ephemeris", ephemeris: "horizons", wantEphemeris: true},
		{name: "without ephemeris"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newResource(&Config{
				ServiceName: "natal-chart-service",
				Version:     "1.2.0",
				Environment: "qa",
				Ephemeris:   tt.ephemeris,
			})
			require.NoError(t, err)

			set := res.Set()

			name, ok := set.Value(attribute.Key("service.name"))
			require.True(t, ok)
			assert.Equal(t, "natal-chart-service", name.AsString())

			version, ok := set.Value(attribute.Key("service.version"))
			require.True(t, ok)
			assert.Equal(t, "1.2.0", version.AsString())

			eph, ok := set.Value(attribute.Key("natal_chart.ephemeris"))
			assert.Equal(t, tt.wantEphemeris, ok)

			if tt.wantEphemeris {
				assert.Equal(t, "horizons", eph.AsString())
			}
		})
	}
}

func TestTracer(t *testing.T) {
	assert.NotNil(t, Tracer("app"))
}
