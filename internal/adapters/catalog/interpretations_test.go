package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/natal-chart-service/internal/domain"
)

func newResolver(t *testing.T, cfg InterpretationsConfig) *Interpretations {
	t.Helper()

	r, err := NewInterpretations(cfg)
	require.NoError(t, err)

	return r
}

func writeOverride(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestInterpretations_EmbeddedCatalogIsComplete(t *testing.T) {
	r := newResolver(t, InterpretationsConfig{})

	subjects := make([]string, 0, len(domain.AllBodies)+2)
	for _, b := range domain.AllBodies {
		subjects = append(subjects, b.String())
	}
	subjects = append(subjects, SubjectAscendant, SubjectMidheaven)

	for _, subject := range subjects {
		for s := domain.Aries; s <= domain.Pisces; s++ {
			text := r.Lookup(subject, s.String())
			assert.NotEqual(t, FallbackReading(subject, s.String()), text, "%s in %s", subject, s)
			assert.NotEmpty(t, text)
		}
	}
}

func TestInterpretations_Lookup(t *testing.T) {
	r := newResolver(t, InterpretationsConfig{})

	tests := []struct {
		name string
		body string
		sign string
		want string
	}{
		{
			name: "known pair",
			body: "Sun",
			sign: "Leo",
			want: "Your essence radiates through creativity and self-expression. You shine through dramatic flair, leadership, and generous spirit.",
		},
		{
			name: "case insensitive",
			body: "moon",
			sign: "CANCER",
			want: "Your emotional nature is deeply sensitive and nurturing. You need emotional security and strong family connections.",
		},
		{
			name: "unknown body falls back",
			body: "Chiron",
			sign: "Aries",
			want: "Chiron in Aries: A unique combination of planetary and zodiacal energies.",
		},
		{
			name: "unknown sign falls back",
			body: "Mars",
			sign: "Ophiuchus",
			want: "Mars in Ophiuchus: A unique combination of planetary and zodiacal energies.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Lookup(tt.body, tt.sign))
		})
	}
}

func TestInterpretations_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	writeOverride(t, path, "readings:\n  sun:\n    leo: Custom Leo sun.\n")

	r := newResolver(t, InterpretationsConfig{OverridePath: path})

	assert.Equal(t, "Custom Leo sun.", r.Lookup("Sun", "Leo"))
	assert.NotEqual(t, "Custom Leo sun.", r.Lookup("Sun", "Virgo"), "other pairs keep the embedded text")
}

func TestInterpretations_MissingOverrideIsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	r := newResolver(t, InterpretationsConfig{OverridePath: path})

	assert.NotEmpty(t, r.Lookup("Venus", "Libra"))
}

func TestInterpretations_MalformedOverride(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid yaml", "readings: [unclosed"},
		{"unknown subject", "readings:\n  Lilith:\n    Aries: text\n"},
		{"unknown sign", "readings:\n  Sun:\n    Arachne: text\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "overrides.yaml")
			writeOverride(t, path, tt.body)

			_, err := NewInterpretations(InterpretationsConfig{OverridePath: path})
			require.Error(t, err)
		})
	}
}

func TestInterpretations_ReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	writeOverride(t, path, "readings:\n  Mars:\n    Aries: First.\n")

	r := newResolver(t, InterpretationsConfig{OverridePath: path})
	require.Equal(t, "First.", r.Lookup("Mars", "Aries"))

	writeOverride(t, path, "readings: [broken")
	require.Error(t, r.Reload())
	assert.Equal(t, "First.", r.Lookup("Mars", "Aries"))

	require.NoError(t, os.Remove(path))
	require.NoError(t, r.Reload())
	assert.NotEqual(t, "First.", r.Lookup("Mars", "Aries"))
}

func TestInterpretations_Watch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	writeOverride(t, path, "readings:\n  Moon:\n    Pisces: Before.\n")

	r := newResolver(t, InterpretationsConfig{OverridePath: path, Debounce: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- r.Watch(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(50 * time.Millisecond)
	writeOverride(t, path, "readings:\n  Moon:\n    Pisces: After.\n")

	require.Eventually(t, func() bool {
		return r.Lookup("Moon", "Pisces") == "After."
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestInterpretations_WatchWithoutPath(t *testing.T) {
	r := newResolver(t, InterpretationsConfig{})

	require.Error(t, r.Watch(context.Background()))
}
