package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "trace", want: LevelTrace},
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "", want: slog.LevelInfo},
		{in: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestSlogToCharmLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, slogToCharmLevel(LevelTrace))
	assert.Equal(t, log.DebugLevel, slogToCharmLevel(slog.LevelDebug))
	assert.Equal(t, log.InfoLevel, slogToCharmLevel(slog.LevelInfo))
	assert.Equal(t, log.WarnLevel, slogToCharmLevel(slog.LevelWarn))
	assert.Equal(t, log.ErrorLevel, slogToCharmLevel(slog.LevelError))
	assert.Equal(t, log.ErrorLevel, slogToCharmLevel(slog.LevelError+4))
}

func TestNewWithWriter_Formats(t *testing.T) {
	tests := []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{
			format: "json",
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, `"msg":"chart computed"`)
				assert.Contains(t, out, `"service_name":"natal-chart-service"`)
				assert.Contains(t, out, `"house_system":"P"`)
			},
		},
		{
			format: "text",
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, `msg="chart computed"`)
				assert.Contains(t, out, "service_version=1.0.0")
			},
		},
		{
			format: "pretty",
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "chart computed")
				assert.Contains(t, out, "house_system")
				assert.NotContains(t, out, `"msg"`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer

			logger := NewWithWriter(&Config{
				Level:   "info",
				Format:  tt.format,
				Service: "natal-chart-service",
				Version: "1.0.0",
			}, &buf)

			logger.Info("chart computed", slog.String("house_system", "P"))
			logger.Debug("body computed", slog.String("body", "Moon"))

			out := buf.String()
			tt.check(t, out)
			assert.NotContains(t, out, "body computed")
		})
	}
}

func TestNewWithWriter_TraceLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(&Config{Level: "trace", Format: "json"}, &buf)
	logger.Log(context.Background(), LevelTrace, "ephemeris call", slog.String("body", "Pluto"))

	assert.Contains(t, buf.String(), "ephemeris call")
}

func TestNewWithWriter_RotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	var console bytes.Buffer

	logger := NewWithWriter(&Config{
		Level:  "info",
		Format: "pretty",
		File: FileConfig{
			Enabled:    true,
			Path:       path,
			MaxSizeMB:  1,
			MaxBackups: 1,
		},
	}, &console)

	logger.Info("service started", slog.String("ephemeris", "analytic"), slog.String("latitude", "51.5074"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, console.String(), "service started")
	assert.Contains(t, string(data), `"msg":"service started"`)
	assert.Contains(t, string(data), `"ephemeris":"analytic"`)
	assert.NotContains(t, string(data), "51.5074")
}

type recordingSink struct {
	level slog.Level
	msgs  *[]string
	attrs []slog.Attr
	group string
	err   error
}

func (s *recordingSink) Enabled(_ context.Context, l slog.Level) bool { return l >= s.level }

func (s *recordingSink) Handle(_ context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	*s.msgs = append(*s.msgs, s.group+r.Message)
	return s.err
}

func (s *recordingSink) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *s
	c.attrs = append(append([]slog.Attr(nil), s.attrs...), attrs...)

	return &c
}

func (s *recordingSink) WithGroup(name string) slog.Handler {
	c := *s
	c.group = s.group + name + "."

	return &c
}

func TestTeeHandler(t *testing.T) {
	var consoleMsgs, fileMsgs []string

	console := &recordingSink{level: slog.LevelWarn, msgs: &consoleMsgs}
	file := &recordingSink{level: slog.LevelDebug, msgs: &fileMsgs}

	logger := slog.New(NewTeeHandler(console, nil, file))

	logger.Debug("cusps computed")
	logger.Warn("horizons slow")
	logger.WithGroup("chart").Error("failed")

	assert.Equal(t, []string{"horizons slow", "chart.failed"}, consoleMsgs)
	assert.Equal(t, []string{"cusps computed", "horizons slow", "chart.failed"}, fileMsgs)
}

func TestTeeHandler_Enabled(t *testing.T) {
	var msgs []string

	tee := NewTeeHandler(
		&recordingSink{level: slog.LevelError, msgs: &msgs},
		&recordingSink{level: slog.LevelInfo, msgs: &msgs},
	)

	assert.False(t, tee.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, tee.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, NewTeeHandler().Enabled(context.Background(), slog.LevelError))
}

func TestTeeHandler_JoinsErrors(t *testing.T) {
	var msgs []string

	errDisk := errors.New("disk full")
	errPipe := errors.New("broken pipe")

	tee := NewTeeHandler(
		&recordingSink{msgs: &msgs, err: errDisk},
		&recordingSink{msgs: &msgs},
		&recordingSink{msgs: &msgs, err: errPipe},
	)

	err := tee.Handle(context.Background(), slog.NewRecord(fixedTime, slog.LevelInfo, "chart computed", 0))

	require.Error(t, err)
	require.ErrorIs(t, err, errDisk)
	require.ErrorIs(t, err, errPipe)
	assert.Len(t, msgs, 3, "every sink receives the record")
}

func TestTeeHandler_WithAttrs(t *testing.T) {
	var msgs []string

	sink := &recordingSink{msgs: &msgs}
	derived := NewTeeHandler(sink).WithAttrs([]slog.Attr{slog.String("provider", "horizons")})

	tee, ok := derived.(*TeeHandler)
	require.True(t, ok)
	require.Len(t, tee.sinks, 1)

	got, ok := tee.sinks[0].(*recordingSink)
	require.True(t, ok)
	assert.Equal(t, "provider", got.attrs[0].Key)
	assert.Equal(t, "horizons", got.attrs[0].Value.String())
	assert.Empty(t, sink.attrs, "original sink is unchanged")
	assert.Same(t, tee, tee.WithGroup(""))
}
