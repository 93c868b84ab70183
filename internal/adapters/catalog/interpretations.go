// Package catalog holds the static data the service ships with: sign
// readings for the interpretation resolver and the preset city list.
package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen/natal-chart-service/internal/domain"
	"github.com/jsamuelsen/natal-chart-service/internal/ports"
)

//go:embed interpretations.yaml
var defaultReadings []byte

// Angle names accepted as reading subjects next to the bodies.
const (
	SubjectAscendant = "Ascendant"
	SubjectMidheaven = "Midheaven"
)

// DefaultReloadDebounce is how long Watch waits for writes to settle.
const DefaultReloadDebounce = 200 * time.Millisecond

// readings maps a canonical subject name to its text per sign.
type readings map[string]map[domain.Sign]string

type readingsFile struct {
	Readings map[string]map[string]string `yaml:"readings"`
}

// InterpretationsConfig configures the resolver.
type InterpretationsConfig struct {
	// OverridePath names a YAML file in the embedded file's format whose
	// entries take precedence. Optional.
	OverridePath string

	// Debounce is the settle time for Watch. Zero uses DefaultReloadDebounce.
	Debounce time.Duration

	Logger *slog.Logger
}

// Interpretations implements ports.InterpretationResolver over the embedded
// catalog and an optional override file.
type Interpretations struct {
	base     readings
	path     string
	debounce time.Duration
	logger   *slog.Logger

	mu       sync.RWMutex
	override readings
}

var _ ports.InterpretationResolver = (*Interpretations)(nil)

// NewInterpretations loads the embedded catalog and, if configured, the
// override file. A missing override file is not an error; a malformed one is.
func NewInterpretations(cfg InterpretationsConfig) (*Interpretations, error) {
	base, err := parseReadings(defaultReadings)
	if err != nil {
		return nil, fmt.Errorf("embedded interpretations: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultReloadDebounce
	}

	c := &Interpretations{
		base:     base,
		path:     cfg.OverridePath,
		debounce: debounce,
		logger:   logger.With(slog.String("component", "catalog.interpretations")),
	}

	if err := c.Reload(); err != nil {
		return nil, err
	}

	return c, nil
}

// FallbackReading is the text for a pair the catalog does not cover.
func FallbackReading(body, sign string) string {
	return fmt.Sprintf("%s in %s: A unique combination of planetary and zodiacal energies.",
		strings.TrimSpace(body), strings.TrimSpace(sign))
}

// Lookup implements ports.InterpretationResolver. Names are matched
// ignoring case.
func (c *Interpretations) Lookup(body, sign string) string {
	subject, ok := CanonicalSubject(body)
	if !ok {
		return FallbackReading(body, sign)
	}

	s, err := domain.ParseSign(sign)
	if err != nil {
		return FallbackReading(body, sign)
	}

	c.mu.RLock()
	override := c.override
	c.mu.RUnlock()

	if text, ok := override[subject][s]; ok {
		return text
	}

	if text, ok := c.base[subject][s]; ok {
		return text
	}

	return FallbackReading(subject, s.String())
}

// Reload re-reads the override file. On error the previous overrides stay
// in effect.
func (c *Interpretations) Reload() error {
	if c.path == "" {
		return nil
	}

	raw, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		c.setOverride(nil)
		c.logger.Debug("no interpretation override file", slog.String("path", c.path))

		return nil
	}

	if err != nil {
		return fmt.Errorf("reading interpretation overrides: %w", err)
	}

	parsed, err := parseReadings(raw)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", c.path, err)
	}

	c.setOverride(parsed)
	c.logger.Info("interpretation overrides loaded",
		slog.String("path", c.path),
		slog.Int("subjects", len(parsed)),
	)

	return nil
}

func (c *Interpretations) setOverride(r readings) {
	c.mu.Lock()
	c.override = r
	c.mu.Unlock()
}

// Watch reloads the override file whenever it changes, until ctx is done.
// The parent directory is watched so editors that replace the file by
// rename are seen too.
func (c *Interpretations) Watch(ctx context.Context) error {
	if c.path == "" {
		return errors.New("no override path configured")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	target := filepath.Clean(c.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	c.logger.InfoContext(ctx, "watching interpretation overrides", slog.String("path", target))

	var settle <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != target || event.Op == fsnotify.Chmod {
				continue
			}

			settle = time.After(c.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			c.logger.WarnContext(ctx, "override watcher error", slog.Any("error", err))

		case <-settle:
			settle = nil

			if err := c.Reload(); err != nil {
				c.logger.ErrorContext(ctx, "interpretation reload failed", slog.Any("error", err))
			}
		}
	}
}

func parseReadings(raw []byte) (readings, error) {
	var file readingsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, err
	}

	out := make(readings, len(file.Readings))

	for name, bySign := range file.Readings {
		subject, ok := CanonicalSubject(name)
		if !ok {
			return nil, domain.NewValidationErrorWithValue("readings", "unknown subject", name)
		}

		texts := make(map[domain.Sign]string, len(bySign))

		for signName, text := range bySign {
			s, err := domain.ParseSign(signName)
			if err != nil {
				return nil, err
			}

			texts[s] = strings.TrimSpace(text)
		}

		out[subject] = texts
	}

	return out, nil
}

// CanonicalSubject maps a body or angle name to its display form, or
// reports false for anything else.
func CanonicalSubject(name string) (string, bool) {
	if b, err := domain.ParseBody(name); err == nil {
		return b.String(), true
	}

	for _, angle := range []string{SubjectAscendant, SubjectMidheaven} {
		if strings.EqualFold(strings.TrimSpace(name), angle) {
			return angle, true
		}
	}

	return "", false
}
