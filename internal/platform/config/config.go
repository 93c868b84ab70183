// Package config loads the service configuration with koanf and validates
// it before anything starts.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Defaults that tests and other packages refer to by name.
const (
	DefaultServerPort     = 8080
	DefaultMaxRequestSize = 1 << 20

	DefaultClientRetryMaxAttempts     = 3
	DefaultClientRetryMultiplier      = 2.0
	DefaultClientRetryJitterFactor    = 0.25 // ±25%
	DefaultClientCircuitMaxFailures   = 5
	DefaultClientCircuitHalfOpenLimit = 3

	DefaultTransportMaxIdleConns        = 100
	DefaultTransportMaxIdleConnsPerHost = 10

	DefaultLogFileMaxSizeMB  = 100
	DefaultLogFileMaxBackups = 3
	DefaultLogFileMaxAgeDays = 28

	// DefaultInitAttempts bounds ephemeris initialization polling.
	DefaultInitAttempts = 10

	// DefaultBatchLimit is how many charts of one batch compute at once;
	// DefaultBatchMax is how many one batch may hold.
	DefaultBatchLimit = 4
	DefaultBatchMax   = 20

	DefaultWheelSize   = 600
	DefaultPageSize    = 20
	DefaultMaxPageSize = 100
)

// Ephemeris provider names.
const (
	ProviderAnalytic = "analytic"
	ProviderHorizons = "horizons"
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
	Services  ServicesConfig  `koanf:"services"  validate:"required"`
	Ephemeris EphemerisConfig `koanf:"ephemeris" validate:"required"`
	Chart     ChartConfig     `koanf:"chart"     validate:"required"`
	Render    RenderConfig    `koanf:"render"    validate:"required"`
	API       APIConfig       `koanf:"api"       validate:"required"`
	Catalog   CatalogConfig   `koanf:"catalog"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,hostname_port"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
	Insecure     bool    `koanf:"insecure"`
}

// ClientConfig contains HTTP client settings for downstream services.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// RetryConfig contains retry settings for HTTP clients.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig contains circuit breaker settings for HTTP clients.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// ServicesConfig contains configuration for downstream services.
type ServicesConfig struct {
	Horizons ServiceEndpointConfig `koanf:"horizons" validate:"required"`
}

// ServiceEndpointConfig contains configuration for a downstream service endpoint.
type ServiceEndpointConfig struct {
	BaseURL string `koanf:"base_url" validate:"required,url"`
	Name    string `koanf:"name"     validate:"required"`
}

// EphemerisConfig selects and tunes the ephemeris provider.
type EphemerisConfig struct {
	Provider     string         `koanf:"provider"      validate:"required,oneof=analytic horizons"`
	InitAttempts int            `koanf:"init_attempts" validate:"required,min=1,max=100"`
	InitInterval time.Duration  `koanf:"init_interval" validate:"required,min=10ms"`
	Horizons     HorizonsConfig `koanf:"horizons"`
}

// HorizonsConfig tunes the JPL Horizons provider.
type HorizonsConfig struct {
	CacheTTL     time.Duration `koanf:"cache_ttl"     validate:"min=0"`
	CacheCleanup time.Duration `koanf:"cache_cleanup" validate:"min=0"`
	RateLimit    float64       `koanf:"rate_limit"    validate:"min=0"`
	RateBurst    int           `koanf:"rate_burst"    validate:"min=0"`
}

// ChartConfig holds chart defaults.
type ChartConfig struct {
	HouseSystem    string   `koanf:"house_system"    validate:"required,housesystem"`
	Zodiac         string   `koanf:"zodiac"          validate:"required,oneof=tropical sidereal"`
	Bodies         []string `koanf:"bodies"          validate:"omitempty,unique,dive,body"`
	AspectTieBreak string   `koanf:"aspect_tiebreak" validate:"required,oneof=priority tightest"`
	BatchLimit     int      `koanf:"batch_limit"     validate:"required,min=1,max=64"`
	BatchMax       int      `koanf:"batch_max"       validate:"required,min=1,max=500"`
}

// RenderConfig holds wheel rendering defaults.
type RenderConfig struct {
	Width  int `koanf:"width"  validate:"required,min=100,max=4096"`
	Height int `koanf:"height" validate:"required,min=100,max=4096"`
}

// APIConfig holds settings for the public API routes.
type APIConfig struct {
	RateLimit       float64       `koanf:"rate_limit"        validate:"min=0"`
	RateBurst       int           `koanf:"rate_burst"        validate:"required_with=RateLimit,omitempty,min=1"`
	RequestTimeout  time.Duration `koanf:"request_timeout"   validate:"required,min=100ms"`
	DefaultPageSize int           `koanf:"default_page_size" validate:"required,min=1,ltefield=MaxPageSize"`
	MaxPageSize     int           `koanf:"max_page_size"     validate:"required,min=1"`
}

// CatalogConfig configures the interpretation catalog.
type CatalogConfig struct {
	// InterpretationsPath points at an optional YAML file whose entries
	// override the embedded texts.
	InterpretationsPath string `koanf:"interpretations_path"`
	Watch               bool   `koanf:"watch"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "natal-chart-service",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "natal-chart-service",
		"telemetry.sampling_rate": 1.0,
		"telemetry.insecure":      false,

		"client.timeout":                           "30s",
		"client.retry.max_attempts":                DefaultClientRetryMaxAttempts,
		"client.retry.initial_interval":            "100ms",
		"client.retry.max_interval":                "5s",
		"client.retry.multiplier":                  DefaultClientRetryMultiplier,
		"client.retry.jitter_factor":               DefaultClientRetryJitterFactor,
		"client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"client.circuit_breaker.timeout":           "30s",
		"client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",

		"services.horizons.base_url": "https://ssd.jpl.nasa.gov",
		"services.horizons.name":     "jpl-horizons",

		"ephemeris.provider":               ProviderAnalytic,
		"ephemeris.init_attempts":          DefaultInitAttempts,
		"ephemeris.init_interval":          "500ms",
		"ephemeris.horizons.cache_ttl":     "24h",
		"ephemeris.horizons.cache_cleanup": "1h",
		"ephemeris.horizons.rate_limit":    2.0,
		"ephemeris.horizons.rate_burst":    4,

		"chart.house_system":    "P",
		"chart.zodiac":          "tropical",
		"chart.bodies":          []string{},
		"chart.aspect_tiebreak": "priority",
		"chart.batch_limit":     DefaultBatchLimit,
		"chart.batch_max":       DefaultBatchMax,

		"render.width":  DefaultWheelSize,
		"render.height": DefaultWheelSize,

		"api.rate_limit":        10.0,
		"api.rate_burst":        20,
		"api.request_timeout":   "30s",
		"api.default_page_size": DefaultPageSize,
		"api.max_page_size":     DefaultMaxPageSize,

		"catalog.interpretations_path": "",
		"catalog.watch":                false,
	}
}

// Load reads configs/base.yaml, then configs/{profile}.yaml, then APP_
// variables, each layered over the defaults and the one before.
//
// In variable names a single underscore separates levels and a double
// underscore stands for a literal one: APP_CHART_ASPECT__TIEBREAK sets
// chart.aspect_tiebreak.
func Load(profile string) (*Config, error) {
	return LoadFrom("configs", profile)
}

// source is one configuration layer.
type source struct {
	name string
	load func(k *koanf.Koanf) error
}

// LoadFrom is Load with an explicit config directory.
func LoadFrom(dir, profile string) (*Config, error) {
	sources := []source{
		{name: "defaults", load: func(k *koanf.Koanf) error {
			return k.Load(confmap.Provider(defaults(), "."), nil)
		}},
		{name: "base config", load: yamlFile(filepath.Join(dir, "base.yaml"))},
	}

	if profile != "" {
		sources = append(sources, source{
			name: fmt.Sprintf("profile config %q", profile),
			load: yamlFile(filepath.Join(dir, profile+".yaml")),
		})
	}

	sources = append(sources, source{name: "env vars", load: func(k *koanf.Koanf) error {
		return k.Load(env.Provider("APP_", ".", envKey), nil)
	}})

	k := koanf.New(".")
	for _, src := range sources {
		if err := src.load(k); err != nil {
			return nil, fmt.Errorf("loading %s: %w", src.name, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey maps APP_SERVER_READ__TIMEOUT to server.read_timeout.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "APP_"))
	key = strings.ReplaceAll(key, "__", "\x00")
	key = strings.ReplaceAll(key, "_", ".")

	return strings.ReplaceAll(key, "\x00", "_")
}

// yamlFile loads path when it exists. Only read and parse failures count.
func yamlFile(path string) func(k *koanf.Koanf) error {
	return func(k *koanf.Koanf) error {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return k.Load(file.Provider(path), yaml.Parser())
	}
}
