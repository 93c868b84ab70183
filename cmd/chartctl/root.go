package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/natal-chart-service/internal/adapters/catalog"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/ephemeris"
	"github.com/jsamuelsen/natal-chart-service/internal/app"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/config"
	"github.com/jsamuelsen/natal-chart-service/internal/platform/logging"
)

// cli holds the flags shared by every command and the services built from
// them once the configuration is loaded.
type cli struct {
	configDir string
	profile   string
	verbose   bool

	cfg             *config.Config
	logger          *slog.Logger
	provider        string
	charts          *app.ChartService
	cities          *catalog.Cities
	interpretations *catalog.Interpretations
	wheel           *app.WheelRenderer
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	root := &cobra.Command{
		Use:   "chartctl",
		Short: "Compute, draw and interpret natal charts",
		Long: `chartctl computes natal charts with the built-in analytic ephemeris.

Configuration is read the same way the service reads it: configs/base.yaml,
then the profile file, then APP_ environment variables.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configDir, "config-dir", "configs", "directory holding base.yaml and the profile files")
	flags.StringVar(&c.profile, "profile", profile, "configuration profile")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log calculation details to stderr")

	root.AddCommand(
		c.chartCmd(),
		c.wheelCmd(),
		c.citiesCmd(),
		c.interpretCmd(),
	)

	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadFrom(c.configDir, c.profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level := "warn"
	if c.verbose {
		level = "debug"
	}

	c.cfg = cfg
	c.logger = logging.NewWithWriter(&logging.Config{
		Level:   level,
		Format:  "pretty",
		Service: "chartctl",
		Version: Version,
	}, cmd.ErrOrStderr())

	provider := ephemeris.New(&ephemeris.Config{Logger: c.logger})
	gate := app.NewReadiness(provider.Name(), provider, app.ReadinessConfig{Attempts: 1, Logger: c.logger})

	if err := gate.Ensure(cmd.Context()); err != nil {
		return fmt.Errorf("initializing ephemeris: %w", err)
	}

	chartCfg, err := app.NewChartServiceConfig(cfg.Chart, c.logger, nil)
	if err != nil {
		return fmt.Errorf("invalid chart defaults: %w", err)
	}

	c.provider = provider.Name()
	c.charts = app.NewChartService(provider, gate, chartCfg)
	c.wheel = app.NewWheelRenderer(app.DefaultWheelStyle(), nil)

	c.cities, err = catalog.NewCities(nil)
	if err != nil {
		return fmt.Errorf("loading cities: %w", err)
	}

	c.interpretations, err = catalog.NewInterpretations(catalog.InterpretationsConfig{
		OverridePath: cfg.Catalog.InterpretationsPath,
		Logger:       c.logger,
	})
	if err != nil {
		return fmt.Errorf("loading interpretations: %w", err)
	}

	return nil
}
