package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/natal-chart-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/natal-chart-service/internal/adapters/surface"
	"github.com/jsamuelsen/natal-chart-service/internal/app"
	"github.com/jsamuelsen/natal-chart-service/internal/domain"
	"github.com/jsamuelsen/natal-chart-service/internal/ports"
)

// Canvas bounds, matching the wheel endpoint.
const (
	minWheelSize = 100
	maxWheelSize = 4096
)

// birthFlags describe a birth moment and place on the command line.
type birthFlags struct {
	date        string
	clock       string
	period      string
	location    string
	city        string
	houseSystem string
	zodiac      string
	bodies      []string
}

func (f *birthFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.date, "date", "", "birth date as YYYY-MM-DD, UTC")
	flags.StringVar(&f.clock, "time", "", "birth time as HH:MM, UTC")
	flags.StringVar(&f.period, "period", "", "AM or PM when --time is on a 12-hour clock")
	flags.StringVar(&f.location, "location", "", `coordinates as "lat, lon"`)
	flags.StringVar(&f.city, "city", "", "preset city, see the cities command")
	flags.StringVar(&f.houseSystem, "house-system", "", "house system code or name (default from config)")
	flags.StringVar(&f.zodiac, "zodiac", "", "tropical or sidereal (default from config)")
	flags.StringSliceVar(&f.bodies, "bodies", nil, "bodies to include (default from config)")

	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")

	cmd.MarkFlagsOneRequired("location", "city")
	cmd.MarkFlagsMutuallyExclusive("location", "city")
}

// request normalizes the flags into a chart request.
func (f *birthFlags) request(ctx context.Context, cities ports.LocationCatalog) (app.ChartRequest, error) {
	date := strings.Split(f.date, "-")
	if len(date) != 3 {
		return app.ChartRequest{}, domain.NewValidationErrorWithValue("date", "must be YYYY-MM-DD", f.date)
	}

	hour, minute, ok := strings.Cut(f.clock, ":")
	if !ok {
		return app.ChartRequest{}, domain.NewValidationErrorWithValue("time", "must be HH:MM", f.clock)
	}

	moment, err := domain.ParseBirthMoment(domain.BirthFields{
		Year:   date[0],
		Month:  date[1],
		Day:    date[2],
		Hour:   hour,
		Minute: minute,
		Period: f.period,
	})
	if err != nil {
		return app.ChartRequest{}, err
	}

	var loc domain.GeoLocation
	if f.city != "" {
		city, err := cities.Find(ctx, f.city)
		if err != nil {
			return app.ChartRequest{}, err
		}

		loc = city.Location
	} else {
		loc, err = domain.ParseGeoLocation(f.location)
		if err != nil {
			return app.ChartRequest{}, err
		}
	}

	req := app.ChartRequest{
		Moment:      moment,
		Location:    loc,
		HouseSystem: domain.HouseSystemCode(f.houseSystem),
		Zodiac:      domain.ZodiacMode(f.zodiac),
	}

	if len(f.bodies) > 0 {
		req.Bodies, err = domain.ParseBodies(f.bodies)
		if err != nil {
			return app.ChartRequest{}, err
		}
	}

	return req, nil
}

func (c *cli) compute(ctx context.Context, birth *birthFlags) (*domain.ChartResult, error) {
	req, err := birth.request(ctx, c.cities)
	if err != nil {
		return nil, err
	}

	return c.charts.ComputeChart(ctx, req)
}

func (c *cli) chartCmd() *cobra.Command {
	var (
		birth     birthFlags
		asJSON    bool
		interpret bool
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Compute a natal chart",
		Example: `  chartctl chart --date 1990-06-15 --time 14:30 --city London
  chartctl chart --date 1990-06-15 --time 2:30 --period PM --location "51.5074, -0.1278" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			chart, err := c.compute(cmd.Context(), &birth)
			if err != nil {
				return err
			}

			var readings []app.Reading
			if interpret {
				readings = app.NewInterpretationService(c.interpretations).ForChart(chart)
			}

			out := cmd.OutOrStdout()

			if asJSON {
				resp := dto.NewChartResponse(chart, c.provider)
				for _, r := range readings {
					resp.Interpretations = append(resp.Interpretations, dto.ReadingResponse{
						Subject: r.Subject,
						Sign:    r.Sign.String(),
						House:   r.House,
						Text:    r.Text,
					})
				}

				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")

				return enc.Encode(resp)
			}

			fmt.Fprintln(out, renderChart(chart, c.wheel.Style()))

			if len(readings) == 0 {
				return nil
			}

			text, err := renderMarkdown(readingsMarkdown(readings))
			if err != nil {
				return err
			}

			fmt.Fprint(out, text)

			return nil
		},
	}

	birth.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the chart as JSON")
	cmd.Flags().BoolVar(&interpret, "interpret", false, "add a reading for every body and angle")

	return cmd
}

func (c *cli) wheelCmd() *cobra.Command {
	var (
		birth  birthFlags
		out    string
		size   int
		legend bool
	)

	cmd := &cobra.Command{
		Use:     "wheel",
		Short:   "Draw a chart wheel as SVG",
		Example: `  chartctl wheel --date 1990-06-15 --time 14:30 --city London --out london.svg --legend`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if size != 0 && (size < minWheelSize || size > maxWheelSize) {
				return domain.NewValidationErrorWithValue("size", fmt.Sprintf("must be between %d and %d", minWheelSize, maxWheelSize), size)
			}

			chart, err := c.compute(cmd.Context(), &birth)
			if err != nil {
				return err
			}

			w, h := float64(c.cfg.Render.Width), float64(c.cfg.Render.Height)
			if size > 0 {
				w, h = float64(size), float64(size)
			}

			var opts []surface.Option
			if legend {
				bodies := make([]domain.Body, len(chart.Bodies))
				for i, p := range chart.Bodies {
					bodies[i] = p.Body
				}

				opts = append(opts, surface.WithLegend(c.wheel.Style().Legend(bodies)))
			}

			svg := surface.NewSVG(w, h, opts...)
			if err := c.wheel.Render(svg, chart); err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err := svg.WriteTo(cmd.OutOrStdout())
				return err
			}

			if err := os.WriteFile(out, svg.Bytes(), 0o644); err != nil { //nolint:gosec // chart images are not secret
				return fmt.Errorf("writing %s: %w", out, err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)

			return nil
		},
	}

	birth.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, stdout when empty or -")
	cmd.Flags().IntVar(&size, "size", 0, "square canvas size in pixels (default from config)")
	cmd.Flags().BoolVar(&legend, "legend", false, "draw a body color legend")

	return cmd
}
