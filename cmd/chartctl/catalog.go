package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/natal-chart-service/internal/adapters/catalog"
	"github.com/jsamuelsen/natal-chart-service/internal/domain"
)

func (c *cli) citiesCmd() *cobra.Command {
	var (
		region  string
		regions bool
	)

	cmd := &cobra.Command{
		Use:   "cities",
		Short: "List the preset birth cities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if regions {
				names, err := c.cities.Regions(cmd.Context())
				if err != nil {
					return err
				}

				for _, name := range names {
					fmt.Fprintln(out, name)
				}

				return nil
			}

			all, err := c.cities.List(cmd.Context())
			if err != nil {
				return err
			}

			t := newTable("City", "Region", "Lat", "Lon")
			for _, city := range catalog.InRegion(all, region) {
				t.Row(
					city.Name,
					city.Region,
					strconv.FormatFloat(city.Location.Latitude(), 'f', 4, 64),
					strconv.FormatFloat(city.Location.Longitude(), 'f', 4, 64),
				)
			}

			fmt.Fprintln(out, t.String())

			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "only cities in this region")
	cmd.Flags().BoolVar(&regions, "regions", false, "list region names instead of cities")

	return cmd
}

func (c *cli) interpretCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "interpret BODY SIGN",
		Short: "Show the reading for a body or angle in a sign",
		Example: `  chartctl interpret Sun Leo
  chartctl interpret ascendant scorpio --plain`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, ok := catalog.CanonicalSubject(args[0])
			if !ok {
				return domain.NewNotFoundError("body", args[0])
			}

			sign, err := domain.ParseSign(args[1])
			if err != nil {
				return domain.NewNotFoundError("sign", args[1])
			}

			text := c.interpretations.Lookup(subject, sign.String())
			out := cmd.OutOrStdout()

			if plain {
				fmt.Fprintf(out, "%s in %s: %s\n", subject, sign, text)
				return nil
			}

			rendered, err := renderMarkdown(fmt.Sprintf("# %s in %s\n\n%s\n", subject, sign, text))
			if err != nil {
				return err
			}

			fmt.Fprint(out, rendered)

			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print unstyled text")

	return cmd
}
