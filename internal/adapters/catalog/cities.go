package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen/natal-chart-service/internal/domain"
	"github.com/jsamuelsen/natal-chart-service/internal/ports"
)

//go:embed cities.yaml
var defaultCities []byte

type citiesFile struct {
	Regions []struct {
		Name   string `yaml:"name"`
		Cities []struct {
			Name string  `yaml:"name"`
			Lat  float64 `yaml:"lat"`
			Lon  float64 `yaml:"lon"`
		} `yaml:"cities"`
	} `yaml:"regions"`
}

// Cities is the preset location list. It is immutable after construction.
type Cities struct {
	cities  []domain.City
	regions []string
}

var _ ports.LocationCatalog = (*Cities)(nil)

// NewCities parses a city list. A nil raw loads the embedded list.
func NewCities(raw []byte) (*Cities, error) {
	if raw == nil {
		raw = defaultCities
	}

	var file citiesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing cities: %w", err)
	}

	c := &Cities{}
	seen := make(map[string]bool)

	for _, region := range file.Regions {
		c.regions = append(c.regions, region.Name)

		for _, city := range region.Cities {
			loc, err := domain.NewGeoLocation(city.Lat, city.Lon)
			if err != nil {
				return nil, fmt.Errorf("city %q: %w", city.Name, err)
			}

			key := strings.ToLower(city.Name)
			if seen[key] {
				return nil, fmt.Errorf("duplicate city %q", city.Name)
			}

			seen[key] = true

			c.cities = append(c.cities, domain.City{Name: city.Name, Region: region.Name, Location: loc})
		}
	}

	return c, nil
}

// List implements ports.LocationCatalog.
func (c *Cities) List(_ context.Context) ([]domain.City, error) {
	return slices.Clone(c.cities), nil
}

// Regions implements ports.LocationCatalog.
func (c *Cities) Regions(_ context.Context) ([]string, error) {
	return slices.Clone(c.regions), nil
}

// Find implements ports.LocationCatalog. A full name ("Tokyo, Japan") wins;
// otherwise the part before the comma ("tokyo") is matched.
func (c *Cities) Find(_ context.Context, name string) (domain.City, error) {
	for _, city := range c.cities {
		if city.MatchesName(name) {
			return city, nil
		}
	}

	for _, city := range c.cities {
		short, _, _ := strings.Cut(city.Name, ",")
		if strings.EqualFold(short, strings.TrimSpace(name)) {
			return city, nil
		}
	}

	return domain.City{}, domain.NewNotFoundError("city", name)
}

// InRegion filters cities by region name, ignoring case. An empty region
// returns every city.
func InRegion(cities []domain.City, region string) []domain.City {
	if strings.TrimSpace(region) == "" {
		return cities
	}

	out := make([]domain.City, 0, len(cities))

	for _, city := range cities {
		if strings.EqualFold(city.Region, strings.TrimSpace(region)) {
			out = append(out, city)
		}
	}

	return out
}
