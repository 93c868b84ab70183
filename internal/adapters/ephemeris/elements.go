package ephemeris

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen/natal-chart-service/internal/domain"
)

//go:embed elements.yaml
var defaultElements []byte

// elementRate is a value at J2000 and its rate per Julian century.
type elementRate []float64

func (r elementRate) at(t float64) float64 {
	return r[0] + r[1]*t
}

type orbitalElements struct {
	A    elementRate `yaml:"a"`
	E    elementRate `yaml:"e"`
	I    elementRate `yaml:"i"`
	L    elementRate `yaml:"l"`
	Peri elementRate `yaml:"peri"`
	Node elementRate `yaml:"node"`
}

func (o orbitalElements) validate() error {
	for name, r := range map[string]elementRate{
		"a": o.A, "e": o.E, "i": o.I, "l": o.L, "peri": o.Peri, "node": o.Node,
	} {
		if len(r) != 2 {
			return fmt.Errorf("element %s: want [value, rate], got %d numbers", name, len(r))
		}
	}

	return nil
}

type lunarTerm struct {
	D     float64 `yaml:"d"`
	M     float64 `yaml:"m"`
	MP    float64 `yaml:"mp"`
	F     float64 `yaml:"f"`
	Coeff float64 `yaml:"coeff"`
}

type lunarSeries struct {
	Longitude []lunarTerm `yaml:"longitude"`
	Latitude  []lunarTerm `yaml:"latitude"`
	Distance  []lunarTerm `yaml:"distance"`
}

// elementTable is the parsed contents of elements.yaml.
type elementTable struct {
	Planets map[string]orbitalElements `yaml:"planets"`
	Moon    lunarSeries                `yaml:"moon"`
}

const earthKey = "earth"

func parseElements(raw []byte) (*elementTable, error) {
	var table elementTable
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("parsing element table: %w", err)
	}

	required := []string{earthKey}
	for _, b := range domain.AllBodies {
		if b != domain.Sun && b != domain.Moon {
			required = append(required, key(b))
		}
	}

	for _, name := range required {
		el, ok := table.Planets[name]
		if !ok {
			return nil, fmt.Errorf("element table: missing %s", name)
		}

		if err := el.validate(); err != nil {
			return nil, fmt.Errorf("element table: %s: %w", name, err)
		}
	}

	if len(table.Moon.Longitude) == 0 || len(table.Moon.Latitude) == 0 || len(table.Moon.Distance) == 0 {
		return nil, errors.New("element table: lunar series is incomplete")
	}

	return &table, nil
}

func key(b domain.Body) string {
	return strings.ToLower(b.String())
}
