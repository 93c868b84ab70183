package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jsamuelsen/natal-chart-service/internal/app"
	"github.com/jsamuelsen/natal-chart-service/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	sectionStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	headerStyle  = cellStyle.Bold(true)
)

// formatDegree prints a degree within a sign as 15°04'.
func formatDegree(d float64) string {
	deg := math.Floor(d)
	minutes := int(math.Floor((d - deg) * 60))

	return fmt.Sprintf("%2d°%02d'", int(deg), minutes)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})
}

// renderChart lays a chart out as terminal tables. Body names take their
// wheel colors.
func renderChart(chart *domain.ChartResult, style app.WheelStyle) string {
	title := titleStyle.Render("Natal chart") + "  " +
		chart.Moment.UTC().Format("2006-01-02 15:04 UTC") + "  " + chart.Location.String()
	meta := subtleStyle.Render(fmt.Sprintf("%s houses, %s zodiac", chart.Houses.Code, chart.Zodiac))

	bodies := newTable("Body", "Sign", "Position", "House", "")
	for _, p := range chart.Bodies {
		retro := ""
		if p.Retrograde {
			retro = "R"
		}

		bodies.Row(p.Body.String(), p.Sign.String(), formatDegree(p.DegreeInSign), strconv.Itoa(p.House), retro)
	}

	bodies.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 0 && row < len(chart.Bodies):
			return cellStyle.Foreground(lipgloss.Color(style.BodyColor(chart.Bodies[row].Body)))
		default:
			return cellStyle
		}
	})

	angles := newTable("Angle", "Sign", "Position")
	for _, a := range []domain.ChartAngle{chart.Ascendant, chart.Midheaven} {
		angles.Row(a.Name, a.Sign.String(), formatDegree(a.DegreeInSign))
	}

	houses := newTable("House", "Sign", "Cusp")
	for i, cusp := range chart.Houses.Cusps {
		houses.Row(strconv.Itoa(i+1), domain.SignOf(cusp).String(), formatDegree(domain.DegreeInSign(cusp)))
	}

	parts := []string{
		title,
		meta,
		sectionStyle.Render("Bodies"),
		bodies.String(),
		sectionStyle.Render("Angles"),
		angles.String(),
		sectionStyle.Render("Houses"),
		houses.String(),
	}

	if len(chart.Aspects) > 0 {
		aspects := newTable("First", "Aspect", "Second", "Orb")
		for _, a := range chart.Aspects {
			aspects.Row(a.First.String(), string(a.Kind), a.Second.String(), fmt.Sprintf("%.2f°", a.Orb))
		}

		parts = append(parts, sectionStyle.Render("Aspects"), aspects.String())
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func readingsMarkdown(readings []app.Reading) string {
	var b strings.Builder

	b.WriteString("## Readings\n")

	for _, r := range readings {
		fmt.Fprintf(&b, "\n**%s in %s**", r.Subject, r.Sign)

		if r.House > 0 {
			fmt.Fprintf(&b, " (house %d)", r.House)
		}

		fmt.Fprintf(&b, "\n\n%s\n", r.Text)

		for _, a := range r.Aspects {
			other := a.Second
			if other.String() == r.Subject {
				other = a.First
			}

			fmt.Fprintf(&b, "\n- %s %s (orb %.2f°)", a.Kind, other, a.Orb)
		}

		if len(r.Aspects) > 0 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderMarkdown styles markdown for the terminal. Output that is not a
// terminal gets plain text.
func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}

	return r.Render(md)
}
