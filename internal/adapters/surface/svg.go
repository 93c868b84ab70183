// Package surface provides drawing targets for the wheel renderer.
package surface

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jsamuelsen/natal-chart-service/internal/ports"
)

// Legend panel layout, in user units.
const (
	legendWidth    = 180.0
	legendPadding  = 16.0
	legendRow      = 20.0
	legendSwatch   = 24.0
	legendFontSize = 12.0
)

const svgFontFamily = "DejaVu Sans, Segoe UI Symbol, sans-serif"

var _ ports.Surface = (*SVG)(nil)

// SVG records draw calls and serializes them as an SVG document. The
// drawing area is width×height; a legend, when set, is laid out in an
// extra panel to its right.
type SVG struct {
	width      float64
	height     float64
	background string
	legend     []ports.LegendEntry
	elems      []string
}

// Option configures an SVG surface.
type Option func(*SVG)

// WithLegend adds a legend panel listing entries.
func WithLegend(entries []ports.LegendEntry) Option {
	return func(s *SVG) {
		s.legend = entries
	}
}

// WithBackground fills the document with color before drawing.
func WithBackground(color string) Option {
	return func(s *SVG) {
		s.background = color
	}
}

// NewSVG creates an empty surface of the given drawing size.
func NewSVG(width, height float64, opts ...Option) *SVG {
	s := &SVG{width: width, height: height, background: "#FFFFFF"}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Size implements ports.Surface. The legend panel is not part of it.
func (s *SVG) Size() (float64, float64) {
	return s.width, s.height
}

// Clear implements ports.Surface.
func (s *SVG) Clear() {
	s.elems = s.elems[:0]
}

// Arc implements ports.Surface. A sweep of 2π or more is drawn as a circle.
func (s *SVG) Arc(cx, cy, r, start, end float64, st ports.Stroke) {
	sweep := end - start
	if sweep >= 2*math.Pi {
		s.elems = append(s.elems, fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="none"%s/>`,
			num(cx), num(cy), num(r), strokeAttrs(st)))

		return
	}

	x1, y1 := cx+r*math.Cos(start), cy+r*math.Sin(start)
	x2, y2 := cx+r*math.Cos(end), cy+r*math.Sin(end)

	large := 0
	if math.Abs(sweep) > math.Pi {
		large = 1
	}

	clockwise := 1
	if sweep < 0 {
		clockwise = 0
	}

	s.elems = append(s.elems, fmt.Sprintf(`<path d="M%s,%s A%s,%s 0 %d %d %s,%s" fill="none"%s/>`,
		num(x1), num(y1), num(r), num(r), large, clockwise, num(x2), num(y2), strokeAttrs(st)))
}

// Line implements ports.Surface.
func (s *SVG) Line(x1, y1, x2, y2 float64, st ports.Stroke) {
	s.elems = append(s.elems, fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`,
		num(x1), num(y1), num(x2), num(y2), strokeAttrs(st)))
}

// Text implements ports.Surface. Text is vertically centered on y.
func (s *SVG) Text(x, y float64, text string, st ports.TextStyle) {
	s.elems = append(s.elems, textElem(x, y, text, st))
}

// Len returns the number of recorded elements.
func (s *SVG) Len() int {
	return len(s.elems)
}

// WriteTo writes the SVG document to w.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder

	total := s.width
	if len(s.legend) > 0 {
		total += legendWidth
	}

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="%s">`+"\n",
		num(total), num(s.height), num(total), num(s.height), svgFontFamily)

	if s.background != "" {
		fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", escape(s.background))
	}

	b.WriteString("<g class=\"wheel\">\n")

	for _, e := range s.elems {
		b.WriteString(e)
		b.WriteByte('\n')
	}

	b.WriteString("</g>\n")

	if len(s.legend) > 0 {
		s.writeLegend(&b)
	}

	b.WriteString("</svg>\n")

	n, err := io.WriteString(w, b.String())

	return int64(n), err
}

// Bytes returns the SVG document.
func (s *SVG) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = s.WriteTo(&buf)

	return buf.Bytes()
}

func (s *SVG) writeLegend(b *strings.Builder) {
	x := s.width + legendPadding
	y := legendPadding + legendRow/2

	b.WriteString("<g class=\"legend\">\n")
	b.WriteString(textElem(x, y, "Legend", ports.TextStyle{Color: "#000000", Size: legendFontSize + 2}))
	b.WriteByte('\n')

	for _, e := range s.legend {
		y += legendRow

		if len(e.Dash) > 0 {
			fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`,
				num(x), num(y), num(x+legendSwatch), num(y), strokeAttrs(ports.Stroke{Color: e.Color, Width: 2, Dash: e.Dash}))
		} else {
			b.WriteString(textElem(x+legendSwatch/2, y, e.Glyph, ports.TextStyle{
				Color:  e.Color,
				Size:   legendFontSize + 2,
				Anchor: ports.AnchorMiddle,
			}))
		}

		b.WriteByte('\n')
		b.WriteString(textElem(x+legendSwatch+8, y, e.Label, ports.TextStyle{Color: "#000000", Size: legendFontSize}))
		b.WriteByte('\n')
	}

	b.WriteString("</g>\n")
}

func textElem(x, y float64, text string, st ports.TextStyle) string {
	anchor := st.Anchor
	if anchor == "" {
		anchor = ports.AnchorStart
	}

	var transform string
	if st.Rotation != 0 {
		transform = fmt.Sprintf(` transform="rotate(%s %s %s)"`, num(st.Rotation*180/math.Pi), num(x), num(y))
	}

	return fmt.Sprintf(`<text x="%s" y="%s" fill="%s" font-size="%s" text-anchor="%s" dominant-baseline="central"%s>%s</text>`,
		num(x), num(y), escape(st.Color), num(st.Size), anchor, transform, escape(text))
}

func strokeAttrs(st ports.Stroke) string {
	var b strings.Builder

	fmt.Fprintf(&b, ` stroke="%s" stroke-width="%s"`, escape(st.Color), num(st.Width))

	if len(st.Dash) > 0 {
		parts := make([]string, len(st.Dash))
		for i, d := range st.Dash {
			parts[i] = num(d)
		}

		fmt.Fprintf(&b, ` stroke-dasharray="%s"`, strings.Join(parts, ","))
	}

	return b.String()
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")

	if s == "-0" {
		return "0"
	}

	return s
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))

	return b.String()
}
