package ports

// TextAnchor is the horizontal alignment of a text run.
type TextAnchor string

const (
	AnchorStart  TextAnchor = "start"
	AnchorMiddle TextAnchor = "middle"
	AnchorEnd    TextAnchor = "end"
)

// Stroke describes how lines and arcs are drawn.
type Stroke struct {
	Color string
	Width float64
	// Dash is an on/off pattern; empty means solid.
	Dash []float64
}

// TextStyle describes how text is drawn. Rotation is in radians.
type TextStyle struct {
	Color    string
	Size     float64
	Rotation float64
	Anchor   TextAnchor
}

// Surface is a 2D drawing target with a fixed size. Angles are radians,
// measured clockwise from the positive x axis in screen space.
type Surface interface {
	Size() (width, height float64)
	Clear()
	Arc(cx, cy, r, start, end float64, s Stroke)
	Line(x1, y1, x2, y2 float64, s Stroke)
	Text(x, y float64, text string, s TextStyle)
}

// LegendEntry is one swatch of a chart legend. Entries with Dash set are
// drawn as a line sample; the rest show Glyph in Color.
type LegendEntry struct {
	Glyph string
	Label string
	Color string
	Dash  []float64
}
