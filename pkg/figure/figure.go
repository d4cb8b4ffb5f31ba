// Package figure composes tracks into a device-independent figure.
//
// [Compose] resolves the view window, builds the shared position-to-pixel
// map, stacks the tracks vertically and converts their sequence-space shapes
// into pixel-space primitives. The resulting [Figure] is a flat draw list;
// sinks (see the sink subpackage) serialize it to SVG and convert onward to
// PNG or PDF.
package figure

// Figure is a composed draw list with its canvas dimensions in pixels.
// Primitives are ordered back to front.
type Figure struct {
	Width  float64
	Height float64
	Title  string
	Prims  []Primitive
}

// Primitive is one pixel-space draw operation.
type Primitive interface{ prim() }

// Rect is a filled rectangle.
type Rect struct {
	X, Y, W, H  float64
	Fill        string
	Stroke      string
	StrokeWidth float64
	Alpha       float64
}

// Line is a straight stroke between two points.
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          string
	Width          float64
}

// Anchor positions text horizontally relative to its X coordinate.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Text is a text run; Y is the baseline.
type Text struct {
	X, Y   float64
	S      string
	Size   float64
	Anchor Anchor
	Color  string
	Italic bool
	Bold   bool
}

// Symbol is a point marker centered on X, Y.
type Symbol struct {
	X, Y  float64
	Shape string // "o", "s", "^", "d", "x", "+"
	Size  float64
	Color string
}

func (Rect) prim()   {}
func (Line) prim()   {}
func (Text) prim()   {}
func (Symbol) prim() {}
