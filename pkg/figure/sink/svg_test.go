package sink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/protviz/protviz/pkg/figure"
)

func testFigure() *figure.Figure {
	return &figure.Figure{
		Width:  200,
		Height: 100,
		Title:  "t",
		Prims: []figure.Primitive{
			figure.Rect{X: 10, Y: 20, W: 50, H: 8, Fill: "#87ceeb", Alpha: 1},
			figure.Line{X1: 0, Y1: 50, X2: 200, Y2: 50, Color: "#000000", Width: 1},
			figure.Text{X: 100, Y: 10, S: "A<B & C", Size: 9, Anchor: figure.AnchorMiddle, Color: "#000000"},
			figure.Symbol{X: 30, Y: 40, Shape: "o", Size: 6, Color: "#ff0000"},
			figure.Symbol{X: 40, Y: 40, Shape: "^", Size: 6, Color: "#00ff00"},
		},
	}
}

func TestRenderSVG(t *testing.T) {
	out := string(RenderSVG(testFigure()))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200.0 100.0"`,
		`<rect x="10.00" y="20.00" width="50.00" height="8.00" fill="#87ceeb"/>`,
		`<line x1="0.00" y1="50.00"`,
		`A&lt;B &amp; C`,
		`<circle cx="30.00" cy="40.00" r="3.00" fill="#ff0000"/>`,
		`<polygon`,
		`</svg>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "A<B") {
		t.Error("text not escaped")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	a := RenderSVG(testFigure())
	b := RenderSVG(testFigure())
	if !bytes.Equal(a, b) {
		t.Error("identical figures serialized differently")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	out := string(RenderSVG(testFigure(),
		WithBackground("#eeeeee"), WithFontFamily("monospace")))
	if !strings.Contains(out, `fill="#eeeeee"`) {
		t.Error("background option not applied")
	}
	if !strings.Contains(out, `font-family="monospace"`) {
		t.Error("font family option not applied")
	}
}
