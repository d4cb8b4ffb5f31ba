// Package sink serializes composed figures to output formats. SVG is the
// native format; PNG and PDF are produced by piping the SVG through
// rsvg-convert.
package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/protviz/protviz/pkg/figure"
)

// SVGOption configures SVG serialization.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	fontFamily string
}

// WithBackground sets the canvas background color (default white).
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithFontFamily sets the font family for all text runs.
func WithFontFamily(family string) SVGOption {
	return func(r *svgRenderer) { r.fontFamily = family }
}

// RenderSVG serializes a figure to a standalone SVG document. Primitives are
// emitted in draw-list order, so the output is deterministic for a given
// figure.
func RenderSVG(fig *figure.Figure, opts ...SVGOption) []byte {
	r := svgRenderer{background: "#ffffff", fontFamily: "Helvetica, Arial, sans-serif"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		fig.Width, fig.Height, fig.Width, fig.Height)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		fig.Width, fig.Height, r.background)

	for _, p := range fig.Prims {
		switch s := p.(type) {
		case figure.Rect:
			renderRect(&buf, s)
		case figure.Line:
			fmt.Fprintf(&buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
				s.X1, s.Y1, s.X2, s.Y2, s.Color, s.Width)
		case figure.Text:
			renderText(&buf, s, r.fontFamily)
		case figure.Symbol:
			renderSymbol(&buf, s)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderRect(buf *bytes.Buffer, s figure.Rect) {
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"`,
		s.X, s.Y, s.W, s.H, s.Fill)
	if s.Alpha > 0 && s.Alpha < 1 {
		fmt.Fprintf(buf, ` fill-opacity="%.2f"`, s.Alpha)
	}
	if s.Stroke != "" {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="%.2f"`, s.Stroke, s.StrokeWidth)
	}
	buf.WriteString("/>\n")
}

func renderText(buf *bytes.Buffer, s figure.Text, family string) {
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-size="%.1f" font-family="%s" text-anchor="%s" fill="%s"`,
		s.X, s.Y, s.Size, family, s.Anchor, s.Color)
	if s.Italic {
		buf.WriteString(` font-style="italic"`)
	}
	if s.Bold {
		buf.WriteString(` font-weight="bold"`)
	}
	fmt.Fprintf(buf, ">%s</text>\n", escape(s.S))
}

func renderSymbol(buf *bytes.Buffer, s figure.Symbol) {
	half := s.Size / 2
	switch s.Shape {
	case "s":
		fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			s.X-half, s.Y-half, s.Size, s.Size, s.Color)
	case "^":
		fmt.Fprintf(buf, `  <polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="%s"/>`+"\n",
			s.X, s.Y-half, s.X-half, s.Y+half, s.X+half, s.Y+half, s.Color)
	case "d", "D":
		fmt.Fprintf(buf, `  <polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="%s"/>`+"\n",
			s.X, s.Y-half, s.X+half, s.Y, s.X, s.Y+half, s.X-half, s.Y, s.Color)
	case "x":
		fmt.Fprintf(buf, `  <path d="M%.2f %.2f L%.2f %.2f M%.2f %.2f L%.2f %.2f" stroke="%s" stroke-width="1.5"/>`+"\n",
			s.X-half, s.Y-half, s.X+half, s.Y+half, s.X-half, s.Y+half, s.X+half, s.Y-half, s.Color)
	case "+":
		fmt.Fprintf(buf, `  <path d="M%.2f %.2f L%.2f %.2f M%.2f %.2f L%.2f %.2f" stroke="%s" stroke-width="1.5"/>`+"\n",
			s.X-half, s.Y, s.X+half, s.Y, s.X, s.Y-half, s.X, s.Y+half, s.Color)
	default: // "o" and anything unrecognized
		fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
			s.X, s.Y, half, s.Color)
	}
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string { return escaper.Replace(s) }
