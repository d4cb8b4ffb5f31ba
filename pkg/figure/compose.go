package figure

import (
	"fmt"

	"github.com/protviz/protviz/pkg/coord"
	"github.com/protviz/protviz/pkg/errors"
	"github.com/protviz/protviz/pkg/figure/styles"
	"github.com/protviz/protviz/pkg/track"
)

// Canvas geometry. Margins leave room for track captions on the left, item
// labels on the right, the title on top and axis tick labels at the bottom.
const (
	marginLeft   = 90.0
	marginRight  = 110.0
	marginTop    = 36.0
	marginBottom = 28.0

	unitPx       = 40.0 // pixels per layout unit
	minUnits     = 2.0  // figures never shrink below this content height
	defaultWidth = 900.0

	titleSize     = 12.0
	labelSize     = 10.0
	tickSize      = 9.0
	tickLen       = 4.0
	marginGap     = 6.0
	baselineFudge = 3.0
)

type options struct {
	win     coord.Window
	width   float64
	title   string
	protein string
}

// Option adjusts figure composition.
type Option func(*options)

// WithWindow restricts the figure to a sub-range of the sequence.
func WithWindow(w coord.Window) Option {
	return func(o *options) { o.win = w }
}

// WithWidth sets the canvas width in pixels.
func WithWidth(px float64) Option {
	return func(o *options) { o.width = px }
}

// WithTitle sets an explicit figure title, overriding the generated one.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithProtein sets the accession used for the generated title.
func WithProtein(id string) Option {
	return func(o *options) { o.protein = id }
}

// TitleFor builds the standard figure title for a protein and view.
func TitleFor(id string, win coord.Window, seqLen int) string {
	if win == coord.Full(seqLen) {
		return fmt.Sprintf("Protein: %s (Total: %d aa)", id, seqLen)
	}
	return fmt.Sprintf("Protein: %s (View: %d-%d aa / Total: %d aa)",
		id, win.Start, win.End, seqLen)
}

// Compose stacks the tracks top to bottom into a figure for a protein of the
// given length. The view window is resolved and validated first; an invalid
// window fails the whole composition since no position-to-pixel map exists
// for it. Tracks and their annotations are read, never modified: composing
// the same inputs twice yields identical figures.
func Compose(tracks []track.Track, seqLen int, opts ...Option) (*Figure, error) {
	o := options{width: defaultWidth}
	for _, opt := range opts {
		opt(&o)
	}

	win, err := coord.Resolve(o.win, seqLen)
	if err != nil {
		return nil, err
	}
	plotW := o.width - marginLeft - marginRight
	if plotW < 50 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"canvas width %.0f leaves no plot area", o.width)
	}
	scale := coord.NewScale(win, plotW)

	units := 0.0
	for _, tr := range tracks {
		units += tr.Height(win) + tr.Padding()
	}
	if units < minUnits {
		units = minUnits
	}

	fig := &Figure{
		Width:  o.width,
		Height: marginTop + units*unitPx + marginBottom,
	}
	fig.Title = o.title
	if fig.Title == "" && o.protein != "" {
		fig.Title = TitleFor(o.protein, win, seqLen)
	}
	if fig.Title != "" {
		fig.Prims = append(fig.Prims, Text{
			X: o.width / 2, Y: marginTop / 2,
			S: fig.Title, Size: titleSize,
			Anchor: AnchorMiddle, Color: styles.LabelText, Bold: true,
		})
	}

	y := marginTop
	for _, tr := range tracks {
		y = composeTrack(fig, tr, win, scale, y)
	}
	return fig, nil
}

// composeTrack converts one track's placements into primitives starting at
// vertical offset y and returns the offset for the next track.
func composeTrack(fig *Figure, tr track.Track, win coord.Window, scale coord.Scale, y float64) float64 {
	m := tr.Metrics()
	barPx := m.BarHeight * unitPx
	spacingPx := m.Spacing * unitPx
	contentPx := tr.Height(win) * unitPx

	laneTop := func(lane int) float64 {
		return y + float64(lane)*(barPx+spacingPx)
	}
	laneCenter := func(lane int) float64 {
		if lane == track.LaneTrack {
			return y + contentPx/2
		}
		return laneTop(lane) + barPx/2
	}
	x := func(p float64) float64 { return marginLeft + scale.XF(p) }

	leftLabeled := false
	for _, pl := range tr.Layout(win) {
		switch s := pl.Shape.(type) {
		case track.Box:
			lo, hi, ok := win.Clip(s.Start, s.End)
			if !ok {
				continue
			}
			fig.Prims = append(fig.Prims, Rect{
				X: x(float64(lo) - 0.5), Y: laneTop(pl.Lane),
				W: scale.SpanWidth(lo, hi), H: barPx,
				Fill: s.Color, Alpha: s.Alpha,
			})
		case track.Marker:
			if !win.Overlaps(int(s.At), int(s.At)) {
				continue
			}
			fig.Prims = append(fig.Prims, Symbol{
				X: x(s.At), Y: laneCenter(pl.Lane),
				Shape: s.Symbol, Size: s.Size, Color: s.Color,
			})
		case track.Rule:
			fig.Prims = append(fig.Prims, Line{
				X1: x(s.From), Y1: laneCenter(pl.Lane),
				X2: x(s.To), Y2: laneCenter(pl.Lane),
				Color: s.Color, Width: s.Width,
			})
		case track.TickMark:
			cy := laneCenter(pl.Lane)
			tx := x(float64(s.At))
			fig.Prims = append(fig.Prims,
				Line{X1: tx, Y1: cy, X2: tx, Y2: cy + tickLen,
					Color: styles.AxisLine, Width: 1},
				Text{X: tx, Y: cy + tickLen + tickSize + 1, S: s.Label,
					Size: tickSize, Anchor: AnchorMiddle, Color: styles.LabelText},
			)
		case track.BarText:
			fig.Prims = append(fig.Prims, Text{
				X: x(s.At), Y: laneCenter(pl.Lane) + baselineFudge,
				S: s.Text, Size: tickSize,
				Anchor: AnchorMiddle, Color: s.Color, Italic: s.Italic,
			})
		case track.MarginText:
			tx, anchor := fig.Width-marginRight+marginGap, AnchorStart
			if s.Side == track.SideLeft {
				tx, anchor = marginLeft-marginGap, AnchorEnd
				leftLabeled = true
			}
			fig.Prims = append(fig.Prims, Text{
				X: tx, Y: laneCenter(pl.Lane) + baselineFudge,
				S: s.Text, Size: tickSize, Anchor: anchor, Color: s.Color,
			})
		}
	}

	// The track caption takes the left margin unless the track already put
	// per-lane labels there.
	if !leftLabeled && tr.Label() != "" {
		fig.Prims = append(fig.Prims, Text{
			X: marginLeft - marginGap, Y: y + contentPx/2 + baselineFudge,
			S: tr.Label(), Size: labelSize,
			Anchor: AnchorEnd, Color: styles.LabelText,
		})
	}

	return y + contentPx + m.Padding*unitPx
}
