package track

import (
	"strconv"

	"github.com/protviz/protviz/pkg/coord"
	"github.com/protviz/protviz/pkg/figure/styles"
)

// AxisTrack draws the residue position ruler: a baseline across the window
// plus numeric ticks at a span-dependent interval. It occupies exactly one
// lane regardless of the window.
type AxisTrack struct {
	totalLen int
	interval int // 0 selects TickInterval automatically
	p        Params
}

// AxisOption adjusts the axis configuration.
type AxisOption func(*AxisTrack)

// WithTickInterval overrides the automatic tick spacing.
func WithTickInterval(n int) AxisOption {
	return func(t *AxisTrack) { t.interval = n }
}

// WithAxisParams overrides the vertical layout parameters.
func WithAxisParams(p Params) AxisOption {
	return func(t *AxisTrack) { t.p = p.orDefault() }
}

// NewAxisTrack creates the ruler for a sequence of the given total length.
func NewAxisTrack(totalLen int, opts ...AxisOption) *AxisTrack {
	t := &AxisTrack{totalLen: totalLen, p: Params{BarHeight: 0.2, Spacing: 0.05, Padding: 0.1}}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TickInterval picks a tick spacing that yields a readable number of ticks
// for a window of the given span.
func TickInterval(span int) int {
	switch {
	case span <= 50:
		return 5
	case span <= 100:
		return 10
	case span <= 250:
		return 25
	case span <= 500:
		return 50
	case span <= 1000:
		return 100
	case span <= 2000:
		return 200
	case span <= 5000:
		return 500
	default:
		return 1000
	}
}

// Label implements Track.
func (t *AxisTrack) Label() string { return "Position" }

// LaneCount implements Track.
func (t *AxisTrack) LaneCount(coord.Window) int { return 1 }

// Height implements Track.
func (t *AxisTrack) Height(coord.Window) float64 { return t.p.contentHeight(1) }

// Padding implements Track.
func (t *AxisTrack) Padding() float64 { return t.p.Padding }

// Metrics implements Track.
func (t *AxisTrack) Metrics() Params { return t.p }

// Layout implements Track.
func (t *AxisTrack) Layout(win coord.Window) []Placement {
	out := []Placement{{Lane: 0, Shape: Rule{
		From:  float64(win.Start) - 0.5,
		To:    float64(win.End) + 0.5,
		Color: styles.AxisLine,
		Width: 1,
	}}}

	interval := t.interval
	if interval <= 0 {
		interval = TickInterval(win.Span())
	}
	first := ((win.Start + interval - 1) / interval) * interval
	n := 0
	for at := first; at <= win.End; at += interval {
		out = append(out, Placement{Lane: 0, Shape: TickMark{
			At: at, Label: strconv.Itoa(at),
		}})
		n++
	}
	// A window narrower than one interval still gets an anchor tick.
	if n == 0 {
		out = append(out, Placement{Lane: 0, Shape: TickMark{
			At: win.Start, Label: strconv.Itoa(win.Start),
		}})
	}
	return out
}
