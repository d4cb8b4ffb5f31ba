// Package track implements the track family and the lane allocation that
// arranges annotations into non-overlapping horizontal rows.
//
// A track owns one list of normalized annotations plus display configuration,
// and produces lane-indexed draw shapes in sequence coordinates. Tracks know
// nothing about pixels: the figure composer owns the shared position-to-pixel
// map and converts shapes during composition, which is what keeps zooming a
// pure change of the map's domain.
//
// All variants implement [Track]. Construction is cheap and tracks are value
// objects: build them fresh per figure, never mutate them afterwards.
package track

import (
	"github.com/protviz/protviz/pkg/coord"
)

// Mode selects how a track lays out overlapping annotations.
type Mode string

const (
	// ModeFull preserves per-annotation identity, one allocator pass per track.
	ModeFull Mode = "full"
	// ModeCollapse merges all ranges into a single summary lane, discarding
	// per-item identity.
	ModeCollapse Mode = "collapse"
)

// Params are the vertical layout parameters shared by all track variants.
// Values are in layout units; the composer converts units to pixels.
type Params struct {
	BarHeight float64 // height of one lane's content
	Spacing   float64 // vertical gap between lanes
	Padding   float64 // gap below the track's content block
}

// DefaultParams returns the layout parameters used when a caller passes the
// zero value.
func DefaultParams() Params {
	return Params{BarHeight: 0.1, Spacing: 0.05, Padding: 0.1}
}

func (p Params) orDefault() Params {
	if p == (Params{}) {
		return DefaultParams()
	}
	return p
}

// contentHeight is the stacked height of n lanes under these parameters.
func (p Params) contentHeight(n int) float64 {
	if n <= 0 {
		// Empty tracks still occupy one bar height for the placeholder text.
		return p.BarHeight
	}
	return float64(n)*p.BarHeight + float64(n-1)*p.Spacing
}

// Track is the contract every variant satisfies. The composer uses LaneCount
// and Height to compute vertical extent and Layout to collect shapes.
type Track interface {
	// Label is the track-level caption drawn in the left margin.
	Label() string
	// LaneCount is the number of lanes the track occupies in the window.
	LaneCount(win coord.Window) int
	// Height is the track's content height in layout units for the window.
	Height(win coord.Window) float64
	// Padding is the vertical gap reserved below the content block.
	Padding() float64
	// Metrics exposes the lane geometry the composer positions shapes with.
	Metrics() Params
	// Layout produces the track's shapes, each tagged with its lane index.
	Layout(win coord.Window) []Placement
}

// LaneTrack marks a placement that spans the whole track rather than one
// lane; the composer centers it on the track's content block.
const LaneTrack = -1

// Placement is one shape assigned to one lane.
type Placement struct {
	Lane  int
	Shape Shape
}

// Shape is a draw primitive in sequence coordinates.
type Shape interface{ shape() }

// Box is a filled rectangle spanning the inclusive interval [Start, End].
// The composer clips it to the view window at render time.
type Box struct {
	Start, End int
	Color      string
	Alpha      float64
}

// Marker is a point symbol centered on a (possibly fractional) position.
type Marker struct {
	At     float64
	Symbol string
	Size   float64
	Color  string
}

// Rule is a horizontal line across [From, To] at the lane's vertical center.
type Rule struct {
	From, To float64
	Color    string
	Width    float64
}

// TickMark is an axis tick with its numeric label.
type TickMark struct {
	At    int
	Label string
}

// BarText is text centered inside the plot area at a sequence coordinate.
type BarText struct {
	At     float64
	Text   string
	Color  string
	Italic bool
}

// Side selects the margin a MarginText is drawn in.
type Side int

const (
	// SideLeft places text in the left margin, right-aligned toward the plot.
	SideLeft Side = iota
	// SideRight places text in the right margin, left-aligned.
	SideRight
)

// MarginText is a label outside the plot area at the lane's vertical center.
type MarginText struct {
	Side  Side
	Text  string
	Color string
}

func (Box) shape()        {}
func (Marker) shape()     {}
func (Rule) shape()       {}
func (TickMark) shape()   {}
func (BarText) shape()    {}
func (MarginText) shape() {}
