package track

import (
	"strings"

	"github.com/protviz/protviz/pkg/annotation"
	"github.com/protviz/protviz/pkg/coord"
	"github.com/protviz/protviz/pkg/figure/styles"
)

const (
	defaultMarkerSymbol = "o"
	defaultMarkerSize   = 6
)

// CustomTrack renders user-authored annotations. Bars and markers mix freely;
// overlapping items stack into lanes geometrically, so two annotations with
// different row labels can still share a lane when they do not overlap.
// Row labels collect in the left margin per lane, item labels in the right.
type CustomTrack struct {
	label string
	anns  []annotation.Annotation
	p     Params
	fill  string
}

// NewCustomTrack creates a custom track with the given caption.
func NewCustomTrack(label string, anns []annotation.Annotation) *CustomTrack {
	return &CustomTrack{label: label, anns: anns, p: DefaultParams(), fill: styles.BarFill}
}

// SetParams overrides the vertical layout parameters.
func (t *CustomTrack) SetParams(p Params) { t.p = p.orDefault() }

// Label implements Track.
func (t *CustomTrack) Label() string { return t.label }

// Padding implements Track.
func (t *CustomTrack) Padding() float64 { return t.p.Padding }

// Metrics implements Track.
func (t *CustomTrack) Metrics() Params { return t.p }

func (t *CustomTrack) visible(win coord.Window) []annotation.Annotation {
	var out []annotation.Annotation
	for _, a := range t.anns {
		if win.Overlaps(a.Start, a.End) {
			out = append(out, a)
		}
	}
	return out
}

// LaneCount implements Track.
func (t *CustomTrack) LaneCount(win coord.Window) int {
	vis := t.visible(win)
	if len(vis) == 0 {
		return 0
	}
	_, n := Allocate(vis)
	return n
}

// Height implements Track.
func (t *CustomTrack) Height(win coord.Window) float64 {
	return t.p.contentHeight(t.LaneCount(win))
}

// Layout implements Track.
func (t *CustomTrack) Layout(win coord.Window) []Placement {
	vis := t.visible(win)
	if len(vis) == 0 {
		return placeholder(win)
	}
	lanes, count := Allocate(vis)

	var out []Placement
	rowLabels := make([][]string, count)
	itemLabels := make([][]string, count)

	for i, a := range vis {
		lane := lanes[i]
		color := a.Color
		switch a.Display {
		case annotation.DisplayMarker:
			if color == "" {
				color = styles.MarkerFill
			}
			symbol := a.MarkerSymbol
			if symbol == "" {
				symbol = defaultMarkerSymbol
			}
			size := a.MarkerSize
			if size <= 0 {
				size = defaultMarkerSize
			}
			out = append(out, Placement{Lane: lane, Shape: Marker{
				At:     float64(a.Start+a.End) / 2,
				Symbol: symbol,
				Size:   size,
				Color:  color,
			}})
		default:
			if color == "" {
				color = t.fill
			}
			out = append(out, Placement{Lane: lane, Shape: Box{
				Start: a.Start, End: a.End, Color: color, Alpha: 1,
			}})
		}
		if a.GroupKey != "" {
			rowLabels[lane] = appendUnique(rowLabels[lane], a.GroupKey)
		}
		if a.Label != "" {
			itemLabels[lane] = appendUnique(itemLabels[lane], a.Label)
		}
	}

	for lane := 0; lane < count; lane++ {
		if len(rowLabels[lane]) > 0 {
			out = append(out, Placement{Lane: lane, Shape: MarginText{
				Side: SideLeft, Text: strings.Join(rowLabels[lane], ", "), Color: styles.LabelText,
			}})
		}
		if len(itemLabels[lane]) > 0 {
			out = append(out, Placement{Lane: lane, Shape: MarginText{
				Side: SideRight, Text: strings.Join(itemLabels[lane], ", "), Color: styles.LabelText,
			}})
		}
	}
	return out
}

func appendUnique(list []string, s string) []string {
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}
