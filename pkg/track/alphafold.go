package track

import (
	"github.com/protviz/protviz/pkg/annotation"
	"github.com/protviz/protviz/pkg/coord"
	"github.com/protviz/protviz/pkg/figure/styles"
)

// AlphaFoldTrack renders per-residue score series as colored cell strips, one
// lane per series: pLDDT confidence on top, averaged AlphaMissense
// pathogenicity below. Residues without a score stay blank; gaps are never
// interpolated. A series with no data in the window is omitted entirely.
type AlphaFoldTrack struct {
	plddt    []annotation.Annotation
	missense []annotation.Annotation
	p        Params
}

// NewAlphaFoldTrack creates the score track from the two (possibly empty)
// normalized series.
func NewAlphaFoldTrack(plddt, missense []annotation.Annotation) *AlphaFoldTrack {
	return &AlphaFoldTrack{plddt: plddt, missense: missense, p: DefaultParams()}
}

// SetParams overrides the vertical layout parameters.
func (t *AlphaFoldTrack) SetParams(p Params) { t.p = p.orDefault() }

// Label implements Track.
func (t *AlphaFoldTrack) Label() string { return "AlphaFold" }

// Padding implements Track.
func (t *AlphaFoldTrack) Padding() float64 { return t.p.Padding }

// Metrics implements Track.
func (t *AlphaFoldTrack) Metrics() Params { return t.p }

func visiblePoints(anns []annotation.Annotation, win coord.Window) []annotation.Annotation {
	var out []annotation.Annotation
	for _, a := range anns {
		if win.Contains(a.Position()) {
			out = append(out, a)
		}
	}
	return out
}

// LaneCount implements Track.
func (t *AlphaFoldTrack) LaneCount(win coord.Window) int {
	n := 0
	if len(visiblePoints(t.plddt, win)) > 0 {
		n++
	}
	if len(visiblePoints(t.missense, win)) > 0 {
		n++
	}
	return n
}

// Height implements Track.
func (t *AlphaFoldTrack) Height(win coord.Window) float64 {
	return t.p.contentHeight(t.LaneCount(win))
}

// Layout implements Track.
func (t *AlphaFoldTrack) Layout(win coord.Window) []Placement {
	var out []Placement
	lane := 0

	if vis := visiblePoints(t.plddt, win); len(vis) > 0 {
		out = append(out, Placement{Lane: lane, Shape: MarginText{
			Side: SideLeft, Text: "pLDDT", Color: styles.LabelText,
		}})
		for _, a := range vis {
			out = append(out, Placement{Lane: lane, Shape: Box{
				Start: a.Position(), End: a.Position(),
				Color: styles.PLDDTColor(a.Value), Alpha: 1,
			}})
		}
		lane++
	}

	if vis := visiblePoints(t.missense, win); len(vis) > 0 {
		out = append(out, Placement{Lane: lane, Shape: MarginText{
			Side: SideLeft, Text: "AlphaMissense (avg)", Color: styles.LabelText,
		}})
		for _, a := range vis {
			out = append(out, Placement{Lane: lane, Shape: Box{
				Start: a.Position(), End: a.Position(),
				Color: styles.AlphaMissenseColor(a.Value), Alpha: 1,
			}})
		}
		lane++
	}

	if lane == 0 {
		return placeholder(win)
	}
	return out
}
