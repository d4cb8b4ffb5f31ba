package track

import (
	"github.com/protviz/protviz/pkg/annotation"
	"github.com/protviz/protviz/pkg/coord"
	"github.com/protviz/protviz/pkg/figure/styles"
)

// labelWidthFactor approximates the sequence-space width one label character
// consumes at the default figure size. A bar shows its label only when the
// visible part is wider than the rendered text would be.
const labelWidthFactor = 0.015

// RangeTrack lays out interval annotations. In full mode every annotation
// keeps its identity and overlapping ones stack into separate lanes; in
// collapse mode all intervals merge into a single summary lane.
type RangeTrack struct {
	label      string
	anns       []annotation.Annotation
	mode       Mode
	p          Params
	fill       string
	byGroup    bool
	showLabels bool
}

// RangeOption adjusts a range track's display configuration.
type RangeOption func(*RangeTrack)

// WithParams overrides the vertical layout parameters.
func WithParams(p Params) RangeOption {
	return func(t *RangeTrack) { t.p = p.orDefault() }
}

// WithFill sets the fill color used when annotations carry no color of
// their own and group coloring is off.
func WithFill(color string) RangeOption {
	return func(t *RangeTrack) { t.fill = color }
}

// WithBarLabels toggles in-bar labels in full mode.
func WithBarLabels(show bool) RangeOption {
	return func(t *RangeTrack) { t.showLabels = show }
}

// WithGroupColors toggles palette coloring keyed by GroupKey.
func WithGroupColors(on bool) RangeOption {
	return func(t *RangeTrack) { t.byGroup = on }
}

func newRangeTrack(label string, anns []annotation.Annotation, mode Mode, opts ...RangeOption) *RangeTrack {
	t := &RangeTrack{
		label:      label,
		anns:       anns,
		mode:       mode,
		p:          DefaultParams(),
		fill:       styles.BarFill,
		showLabels: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewPDBTrack shows experimental structure coverage, one bar per PDB entry.
func NewPDBTrack(anns []annotation.Annotation, mode Mode, opts ...RangeOption) *RangeTrack {
	return newRangeTrack("PDB Coverage", anns, mode, opts...)
}

// NewTEDTrack shows TED consensus domains, palette-colored per domain.
func NewTEDTrack(anns []annotation.Annotation, mode Mode, opts ...RangeOption) *RangeTrack {
	t := newRangeTrack("TED Domains", anns, mode, opts...)
	t.byGroup = true
	return t
}

// NewLigandTrack shows ligand binding sites, palette-colored per ligand so
// that a ligand's scattered segments read as one entity.
func NewLigandTrack(anns []annotation.Annotation, mode Mode, opts ...RangeOption) *RangeTrack {
	t := newRangeTrack("Ligand Sites", anns, mode, opts...)
	t.byGroup = true
	return t
}

// NewInterProTrack shows member-database signature matches for one source
// database, palette-colored per signature accession.
func NewInterProTrack(dbName string, anns []annotation.Annotation, mode Mode, opts ...RangeOption) *RangeTrack {
	t := newRangeTrack(dbName, anns, mode, opts...)
	t.byGroup = true
	return t
}

// Label implements Track.
func (t *RangeTrack) Label() string { return t.label }

// Padding implements Track.
func (t *RangeTrack) Padding() float64 { return t.p.Padding }

// Metrics implements Track.
func (t *RangeTrack) Metrics() Params { return t.p }

// visible returns the annotations overlapping the window, input order kept.
func (t *RangeTrack) visible(win coord.Window) []annotation.Annotation {
	var out []annotation.Annotation
	for _, a := range t.anns {
		if win.Overlaps(a.Start, a.End) {
			out = append(out, a)
		}
	}
	return out
}

// LaneCount implements Track.
func (t *RangeTrack) LaneCount(win coord.Window) int {
	vis := t.visible(win)
	if len(vis) == 0 {
		return 0
	}
	if t.mode == ModeCollapse {
		return 1
	}
	_, n := Allocate(vis)
	return n
}

// Height implements Track.
func (t *RangeTrack) Height(win coord.Window) float64 {
	return t.p.contentHeight(t.LaneCount(win))
}

// Layout implements Track.
func (t *RangeTrack) Layout(win coord.Window) []Placement {
	vis := t.visible(win)
	if len(vis) == 0 {
		return placeholder(win)
	}
	if t.mode == ModeCollapse {
		return t.layoutCollapse(vis)
	}
	return t.layoutFull(vis, win)
}

func (t *RangeTrack) layoutCollapse(vis []annotation.Annotation) []Placement {
	var out []Placement
	for _, a := range Union(vis) {
		out = append(out, Placement{Lane: 0, Shape: Box{
			Start: a.Start, End: a.End, Color: t.fill, Alpha: 1,
		}})
	}
	return out
}

func (t *RangeTrack) layoutFull(vis []annotation.Annotation, win coord.Window) []Placement {
	lanes, _ := Allocate(vis)

	// Palette slots are assigned in first-seen input order, which is stable
	// across identical inputs.
	groupColor := map[string]string{}
	if t.byGroup {
		next := 0
		for _, a := range vis {
			if a.GroupKey == "" {
				continue
			}
			if _, ok := groupColor[a.GroupKey]; !ok {
				groupColor[a.GroupKey] = styles.PaletteColor(next)
				next++
			}
		}
	}

	var out []Placement
	for i, a := range vis {
		color := t.fill
		if c, ok := groupColor[a.GroupKey]; ok {
			color = c
		}
		if a.Color != "" {
			color = a.Color
		}
		out = append(out, Placement{Lane: lanes[i], Shape: Box{
			Start: a.Start, End: a.End, Color: color, Alpha: 1,
		}})
		if t.showLabels && a.Label != "" {
			if at, ok := labelAnchor(a, win); ok {
				out = append(out, Placement{Lane: lanes[i], Shape: BarText{
					At: at, Text: a.Label, Color: styles.LabelText,
				}})
			}
		}
	}
	return out
}

// labelAnchor decides whether an annotation's visible part is wide enough to
// carry its label and returns the label's center position.
func labelAnchor(a annotation.Annotation, win coord.Window) (float64, bool) {
	s, e, ok := win.Clip(a.Start, a.End)
	if !ok {
		return 0, false
	}
	width := float64(e - s + 1)
	needed := float64(len(a.Label)) * labelWidthFactor * float64(win.Span())
	if width <= needed {
		return 0, false
	}
	return float64(s+e) / 2, true
}

// placeholder is the shared empty-window rendering: a muted note centered on
// the track's block.
func placeholder(win coord.Window) []Placement {
	return []Placement{{Lane: LaneTrack, Shape: BarText{
		At:     float64(win.Start+win.End) / 2,
		Text:   "No data in view",
		Color:  styles.PlaceholderFg,
		Italic: true,
	}}}
}
