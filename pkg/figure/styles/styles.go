// Package styles centralizes the color conventions shared by tracks and the
// figure composer: score-to-color band mappings and the categorical palette
// used to distinguish grouped annotations.
package styles

// Default colors used when a track or annotation does not override them.
const (
	BarFill       = "#87ceeb" // skyblue
	BarEdge       = "#000000"
	AxisLine      = "#000000"
	LabelText     = "#000000"
	PlaceholderFg = "#808080"
	MarkerFill    = "#ff0000"
)

// PLDDTColor maps an AlphaFold per-residue confidence score to the standard
// model-confidence band colors.
func PLDDTColor(score float64) string {
	switch {
	case score >= 90:
		return "#0052d6" // very high
	case score >= 70:
		return "#65cbf3" // confident
	case score >= 50:
		return "#FFDB13" // low
	default:
		return "#FF7D45" // very low
	}
}

// AlphaMissenseColor maps an averaged pathogenicity score to the published
// class colors: likely benign, ambiguous, likely pathogenic.
func AlphaMissenseColor(score float64) string {
	switch {
	case score < 0.34:
		return "#2166ac"
	case score <= 0.564:
		return "#a8a9ac"
	default:
		return "#b2182b"
	}
}

// palette holds visually distinct categorical colors; group coloring cycles
// through it in first-seen order.
var palette = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c", "#fabebe",
	"#008080", "#e6beff", "#9a6324", "#fffac8", "#800000",
	"#aaffc3", "#808000", "#ffd8b1", "#000075", "#808080",
}

// PaletteColor returns the i-th categorical color, wrapping around when the
// palette is exhausted.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

// PaletteSize is the number of distinct colors before PaletteColor wraps.
func PaletteSize() int { return len(palette) }
