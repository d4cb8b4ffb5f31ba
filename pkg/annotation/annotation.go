// Package annotation defines the uniform annotation representation and the
// per-source normalizers that produce it.
//
// Heterogeneous source records (PDB coverage intervals, ligand binding sites,
// TED domain choppings, AlphaFold per-residue scores, InterPro signatures,
// user-supplied custom rows) are converted into a single tagged-union
// [Annotation] type. Normalization is partial-failure tolerant at record
// granularity: a structurally invalid record yields a [RecordError] and the
// remaining records in the batch proceed. Errors are never silently dropped;
// every normalizer returns the collected errors alongside the valid
// annotations.
package annotation

import "fmt"

// Kind discriminates the annotation variants.
type Kind int

const (
	// KindRange is an inclusive interval [Start, End] on the sequence.
	KindRange Kind = iota
	// KindPoint is a single position (Start == End).
	KindPoint
	// KindScored is a position with a continuous per-residue value.
	KindScored
)

// String returns the lower-case variant name.
func (k Kind) String() string {
	switch k {
	case KindRange:
		return "range"
	case KindPoint:
		return "point"
	case KindScored:
		return "scored"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ValueKind identifies the numeric domain of a scored annotation.
type ValueKind int

const (
	// Confidence is a pLDDT-style score in [0, 100].
	Confidence ValueKind = iota
	// Pathogenicity is an AlphaMissense-style score in [0, 1].
	Pathogenicity
)

// DisplayType selects how a single annotation is drawn.
type DisplayType string

const (
	// DisplayBar draws the annotation as a rectangle spanning [Start, End].
	DisplayBar DisplayType = "bar"
	// DisplayMarker draws the annotation as a symbol at its center position.
	DisplayMarker DisplayType = "marker"
)

// Annotation is one normalized unit of sequence-located information.
// Exactly one variant applies, selected by Kind. Coordinates are 1-based
// inclusive and already validated against the sequence length; they are never
// mutated after normalization (view clipping is a rendering concern).
type Annotation struct {
	Kind Kind

	// Start and End bound the inclusive interval for KindRange and KindPoint
	// (Start == End for points). For KindScored they both equal the position.
	Start int
	End   int

	// Value and ValueKind apply to KindScored only.
	Value     float64
	ValueKind ValueKind

	// Label is the per-annotation display text (e.g. a PDB id).
	Label string

	// Color is an explicit color override; empty means the track decides.
	Color string

	// GroupKey tags annotations that belong to one logical entity (a PDB
	// entry, a ligand, a TED domain). It controls coloring and labeling only
	// and never influences geometric lane placement.
	GroupKey string

	// Display, MarkerSymbol and MarkerSize control custom-track drawing.
	Display      DisplayType
	MarkerSymbol string
	MarkerSize   float64
}

// NewRange constructs a bar annotation over [start, end].
func NewRange(start, end int) Annotation {
	return Annotation{Kind: KindRange, Start: start, End: end, Display: DisplayBar}
}

// NewPoint constructs a point annotation at pos.
func NewPoint(pos int) Annotation {
	return Annotation{Kind: KindPoint, Start: pos, End: pos, Display: DisplayMarker}
}

// NewScored constructs a scored annotation at pos.
func NewScored(pos int, value float64, kind ValueKind) Annotation {
	return Annotation{Kind: KindScored, Start: pos, End: pos, Value: value, ValueKind: kind}
}

// Position returns the single position of a point or scored annotation.
func (a Annotation) Position() int { return a.Start }

// Overlaps reports whether two annotations share at least one integer
// position. Both intervals are closed, so touching endpoints count as
// overlapping.
func (a Annotation) Overlaps(b Annotation) bool {
	return a.Start <= b.End && b.Start <= a.End
}

// RecordError describes a single source record that failed normalization.
// Index is the record's position in the input batch.
type RecordError struct {
	Index int
	Err   error
}

// Error implements the error interface.
func (e RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e RecordError) Unwrap() error { return e.Err }
