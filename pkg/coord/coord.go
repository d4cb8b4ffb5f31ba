// Package coord defines the sequence coordinate system shared by all tracks.
//
// Positions are 1-based inclusive integers following the UniProt numbering
// convention: a protein of length N has residues 1..N. A [Window] restricts
// rendering to a sub-range of the sequence ("zoom"); the zero Window means
// the full sequence. A [Scale] is the affine map from sequence positions to
// horizontal pixel positions for the current window; zooming changes only
// the map's domain, never the annotation data.
package coord

import "github.com/protviz/protviz/pkg/errors"

// Window is an inclusive view range over sequence positions.
// The zero value is interpreted as "full sequence" by [Resolve].
type Window struct {
	Start int
	End   int
}

// Full returns the window covering the entire sequence.
func Full(seqLen int) Window {
	return Window{Start: 1, End: seqLen}
}

// Resolve fills a zero window with the full sequence range and validates the
// result. It returns an INVALID_VIEW_WINDOW error when the bounds are out of
// range or inverted; that error is fatal to the whole render since the
// position-to-pixel map cannot be constructed from it.
func Resolve(w Window, seqLen int) (Window, error) {
	if err := errors.ValidateSequenceLength(seqLen); err != nil {
		return Window{}, err
	}
	if w == (Window{}) {
		return Full(seqLen), nil
	}
	if w.Start < 1 || w.End > seqLen {
		return Window{}, errors.New(errors.ErrCodeInvalidWindow,
			"view window %d-%d outside sequence 1-%d", w.Start, w.End, seqLen)
	}
	if w.Start >= w.End {
		if seqLen == 1 && w.Start == 1 && w.End == 1 {
			return w, nil
		}
		return Window{}, errors.New(errors.ErrCodeInvalidWindow,
			"view start %d must be less than view end %d", w.Start, w.End)
	}
	return w, nil
}

// Span returns the number of residues covered by the window, inclusive.
func (w Window) Span() int {
	return w.End - w.Start + 1
}

// Contains reports whether position p falls inside the window.
func (w Window) Contains(p int) bool {
	return p >= w.Start && p <= w.End
}

// Overlaps reports whether the inclusive range [start, end] shares at least
// one position with the window.
func (w Window) Overlaps(start, end int) bool {
	return end >= w.Start && start <= w.End
}

// Clip clamps the inclusive range [start, end] to the window for drawing.
// The second return value is false when the range lies entirely outside.
// Clipping happens at render time only; stored annotations keep their
// original coordinates.
func (w Window) Clip(start, end int) (int, int, bool) {
	if !w.Overlaps(start, end) {
		return 0, 0, false
	}
	return max(start, w.Start), min(end, w.End), true
}

// Scale maps sequence positions to horizontal pixel positions for one window.
// The pixel domain covers [Start-0.5, End+0.5] so that bars at the exact
// window edges are not cut in half.
type Scale struct {
	win   Window
	width float64
}

// NewScale creates the affine position-to-pixel map for a window and a plot
// width in pixels.
func NewScale(win Window, width float64) Scale {
	return Scale{win: win, width: width}
}

// Window returns the window the scale was built for.
func (s Scale) Window() Window { return s.win }

// Width returns the pixel width of the plot area.
func (s Scale) Width() float64 { return s.width }

// X returns the pixel position of an integer sequence position's center.
func (s Scale) X(p int) float64 {
	return s.XF(float64(p))
}

// XF returns the pixel position of a fractional sequence coordinate.
// Fractional coordinates express residue boundaries: position p occupies
// [p-0.5, p+0.5].
func (s Scale) XF(p float64) float64 {
	left := float64(s.win.Start) - 0.5
	return (p - left) / float64(s.win.Span()) * s.width
}

// SpanWidth returns the pixel width of the inclusive range [start, end].
func (s Scale) SpanWidth(start, end int) float64 {
	return s.XF(float64(end)+0.5) - s.XF(float64(start)-0.5)
}
