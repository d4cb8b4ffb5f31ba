package figure

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/protviz/protviz/pkg/annotation"
	"github.com/protviz/protviz/pkg/coord"
	"github.com/protviz/protviz/pkg/errors"
	"github.com/protviz/protviz/pkg/track"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func rects(fig *Figure) []Rect {
	var out []Rect
	for _, p := range fig.Prims {
		if r, ok := p.(Rect); ok {
			out = append(out, r)
		}
	}
	return out
}

func texts(fig *Figure) []Text {
	var out []Text
	for _, p := range fig.Prims {
		if t, ok := p.(Text); ok {
			out = append(out, t)
		}
	}
	return out
}

func TestComposeInvalidWindowFailsWholeRender(t *testing.T) {
	tracks := []track.Track{track.NewAxisTrack(100)}

	tests := []struct {
		name string
		win  coord.Window
	}{
		{"inverted", coord.Window{Start: 50, End: 10}},
		{"out of range", coord.Window{Start: 1, End: 500}},
		{"below one", coord.Window{Start: 0, End: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig, err := Compose(tracks, 100, WithWindow(tt.win))
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.GetCode(err) != errors.ErrCodeInvalidWindow {
				t.Errorf("code = %v, want INVALID_VIEW_WINDOW", errors.GetCode(err))
			}
			if fig != nil {
				t.Error("no partial figure on window error")
			}
		})
	}
}

func TestComposeDeterministic(t *testing.T) {
	anns := []annotation.Annotation{
		annotation.NewRange(10, 50),
		annotation.NewRange(30, 70),
		annotation.NewRange(60, 80),
	}
	build := func() *Figure {
		fig, err := Compose([]track.Track{
			track.NewPDBTrack(anns, track.ModeFull),
			track.NewAxisTrack(100),
		}, 100, WithProtein("P69905"))
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		return fig
	}
	if !reflect.DeepEqual(build(), build()) {
		t.Error("identical inputs produced different figures")
	}
}

func TestComposeZoomClipsWithoutMutating(t *testing.T) {
	ann := annotation.NewRange(10, 50)
	anns := []annotation.Annotation{ann}
	tr := track.NewPDBTrack(anns, track.ModeFull, track.WithBarLabels(false))

	fig, err := Compose([]track.Track{tr}, 100,
		WithWindow(coord.Window{Start: 20, End: 40}))
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	rs := rects(fig)
	if len(rs) != 1 {
		t.Fatalf("got %d rects, want 1", len(rs))
	}
	plotW := fig.Width - marginLeft - marginRight
	if !almost(rs[0].X, marginLeft) || !almost(rs[0].W, plotW) {
		t.Errorf("clipped bar at x=%.2f w=%.2f, want x=%.2f w=%.2f",
			rs[0].X, rs[0].W, marginLeft, plotW)
	}

	// The stored annotation keeps its original coordinates.
	if anns[0] != ann {
		t.Errorf("annotation mutated by composition: %+v", anns[0])
	}
}

func TestComposeFullSpanFillsPlotWidth(t *testing.T) {
	anns := []annotation.Annotation{annotation.NewRange(1, 100)}
	tr := track.NewPDBTrack(anns, track.ModeFull, track.WithBarLabels(false))

	fig, err := Compose([]track.Track{tr}, 100)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	rs := rects(fig)
	if len(rs) != 1 {
		t.Fatalf("got %d rects, want 1", len(rs))
	}
	plotW := fig.Width - marginLeft - marginRight
	if !almost(rs[0].X, marginLeft) || !almost(rs[0].W, plotW) {
		t.Errorf("full-span bar at x=%.2f w=%.2f, want x=%.2f w=%.2f",
			rs[0].X, rs[0].W, marginLeft, plotW)
	}
}

func TestComposeOffWindowAnnotationDropped(t *testing.T) {
	anns := []annotation.Annotation{
		annotation.NewRange(10, 20),
		annotation.NewRange(60, 80),
	}
	tr := track.NewPDBTrack(anns, track.ModeFull, track.WithBarLabels(false))

	fig, err := Compose([]track.Track{tr}, 100,
		WithWindow(coord.Window{Start: 50, End: 90}))
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got := len(rects(fig)); got != 1 {
		t.Errorf("got %d rects, want only the in-window bar", got)
	}
}

func TestComposeTitle(t *testing.T) {
	tracks := []track.Track{track.NewAxisTrack(153)}

	fig, err := Compose(tracks, 153, WithProtein("P69905"))
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if want := "Protein: P69905 (Total: 153 aa)"; fig.Title != want {
		t.Errorf("title = %q, want %q", fig.Title, want)
	}

	fig, err = Compose(tracks, 153, WithProtein("P69905"),
		WithWindow(coord.Window{Start: 20, End: 80}))
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if want := "Protein: P69905 (View: 20-80 aa / Total: 153 aa)"; fig.Title != want {
		t.Errorf("title = %q, want %q", fig.Title, want)
	}

	fig, err = Compose(tracks, 153, WithProtein("P69905"), WithTitle("override"))
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if fig.Title != "override" {
		t.Errorf("title = %q, want explicit override", fig.Title)
	}
}

func TestComposeEmptyTrackPlaceholder(t *testing.T) {
	tr := track.NewPDBTrack(nil, track.ModeFull)
	fig, err := Compose([]track.Track{tr}, 100)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	found := false
	for _, txt := range texts(fig) {
		if strings.Contains(txt.S, "No data in view") {
			found = true
			if !txt.Italic {
				t.Error("placeholder should render italic")
			}
		}
	}
	if !found {
		t.Error("empty track should render a placeholder, not fail")
	}
}

func TestComposeMinimumHeight(t *testing.T) {
	fig, err := Compose([]track.Track{track.NewAxisTrack(10)}, 10)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if want := marginTop + minUnits*unitPx + marginBottom; fig.Height < want {
		t.Errorf("height = %.1f, want at least %.1f", fig.Height, want)
	}
}

func TestComposeRejectsTinyCanvas(t *testing.T) {
	_, err := Compose([]track.Track{track.NewAxisTrack(10)}, 10, WithWidth(120))
	if err == nil {
		t.Fatal("expected error for canvas narrower than its margins")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("code = %v, want INVALID_INPUT", errors.GetCode(err))
	}
}
