package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner("Working...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Working...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Working...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should report cancellation after its context ends")
	}
}

func TestSpinnerContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Working...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should report cancellation after its context times out")
	}
}

func TestSpinnerSetMessage(t *testing.T) {
	s := newSpinner("Plotting P69905...")

	s.SetMessage("Rendering svg...")

	s.mu.Lock()
	got := s.message
	s.mu.Unlock()
	if got != "Rendering svg..." {
		t.Errorf("message = %q, want the replacement", got)
	}
}

func TestStageHooksDriveSpinnerMessage(t *testing.T) {
	ctx := context.Background()
	s := newSpinner("Plotting P69905...")
	h := stageHooks{spinner: s}

	tests := []struct {
		name string
		fire func()
		want string
	}{
		{
			name: "fetch stage",
			fire: func() { h.OnFetchStart(ctx, "pdbe", "P69905") },
			want: "Fetching pdbe for P69905...",
		},
		{
			name: "compose stage",
			fire: func() { h.OnComposeStart(ctx, "P69905", 4) },
			want: "Composing 4 tracks...",
		},
		{
			name: "render stage",
			fire: func() { h.OnRenderStart(ctx, []string{"svg", "png"}) },
			want: "Rendering svg, png...",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fire()
			s.mu.Lock()
			got := s.message
			s.mu.Unlock()
			if got != tt.want {
				t.Errorf("message = %q, want %q", got, tt.want)
			}
		})
	}
}
