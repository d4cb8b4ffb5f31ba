package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/protviz/protviz/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is a stderr progress indicator for pipeline runs. The message can
// be swapped while the spinner runs, so a long plot shows which stage is
// active (fetching a source, composing, rendering) instead of one static
// line. Each frame appends the elapsed time since Start.
type Spinner struct {
	mu      sync.Mutex
	message string
	started time.Time
	width   int // widest line painted so far, for clearing

	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	stopped  chan struct{}
}

// newSpinner creates a spinner with an initial message.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that also stops when ctx ends.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// SetMessage replaces the spinner line. Safe to call from pipeline hooks
// while the animation goroutine is painting.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.started = time.Now()
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.paint(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *Spinner) paint(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	elapsed := time.Since(s.started).Round(100 * time.Millisecond)
	line := fmt.Sprintf("%s %s", styleIconSpinner.Render(frame),
		StyleDim.Render(fmt.Sprintf("%s (%s)", s.message, elapsed)))
	if w := len(line); w > s.width {
		s.width = w
	}
	fmt.Fprintf(os.Stderr, "\r%s", line)
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", s.width))
}

// Stop halts the animation and clears the line. Idempotent.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		<-s.stopped
	})
}

// StopWithSuccess stops the spinner and shows a success message.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and shows an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context ended, either through the
// parent context or an explicit Stop.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

// stageHooks feeds pipeline stage transitions into the spinner message, so
// the user sees which upstream is slow rather than a generic "working".
type stageHooks struct {
	observability.NoopPipelineHooks
	spinner *Spinner
}

func (h stageHooks) OnFetchStart(ctx context.Context, source, accession string) {
	h.spinner.SetMessage(fmt.Sprintf("Fetching %s for %s...", source, accession))
}

func (h stageHooks) OnComposeStart(ctx context.Context, accession string, trackCount int) {
	h.spinner.SetMessage(fmt.Sprintf("Composing %d tracks...", trackCount))
}

func (h stageHooks) OnRenderStart(ctx context.Context, formats []string) {
	h.spinner.SetMessage(fmt.Sprintf("Rendering %s...", strings.Join(formats, ", ")))
}
