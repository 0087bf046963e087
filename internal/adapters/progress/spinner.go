package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/bosagora/sidechain-deployer/internal/usecase"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// SpinnerProgressReporter implements progress reporting with a spinner
type SpinnerProgressReporter struct {
	spinner *spinner.Spinner
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if !event.Spinner {
		r.Stop()
		return
	}

	if !r.spinner.Active() {
		r.spinner.Start()
	}
	r.spinner.Suffix = " " + r.describe(event)
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.pause(func() {
		color.New(color.FgCyan).Println(message)
	})
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.pause(func() {
		color.New(color.FgRed).Println(message)
	})
}

// Stop halts the spinner
func (r *SpinnerProgressReporter) Stop() {
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// pause stops the spinner while print runs so output lines are not garbled
func (r *SpinnerProgressReporter) pause(print func()) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	print()

	if wasActive {
		r.spinner.Start()
	}
}

func (r *SpinnerProgressReporter) describe(event usecase.ProgressEvent) string {
	message := event.Message
	if message == "" {
		message = event.Stage
	}
	if event.Total > 0 {
		counter := color.New(color.FgYellow).Sprintf("[%d/%d]", event.Current, event.Total)
		message = fmt.Sprintf("%s %s", counter, message)
	}
	return message
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
