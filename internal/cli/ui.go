//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/parbench/internal/format"
	"github.com/agbru/parbench/internal/orchestration"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation, facilitating easier testing and maintenance.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with a progress bar while benchmark runs
// complete, then prints a final line summarising the suite's progress. It
// returns after progressChan is closed and calls wg.Done.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, totalSteps int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(totalSteps)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(" " + progressBar(0, ProgressBarWidth) + "   0%")
	s.Start()

	var last orchestration.AggregatedProgress
	failures := 0
	for update := range progressChan {
		last = agg.Update(update)
		if update.Err != nil {
			failures++
		}
		s.UpdateSuffix(FormatProgressLine(last))
	}
	s.Stop()

	status := "done"
	if failures > 0 {
		status = fmt.Sprintf("%d failed", failures)
	}
	fmt.Fprintf(out, "%s %s (%s)\n", progressBar(last.Fraction, ProgressBarWidth), fmt.Sprintf("%3.0f%%", last.Fraction*100), status)
}

// FormatProgressLine renders one progress state as
// " <bar> <pct> <benchmark>/<mode> <duration> ETA <eta>".
func FormatProgressLine(p orchestration.AggregatedProgress) string {
	eta := "--"
	if p.ETA > 0 {
		eta = format.FormatExecutionDuration(p.ETA.Round(time.Millisecond))
	}
	return fmt.Sprintf(" %s %3.0f%% %s/%s %s ETA %s",
		progressBar(p.Fraction, ProgressBarWidth), p.Fraction*100,
		p.Update.Benchmark, p.Update.Mode,
		format.FormatExecutionDuration(p.Update.Duration), eta)
}

// progressBar generates a string representing a textual progress bar.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
