//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"context"
	"io"
	"sync"
	"time"
)

// Mode distinguishes the two variants of a benchmark.
type Mode string

const (
	ModeSerial   Mode = "serial"
	ModeParallel Mode = "parallel"
)

// Outcome is a comparable summary of what a workload produced. Serial and
// parallel runs of the same benchmark must yield equal outcomes.
type Outcome struct {
	// Count is the number of produced elements.
	Count int
	// Digest identifies the produced values.
	Digest uint64
}

// Task is the timed part of a workload.
type Task func(ctx context.Context) (Outcome, error)

// Workload prepares fresh input outside the timed region and returns the
// Task to time.
type Workload func() Task

// Benchmark pairs the serial and parallel variants of one algorithm.
type Benchmark struct {
	Name     string
	Serial   Workload
	Parallel Workload
}

// Measurement holds every timed run of one benchmark variant.
type Measurement struct {
	Mode      Mode
	Durations []time.Duration
	Outcome   Outcome
	Err       error
}

// BenchmarkResult collects both variants of one benchmark.
type BenchmarkResult struct {
	Name     string
	Serial   Measurement
	Parallel Measurement
}

// ProgressUpdate is sent after each timed run.
type ProgressUpdate struct {
	Benchmark string
	Mode      Mode
	// Step is the 1-based index of the finished run across the whole suite.
	Step     int
	Duration time.Duration
	Err      error
}

// ProgressReporter defines the interface for displaying benchmark progress.
// This interface decouples the orchestration layer from the presentation
// layer: implementations handle the visual representation (spinners, plain
// lines) while the orchestration layer focuses on timing.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed and then
	// calls wg.Done. totalSteps is the number of updates that will be sent
	// if no run is canceled.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, totalSteps int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, totalSteps int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, totalSteps int, out io.Writer) {
	f(wg, progressChan, totalSteps, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting analysed results.
type ResultPresenter interface {
	PresentSummary(summary Summary, out io.Writer)
}
