package orchestration

import (
	"time"
)

// ProgressAggregator turns a stream of ProgressUpdate values into an overall
// completion fraction and an ETA. Both the spinner reporter and the plain
// line reporter use it.
type ProgressAggregator struct {
	totalSteps int
	done       int
	elapsed    time.Duration
}

// NewProgressAggregator creates an aggregator for totalSteps updates.
// Returns nil if totalSteps <= 0.
func NewProgressAggregator(totalSteps int) *ProgressAggregator {
	if totalSteps <= 0 {
		return nil
	}
	return &ProgressAggregator{totalSteps: totalSteps}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	Update ProgressUpdate
	// Fraction is the share of finished steps, from 0 to 1.
	Fraction float64
	// ETA extrapolates the mean step duration over the remaining steps.
	ETA time.Duration
}

// Update processes a single progress update and returns the aggregated result.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	a.done = min(max(a.done, update.Step), a.totalSteps)
	a.elapsed += update.Duration
	return AggregatedProgress{
		Update:   update,
		Fraction: a.Fraction(),
		ETA:      a.ETA(),
	}
}

// Fraction returns the share of finished steps without updating.
func (a *ProgressAggregator) Fraction() float64 {
	return float64(a.done) / float64(a.totalSteps)
}

// ETA returns the current estimate without updating. It is zero until the
// first step finishes.
func (a *ProgressAggregator) ETA() time.Duration {
	if a.done == 0 {
		return 0
	}
	mean := a.elapsed / time.Duration(a.done)
	return mean * time.Duration(a.totalSteps-a.done)
}

// TotalSteps returns the number of steps being tracked.
func (a *ProgressAggregator) TotalSteps() int {
	return a.totalSteps
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
