package cli

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/parbench/internal/cli/mocks"
	"github.com/agbru/parbench/internal/orchestration"
)

// withSpinner swaps newSpinner for the duration of a test. Tests using it
// must not run in parallel.
func withSpinner(t *testing.T, s Spinner) {
	t.Helper()
	original := newSpinner
	newSpinner = func(options ...spinner.Option) Spinner { return s }
	t.Cleanup(func() { newSpinner = original })
}

func TestDisplayProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockS := mocks.NewMockSpinner(ctrl)
	withSpinner(t, mockS)

	var suffixes []string
	gomock.InOrder(
		mockS.EXPECT().UpdateSuffix(gomock.Any()).Do(func(s string) { suffixes = append(suffixes, s) }),
		mockS.EXPECT().Start(),
		mockS.EXPECT().UpdateSuffix(gomock.Any()).Do(func(s string) { suffixes = append(suffixes, s) }).Times(2),
		mockS.EXPECT().Stop(),
	)

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan orchestration.ProgressUpdate)
	var out bytes.Buffer

	go func() {
		progressChan <- orchestration.ProgressUpdate{Benchmark: "primes", Mode: orchestration.ModeSerial, Step: 1, Duration: 5 * time.Millisecond}
		progressChan <- orchestration.ProgressUpdate{Benchmark: "primes", Mode: orchestration.ModeParallel, Step: 2, Duration: 2 * time.Millisecond}
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 2, &out)
	wg.Wait()

	if len(suffixes) != 3 {
		t.Fatalf("got %d suffix updates, want 3", len(suffixes))
	}
	if !strings.Contains(suffixes[2], "primes/parallel") {
		t.Errorf("last suffix %q should name the finished run", suffixes[2])
	}
	if !strings.Contains(out.String(), "100%") || !strings.Contains(out.String(), "done") {
		t.Errorf("final line = %q, want 100%% and done", out.String())
	}
}

func TestDisplayProgress_CountsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockS := mocks.NewMockSpinner(ctrl)
	withSpinner(t, mockS)
	mockS.EXPECT().Start()
	mockS.EXPECT().Stop()
	mockS.EXPECT().UpdateSuffix(gomock.Any()).AnyTimes()

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan orchestration.ProgressUpdate, 2)
	progressChan <- orchestration.ProgressUpdate{Benchmark: "sort", Mode: orchestration.ModeSerial, Step: 1}
	progressChan <- orchestration.ProgressUpdate{Benchmark: "sort", Mode: orchestration.ModeParallel, Step: 2, Err: errors.New("boom")}
	close(progressChan)

	var out bytes.Buffer
	DisplayProgress(&wg, progressChan, 2, &out)
	wg.Wait()

	if !strings.Contains(out.String(), "1 failed") {
		t.Errorf("final line = %q, want failure count", out.String())
	}
}

func TestDisplayProgress_ZeroSteps(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No expectations: the spinner must never be created or started.
	withSpinner(t, mocks.NewMockSpinner(ctrl))

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan orchestration.ProgressUpdate)
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}

func TestFormatProgressLine(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		progress orchestration.AggregatedProgress
		contains []string
	}{
		{
			name: "with eta",
			progress: orchestration.AggregatedProgress{
				Update:   orchestration.ProgressUpdate{Benchmark: "fibonacci", Mode: orchestration.ModeSerial, Duration: 3 * time.Millisecond},
				Fraction: 0.5,
				ETA:      1500 * time.Millisecond,
			},
			contains: []string{" 50%", "fibonacci/serial", "3ms", "ETA 1.5s"},
		},
		{
			name: "unknown eta",
			progress: orchestration.AggregatedProgress{
				Update:   orchestration.ProgressUpdate{Benchmark: "sort", Mode: orchestration.ModeParallel, Duration: 250 * time.Microsecond},
				Fraction: 1,
			},
			contains: []string{"100%", "sort/parallel", "250µs", "ETA --"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FormatProgressLine(tt.progress)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("FormatProgressLine() = %q, missing %q", got, want)
				}
			}
		})
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		expected string
	}{
		{0.0, 10, "░░░░░░░░░░"},
		{0.5, 10, "█████░░░░░"},
		{1.0, 10, "██████████"},
		{1.5, 10, "██████████"},
		{-0.5, 10, "░░░░░░░░░░"},
		{0.25, 4, "█░░░"},
	}
	for _, tt := range tests {
		if got := progressBar(tt.progress, tt.length); got != tt.expected {
			t.Errorf("progressBar(%v, %d) = %q, want %q", tt.progress, tt.length, got, tt.expected)
		}
	}
}
