package orchestration

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/logging"
)

// fixedWorkload returns a workload whose task yields outcome after sleeping
// for d. inFlight tracks overlapping tasks.
func fixedWorkload(outcome Outcome, d time.Duration, inFlight, peak *atomic.Int64) Workload {
	return func() Task {
		return func(context.Context) (Outcome, error) {
			if inFlight != nil {
				cur := inFlight.Add(1)
				defer inFlight.Add(-1)
				for {
					old := peak.Load()
					if cur <= old || peak.CompareAndSwap(old, cur) {
						break
					}
				}
			}
			time.Sleep(d)
			return outcome, nil
		}
	}
}

func failingWorkload(err error, calls *atomic.Int64) Workload {
	return func() Task {
		return func(context.Context) (Outcome, error) {
			calls.Add(1)
			return Outcome{}, err
		}
	}
}

// collectingReporter records every update it receives.
type collectingReporter struct {
	mu      sync.Mutex
	updates []ProgressUpdate
	total   int
}

func (c *collectingReporter) DisplayProgress(wg *sync.WaitGroup, ch <-chan ProgressUpdate, totalSteps int, _ io.Writer) {
	defer wg.Done()
	c.mu.Lock()
	c.total = totalSteps
	c.mu.Unlock()
	for u := range ch {
		c.mu.Lock()
		c.updates = append(c.updates, u)
		c.mu.Unlock()
	}
}

func TestExecuteBenchmarks_RunsSequentially(t *testing.T) {
	t.Parallel()
	var inFlight, peak atomic.Int64
	out := Outcome{Count: 3, Digest: 42}
	benches := []Benchmark{
		{Name: "a", Serial: fixedWorkload(out, time.Millisecond, &inFlight, &peak), Parallel: fixedWorkload(out, time.Millisecond, &inFlight, &peak)},
		{Name: "b", Serial: fixedWorkload(out, time.Millisecond, &inFlight, &peak), Parallel: fixedWorkload(out, time.Millisecond, &inFlight, &peak)},
	}
	reporter := &collectingReporter{}

	results, err := ExecuteBenchmarks(context.Background(), benches, Options{Repeat: 3, Workers: 2}, reporter, io.Discard, logging.Nop())
	if err != nil {
		t.Fatalf("ExecuteBenchmarks returned error: %v", err)
	}
	if peak.Load() != 1 {
		t.Errorf("peak concurrency = %d, want 1", peak.Load())
	}
	if len(results) != 2 || results[0].Name != "a" || results[1].Name != "b" {
		t.Fatalf("unexpected results: %+v", results)
	}
	for _, r := range results {
		if len(r.Serial.Durations) != 3 || len(r.Parallel.Durations) != 3 {
			t.Errorf("%s: got %d/%d runs, want 3/3", r.Name, len(r.Serial.Durations), len(r.Parallel.Durations))
		}
		if r.Serial.Mode != ModeSerial || r.Parallel.Mode != ModeParallel {
			t.Errorf("%s: modes not set: %+v", r.Name, r)
		}
	}

	if reporter.total != 12 || len(reporter.updates) != 12 {
		t.Fatalf("got total=%d updates=%d, want 12/12", reporter.total, len(reporter.updates))
	}
	wantOrder := []Mode{ModeSerial, ModeSerial, ModeSerial, ModeParallel, ModeParallel, ModeParallel}
	for i, u := range reporter.updates {
		if u.Step != i+1 {
			t.Errorf("update %d has step %d", i, u.Step)
		}
		if u.Mode != wantOrder[i%6] {
			t.Errorf("update %d mode = %s, want %s", i, u.Mode, wantOrder[i%6])
		}
	}
}

func TestExecuteBenchmarks_FailureSkipsRemainingRuns(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	var calls atomic.Int64
	benches := []Benchmark{
		{Name: "broken", Serial: fixedWorkload(Outcome{}, 0, nil, nil), Parallel: failingWorkload(boom, &calls)},
		{Name: "fine", Serial: fixedWorkload(Outcome{Count: 1}, 0, nil, nil), Parallel: fixedWorkload(Outcome{Count: 1}, 0, nil, nil)},
	}
	reporter := &collectingReporter{}

	results, err := ExecuteBenchmarks(context.Background(), benches, Options{Repeat: 4}, reporter, io.Discard, logging.Nop())
	if err != nil {
		t.Fatalf("workload failures must not abort the suite: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("failing workload ran %d times, want 1", calls.Load())
	}
	if !errors.Is(results[0].Parallel.Err, boom) {
		t.Errorf("Parallel.Err = %v, want wrapped boom", results[0].Parallel.Err)
	}
	if len(results[1].Parallel.Durations) != 4 {
		t.Errorf("next benchmark should still run")
	}
	last := reporter.updates[len(reporter.updates)-1]
	if last.Step != TotalSteps(benches, Options{Repeat: 4}) {
		t.Errorf("last step = %d, want %d", last.Step, TotalSteps(benches, Options{Repeat: 4}))
	}

	_, aerr := AnalyzeResults(results, 1)
	if code := apperrors.ExitCodeFor(aerr); code != apperrors.ExitErrorGeneric {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
}

func TestExecuteBenchmarks_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancelling := func() Task {
		return func(context.Context) (Outcome, error) {
			cancel()
			return Outcome{}, nil
		}
	}
	benches := []Benchmark{
		{Name: "first", Serial: cancelling, Parallel: fixedWorkload(Outcome{}, 0, nil, nil)},
		{Name: "second", Serial: fixedWorkload(Outcome{}, 0, nil, nil), Parallel: fixedWorkload(Outcome{}, 0, nil, nil)},
	}

	results, err := ExecuteBenchmarks(ctx, benches, Options{}, NullProgressReporter{}, io.Discard, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if apperrors.ExitCodeFor(err) != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", apperrors.ExitCodeFor(err), apperrors.ExitErrorCanceled)
	}
	if len(results) != 1 || len(results[0].Serial.Durations) != 1 || len(results[0].Parallel.Durations) != 0 {
		t.Errorf("unexpected partial results: %+v", results)
	}
}

func TestProgressReporterFunc(t *testing.T) {
	t.Parallel()
	var got int
	f := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan ProgressUpdate, total int, _ io.Writer) {
		defer wg.Done()
		for range ch {
			got++
		}
	})
	benches := []Benchmark{{Name: "x", Serial: fixedWorkload(Outcome{}, 0, nil, nil), Parallel: fixedWorkload(Outcome{}, 0, nil, nil)}}
	if _, err := ExecuteBenchmarks(context.Background(), benches, Options{Repeat: 2}, f, io.Discard, nil); err != nil {
		t.Fatal(err)
	}
	if got != 4 {
		t.Errorf("received %d updates, want 4", got)
	}
}
