package orchestration_test

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/agbru/parbench/internal/orchestration"
	"github.com/agbru/parbench/internal/orchestration/mocks"
)

func constantBenchmark(name string) orchestration.Benchmark {
	w := func() orchestration.Task {
		return func(context.Context) (orchestration.Outcome, error) {
			return orchestration.Outcome{Count: 1, Digest: 42}, nil
		}
	}
	return orchestration.Benchmark{Name: name, Serial: w, Parallel: w}
}

func TestExecuteBenchmarks_MockReporter(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockProgressReporter(ctrl)

	benches := []orchestration.Benchmark{constantBenchmark("a"), constantBenchmark("b")}
	opts := orchestration.Options{Repeat: 3, Workers: 2}

	var steps []int
	reporter.EXPECT().
		DisplayProgress(gomock.Any(), gomock.Any(), 12, io.Discard).
		Do(func(wg *sync.WaitGroup, ch <-chan orchestration.ProgressUpdate, _ int, _ io.Writer) {
			defer wg.Done()
			for u := range ch {
				steps = append(steps, u.Step)
			}
		}).
		Times(1)

	results, err := orchestration.ExecuteBenchmarks(context.Background(), benches, opts, reporter, io.Discard, nil)
	if err != nil {
		t.Fatalf("ExecuteBenchmarks() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if len(steps) != 12 || steps[0] != 1 || steps[11] != 12 {
		t.Errorf("steps = %v, want 1..12", steps)
	}
}

func TestResultPresenter_Mock(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	presenter := mocks.NewMockResultPresenter(ctrl)

	summary := orchestration.Summary{Workers: 4}
	presenter.EXPECT().PresentSummary(summary, io.Discard).Times(1)

	var p orchestration.ResultPresenter = presenter
	p.PresentSummary(summary, io.Discard)
}
