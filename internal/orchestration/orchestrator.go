package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/agbru/parbench/internal/logging"
)

const tracerName = "github.com/agbru/parbench/internal/orchestration"

// Options controls how a suite is executed.
type Options struct {
	// Repeat is the number of timed runs per variant. Values below 1 are
	// treated as 1.
	Repeat int
	// Workers is recorded on spans and log entries.
	Workers int
}

// TotalSteps returns the number of timed runs ExecuteBenchmarks performs.
func TotalSteps(benches []Benchmark, opts Options) int {
	return len(benches) * 2 * max(1, opts.Repeat)
}

// ExecuteBenchmarks times every benchmark variant in order: all serial runs
// of a benchmark, then all of its parallel runs, then the next benchmark.
// Nothing runs concurrently with a timed region, so measurements do not
// contend with each other.
//
// A failing run is recorded on its Measurement and the remaining runs of
// that variant are skipped. Cancellation is checked between runs; when ctx
// is done the results gathered so far are returned with ctx.Err().
func ExecuteBenchmarks(ctx context.Context, benches []Benchmark, opts Options, reporter ProgressReporter, out io.Writer, logger logging.Logger) ([]BenchmarkResult, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	repeat := max(1, opts.Repeat)
	tracer := otel.Tracer(tracerName)

	progressChan := make(chan ProgressUpdate, TotalSteps(benches, opts))
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, TotalSteps(benches, opts), out)
	defer func() {
		close(progressChan)
		displayWg.Wait()
	}()

	results := make([]BenchmarkResult, 0, len(benches))
	step := 0
	for _, b := range benches {
		res := BenchmarkResult{Name: b.Name}
		for _, v := range []struct {
			mode     Mode
			workload Workload
			dst      *Measurement
		}{
			{ModeSerial, b.Serial, &res.Serial},
			{ModeParallel, b.Parallel, &res.Parallel},
		} {
			v.dst.Mode = v.mode
			for run := 1; run <= repeat; run++ {
				if err := ctx.Err(); err != nil {
					results = append(results, res)
					return results, err
				}
				task := v.workload()

				spanCtx, span := tracer.Start(ctx, b.Name+"."+string(v.mode))
				span.SetAttributes(
					attribute.String("benchmark", b.Name),
					attribute.String("mode", string(v.mode)),
					attribute.Int("run", run),
					attribute.Int("workers", opts.Workers),
				)
				start := time.Now()
				outcome, err := task(spanCtx)
				elapsed := time.Since(start)
				if err != nil {
					span.RecordError(err)
					span.SetStatus(codes.Error, err.Error())
				}
				span.End()

				step++
				progressChan <- ProgressUpdate{Benchmark: b.Name, Mode: v.mode, Step: step, Duration: elapsed, Err: err}

				if err != nil {
					v.dst.Err = fmt.Errorf("%s %s run %d: %w", b.Name, v.mode, run, err)
					logger.Error("workload failed", err,
						logging.String("benchmark", b.Name),
						logging.String("mode", string(v.mode)),
						logging.Int("run", run))
					step += repeat - run
					break
				}
				v.dst.Durations = append(v.dst.Durations, elapsed)
				v.dst.Outcome = outcome
				logger.Debug("workload timed",
					logging.String("benchmark", b.Name),
					logging.String("mode", string(v.mode)),
					logging.Int("run", run),
					logging.Duration("elapsed", elapsed),
					logging.Int("count", outcome.Count))
			}
		}
		results = append(results, res)
	}
	return results, nil
}
