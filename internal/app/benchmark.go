package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/agbru/parbench/internal/calibration"
	"github.com/agbru/parbench/internal/cli"
	"github.com/agbru/parbench/internal/config"
	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/logging"
	"github.com/agbru/parbench/internal/metrics"
	"github.com/agbru/parbench/internal/orchestration"
	"github.com/agbru/parbench/internal/tui"
)

// suiteOutput controls where one suite run sends its record and metrics.
type suiteOutput struct {
	fileName string
	recorder *metrics.Recorder
	// reporter replaces the CLI progress display when set.
	reporter orchestration.ProgressReporter
}

// runBenchmark runs the suite once with the configured worker count.
func (a *Application) runBenchmark(ctx context.Context, out io.Writer) int {
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, runtime.NumCPU(), out)
	}

	var recorder *metrics.Recorder
	if a.Config.MetricsFile != "" {
		recorder = metrics.NewRecorder()
	}
	_, err := a.runSuite(ctx, a.Config, out, suiteOutput{fileName: a.Config.ResultFileName(), recorder: recorder})

	if recorder != nil {
		if werr := recorder.WriteTextfile(a.Config.MetricsFile); werr != nil {
			a.Logger.Warn("could not write metrics file",
				logging.String("path", a.Config.MetricsFile), logging.Err(werr))
		}
	}
	return a.exitCode(err)
}

// runTUI runs the suite under the live dashboard and prints the final
// summary once the dashboard closes.
func (a *Application) runTUI(ctx context.Context, out io.Writer) int {
	var recorder *metrics.Recorder
	if a.Config.MetricsFile != "" {
		recorder = metrics.NewRecorder()
	}
	totalSteps := orchestration.TotalSteps(orchestration.BuildSuite(a.Config),
		orchestration.Options{Repeat: a.Config.Repeat, Workers: a.Config.Workers})

	run := func(ctx context.Context, reporter orchestration.ProgressReporter) (orchestration.Summary, error) {
		return a.runSuite(ctx, a.Config, io.Discard, suiteOutput{
			fileName: a.Config.ResultFileName(),
			recorder: recorder,
			reporter: reporter,
		})
	}
	summary, code := tui.Run(ctx, a.Config, Version, totalSteps, run)

	if len(summary.Benchmarks) > 0 {
		cli.CLIResultPresenter{}.PresentSummary(summary, out)
	}
	if recorder != nil {
		if err := recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
			a.Logger.Warn("could not write metrics file",
				logging.String("path", a.Config.MetricsFile), logging.Err(err))
		}
	}
	return code
}

// runSweep runs the suite for every worker count from 1 up to the CPU count.
func (a *Application) runSweep(ctx context.Context, out io.Writer) int {
	counts := calibration.GenerateWorkerCounts(runtime.NumCPU())
	if !a.Config.Quiet {
		fmt.Fprintf(out, "--- Worker Sweep ---\nWorker counts: %v\n", counts)
	}

	run := func(ctx context.Context, cfg config.AppConfig) (orchestration.Summary, error) {
		if !cfg.Quiet {
			fmt.Fprintf(out, "\n=== %d worker(s) ===\n", cfg.Workers)
		}
		return a.runSuite(ctx, cfg, out, suiteOutput{fileName: sweepFileName(cfg)})
	}
	points, err := calibration.RunSweep(ctx, a.Config, counts, run, a.Logger)

	if !a.Config.Quiet {
		calibration.PrintSweepResults(out, points)
		calibration.PrintSweepOutput(out, points)
	}
	if err == nil {
		errs := make([]error, 0, len(points))
		for _, p := range points {
			errs = append(errs, p.Err)
		}
		err = errors.Join(errs...)
	}
	return a.exitCode(err)
}

// runSuite executes, analyses and persists one suite run. The returned
// error joins execution and analysis failures; a record that cannot be
// persisted is reported but does not fail the run.
func (a *Application) runSuite(ctx context.Context, cfg config.AppConfig, out io.Writer, dst suiteOutput) (orchestration.Summary, error) {
	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	switch {
	case dst.reporter != nil:
		progressReporter = dst.reporter
	case cfg.Quiet:
		progressReporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	var (
		results []orchestration.BenchmarkResult
		execErr error
	)
	withWorkers(cfg.Workers, func() {
		results, execErr = orchestration.ExecuteBenchmarks(ctx, orchestration.BuildSuite(cfg),
			orchestration.Options{Repeat: cfg.Repeat, Workers: cfg.Workers},
			progressReporter, progressOut, a.Logger)
	})
	memDelta := metrics.Delta(before, collector.Snapshot())

	summary, analyzeErr := orchestration.AnalyzeResults(results, cfg.Workers)
	if dst.recorder != nil {
		recordMetrics(dst.recorder, results, summary)
	}

	if !cfg.Quiet {
		cli.CLIResultPresenter{}.PresentSummary(summary, out)
		if cfg.Verbose {
			cli.DisplayMemoryStats(memDelta, out)
		}
	}

	if apperrors.IsContextError(execErr) {
		// An interrupted suite has incomplete timings; keep the previous record.
		return summary, execErr
	}

	record := cli.BuildRecord(summary, cfg, a.describeHost(), memDelta, time.Now())
	path, persistErr := cli.WriteRecordToFile(record, cli.OutputConfig{
		LogDir:   cfg.LogDir,
		FileName: dst.fileName,
		Format:   cfg.Format,
		Quiet:    cfg.Quiet,
	}, a.Logger)
	switch {
	case persistErr != nil:
		fmt.Fprintf(a.ErrWriter, "Error saving results: %v\n", persistErr)
	case !cfg.Quiet:
		cli.DisplayResultSaved(out, path)
	}

	return summary, errors.Join(execErr, analyzeErr)
}

// exitCode reports err on the error writer and maps it to an exit code.
func (a *Application) exitCode(err error) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	if apperrors.IsContextError(err) {
		fmt.Fprintln(a.ErrWriter, "Benchmark interrupted.")
	} else {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
	}
	return apperrors.ExitCodeFor(err)
}

func recordMetrics(r *metrics.Recorder, results []orchestration.BenchmarkResult, summary orchestration.Summary) {
	r.SetWorkers(summary.Workers)
	for _, res := range results {
		for _, m := range []orchestration.Measurement{res.Serial, res.Parallel} {
			for _, d := range m.Durations {
				r.ObserveDuration(res.Name, string(m.Mode), d.Seconds())
			}
		}
	}
	for _, b := range summary.Benchmarks {
		if b.Speedup > 0 {
			r.SetSpeedup(b.Name, b.Speedup)
		}
	}
}

// sweepFileName tags the record file with its worker count, for example
// "go_results_w4.json".
func sweepFileName(cfg config.AppConfig) string {
	name := cfg.ResultFileName()
	ext := "." + cfg.Format
	return fmt.Sprintf("%s_w%d%s", strings.TrimSuffix(name, ext), cfg.Workers, ext)
}
