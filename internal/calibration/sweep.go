// Package calibration runs the benchmark suite across a range of worker
// counts to show how each algorithm scales on the current host.
package calibration

import (
	"context"
	"strconv"

	"github.com/agbru/parbench/internal/config"
	"github.com/agbru/parbench/internal/logging"
	"github.com/agbru/parbench/internal/orchestration"
)

// SuiteRunner runs the suite once with cfg and returns its analysed summary.
// The summary must be usable even when an error is returned.
type SuiteRunner func(ctx context.Context, cfg config.AppConfig) (orchestration.Summary, error)

// SweepPoint is the outcome of one suite run at a fixed worker count.
type SweepPoint struct {
	Workers int
	Summary orchestration.Summary
	Err     error
}

// GenerateWorkerCounts returns the powers of two below numCPU followed by
// numCPU itself, for example 1, 2, 4, 6 on a six-way host.
func GenerateWorkerCounts(numCPU int) []int {
	if numCPU < 1 {
		numCPU = 1
	}
	counts := []int{}
	for w := 1; w < numCPU; w *= 2 {
		counts = append(counts, w)
	}
	return append(counts, numCPU)
}

// RunSweep runs the suite once per worker count, in order. When the sort
// grain was estimated it is re-estimated for every count, otherwise the
// configured grain is kept so only the worker count varies.
//
// Failing runs are recorded on their SweepPoint and the sweep continues.
// Cancellation stops the sweep and returns the points gathered so far with
// ctx.Err().
func RunSweep(ctx context.Context, base config.AppConfig, counts []int, run SuiteRunner, logger logging.Logger) ([]SweepPoint, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	points := make([]SweepPoint, 0, len(counts))
	for _, w := range counts {
		if err := ctx.Err(); err != nil {
			return points, err
		}
		cfg := base
		cfg.Workers = w
		cfg.WorkersRaw = strconv.Itoa(w)
		if cfg.SortGrainAuto {
			cfg.SortGrain = config.EstimateOptimalSortGrain(w)
		}

		logger.Info("sweep step", logging.Int("workers", w), logging.Int("sort_grain", cfg.SortGrain))
		summary, err := run(ctx, cfg)
		points = append(points, SweepPoint{Workers: w, Summary: summary, Err: err})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return points, ctxErr
			}
			logger.Warn("sweep step failed", logging.Int("workers", w), logging.Err(err))
		}
	}
	return points, nil
}

// BestWorkers returns the worker count with the lowest mean parallel time
// for the named benchmark, or 0 when no point has a consistent result.
func BestWorkers(points []SweepPoint, benchmark string) int {
	best, bestMean := 0, 0.0
	for _, p := range points {
		b, ok := p.Summary.Lookup(benchmark)
		if !ok || !b.Consistent || b.Parallel.Runs == 0 {
			continue
		}
		if best == 0 || b.Parallel.Mean < bestMean {
			best, bestMean = p.Workers, b.Parallel.Mean
		}
	}
	return best
}
