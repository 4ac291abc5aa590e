package orchestration

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	apperrors "github.com/agbru/parbench/internal/errors"
)

// Stats summarises the timed runs of one variant, in seconds.
type Stats struct {
	Runs   int     `json:"runs" yaml:"runs"`
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

// ComputeStats returns the statistics of ds. A single run has a standard
// deviation of zero; no runs yields the zero Stats.
func ComputeStats(ds []time.Duration) Stats {
	if len(ds) == 0 {
		return Stats{}
	}
	secs := make([]float64, len(ds))
	for i, d := range ds {
		secs[i] = d.Seconds()
	}
	s := Stats{Runs: len(secs), Min: floats.Min(secs), Max: floats.Max(secs)}
	if len(secs) == 1 {
		s.Mean = secs[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(secs, nil)
	return s
}

// BenchmarkSummary is the analysed form of a BenchmarkResult.
type BenchmarkSummary struct {
	Name     string
	Serial   Stats
	Parallel Stats
	// Speedup is mean serial time divided by mean parallel time, or 0 when
	// either variant has no successful run.
	Speedup float64
	// Consistent reports whether both variants produced equal outcomes.
	Consistent bool
	Err        error
}

// Summary is the analysed form of a whole suite run.
type Summary struct {
	Workers    int
	Benchmarks []BenchmarkSummary
}

// Lookup returns the summary for the named benchmark.
func (s Summary) Lookup(name string) (BenchmarkSummary, bool) {
	for _, b := range s.Benchmarks {
		if b.Name == name {
			return b, true
		}
	}
	return BenchmarkSummary{}, false
}

// AnalyzeResults computes per-benchmark statistics and checks that serial
// and parallel outcomes agree.
//
// The returned error joins every workload failure and every
// MismatchError; the Summary is complete either way.
func AnalyzeResults(results []BenchmarkResult, workers int) (Summary, error) {
	summary := Summary{Workers: workers, Benchmarks: make([]BenchmarkSummary, 0, len(results))}
	var errs []error
	for _, r := range results {
		bs := BenchmarkSummary{
			Name:     r.Name,
			Serial:   ComputeStats(r.Serial.Durations),
			Parallel: ComputeStats(r.Parallel.Durations),
		}
		switch {
		case r.Serial.Err != nil || r.Parallel.Err != nil:
			bs.Err = errors.Join(r.Serial.Err, r.Parallel.Err)
			errs = append(errs, bs.Err)
		case len(r.Serial.Durations) == 0 || len(r.Parallel.Durations) == 0:
			// Interrupted before both variants ran.
		case r.Serial.Outcome != r.Parallel.Outcome:
			bs.Err = apperrors.MismatchError{
				Benchmark: r.Name,
				Serial:    describeOutcome(r.Serial.Outcome),
				Parallel:  describeOutcome(r.Parallel.Outcome),
			}
			errs = append(errs, bs.Err)
		default:
			bs.Consistent = true
		}
		if bs.Serial.Runs > 0 && bs.Parallel.Runs > 0 && bs.Parallel.Mean > 0 {
			bs.Speedup = bs.Serial.Mean / bs.Parallel.Mean
		}
		summary.Benchmarks = append(summary.Benchmarks, bs)
	}
	return summary, errors.Join(errs...)
}

func describeOutcome(o Outcome) string {
	return fmt.Sprintf("(count=%d digest=%016x)", o.Count, o.Digest)
}
