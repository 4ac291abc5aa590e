package orchestration

import (
	"context"
	"encoding/binary"
	"errors"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
	pargosort "github.com/exascience/pargo/sort"

	"github.com/agbru/parbench/internal/config"
	"github.com/agbru/parbench/internal/fibonacci"
	"github.com/agbru/parbench/internal/primes"
	"github.com/agbru/parbench/internal/quicksort"
)

// Benchmark names, used as record keys and metric labels.
const (
	BenchFibonacci = "fibonacci"
	BenchPrimes    = "primes"
	BenchSort      = "sort"
)

// errUnsorted is returned by a sort task whose output is out of order.
var errUnsorted = errors.New("sort output is not in non-decreasing order")

// BuildSuite returns the Fibonacci, prime and sort benchmarks configured by
// cfg, in that order. Every parallel variant uses cfg.Workers.
func BuildSuite(cfg config.AppConfig) []Benchmark {
	return []Benchmark{
		fibonacciBenchmark(cfg.FibN, fibonacci.Evaluator{Workers: cfg.Workers, Strategy: cfg.Strategy()}),
		primesBenchmark(cfg.PrimeLimit, primes.Filter{Workers: cfg.Workers}),
		sortBenchmark(cfg.SortSize, config.DefaultSortMax, cfg.Seed, quicksort.Sorter{Grain: cfg.SortGrain}),
	}
}

func fibonacciBenchmark(n int, eval fibonacci.Evaluator) Benchmark {
	return Benchmark{
		Name: BenchFibonacci,
		Serial: func() Task {
			return func(context.Context) (Outcome, error) {
				return Outcome{Count: n + 1, Digest: fibonacci.Dynamic(n)}, nil
			}
		},
		Parallel: func() Task {
			return func(ctx context.Context) (Outcome, error) {
				seq, err := eval.Parallel(ctx, n)
				if err != nil {
					return Outcome{}, err
				}
				if len(seq) == 0 {
					return Outcome{}, nil
				}
				return Outcome{Count: len(seq), Digest: seq[len(seq)-1]}, nil
			}
		},
	}
}

func primesBenchmark(limit int, filter primes.Filter) Benchmark {
	return Benchmark{
		Name: BenchPrimes,
		Serial: func() Task {
			return func(context.Context) (Outcome, error) {
				return digestInts(primes.Serial(limit)), nil
			}
		},
		Parallel: func() Task {
			return func(context.Context) (Outcome, error) {
				found, err := filter.Parallel(limit)
				if err != nil {
					return Outcome{}, err
				}
				return digestInts(found), nil
			}
		},
	}
}

func sortBenchmark(size, maxValue int, seed int64, sorter quicksort.Sorter) Benchmark {
	// Both variants regenerate the same buffer from seed before every run,
	// outside the timed region.
	sortTask := func(sortFn func([]int)) Workload {
		return func() Task {
			buf := RandomInts(size, maxValue, seed)
			return func(context.Context) (Outcome, error) {
				sortFn(buf)
				if !pargosort.IntsAreSorted(buf) {
					return Outcome{}, errUnsorted
				}
				return digestInts(buf), nil
			}
		}
	}
	return Benchmark{
		Name:     BenchSort,
		Serial:   sortTask(quicksort.Serial),
		Parallel: sortTask(sorter.Parallel),
	}
}

// RandomInts returns size pseudo-random integers in [1, maxValue], fully
// determined by seed.
func RandomInts(size, maxValue int, seed int64) []int {
	if size <= 0 {
		return []int{}
	}
	maxValue = max(1, maxValue)
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	buf := make([]int, size)
	for i := range buf {
		buf[i] = r.IntN(maxValue) + 1
	}
	return buf
}

// digestInts hashes the values of xs in order.
func digestInts(xs []int) Outcome {
	h := xxhash.New()
	var b [8]byte
	for _, x := range xs {
		binary.LittleEndian.PutUint64(b[:], uint64(x))
		_, _ = h.Write(b[:])
	}
	return Outcome{Count: len(xs), Digest: h.Sum64()}
}
