// Package primes finds primes by trial division, serially and with an
// order-preserving parallel filter.
package primes

import (
	"fmt"

	"github.com/exascience/pargo/pipeline"
)

// IsPrime reports whether n is prime by trial division up to floor(sqrt(n)).
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// Serial returns the primes in [2, limit] in ascending order.
func Serial(limit int) []int {
	out := []int{}
	for n := 2; n <= limit; n++ {
		if IsPrime(n) {
			out = append(out, n)
		}
	}
	return out
}

// Candidates returns the integers 2..limit that Filter.Parallel batches and
// tests.
func Candidates(limit int) []int {
	if limit < 2 {
		return []int{}
	}
	c := make([]int, 0, limit-1)
	for n := 2; n <= limit; n++ {
		c = append(c, n)
	}
	return c
}

// batchesPerWorker controls how finely the candidate range is split.
// Larger candidates cost more to test, so several batches per worker keep
// the tail of the range from landing on a single goroutine.
const batchesPerWorker = 4

// Filter tests candidates in parallel.
type Filter struct {
	// Workers bounds the number of goroutines testing batches at once.
	Workers int
}

// Parallel returns the primes in [2, limit] in ascending order.
//
// Candidate batches are tested concurrently by at most Workers goroutines
// and then passed through an ordered stage, which receives batches in source
// order regardless of which finished first.
func (f Filter) Parallel(limit int) ([]int, error) {
	candidates := Candidates(limit)
	if len(candidates) == 0 {
		return []int{}, nil
	}
	workers := max(1, f.Workers)

	result := make([]int, 0, len(candidates)/8)
	var p pipeline.Pipeline
	p.Source(candidates)
	p.NofBatches(workers * batchesPerWorker)
	p.Add(
		pipeline.LimitedPar(workers, pipeline.Receive(
			func(_ int, data interface{}) interface{} {
				batch, ok := data.([]int)
				if !ok {
					p.Err(fmt.Errorf("primes: unexpected batch type %T", data))
					return nil
				}
				kept := make([]int, 0, len(batch))
				for _, n := range batch {
					if IsPrime(n) {
						kept = append(kept, n)
					}
				}
				return kept
			},
		)),
		pipeline.Ord(pipeline.Slice(&result)),
	)
	p.Run()
	if err := p.Err(nil); err != nil {
		return nil, err
	}
	return result, nil
}
