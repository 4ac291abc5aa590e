// Package quicksort implements an in-place partition-exchange sort with a
// last-element pivot, serially and as a fork-join recursion.
//
// The sort is not stable. Already sorted input degrades to O(n²) time and
// O(n) recursion depth; it still terminates.
package quicksort

import (
	"github.com/exascience/pargo/parallel"
)

// Partition rearranges buf around its last element and returns the pivot's
// final index p. Afterwards buf[:p] holds values <= pivot and buf[p+1:]
// holds values > pivot. buf must not be empty.
func Partition(buf []int) int {
	hi := len(buf) - 1
	pivot := buf[hi]
	i := 0
	for j := 0; j < hi; j++ {
		if buf[j] <= pivot {
			buf[i], buf[j] = buf[j], buf[i]
			i++
		}
	}
	buf[i], buf[hi] = buf[hi], buf[i]
	return i
}

// Serial sorts buf in place in non-decreasing order.
func Serial(buf []int) {
	if len(buf) <= 1 {
		return
	}
	p := Partition(buf)
	Serial(buf[:p])
	Serial(buf[p+1:])
}

// Sorter sorts with fork-join parallelism.
type Sorter struct {
	// Grain is the sub-slice length below which recursion continues
	// serially. Zero forks at every level. There is no package default;
	// callers derive it from the worker count.
	Grain int
}

// Parallel sorts buf in place in non-decreasing order. After each partition
// the two halves are disjoint sub-slices, sorted concurrently and joined
// before Parallel returns.
func (s Sorter) Parallel(buf []int) {
	if len(buf) <= 1 {
		return
	}
	if len(buf) < s.Grain {
		Serial(buf)
		return
	}
	p := Partition(buf)
	left, right := buf[:p], buf[p+1:]
	_ = parallel.Do(
		func() error { s.Parallel(left); return nil },
		func() error { s.Parallel(right); return nil },
	)
}
