package parallel

import "fmt"

// SerialThreshold is the domain size below which Partition returns a single
// chunk. Dispatching goroutines for fewer elements costs more than the work.
const SerialThreshold = 10

// Chunk is an inclusive sub-interval [Start, End] of a domain.
type Chunk struct {
	Start int
	End   int
}

// Len returns the number of indices covered by the chunk.
func (c Chunk) Len() int {
	if c.End < c.Start {
		return 0
	}
	return c.End - c.Start + 1
}

// String implements fmt.Stringer.
func (c Chunk) String() string {
	return fmt.Sprintf("[%d, %d]", c.Start, c.End)
}

// Partition divides the inclusive domain [0, n] into at most workers
// contiguous chunks in ascending order.
//
// The chunk size is max(1, n/workers). Chunk i spans
// [i*size, min((i+1)*size-1, n)], except the last chunk, which always extends
// to n so the union covers the whole domain. Chunks whose start lies beyond n
// (possible when n < workers) are dropped rather than emitted empty.
//
// Domains smaller than SerialThreshold yield the single chunk [0, n].
// A negative n yields no chunks, and workers < 1 is treated as 1.
func Partition(n, workers int) []Chunk {
	if n < 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if n < SerialThreshold || workers == 1 {
		return []Chunk{{Start: 0, End: n}}
	}

	size := max(1, n/workers)
	chunks := make([]Chunk, 0, workers)
	for i := 0; i < workers; i++ {
		start := i * size
		end := min((i+1)*size-1, n)
		if i == workers-1 {
			end = n
		}
		if start > end {
			break
		}
		chunks = append(chunks, Chunk{Start: start, End: end})
	}
	return chunks
}
