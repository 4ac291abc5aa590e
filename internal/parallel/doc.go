// Package parallel splits an integer domain into contiguous chunks, evaluates
// the chunks on a bounded worker pool, and reassembles the per-chunk results
// in index order.
//
// The three pieces are deliberately independent:
//
//   - Partition decides the chunk boundaries for a domain [0, n].
//   - MapChunks runs an evaluator over the chunks with at most Workers
//     goroutines in flight, storing each result at its chunk's position.
//   - Assemble concatenates the results in chunk order and truncates the
//     output to n+1 elements.
//
// Output order is therefore a property of the chunk slice, never of the order
// in which workers happen to finish.
package parallel
