package fibonacci

import (
	"context"

	"github.com/agbru/parbench/internal/parallel"
)

// Evaluator computes F(0..n) by splitting the index range into chunks and
// evaluating them on a bounded pool.
type Evaluator struct {
	// Workers bounds both the number of chunks and concurrent evaluations.
	Workers int
	// Strategy selects the per-chunk algorithm.
	Strategy Strategy
}

// Parallel returns F(0), ..., F(n). Domains below parallel.SerialThreshold,
// and evaluators with a single worker, are evaluated on the calling
// goroutine.
func (e Evaluator) Parallel(ctx context.Context, n int) ([]uint64, error) {
	if n < 0 {
		return []uint64{}, nil
	}
	eval := e.Strategy.chunkFunc()
	chunks := parallel.Partition(n, e.Workers)
	if len(chunks) == 1 {
		return eval(0, n), nil
	}

	parts, err := parallel.MapChunks(ctx, chunks, e.Workers, func(c parallel.Chunk) ([]uint64, error) {
		return eval(c.Start, c.End), nil
	})
	if err != nil {
		return nil, err
	}
	return parallel.Assemble(parts, n), nil
}
