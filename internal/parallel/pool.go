package parallel

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ChunkFunc evaluates a single chunk. It must not depend on the results of
// any other chunk.
type ChunkFunc[T any] func(c Chunk) ([]T, error)

// MapChunks evaluates fn over every chunk using at most workers concurrent
// goroutines. The result for chunks[i] is stored at index i of the returned
// slice, so callers can assemble without sorting.
//
// The first error cancels the group context and is returned once every
// started evaluation has finished. Evaluations that have not yet been
// scheduled are skipped after cancellation.
func MapChunks[T any](ctx context.Context, chunks []Chunk, workers int, fn ChunkFunc[T]) ([][]T, error) {
	if workers < 1 {
		workers = 1
	}
	parts := make([][]T, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			part, err := fn(c)
			if err != nil {
				return err
			}
			parts[i] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}
