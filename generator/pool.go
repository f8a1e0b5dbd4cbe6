package generator

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Chunks partitions files into consecutive groups of at most size files.
func Chunks(files []string, size int) [][]string {
	if size <= 0 {
		size = len(files)
	}
	var chunks [][]string
	for start := 0; start < len(files); start += size {
		end := start + size
		if end > len(files) {
			end = len(files)
		}
		chunks = append(chunks, files[start:end])
	}
	return chunks
}

// forEachChunk runs fn once per chunk on at most workers goroutines, or one
// goroutine per chunk when workers is not positive. fn receives the chunk
// index so that it can write to a slot it owns.
func forEachChunk(ctx context.Context, chunks [][]string, workers int, fn func(ctx context.Context, i int, chunk []string) error) error {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			return fn(ctx, i, chunk)
		})
	}
	return g.Wait()
}
