// Package parallel provides the fixed-size worker pool used by the sink
// coordinator to dispatch pieces across sequences.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers resolves a requested worker count. Zero or negative selects
// GOMAXPROCS.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// ForEach dispatches items across a fixed pool of worker goroutines and
// waits for completion. Worker w receives a stable id in [0, workers) so
// callers can bind per-worker state to it; any worker may receive any
// item, in any order, each item exactly once.
//
// A worker blocks when no item is ready. The first error stops further
// dispatch — workers finish their current item and exit — and is returned
// after all workers have stopped. There is no other cancellation.
func ForEach[T any](workers int, items []T, fn func(worker int, item T) error) error {
	if len(items) == 0 {
		return nil
	}
	workers = Workers(workers)
	if workers > len(items) {
		workers = len(items)
	}

	g, ctx := errgroup.WithContext(context.Background())
	feed := make(chan T)

	g.Go(func() error {
		defer close(feed)
		for _, item := range items {
			select {
			case feed <- item:
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for item := range feed {
				if err := fn(w, item); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}
