package tables

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// computeRows runs fn for every index in [0, n) on up to jobs goroutines.
// Each call owns results[i], so no locking is needed and the caller sees the
// rows in index order regardless of scheduling.
func computeRows[T any](ctx context.Context, jobs, n int, fn func(i int) (T, error)) ([]T, error) {
	results := make([]T, n)
	if n == 0 {
		return results, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// один воркер - без горутин
	if jobs == 1 {
		for i := range n {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			r, err := fn(i)
			if err != nil {
				return nil, err
			}
			results[i] = r
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, n))
	for i := range n {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			r, err := fn(i)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
