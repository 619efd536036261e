package parallel

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPoolClosed is returned for tasks that could not be submitted.
var ErrPoolClosed = errors.New("worker pool is closed")

// Map runs fn for every index in [0, n) on pool and returns the results in
// index order. The first failure cancels the context seen by tasks that
// have not started yet, and that failure is returned. A panicking task
// fails with an error instead of losing its result slot.
func Map[R any](ctx context.Context, pool *WorkerPool, n int, fn func(ctx context.Context, i int) (R, error)) ([]R, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]R, n)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for i := 0; i < n; i++ {
		wg.Add(1)
		submitted := pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					fail(fmt.Errorf("task %d panicked: %v", i, r))
				}
			}()

			if err := ctx.Err(); err != nil {
				fail(err)
				return
			}
			r, err := fn(ctx, i)
			if err != nil {
				fail(fmt.Errorf("task %d: %w", i, err))
				return
			}
			results[i] = r
		})
		if !submitted {
			wg.Done()
			fail(ErrPoolClosed)
			break
		}
	}

	wg.Wait()
	return results, firstErr
}
