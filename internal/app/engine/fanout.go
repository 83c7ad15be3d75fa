// internal/app/engine/fanout.go
package engine

import (
	"context"
	"sync"
)

// forEachLimit runs fn(0..n-1) with at most e.concurrency invocations
// in flight. Results must be written by fn into position-indexed slots
// so that callers merge in input order, never arrival order. The first
// error wins; remaining invocations still run to completion.
func (e *Engine) forEachLimit(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}

	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := fn(ctx, i); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(i)
	}

	wg.Wait()
	return firstErr
}
