// Package parallel implements the task pool shared by the recursive searches.
//
// A Pool holds a fixed number of worker tokens. ForEach hands an item to a new goroutine only if a token is
// free, otherwise it runs the item inline in the calling goroutine: recursive fan-outs never wait on tokens
// held by their ancestors, so nested use can't deadlock, and the total number of busy goroutines stays
// bounded while the Go scheduler steals work across threads.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Pool of worker tokens. A nil *Pool is valid and runs everything sequentially.
type Pool struct {
	tokens  *semaphore.Weighted
	workers int
}

// Default pool, with one worker per available CPU, shared by all searchers unless configured otherwise.
var Default = New(runtime.GOMAXPROCS(0))

// New creates a pool that runs up to workers items in extra goroutines, besides the calling ones.
// If workers <= 0 it returns nil, the sequential pool.
func New(workers int) *Pool {
	if workers <= 0 {
		return nil
	}
	return &Pool{tokens: semaphore.NewWeighted(int64(workers)), workers: workers}
}

// Workers returns the number of worker tokens, 0 for the sequential pool.
func (p *Pool) Workers() int {
	if p == nil {
		return 0
	}
	return p.workers
}

// ForEach calls fn(i) for i in [0, n) and returns when all calls returned.
//
// Calls may run concurrently: fn must only write to per-index data. The last item always runs in the calling
// goroutine.
func (p *Pool) ForEach(n int, fn func(i int)) {
	if p == nil || n <= 1 {
		for i := range n {
			fn(i)
		}
		return
	}
	var g errgroup.Group
	for i := range n {
		if i < n-1 && p.tokens.TryAcquire(1) {
			g.Go(func() error {
				defer p.tokens.Release(1)
				fn(i)
				return nil
			})
			continue
		}
		fn(i)
	}
	_ = g.Wait()
}

// Map returns [fn(0), fn(1), ..., fn(n-1)], computed with ForEach. The order of the results is the order of
// the indices, whichever order they were computed in.
func Map[T any](p *Pool, n int, fn func(i int) T) []T {
	results := make([]T, n)
	p.ForEach(n, func(i int) {
		results[i] = fn(i)
	})
	return results
}
