// Package pool provides a width-bounded worker pool whose results are
// delivered in completion order, not submission order. It is the single
// concurrency primitive shared by the reachability probe and every tail
// pass: workers perform one blocking call each, the coordinating goroutine
// drains completions as they arrive.
package pool

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// DefaultWidth is the worker count used when none is configured.
const DefaultWidth = 20

// Result carries one completed job back to the drain loop.
type Result[K, V any] struct {
	Key   K
	Value V
	Err   error
}

// Pool runs submitted jobs with at most width running at once.
type Pool[K, V any] struct {
	sem     *semaphore.Weighted
	results chan Result[K, V]
	wg      sync.WaitGroup
}

// New creates a pool of the given width. Non-positive widths fall back to
// DefaultWidth.
func New[K, V any](width int) *Pool[K, V] {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Pool[K, V]{
		sem:     semaphore.NewWeighted(int64(width)),
		results: make(chan Result[K, V]),
	}
}

// Submit schedules fn to run when a worker slot frees up. The job's outcome
// is delivered on Results keyed by key. When ctx is cancelled before the job
// acquires a slot, the result carries ctx's error instead of running fn.
func (p *Pool[K, V]) Submit(ctx context.Context, key K, fn func() (V, error)) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		if err := p.sem.Acquire(ctx, 1); err != nil {
			p.deliver(ctx, Result[K, V]{Key: key, Err: err})
			return
		}
		v, err := fn()
		p.sem.Release(1)
		p.deliver(ctx, Result[K, V]{Key: key, Value: v, Err: err})
	}()
}

// Results is the completion-order stream of job outcomes. It is closed by
// Close once every submitted job has finished.
func (p *Pool[K, V]) Results() <-chan Result[K, V] {
	return p.results
}

// Close waits for outstanding jobs and then closes Results. Call it after
// the final Submit, typically from its own goroutine while the caller drains
// Results.
func (p *Pool[K, V]) Close() {
	p.wg.Wait()
	close(p.results)
}

func (p *Pool[K, V]) deliver(ctx context.Context, r Result[K, V]) {
	select {
	case p.results <- r:
	case <-ctx.Done():
	}
}

// Map applies fn to every key with at most width workers and returns the
// completion-order result stream. The channel closes once all jobs finish.
func Map[K, V any](ctx context.Context, width int, keys []K, fn func(K) (V, error)) <-chan Result[K, V] {
	p := New[K, V](width)
	for _, k := range keys {
		k := k
		p.Submit(ctx, k, func() (V, error) { return fn(k) })
	}
	go p.Close()
	return p.Results()
}
