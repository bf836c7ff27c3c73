package parallel

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Result is the outcome of one submitted job.
type Result[T any] struct {
	Index    int
	ID       string
	Value    T
	Error    error
	Duration time.Duration
}

// WorkerPool runs jobs with bounded concurrency and collects their results.
type WorkerPool[T any] struct {
	maxWorkers int
	semaphore  chan struct{}
	wg         sync.WaitGroup
	mu         sync.Mutex
	next       int
	results    []Result[T]
	errors     []error
	failFast   bool
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewWorkerPool creates a pool. If maxWorkers is 0 every submitted job runs
// at once. If failFast is true the pool's context is cancelled on the first
// error and jobs that have not started are skipped.
func NewWorkerPool[T any](ctx context.Context, maxWorkers int, failFast bool) *WorkerPool[T] {
	if maxWorkers < 0 {
		maxWorkers = 0
	}
	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool[T]{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
		failFast:   failFast,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Context returns the pool's context. It is cancelled by Cancel, by Wait, or
// by the first error in fail-fast mode.
func (p *WorkerPool[T]) Context() context.Context {
	return p.ctx
}

// Submit schedules fn. Jobs are numbered in submission order and Wait
// returns results in that order regardless of completion order.
func (p *WorkerPool[T]) Submit(id string, fn func(ctx context.Context) (T, error)) {
	p.mu.Lock()
	index := p.next
	p.next++
	p.mu.Unlock()

	select {
	case <-p.ctx.Done():
		return
	default:
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		if p.maxWorkers > 0 {
			select {
			case p.semaphore <- struct{}{}:
				defer func() { <-p.semaphore }()
			case <-p.ctx.Done():
				return
			}
		}

		select {
		case <-p.ctx.Done():
			return
		default:
		}

		start := time.Now()
		value, err := fn(p.ctx)
		result := Result[T]{
			Index:    index,
			ID:       id,
			Value:    value,
			Error:    err,
			Duration: time.Since(start),
		}

		p.mu.Lock()
		defer p.mu.Unlock()

		p.results = append(p.results, result)
		if err != nil {
			p.errors = append(p.errors, fmt.Errorf("%s: %w", id, err))
			if p.failFast {
				p.cancel()
			}
		}
	}()
}

// Wait blocks until every started job finishes and returns the results in
// submission order along with any errors. Jobs skipped after a fail-fast
// cancellation have no result.
func (p *WorkerPool[T]) Wait() ([]Result[T], []error) {
	p.wg.Wait()
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cancel()

	results := make([]Result[T], len(p.results))
	copy(results, p.results)
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })

	errs := make([]error, len(p.errors))
	copy(errs, p.errors)
	return results, errs
}

// Cancel stops jobs that have not started yet.
func (p *WorkerPool[T]) Cancel() {
	p.cancel()
}

// Map runs fn over items with at most workers concurrent calls and returns
// the outputs in input order. The first error cancels the remaining work
// and is returned.
func Map[In, Out any](ctx context.Context, workers int, items []In, id func(In) string, fn func(context.Context, In) (Out, error)) ([]Out, error) {
	pool := NewWorkerPool[Out](ctx, workers, true)
	for _, item := range items {
		item := item
		pool.Submit(id(item), func(ctx context.Context) (Out, error) {
			return fn(ctx, item)
		})
	}
	results, errs := pool.Wait()
	if len(errs) > 0 {
		return nil, errs[0]
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(results) != len(items) {
		return nil, fmt.Errorf("parallel: %d of %d jobs did not run", len(items)-len(results), len(items))
	}
	out := make([]Out, len(results))
	for i, r := range results {
		out[i] = r.Value
	}
	return out, nil
}
