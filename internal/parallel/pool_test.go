package parallel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewWorkerPool(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pool with max workers", func(t *testing.T) {
		pool := NewWorkerPool[int](ctx, 4, false)
		if pool == nil {
			t.Fatal("NewWorkerPool returned nil")
		}
		if pool.maxWorkers != 4 {
			t.Errorf("expected maxWorkers=4, got %d", pool.maxWorkers)
		}
		if pool.failFast {
			t.Error("expected failFast=false")
		}
	})

	t.Run("negative workers means unlimited", func(t *testing.T) {
		pool := NewWorkerPool[int](ctx, -3, true)
		if pool.maxWorkers != 0 {
			t.Errorf("expected maxWorkers=0, got %d", pool.maxWorkers)
		}
		if !pool.failFast {
			t.Error("expected failFast=true")
		}
	})
}

func TestWorkerPool_ResultsInSubmissionOrder(t *testing.T) {
	pool := NewWorkerPool[string](context.Background(), 3, false)

	for i := 0; i < 6; i++ {
		i := i
		pool.Submit(fmt.Sprintf("job-%d", i), func(context.Context) (string, error) {
			// Later jobs finish first.
			time.Sleep(time.Duration(6-i) * 2 * time.Millisecond)
			return fmt.Sprintf("v%d", i), nil
		})
	}

	results, errs := pool.Wait()
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Index != i || r.Value != fmt.Sprintf("v%d", i) {
			t.Errorf("result %d: got index %d value %q", i, r.Index, r.Value)
		}
	}
}

func TestWorkerPool_BoundedConcurrency(t *testing.T) {
	pool := NewWorkerPool[struct{}](context.Background(), 2, false)

	var running, peak int32
	var mu sync.Mutex
	for i := 0; i < 8; i++ {
		pool.Submit(fmt.Sprintf("job-%d", i), func(context.Context) (struct{}, error) {
			n := atomic.AddInt32(&running, 1)
			mu.Lock()
			if n > peak {
				peak = n
			}
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return struct{}{}, nil
		})
	}
	pool.Wait()

	if peak > 2 {
		t.Errorf("expected at most 2 concurrent jobs, saw %d", peak)
	}
}

func TestWorkerPool_ErrorsAreWrappedWithID(t *testing.T) {
	pool := NewWorkerPool[int](context.Background(), 2, false)
	boom := errors.New("boom")

	pool.Submit("ok", func(context.Context) (int, error) { return 1, nil })
	pool.Submit("bad", func(context.Context) (int, error) { return 0, boom })

	results, errs := pool.Wait()
	if len(results) != 2 {
		t.Fatalf("expected 2 results without fail-fast, got %d", len(results))
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if !errors.Is(errs[0], boom) {
		t.Errorf("expected wrapped boom, got %v", errs[0])
	}
	if errs[0].Error() != "bad: boom" {
		t.Errorf("unexpected error text %q", errs[0].Error())
	}
}

func TestWorkerPool_FailFastSkipsPending(t *testing.T) {
	pool := NewWorkerPool[int](context.Background(), 1, true)

	var ran int32
	pool.Submit("first", func(context.Context) (int, error) {
		atomic.AddInt32(&ran, 1)
		return 0, errors.New("stop")
	})
	// Give the failing job time to cancel the pool before more are queued.
	time.Sleep(20 * time.Millisecond)
	for i := 0; i < 3; i++ {
		pool.Submit(fmt.Sprintf("later-%d", i), func(context.Context) (int, error) {
			atomic.AddInt32(&ran, 1)
			return 1, nil
		})
	}
	_, errs := pool.Wait()

	if len(errs) != 1 {
		t.Errorf("expected 1 error, got %v", errs)
	}
	if got := atomic.LoadInt32(&ran); got != 1 {
		t.Errorf("expected only the failing job to run, ran %d", got)
	}
}

func TestWorkerPool_Cancel(t *testing.T) {
	pool := NewWorkerPool[int](context.Background(), 1, false)
	pool.Cancel()

	pool.Submit("never", func(context.Context) (int, error) {
		t.Error("job ran after Cancel")
		return 0, nil
	})
	results, _ := pool.Wait()
	if len(results) != 0 {
		t.Errorf("expected no results after Cancel, got %d", len(results))
	}
	if pool.Context().Err() == nil {
		t.Error("expected pool context to be cancelled")
	}
}

func TestMap(t *testing.T) {
	ctx := context.Background()
	items := []int{5, 1, 4, 2, 3}

	t.Run("preserves input order", func(t *testing.T) {
		out, err := Map(ctx, 2, items, func(i int) string { return fmt.Sprint(i) },
			func(_ context.Context, i int) (int, error) {
				time.Sleep(time.Duration(i) * time.Millisecond)
				return i * 10, nil
			})
		if err != nil {
			t.Fatalf("Map: %v", err)
		}
		want := []int{50, 10, 40, 20, 30}
		for i := range want {
			if out[i] != want[i] {
				t.Fatalf("Map output: got %v, want %v", out, want)
			}
		}
	})

	t.Run("returns first error", func(t *testing.T) {
		_, err := Map(ctx, 0, items, func(i int) string { return fmt.Sprint(i) },
			func(_ context.Context, i int) (int, error) {
				if i == 4 {
					return 0, errors.New("four")
				}
				return i, nil
			})
		if err == nil || err.Error() != "4: four" {
			t.Errorf("expected '4: four', got %v", err)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		out, err := Map(ctx, 2, nil, func(i int) string { return "" },
			func(context.Context, int) (int, error) { return 0, nil })
		if err != nil || len(out) != 0 {
			t.Errorf("expected empty output, got %v %v", out, err)
		}
	})

	t.Run("cancelled parent context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := Map(cctx, 2, items, func(i int) string { return fmt.Sprint(i) },
			func(context.Context, int) (int, error) { return 0, nil })
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}
