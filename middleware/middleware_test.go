package middleware_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"

	focengine "github.com/foc-fun/foc-engine-go"
	"github.com/foc-fun/foc-engine-go/backoff"
	mw "github.com/foc-fun/foc-engine-go/middleware"
)

func testBatch() []focengine.Action {
	return []focengine.Action{
		{Entrypoint: "move", Calldata: []string{"0x1"}},
		{Entrypoint: "attack", Calldata: []string{"0x2"}},
	}
}

// tag returns middleware that appends markers around the next call.
func tag(order *[]string, name string) mw.Middleware {
	return func(next focengine.Executor) focengine.Executor {
		return func(ctx context.Context, batch []focengine.Action) error {
			*order = append(*order, name+">")
			err := next(ctx, batch)
			*order = append(*order, "<"+name)
			return err
		}
	}
}

// ──────────────────────────────────────────────────
// Chain
// ──────────────────────────────────────────────────

func TestChain_OutermostFirst(t *testing.T) {
	var order []string
	exec := mw.Chain(tag(&order, "a"), tag(&order, "b"))(
		func(_ context.Context, _ []focengine.Action) error {
			order = append(order, "exec")
			return nil
		},
	)

	if err := exec(context.Background(), testBatch()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a>", "b>", "exec", "<b", "<a"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestChain_Empty(t *testing.T) {
	called := false
	exec := mw.Chain()(func(_ context.Context, _ []focengine.Action) error {
		called = true
		return nil
	})

	if err := exec(context.Background(), testBatch()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("expected terminal executor to be called")
	}
}

// ──────────────────────────────────────────────────
// Logging
// ──────────────────────────────────────────────────

func TestLogging_PassesThroughResult(t *testing.T) {
	rejection := errors.New("rejected")
	exec := mw.Logging(slog.Default())(
		func(_ context.Context, _ []focengine.Action) error { return rejection },
	)

	if err := exec(context.Background(), testBatch()); !errors.Is(err, rejection) {
		t.Fatalf("expected %v, got %v", rejection, err)
	}
}

// ──────────────────────────────────────────────────
// Recover
// ──────────────────────────────────────────────────

func TestRecover_ConvertsPanicToError(t *testing.T) {
	exec := mw.Recover(slog.Default())(
		func(_ context.Context, _ []focengine.Action) error {
			panic("executor exploded")
		},
	)

	err := exec(context.Background(), testBatch())
	if err == nil {
		t.Fatal("expected error from recovered panic")
	}
}

func TestRecover_PassesThroughSuccess(t *testing.T) {
	exec := mw.Recover(slog.Default())(
		func(_ context.Context, _ []focengine.Action) error { return nil },
	)
	if err := exec(context.Background(), testBatch()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// ──────────────────────────────────────────────────
// Timeout
// ──────────────────────────────────────────────────

func TestTimeout_CancelsSlowExecutor(t *testing.T) {
	exec := mw.Timeout(20 * time.Millisecond)(
		func(ctx context.Context, _ []focengine.Action) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(2 * time.Second):
				return nil
			}
		},
	)

	if err := exec(context.Background(), testBatch()); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestTimeout_ZeroIsPassThrough(t *testing.T) {
	exec := mw.Timeout(0)(
		func(ctx context.Context, _ []focengine.Action) error {
			if _, ok := ctx.Deadline(); ok {
				return errors.New("unexpected deadline")
			}
			return nil
		},
	)
	if err := exec(context.Background(), testBatch()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// ──────────────────────────────────────────────────
// Retry
// ──────────────────────────────────────────────────

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	var attempts atomic.Int32
	exec := mw.Retry(backoff.NewConstant(time.Millisecond), 3)(
		func(_ context.Context, _ []focengine.Action) error {
			if attempts.Add(1) < 3 {
				return errors.New("transient")
			}
			return nil
		},
	)

	if err := exec(context.Background(), testBatch()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts.Load())
	}
}

func TestRetry_ExhaustsAndReturnsLastError(t *testing.T) {
	var attempts atomic.Int32
	last := errors.New("still down")
	exec := mw.Retry(backoff.NewConstant(time.Millisecond), 2)(
		func(_ context.Context, _ []focengine.Action) error {
			attempts.Add(1)
			return last
		},
	)

	if err := exec(context.Background(), testBatch()); !errors.Is(err, last) {
		t.Fatalf("expected %v, got %v", last, err)
	}
	if attempts.Load() != 3 { // initial + 2 retries
		t.Fatalf("expected 3 attempts, got %d", attempts.Load())
	}
}

func TestRetry_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var attempts atomic.Int32
	exec := mw.Retry(backoff.NewConstant(time.Hour), 5)(
		func(_ context.Context, _ []focengine.Action) error {
			attempts.Add(1)
			cancel()
			return errors.New("down")
		},
	)

	err := exec(ctx, testBatch())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
	if attempts.Load() != 1 {
		t.Fatalf("expected 1 attempt before cancellation, got %d", attempts.Load())
	}
}

// ──────────────────────────────────────────────────
// RateLimit
// ──────────────────────────────────────────────────

func TestRateLimit_AllowsWithinBurst(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(100), 10)
	var calls atomic.Int32
	exec := mw.RateLimit(limiter)(
		func(_ context.Context, _ []focengine.Action) error {
			calls.Add(1)
			return nil
		},
	)

	if err := exec(context.Background(), testBatch()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 call, got %d", calls.Load())
	}
}

func TestRateLimit_ThrottlesSuccessiveBatches(t *testing.T) {
	// Burst of 2 tokens, 20/s refill: the second 2-action batch must
	// wait roughly 100ms for tokens.
	limiter := rate.NewLimiter(rate.Limit(20), 2)
	exec := mw.RateLimit(limiter)(
		func(_ context.Context, _ []focengine.Action) error { return nil },
	)

	if err := exec(context.Background(), testBatch()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Now()
	if err := exec(context.Background(), testBatch()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("expected second batch to be throttled, waited only %v", elapsed)
	}
}

func TestRateLimit_BatchLargerThanBurstStillPasses(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(1000), 1)
	exec := mw.RateLimit(limiter)(
		func(_ context.Context, _ []focengine.Action) error { return nil },
	)

	// 2 actions > burst 1; clamped to burst instead of rejected.
	if err := exec(context.Background(), testBatch()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRateLimit_CancelledWaitFails(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0.001), 1)
	exec := mw.RateLimit(limiter)(
		func(_ context.Context, _ []focengine.Action) error { return nil },
	)

	// Drain the burst token.
	if err := exec(context.Background(), testBatch()[:1]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := exec(ctx, testBatch()[:1]); err == nil {
		t.Fatal("expected error from cancelled rate limit wait")
	}
}
