package recommend

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestRunIndexedCoversEveryIndex(t *testing.T) {
	const count = 100
	results := make([]int32, count)
	runIndexed(context.Background(), 8, count, func(ctx context.Context, i int) {
		atomic.AddInt32(&results[i], 1)
	})
	for i, v := range results {
		if v != 1 {
			t.Fatalf("index %d executed %d times, want exactly once", i, v)
		}
	}
}

func TestRunIndexedBoundsConcurrency(t *testing.T) {
	var current, peak int32
	runIndexed(context.Background(), 3, 50, func(ctx context.Context, i int) {
		n := atomic.AddInt32(&current, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		atomic.AddInt32(&current, -1)
	})
	if peak > 3 {
		t.Errorf("peak concurrency = %d, want at most 3", peak)
	}
}

func TestRunIndexedCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var ran int32
	runIndexed(ctx, 4, 20, func(ctx context.Context, i int) {
		atomic.AddInt32(&ran, 1)
	})
	if ran != 0 {
		t.Errorf("ran %d tasks after cancellation, want 0", ran)
	}
}

func TestRunIndexedZeroCount(t *testing.T) {
	runIndexed(context.Background(), 4, 0, func(ctx context.Context, i int) {
		t.Error("task must not run for zero count")
	})
}
