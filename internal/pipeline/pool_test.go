package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsEverything(t *testing.T) {
	var count int64
	NewPool(4).Each(context.Background(), 50, func(ctx context.Context, i int) {
		atomic.AddInt64(&count, 1)
	})
	if count != 50 {
		t.Fatalf("expected 50 executions, got %d", count)
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const width = 3
	var inFlight, peak int64
	var mu sync.Mutex

	NewPool(width).Each(context.Background(), 30, func(ctx context.Context, i int) {
		current := atomic.AddInt64(&inFlight, 1)
		mu.Lock()
		if current > peak {
			peak = current
		}
		mu.Unlock()
		time.Sleep(time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
	})

	if peak > width {
		t.Fatalf("observed %d concurrent executions, width is %d", peak, width)
	}
}

func TestPoolCancellationStopsNewWork(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var count int64
	NewPool(1).Each(ctx, 100, func(ctx context.Context, i int) {
		if atomic.AddInt64(&count, 1) == 3 {
			cancel()
		}
	})
	if count >= 100 {
		t.Fatalf("expected cancellation to stop the fan-out, ran %d", count)
	}
}

func TestPoolClampsWidth(t *testing.T) {
	if got := NewPool(0).Width(); got != 1 {
		t.Fatalf("expected width clamp to 1, got %d", got)
	}
}
