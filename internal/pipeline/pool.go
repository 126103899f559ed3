package pipeline

import (
	"context"
	"sync"
)

// Pool bounds fan-out with a semaphore channel. One Pool is owned by the
// orchestrator and shared by the validation and parse stages so the remote
// host never sees more than width requests in flight.
type Pool struct {
	width int
}

// NewPool creates a pool of the given width; widths below 1 clamp to 1.
func NewPool(width int) *Pool {
	if width < 1 {
		width = 1
	}
	return &Pool{width: width}
}

// Width returns the pool width.
func (p *Pool) Width() int {
	return p.width
}

// Each runs fn for every index in [0, n), at most width at a time, and waits
// for all of them. Cancellation stops new work from starting; work already
// started observes ctx itself.
func (p *Pool) Each(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	sem := make(chan struct{}, p.width)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(i int) {
			defer func() {
				<-sem
				wg.Done()
			}()
			fn(ctx, i)
		}(i)
	}
	wg.Wait()
}
