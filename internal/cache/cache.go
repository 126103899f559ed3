package cache

import "context"

// ValidationCache remembers feed URLs that recently validated so the next run
// can skip the HEAD probe. It is a cost filter only; a cold or failing cache
// just means every candidate is probed again.
type ValidationCache interface {
	WasValid(ctx context.Context, url string) (bool, error)
	MarkValid(ctx context.Context, url string) error
	Close() error
}

// Noop is the default cache when no Redis address is configured.
type Noop struct{}

func (Noop) WasValid(ctx context.Context, url string) (bool, error) { return false, nil }
func (Noop) MarkValid(ctx context.Context, url string) error        { return nil }
func (Noop) Close() error                                           { return nil }
