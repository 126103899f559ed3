package pipeline

import (
	"context"
	"log"
	"sort"
	"time"

	"zscaler-release-feed/internal/models"
	"zscaler-release-feed/internal/portal"
)

// prober is the slice of portal.Client the discovery and validation stages use.
type prober interface {
	Exists(ctx context.Context, url string) (bool, error)
}

// DiscoverYears probes [currentYear-lookback, currentYear+1] and returns the
// years with at least one resolvable feed, most recent first. Within a year,
// products are probed in order until the first hit; a probe that fails on the
// network is counted as skipped and the next product is tried. A year with no
// resolvable feed is excluded, never an error.
func DiscoverYears(ctx context.Context, client prober, pool *Pool, base string, products []models.Product, now time.Time, lookback int) (years []int, probesSkipped int) {
	if lookback < 0 {
		lookback = 0
	}
	currentYear := now.UTC().Year()
	first := currentYear - lookback
	last := currentYear + 1
	candidates := make([]int, 0, last-first+1)
	for year := first; year <= last; year++ {
		candidates = append(candidates, year)
	}

	// One slot per year; each worker writes only its own index.
	found := make([]bool, len(candidates))
	skipped := make([]int, len(candidates))

	pool.Each(ctx, len(candidates), func(ctx context.Context, i int) {
		year := candidates[i]
		for _, product := range products {
			url := portal.FeedURL(base, product, year)
			ok, err := client.Exists(ctx, url)
			if err != nil {
				log.Printf("year probe skipped year=%d product=%s: %v", year, product.Slug, err)
				skipped[i]++
				continue
			}
			if ok {
				found[i] = true
				return
			}
		}
	})

	for i, ok := range found {
		if ok {
			years = append(years, candidates[i])
		}
		probesSkipped += skipped[i]
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, probesSkipped
}
