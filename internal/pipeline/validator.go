package pipeline

import (
	"context"
	"log"

	"zscaler-release-feed/internal/cache"
	"zscaler-release-feed/internal/models"
)

// ValidationResult is the outcome of HEAD-checking a candidate set.
type ValidationResult struct {
	Valid     []models.Candidate
	Invalid   int
	CacheHits int
}

// ValidateCandidates HEAD-checks every candidate independently with bounded
// parallelism and returns the subset that resolved 2xx. One candidate's
// failure never blocks or invalidates another; network errors count as
// invalid. URLs the cache remembers as valid skip the probe entirely — this
// stage is a cost filter, so a stale cache entry only means one wasted body
// fetch later.
func ValidateCandidates(ctx context.Context, client prober, vcache cache.ValidationCache, pool *Pool, candidates []models.Candidate) ValidationResult {
	valid := make([]bool, len(candidates))
	hits := make([]bool, len(candidates))

	pool.Each(ctx, len(candidates), func(ctx context.Context, i int) {
		url := candidates[i].URL

		cached, err := vcache.WasValid(ctx, url)
		if err != nil {
			log.Printf("validation cache lookup failed url=%s: %v", url, err)
		}
		if cached {
			valid[i] = true
			hits[i] = true
			return
		}

		ok, err := client.Exists(ctx, url)
		if err != nil {
			log.Printf("candidate probe failed url=%s: %v", url, err)
			return
		}
		if !ok {
			return
		}
		valid[i] = true
		if err := vcache.MarkValid(ctx, url); err != nil {
			log.Printf("validation cache store failed url=%s: %v", url, err)
		}
	})

	var result ValidationResult
	for i, c := range candidates {
		if valid[i] {
			result.Valid = append(result.Valid, c)
			if hits[i] {
				result.CacheHits++
			}
		} else {
			result.Invalid++
		}
	}
	return result
}
