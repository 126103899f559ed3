package pipeline

import (
	"context"
	"log"
	"sync"
	"time"

	"zscaler-release-feed/internal/cache"
	"zscaler-release-feed/internal/config"
	"zscaler-release-feed/internal/feed"
	"zscaler-release-feed/internal/models"
	"zscaler-release-feed/internal/portal"
)

// portalClient is what the pipeline needs from portal.Client.
type portalClient interface {
	Exists(ctx context.Context, url string) (bool, error)
	Get(ctx context.Context, url string) ([]byte, error)
}

// Pipeline drives one stateless run: year discovery, candidate generation,
// validation, parallel fetch+parse, aggregation. Partial failures become
// report counters; the only fatal condition is an empty product list.
type Pipeline struct {
	cfg    *config.Config
	client portalClient
	cache  cache.ValidationCache
	pool   *Pool
	now    func() time.Time
}

// New wires a pipeline from immutable configuration. The worker pool is owned
// here and shared by the validation and parse stages.
func New(cfg *config.Config, client portalClient, vcache cache.ValidationCache) *Pipeline {
	if vcache == nil {
		vcache = cache.Noop{}
	}
	return &Pipeline{
		cfg:    cfg,
		client: client,
		cache:  vcache,
		pool:   NewPool(cfg.MaxWorkers),
		now:    time.Now,
	}
}

// Run executes the pipeline and returns the aggregated items plus the run
// report. An empty item list is a valid result, never an error.
func (p *Pipeline) Run(ctx context.Context) ([]models.FeedItem, models.Report, error) {
	report := models.Report{StartedAt: p.now().UTC()}
	if len(p.cfg.Products) == 0 {
		return nil, report, config.ErrNoProducts
	}

	now := p.now().UTC()

	years, skipped := DiscoverYears(ctx, p.client, p.pool, p.cfg.BaseURL, p.cfg.Products, now, p.cfg.YearLookback)
	report.YearsProbed = p.cfg.YearLookback + 2
	report.YearsFound = len(years)
	report.ProbesSkipped = skipped
	log.Printf("discovery done years_found=%d probes_skipped=%d", len(years), skipped)

	candidates := portal.Candidates(p.cfg.BaseURL, p.cfg.Products, years)
	report.Candidates = len(candidates)

	validation := ValidateCandidates(ctx, p.client, p.cache, p.pool, candidates)
	report.FeedsValid = len(validation.Valid)
	report.FeedsInvalid = validation.Invalid
	report.CacheHits = validation.CacheHits
	log.Printf("validation done valid=%d invalid=%d cache_hits=%d", len(validation.Valid), validation.Invalid, validation.CacheHits)

	items := p.fetchAll(ctx, validation.Valid, &report)
	report.ItemsParsed = len(items)

	aggregated := Aggregate(items, now, p.cfg.BackfillDays)
	report.ItemsPublished = len(aggregated)
	report.FinishedAt = p.now().UTC()
	return aggregated, report, nil
}

// fetchAll fans the validated feeds out over the pool. Each unit fetches and
// parses one feed; a failed unit contributes zero items and a counter bump,
// and never aborts its siblings.
func (p *Pipeline) fetchAll(ctx context.Context, feeds []models.Candidate, report *models.Report) []models.FeedItem {
	var mu sync.Mutex
	var items []models.FeedItem

	p.pool.Each(ctx, len(feeds), func(ctx context.Context, i int) {
		url := feeds[i].URL
		body, err := p.client.Get(ctx, url)
		if err != nil {
			log.Printf("feed fetch failed url=%s: %v", url, err)
			mu.Lock()
			report.FeedsFailed++
			mu.Unlock()
			return
		}
		result, err := feed.Parse(body, url)
		if err != nil {
			log.Printf("feed parse failed url=%s format=%s: %v", url, result.Format, err)
			mu.Lock()
			report.FeedsFailed++
			mu.Unlock()
			return
		}
		mu.Lock()
		report.FeedsParsed++
		report.ItemsDropped += result.Skipped
		items = append(items, result.Items...)
		mu.Unlock()
	})
	return items
}
