package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"zscaler-release-feed/internal/cache"
	"zscaler-release-feed/internal/config"
	"zscaler-release-feed/internal/portal"
)

const ziaFeed2025 = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>ZIA Release Notes</title>
  <item>
    <title>Shared Feature (stale copy)</title>
    <link>https://help.zscaler.com/shared-feature</link>
    <pubDate>Sat, 28 Dec 2024 09:00:00 +0000</pubDate>
  </item>
  <item>
    <title>Ancient Feature</title>
    <link>https://help.zscaler.com/ancient-feature</link>
    <pubDate>Fri, 01 Nov 2024 09:00:00 +0000</pubDate>
  </item>
</channel>
</rss>`

const zpaFeed2025 = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>ZPA Release Notes</title>
  <item>
    <title>Shared Feature</title>
    <link>https://help.zscaler.com/shared-feature</link>
    <pubDate>Mon, 30 Dec 2024 09:00:00 +0000</pubDate>
  </item>
  <item>
    <title>Unique ZPA Feature</title>
    <link>https://help.zscaler.com/zpa-feature</link>
    <pubDate>Thu, 02 Jan 2025 09:00:00 +0000</pubDate>
  </item>
</channel>
</rss>`

// Well-formed XML that is neither RSS nor Atom.
const junkFeed = `<?xml version="1.0"?><report><row>not a feed</row></report>`

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Products:     discoveryProducts,
		MaxWorkers:   4,
		BackfillDays: 14,
		YearLookback: 3,
		BaseURL:      baseURL,
	}
}

func fixedNow() time.Time {
	return time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC)
}

func newTestPipeline(cfg *config.Config) *Pipeline {
	client := portal.NewClient(5*time.Second, cfg.MaxWorkers)
	p := New(cfg, client, cache.Noop{})
	p.now = fixedNow
	return p
}

func TestPipelineRunEndToEnd(t *testing.T) {
	feeds := map[string]string{
		"/rss-feed/zia/release-upgrade-summary-2025/zscaler.net":         ziaFeed2025,
		"/rss-feed/zpa/release-upgrade-summary-2025/private.zscaler.com": zpaFeed2025,
		"/rss-feed/zia/release-upgrade-summary-2024/zscaler.net":         junkFeed,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := feeds[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Method == http.MethodGet {
			w.Write([]byte(body))
		}
	}))
	defer srv.Close()

	items, report, err := newTestPipeline(testConfig(srv.URL)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if report.YearsFound != 2 {
		t.Fatalf("expected 2 discovered years, got %d", report.YearsFound)
	}
	if report.Candidates != 4 {
		t.Fatalf("expected 4 candidates, got %d", report.Candidates)
	}
	if report.FeedsValid != 3 || report.FeedsInvalid != 1 {
		t.Fatalf("unexpected validation counts: valid=%d invalid=%d", report.FeedsValid, report.FeedsInvalid)
	}
	// The junk feed is well-formed XML but unrecognized: one failed feed,
	// siblings unaffected.
	if report.FeedsParsed != 2 || report.FeedsFailed != 1 {
		t.Fatalf("unexpected parse counts: parsed=%d failed=%d", report.FeedsParsed, report.FeedsFailed)
	}
	if report.ItemsParsed != 4 {
		t.Fatalf("expected 4 raw items, got %d", report.ItemsParsed)
	}

	// Dedup keeps the later shared-feature copy; the ancient item falls
	// outside the backfill window.
	if len(items) != 2 {
		t.Fatalf("expected 2 aggregated items, got %d", len(items))
	}
	if items[0].Link != "https://help.zscaler.com/zpa-feature" {
		t.Fatalf("expected newest item first, got %s", items[0].Link)
	}
	if items[1].Title != "Shared Feature" {
		t.Fatalf("expected the later duplicate to win, got %q", items[1].Title)
	}
	if report.ItemsPublished != 2 {
		t.Fatalf("report item count mismatch: %d", report.ItemsPublished)
	}
	for _, item := range items {
		if item.PublishedAt.Location() != time.UTC {
			t.Fatalf("item timestamp not UTC: %s", item.PublishedAt)
		}
	}
}

func TestPipelineRunAllFeedsInvalidStillSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	items, report, err := newTestPipeline(testConfig(srv.URL)).Run(context.Background())
	if err != nil {
		t.Fatalf("expected success with empty result, got %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty aggregate, got %d items", len(items))
	}
	if report.YearsFound != 0 || report.Candidates != 0 || report.FeedsParsed != 0 {
		t.Fatalf("unexpected report for empty portal: %+v", report)
	}
}

func TestPipelineRunNoProductsIsFatal(t *testing.T) {
	cfg := testConfig("https://help.zscaler.com")
	cfg.Products = nil

	p := New(cfg, portal.NewClient(time.Second, 1), cache.Noop{})
	p.now = fixedNow
	if _, _, err := p.Run(context.Background()); !errors.Is(err, config.ErrNoProducts) {
		t.Fatalf("expected ErrNoProducts, got %v", err)
	}
}
