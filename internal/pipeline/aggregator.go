package pipeline

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"zscaler-release-feed/internal/models"
)

// NormalizeLink canonicalizes a link for deduplication: scheme and host are
// lowercased, the fragment is dropped, and a trailing slash on the path is
// removed. Unparsable links normalize to their trimmed form.
func NormalizeLink(link string) string {
	link = strings.TrimSpace(link)
	parsed, err := url.Parse(link)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(link, "/")
	}
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	return parsed.String()
}

// Aggregate merges items from all feeds: deduplicates by normalized link
// (the most recent PublishedAt wins, first-seen on ties), drops items outside
// [now - backfillDays, now], and sorts descending by PublishedAt with stable
// order for equal timestamps. The result is always well formed; empty is valid.
func Aggregate(items []models.FeedItem, now time.Time, backfillDays int) []models.FeedItem {
	nowUTC := now.UTC()
	// Inclusive day window: the cutoff is the start of the day backfillDays
	// before now, so a date-only item on the boundary day stays in.
	edge := nowUTC.AddDate(0, 0, -backfillDays)
	cutoff := time.Date(edge.Year(), edge.Month(), edge.Day(), 0, 0, 0, 0, time.UTC)

	merged := make([]models.FeedItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		key := NormalizeLink(item.Link)
		if at, seen := index[key]; seen {
			if item.PublishedAt.After(merged[at].PublishedAt) {
				merged[at] = item
			}
			continue
		}
		index[key] = len(merged)
		merged = append(merged, item)
	}

	windowed := merged[:0]
	for _, item := range merged {
		if item.PublishedAt.Before(cutoff) || item.PublishedAt.After(nowUTC) {
			continue
		}
		windowed = append(windowed, item)
	}

	sort.SliceStable(windowed, func(i, j int) bool {
		return windowed[i].PublishedAt.After(windowed[j].PublishedAt)
	})
	return windowed
}
