package models

import "time"

// FeedItem is one release-note entry normalized from a feed body.
// PublishedAt is always UTC; entries whose date cannot be parsed are dropped
// before a FeedItem is ever built.
type FeedItem struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"published_at"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	SourceFeed  string    `json:"source_feed"`
}
