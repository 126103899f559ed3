// Package rss serializes the aggregated item list into an RSS 2.0 document.
// The channel metadata is always emitted, so a run with zero items still
// produces a valid feed.
package rss

import (
	"encoding/xml"
	"fmt"
	"time"

	"zscaler-release-feed/internal/models"
)

type document struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title         string `xml:"title"`
	Link          string `xml:"link"`
	Description   string `xml:"description"`
	Language      string `xml:"language"`
	LastBuildDate string `xml:"lastBuildDate"`
	Items         []item `xml:"item"`
}

type item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        guid   `xml:"guid"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description,omitempty"`
	Category    string `xml:"category,omitempty"`
}

type guid struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Write renders items as an RSS 2.0 document. buildTime becomes the channel
// lastBuildDate; items are emitted in the order given (the aggregator has
// already sorted them newest first).
func Write(items []models.FeedItem, baseURL string, buildTime time.Time) ([]byte, error) {
	doc := document{
		Version: "2.0",
		Channel: channel{
			Title:         "Zscaler Releases (help.zscaler.com)",
			Link:          baseURL,
			Description:   "Aggregated Zscaler release notes across all products.",
			Language:      "en",
			LastBuildDate: buildTime.UTC().Format(time.RFC1123Z),
			Items:         make([]item, 0, len(items)),
		},
	}
	for _, it := range items {
		doc.Channel.Items = append(doc.Channel.Items, item{
			Title:       it.Title,
			Link:        it.Link,
			GUID:        guid{IsPermaLink: true, Value: it.Link},
			PubDate:     it.PublishedAt.UTC().Format(time.RFC1123Z),
			Description: it.Description,
			Category:    it.Category,
		})
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal feed: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
