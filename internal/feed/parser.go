package feed

import (
	"encoding/xml"
	"errors"
	"log"
	"strings"

	"zscaler-release-feed/internal/models"
)

// Format tags which wire structure a body matched.
type Format string

const (
	FormatRSS     Format = "rss"
	FormatAtom    Format = "atom"
	FormatUnknown Format = "unknown"
)

// ErrUnrecognized marks a body that is neither RSS 2.0 nor Atom.
var ErrUnrecognized = errors.New("feed body matches neither RSS nor Atom structure")

// ParseResult is the outcome of parsing one feed body.
// Skipped counts entries dropped for an unparsable date or missing link.
type ParseResult struct {
	Format  Format
	Items   []models.FeedItem
	Skipped int
}

type rssDocument struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
	Category    string `xml:"category"`
}

type atomDocument struct {
	XMLName xml.Name    `xml:"feed"`
	Title   string      `xml:"title"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title     string     `xml:"title"`
	Links     []atomLink `xml:"link"`
	Published string     `xml:"published"`
	Updated   string     `xml:"updated"`
	Summary   string     `xml:"summary"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

// Parse detects the wire format structurally and converts entries to
// FeedItems. A body matching neither structure yields zero items and
// ErrUnrecognized; the caller treats that as one failed feed, never a crash.
func Parse(body []byte, sourceFeed string) (ParseResult, error) {
	var rss rssDocument
	if err := xml.Unmarshal(body, &rss); err == nil {
		return parseRSS(rss, sourceFeed), nil
	}

	var atom atomDocument
	if err := xml.Unmarshal(body, &atom); err == nil {
		return parseAtom(atom, sourceFeed), nil
	}

	return ParseResult{Format: FormatUnknown}, ErrUnrecognized
}

func parseRSS(doc rssDocument, sourceFeed string) ParseResult {
	result := ParseResult{Format: FormatRSS}
	for _, entry := range doc.Channel.Items {
		item, ok := buildItem(entry.Title, entry.Link, entry.PubDate, entry.Description, entry.Category, sourceFeed)
		if !ok {
			result.Skipped++
			continue
		}
		result.Items = append(result.Items, item)
	}
	return result
}

func parseAtom(doc atomDocument, sourceFeed string) ParseResult {
	result := ParseResult{Format: FormatAtom}
	for _, entry := range doc.Entries {
		date := entry.Published
		if date == "" {
			date = entry.Updated
		}
		item, ok := buildItem(entry.Title, alternateLink(entry.Links), date, entry.Summary, "", sourceFeed)
		if !ok {
			result.Skipped++
			continue
		}
		result.Items = append(result.Items, item)
	}
	return result
}

// alternateLink picks the entry's alternate link, or the first link when no
// rel attributes are set.
func alternateLink(links []atomLink) string {
	for _, l := range links {
		if l.Rel == "" || l.Rel == "alternate" {
			return l.Href
		}
	}
	if len(links) > 0 {
		return links[0].Href
	}
	return ""
}

func buildItem(title, link, date, description, category, sourceFeed string) (models.FeedItem, bool) {
	link = strings.TrimSpace(link)
	if link == "" {
		log.Printf("skipping entry without link feed=%s title=%q", sourceFeed, title)
		return models.FeedItem{}, false
	}
	publishedAt, err := ParseDate(date)
	if err != nil {
		log.Printf("skipping entry with unparsable date feed=%s link=%s: %v", sourceFeed, link, err)
		return models.FeedItem{}, false
	}
	return models.FeedItem{
		Title:       strings.TrimSpace(title),
		Link:        link,
		PublishedAt: publishedAt,
		Description: strings.TrimSpace(description),
		Category:    strings.TrimSpace(category),
		SourceFeed:  sourceFeed,
	}, true
}
