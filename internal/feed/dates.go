package feed

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are tried in order. RFC 1123/822 variants cover RSS pubDate,
// RFC 3339 and the ISO forms cover Atom timestamps, the textual forms cover
// dates copied from the portal pages. Layouts without a zone parse as UTC.
var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2 January 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// zoneOffsets maps the RFC 5322 zone abbreviations to their offsets in
// seconds. time.Parse only resolves UTC and the local zone by name; any other
// abbreviation parses with a zero offset, which would shift the instant by
// the zone's real offset.
var zoneOffsets = map[string]int{
	"UT":  0,
	"GMT": 0,
	"EST": -5 * 3600,
	"EDT": -4 * 3600,
	"CST": -6 * 3600,
	"CDT": -5 * 3600,
	"MST": -7 * 3600,
	"MDT": -6 * 3600,
	"PST": -8 * 3600,
	"PDT": -7 * 3600,
}

// ParseDate parses a feed timestamp in any supported form and normalizes it
// to UTC. Entries whose date matches no form are dropped by the caller; there
// is no synthetic fallback date.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return normalizeZone(parsed)
		}
	}
	return time.Time{}, fmt.Errorf("date %q matches no supported format", trimmed)
}

// normalizeZone converts a parsed time to UTC, correcting named zones that
// time.Parse left at offset zero. Unknown abbreviations are rejected rather
// than silently treated as UTC.
func normalizeZone(parsed time.Time) (time.Time, error) {
	name, offset := parsed.Zone()
	if offset != 0 || name == "UTC" || name == "" {
		return parsed.UTC(), nil
	}
	fixed, ok := zoneOffsets[name]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown timezone abbreviation %q", name)
	}
	return parsed.Add(-time.Duration(fixed) * time.Second).UTC(), nil
}
