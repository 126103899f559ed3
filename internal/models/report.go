package models

import "time"

// Report summarizes one pipeline run for logging and the event stream.
// A run with zero items is still a success; only configuration errors abort
// before a report exists.
type Report struct {
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	YearsProbed    int       `json:"years_probed"`
	YearsFound     int       `json:"years_found"`
	ProbesSkipped  int       `json:"probes_skipped"`
	Candidates     int       `json:"candidates"`
	FeedsValid     int       `json:"feeds_valid"`
	FeedsInvalid   int       `json:"feeds_invalid"`
	CacheHits      int       `json:"cache_hits"`
	FeedsParsed    int       `json:"feeds_parsed"`
	FeedsFailed    int       `json:"feeds_failed"`
	ItemsParsed    int       `json:"items_parsed"`
	ItemsDropped   int       `json:"items_dropped"`
	ItemsPublished int       `json:"items_published"`
}
