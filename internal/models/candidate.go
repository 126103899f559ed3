package models

// Candidate is a feed URL hypothesized to exist for a product and year.
// It carries no body; validation only confirms reachability.
type Candidate struct {
	Product Product `json:"product"`
	Year    int     `json:"year"`
	URL     string  `json:"url"`
}
