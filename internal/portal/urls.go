package portal

import (
	"fmt"
	"strings"

	"zscaler-release-feed/internal/models"
)

// DefaultBaseURL is the help portal root.
const DefaultBaseURL = "https://help.zscaler.com"

// FeedURL builds the canonical feed URL for a product and year:
// {base}/rss-feed/{slug}/release-upgrade-summary-{year}/{domain}.
func FeedURL(base string, product models.Product, year int) string {
	return fmt.Sprintf("%s/rss-feed/%s/release-upgrade-summary-%d/%s",
		strings.TrimRight(base, "/"), product.Slug, year, product.Domain)
}

// Candidates expands every product across every year into candidate URLs.
// Pure; order is products within years, years in the order given.
func Candidates(base string, products []models.Product, years []int) []models.Candidate {
	candidates := make([]models.Candidate, 0, len(products)*len(years))
	for _, year := range years {
		for _, product := range products {
			candidates = append(candidates, models.Candidate{
				Product: product,
				Year:    year,
				URL:     FeedURL(base, product, year),
			})
		}
	}
	return candidates
}
