package models

// Product is one Zscaler product with a per-year release feed on the help
// portal. Slug is the identity; Domain selects the cloud the feed covers.
type Product struct {
	Slug   string `yaml:"slug" json:"slug"`
	Domain string `yaml:"domain" json:"domain"`
}
