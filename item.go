// Package teaserfeed turns loosely structured news listing pages into RSS
// feed files. The root package holds the domain types shared by the
// extraction, enrichment, and pipeline subpackages.
package teaserfeed

// TeaserItem is one article teaser lifted from a listing page. Identity is
// the normalized absolute Link; Title and Link are required, everything else
// is optional and defaults to the empty string.
type TeaserItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Image       string `json:"image,omitempty"`
	Author      string `json:"author,omitempty"`
	Date        string `json:"date,omitempty"` // unparsed, format varies by source
	Topic       string `json:"topic,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"` // populated by enrichment
}

// ArticleBody is the sanitized markup produced by enriching a single
// article URL. It is assembled once and never mutated afterwards.
type ArticleBody string

// String returns the markup as a plain string.
func (b ArticleBody) String() string {
	return string(b)
}
