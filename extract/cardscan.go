package extract

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/kmaher/teaserfeed"
	"github.com/kmaher/teaserfeed/source"
)

// CardScan scrapes teaser cards straight from the DOM. Container selectors
// are prioritized: the first selector that yields any accepted candidate
// wins, so a site's semantic article markup beats generic class-name
// matches.
type CardScan struct {
	Profile *source.Profile
}

// Name implements Strategy.
func (s *CardScan) Name() string {
	return "card-scan"
}

// Extract implements Strategy.
func (s *CardScan) Extract(doc *Document) []teaserfeed.TeaserItem {
	for _, containerSel := range s.Profile.ContainerSelectors {
		var out []teaserfeed.TeaserItem
		seen := make(map[string]bool)

		doc.DOM().Find(containerSel).Each(func(_ int, card *goquery.Selection) {
			item, ok := resolveCard(card, s.Profile)
			if !ok || seen[item.Link] {
				return
			}
			seen[item.Link] = true
			out = append(out, item)
		})

		if len(out) > 0 {
			return out
		}
	}
	return nil
}
