package extract

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/kmaher/teaserfeed"
	"github.com/kmaher/teaserfeed/source"
)

// AnchorScan is the last-resort strategy: every anchor whose href matches
// the article path pattern, or that is wrapped in a heading, becomes a
// candidate. Short titles are rejected as noise (navigation labels, "More"
// links).
type AnchorScan struct {
	Profile *source.Profile
}

// Name implements Strategy.
func (s *AnchorScan) Name() string {
	return "anchor-scan"
}

// Extract implements Strategy.
func (s *AnchorScan) Extract(doc *Document) []teaserfeed.TeaserItem {
	var out []teaserfeed.TeaserItem
	seen := make(map[string]bool)

	doc.DOM().Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		inHeading := a.ParentsFiltered("h1, h2, h3, h4").Length() > 0
		if !inHeading && !s.Profile.ArticleRegexp().MatchString(href) {
			return
		}

		link := teaserfeed.ResolveURL(s.Profile.BaseURL, href)
		if !acceptLink(link, s.Profile) || seen[link] {
			return
		}

		title := teaserfeed.CollapseWhitespace(a.AttrOr("aria-label", ""))
		if title == "" {
			title = teaserfeed.CollapseWhitespace(a.Text())
		}
		if len([]rune(title)) < s.Profile.MinTitleLength {
			return
		}

		seen[link] = true
		out = append(out, teaserfeed.TeaserItem{Title: title, Link: link})
	})

	return out
}
