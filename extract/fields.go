package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kmaher/teaserfeed"
	"github.com/kmaher/teaserfeed/source"
)

// resolveStateNode derives a validated teaser from a structured-state tile
// node. Each field falls through an ordered chain of candidate keys and
// stops at the first non-empty value. Returns false when the node fails the
// title or link invariants.
func resolveStateNode(node map[string]any, p *source.Profile) (teaserfeed.TeaserItem, bool) {
	link := firstNonEmpty(
		ctaURL(node),
		stringField(node, "url"),
		stringField(node, "href"),
	)
	link = teaserfeed.ResolveURL(p.BaseURL, link)
	if !acceptLink(link, p) {
		return teaserfeed.TeaserItem{}, false
	}

	title := teaserfeed.CollapseWhitespace(firstNonEmpty(
		stringField(node, "title"),
		stringField(node, "abstract"),
		stringField(node, "description"),
	))
	if title == "" {
		return teaserfeed.TeaserItem{}, false
	}

	return teaserfeed.TeaserItem{
		Title: title,
		Link:  link,
		Image: stateImage(node),
		Author: teaserfeed.CollapseWhitespace(firstNonEmpty(
			stringField(node, "author"),
			stringField(node, "byline"),
			stringField(node, "credit"),
		)),
		Date: strings.TrimSpace(firstNonEmpty(
			stringField(node, "date"),
			stringField(node, "publishedDate"),
			stringField(node, "pubDate"),
		)),
		Topic: teaserfeed.CollapseWhitespace(firstNonEmpty(
			stringField(node, "topic"),
			stringField(node, "section"),
			stringField(node, "category"),
		)),
		Summary: teaserfeed.CollapseWhitespace(firstNonEmpty(
			stringField(node, "abstract"),
			stringField(node, "summary"),
			stringField(node, "description"),
		)),
	}, true
}

// resolveCard derives a validated teaser from a DOM container element using
// the profile's selector fallback chains. Returns false when no acceptable
// headline link or title is found.
func resolveCard(card *goquery.Selection, p *source.Profile) (teaserfeed.TeaserItem, bool) {
	headline, href := cardLink(card, p)
	link := teaserfeed.ResolveURL(p.BaseURL, href)
	if !acceptLink(link, p) {
		return teaserfeed.TeaserItem{}, false
	}

	title := cardTitle(card, headline, p)
	if title == "" {
		return teaserfeed.TeaserItem{}, false
	}

	return teaserfeed.TeaserItem{
		Title:   title,
		Link:    link,
		Image:   teaserfeed.ResolveURL(p.BaseURL, cardImage(card)),
		Author:  selectText(card, p.AuthorSelectors),
		Date:    cardDate(card, p),
		Topic:   selectText(card, p.TopicSelectors),
		Summary: selectText(card, p.SummarySelectors),
	}, true
}

// cardLink finds the headline link inside a card. The configured link
// selectors are tried first; failing those, the first on-domain anchor whose
// href matches the article path pattern is taken.
func cardLink(card *goquery.Selection, p *source.Profile) (*goquery.Selection, string) {
	for _, sel := range p.LinkSelectors {
		a := card.Find(sel).First()
		if href, ok := a.Attr("href"); ok && strings.TrimSpace(href) != "" {
			return a, href
		}
	}

	var found *goquery.Selection
	var foundHref string
	card.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		resolved := teaserfeed.ResolveURL(p.BaseURL, href)
		if resolved == "" || !teaserfeed.OnHost(p.BaseURL, resolved) {
			return true
		}
		if !p.ArticleRegexp().MatchString(href) {
			return true
		}
		found = a
		foundHref = href
		return false
	})
	return found, foundHref
}

// cardTitle resolves the teaser title: configured title selectors, then the
// headline link's ARIA label, then screen-reader-only text, then the link's
// visible text.
func cardTitle(card, headline *goquery.Selection, p *source.Profile) string {
	if title := selectText(card, p.TitleSelectors); title != "" {
		return title
	}
	if headline == nil {
		return ""
	}
	if label, ok := headline.Attr("aria-label"); ok {
		if label = teaserfeed.CollapseWhitespace(label); label != "" {
			return label
		}
	}
	if sr := teaserfeed.CollapseWhitespace(headline.Find(".sr-only, .visually-hidden, .screen-reader-text").Text()); sr != "" {
		return sr
	}
	return teaserfeed.CollapseWhitespace(headline.Text())
}

// cardImage takes the first image's src, falling back to data-src for
// lazy-loaded images. Image is optional and never rejects the candidate.
func cardImage(card *goquery.Selection) string {
	img := card.Find("img").First()
	if src, ok := img.Attr("src"); ok && strings.TrimSpace(src) != "" {
		return strings.TrimSpace(src)
	}
	if src, ok := img.Attr("data-src"); ok && strings.TrimSpace(src) != "" {
		return strings.TrimSpace(src)
	}
	return ""
}

// cardDate prefers a machine-readable datetime attribute over visible text.
func cardDate(card *goquery.Selection, p *source.Profile) string {
	for _, sel := range p.DateSelectors {
		node := card.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if dt, ok := node.Attr("datetime"); ok && strings.TrimSpace(dt) != "" {
			return strings.TrimSpace(dt)
		}
		if text := teaserfeed.CollapseWhitespace(node.Text()); text != "" {
			return text
		}
	}
	return ""
}

// selectText evaluates a selector chain against sel and returns the first
// non-empty collapsed text.
func selectText(sel *goquery.Selection, chain source.SelectorChain) string {
	for _, s := range chain {
		if text := teaserfeed.CollapseWhitespace(sel.Find(s).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// acceptLink applies the link invariants: non-empty, on the target domain,
// and not on an excluded host.
func acceptLink(link string, p *source.Profile) bool {
	if link == "" {
		return false
	}
	if !teaserfeed.OnHost(p.BaseURL, link) {
		return false
	}
	return !teaserfeed.ExcludedHost(link, p.ExcludeHosts)
}

// ctaURL returns the first call-to-action URL on a state node, if any.
func ctaURL(node map[string]any) string {
	ctas, ok := node["ctas"].([]any)
	if !ok || len(ctas) == 0 {
		return ""
	}
	cta, ok := ctas[0].(map[string]any)
	if !ok {
		return ""
	}
	return stringField(cta, "url")
}

// stateImage resolves a tile image: the 16x9 crop, then 3x2, then the first
// listed crop, then the raw source fields.
func stateImage(node map[string]any) string {
	for _, key := range []string{"img", "image", "media"} {
		obj, ok := node[key].(map[string]any)
		if !ok {
			continue
		}
		if u := cropURL(obj["crps"]); u != "" {
			return u
		}
		if u := cropURL(obj["crops"]); u != "" {
			return u
		}
		if u := firstNonEmpty(stringField(obj, "src"), stringField(obj, "rawUrl"), stringField(obj, "url")); u != "" {
			return u
		}
	}
	return cropURL(node["crps"])
}

// cropURL picks a URL from a crop list, preferring the 16x9 crop, then 3x2,
// then whichever crop is listed first.
func cropURL(v any) string {
	crops, ok := v.([]any)
	if !ok {
		return ""
	}

	var first, threeTwo, sixteenNine string
	for _, c := range crops {
		crop, ok := c.(map[string]any)
		if !ok {
			continue
		}
		u := firstNonEmpty(stringField(crop, "url"), stringField(crop, "src"))
		if u == "" {
			continue
		}
		if first == "" {
			first = u
		}
		switch firstNonEmpty(stringField(crop, "nm"), stringField(crop, "name")) {
		case "16x9":
			sixteenNine = u
		case "3x2":
			threeTwo = u
		}
	}
	return firstNonEmpty(sixteenNine, threeTwo, first)
}

// stringField reads a string-valued key from a dynamic node; any other type
// counts as absent.
func stringField(node map[string]any, key string) string {
	s, _ := node[key].(string)
	return strings.TrimSpace(s)
}

// firstNonEmpty returns the first non-empty value in the chain.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
