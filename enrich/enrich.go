// Package enrich fetches an article's own page and extracts a full,
// sanitized body beyond the listing-page teaser. Enrichment degrades rather
// than fails: any fetch or parse problem yields a placeholder fragment
// linking to the original article.
package enrich

import (
	"fmt"
	"html"
	"net/url"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kmaher/teaserfeed"
	"github.com/kmaher/teaserfeed/source"
)

// minParagraphLength filters boilerplate fragments (cookie notices, captions)
// out of the paragraph fallback.
const minParagraphLength = 40

// Fetcher retrieves the raw body of a page.
type Fetcher interface {
	Fetch(pageURL string) (string, error)
}

// Enricher extracts full article bodies for one source profile.
type Enricher struct {
	fetcher Fetcher
	profile *source.Profile
}

// New returns an enricher using the given fetcher and profile.
func New(fetcher Fetcher, profile *source.Profile) *Enricher {
	return &Enricher{fetcher: fetcher, profile: profile}
}

// Enrich fetches link and assembles the article body. It never returns an
// error: failures produce a placeholder so the rest of the batch proceeds.
func (e *Enricher) Enrich(link string) teaserfeed.ArticleBody {
	rawHTML, err := e.fetcher.Fetch(link)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to fetch article %s: %v\n", link, err)
		return placeholder(link)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to parse article %s: %v\n", link, err)
		return placeholder(link)
	}

	return e.build(doc, link)
}

// build assembles the body fragments in display order: hero image, topic
// label, headings, byline, key points, main body, attribution.
func (e *Enricher) build(doc *goquery.Document, link string) teaserfeed.ArticleBody {
	var fragments []string

	if img := e.heroImage(doc, link); img != "" {
		fragments = append(fragments, img)
	}
	if topic := firstText(doc, e.profile.TopicSelectors); topic != "" {
		fragments = append(fragments, fmt.Sprintf(`<p class="topic"><strong>%s</strong></p>`, html.EscapeString(topic)))
	}

	title := firstText(doc, source.SelectorChain{"h1", "[class*=headline]"})
	if title != "" {
		fragments = append(fragments, fmt.Sprintf("<h1>%s</h1>", html.EscapeString(title)))
	}
	subtitle := firstText(doc, source.SelectorChain{"[class*=subheadline]", "[class*=dek]", "[class*=standfirst]"})
	if subtitle != "" {
		fragments = append(fragments, fmt.Sprintf("<h2>%s</h2>", html.EscapeString(subtitle)))
	}

	if byline := e.byline(doc); byline != "" {
		fragments = append(fragments, byline)
	}
	if keyPoints := e.keyPoints(doc); keyPoints != "" {
		fragments = append(fragments, keyPoints)
	}

	body := e.mainBody(doc, link)
	if body == "" {
		body = e.paragraphFallback(doc)
	}
	if body != "" {
		fragments = append(fragments, body)
	}

	fragments = append(fragments, attribution(link))
	return teaserfeed.ArticleBody(strings.Join(fragments, "\n"))
}

// heroImage emits an <img> fragment for the first matching hero selector, or
// the og:image meta tag as a final fallback.
func (e *Enricher) heroImage(doc *goquery.Document, link string) string {
	for _, sel := range e.profile.HeroSelectors {
		img := doc.Find(sel).First()
		src := firstNonEmptyAttr(img, "src", "data-src")
		if src == "" {
			continue
		}
		src = teaserfeed.ResolveURL(link, src)
		alt := img.AttrOr("alt", "")
		return fmt.Sprintf(`<img src="%s" alt="%s"/>`, html.EscapeString(src), html.EscapeString(alt))
	}

	if src, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok && strings.TrimSpace(src) != "" {
		return fmt.Sprintf(`<img src="%s" alt=""/>`, html.EscapeString(strings.TrimSpace(src)))
	}
	return ""
}

// byline emits an author/date fragment when either is present.
func (e *Enricher) byline(doc *goquery.Document) string {
	author := firstText(doc, e.profile.AuthorSelectors)
	date := firstText(doc, e.profile.DateSelectors)
	if dt, ok := doc.Find("time").First().Attr("datetime"); ok && strings.TrimSpace(dt) != "" {
		date = strings.TrimSpace(dt)
	}

	switch {
	case author != "" && date != "":
		return fmt.Sprintf(`<p class="byline">%s &middot; %s</p>`, html.EscapeString(author), html.EscapeString(date))
	case author != "":
		return fmt.Sprintf(`<p class="byline">%s</p>`, html.EscapeString(author))
	case date != "":
		return fmt.Sprintf(`<p class="byline">%s</p>`, html.EscapeString(date))
	default:
		return ""
	}
}

// keyPoints extracts an optional "key points" block into a callout list.
func (e *Enricher) keyPoints(doc *goquery.Document) string {
	block := doc.Find(e.profile.KeyPointSelector).First()
	if block.Length() == 0 {
		return ""
	}

	var items []string
	block.Find("li").Each(func(_ int, li *goquery.Selection) {
		if text := teaserfeed.CollapseWhitespace(li.Text()); text != "" {
			items = append(items, fmt.Sprintf("<li>%s</li>", html.EscapeString(text)))
		}
	})
	if len(items) == 0 {
		return ""
	}

	title := teaserfeed.CollapseWhitespace(block.Find("h2, h3, strong").First().Text())
	if title == "" {
		title = "Key points"
	}
	return fmt.Sprintf(`<div class="key-points"><p><strong>%s</strong></p><ul>%s</ul></div>`,
		html.EscapeString(title), strings.Join(items, ""))
}

// mainBody locates the body container via the profile's candidate selectors
// and returns its cleaned inner markup: non-content substructures removed,
// inline styles stripped, relative image sources absolutized.
func (e *Enricher) mainBody(doc *goquery.Document, link string) string {
	var body *goquery.Selection
	for _, sel := range e.profile.BodySelectors {
		if candidate := doc.Find(sel).First(); candidate.Length() > 0 {
			body = candidate
			break
		}
	}
	if body == nil {
		return ""
	}

	body.Find(strings.Join(e.profile.StripSelectors, ", ")).Remove()
	body.Find("[style]").RemoveAttr("style")
	body.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := firstNonEmptyAttr(img, "src", "data-src")
		if src == "" {
			return
		}
		img.SetAttr("src", teaserfeed.ResolveURL(link, src))
		img.RemoveAttr("data-src")
	})

	inner, err := body.Html()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(inner)
}

// paragraphFallback concatenates paragraph text under the main content
// region when no body container matched, dropping short noise fragments.
func (e *Enricher) paragraphFallback(doc *goquery.Document) string {
	region := doc.Find("main").First()
	if region.Length() == 0 {
		region = doc.Find("body").First()
	}

	var paragraphs []string
	region.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := teaserfeed.CollapseWhitespace(p.Text())
		if len(text) < minParagraphLength {
			return
		}
		paragraphs = append(paragraphs, fmt.Sprintf("<p>%s</p>", html.EscapeString(text)))
	})
	return strings.Join(paragraphs, "\n")
}

// attribution links back to the original article.
func attribution(link string) string {
	host := link
	if u, err := url.Parse(link); err == nil && u.Host != "" {
		host = u.Host
	}
	return fmt.Sprintf(`<p class="attribution"><a href="%s">Read the full story at %s</a></p>`,
		html.EscapeString(link), html.EscapeString(host))
}

// placeholder is the degraded body used when an article cannot be fetched.
func placeholder(link string) teaserfeed.ArticleBody {
	return teaserfeed.ArticleBody(fmt.Sprintf(`<p><a href="%s">Read the original article</a></p>`,
		html.EscapeString(link)))
}

// firstText evaluates a selector chain and returns the first non-empty
// collapsed text.
func firstText(doc *goquery.Document, chain source.SelectorChain) string {
	for _, sel := range chain {
		if text := teaserfeed.CollapseWhitespace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func firstNonEmptyAttr(sel *goquery.Selection, names ...string) string {
	for _, name := range names {
		if v, ok := sel.Attr(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
