// Package source holds per-site scraping profiles. A profile captures
// everything that varies between target sites -- base URL, embedded-state
// globals, tile discriminators, selector fallback chains, exclusions -- so
// that adding a site is configuration, not code.
package source

import (
	"fmt"
	"regexp"
	"time"
)

// SelectorChain is an ordered list of CSS selectors tried until one yields a
// non-empty result.
type SelectorChain []string

// Profile describes how to harvest teasers from one site.
type Profile struct {
	Name            string `yaml:"name"`
	BaseURL         string `yaml:"base_url"`
	ListingURL      string `yaml:"listing_url"`
	FeedTitle       string `yaml:"feed_title"`
	FeedDescription string `yaml:"feed_description"`

	// Structured-state extraction. StateGlobals are the script-embedded
	// global names whose JSON payload describes the rendered page;
	// TileTypeField is the discriminator key and TileTypes the accepted
	// node types.
	StateGlobals  []string `yaml:"state_globals"`
	TileTypeField string   `yaml:"tile_type_field"`
	TileTypes     []string `yaml:"tile_types"`

	// DOM extraction fallback chains.
	ContainerSelectors SelectorChain `yaml:"container_selectors"`
	LinkSelectors      SelectorChain `yaml:"link_selectors"`
	TitleSelectors     SelectorChain `yaml:"title_selectors"`
	AuthorSelectors    SelectorChain `yaml:"author_selectors"`
	DateSelectors      SelectorChain `yaml:"date_selectors"`
	TopicSelectors     SelectorChain `yaml:"topic_selectors"`
	SummarySelectors   SelectorChain `yaml:"summary_selectors"`

	// Validation.
	ExcludeHosts   []string `yaml:"exclude_hosts"`
	ArticlePattern string   `yaml:"article_pattern"` // regexp matched against hrefs
	MinTitleLength int      `yaml:"min_title_length"`

	// Enrichment.
	Enrich           bool          `yaml:"enrich"`
	RequestDelay     string        `yaml:"request_delay"` // duration string, e.g. "1500ms"
	HeroSelectors    SelectorChain `yaml:"hero_selectors"`
	BodySelectors    SelectorChain `yaml:"body_selectors"`
	StripSelectors   SelectorChain `yaml:"strip_selectors"`
	KeyPointSelector string        `yaml:"key_point_selector"`

	articleRe *regexp.Regexp
}

// ApplyDefaults fills in any unset field with defaults that work against
// typical news listing markup, and compiles the article path pattern.
// Returns an error only when a configured pattern or duration is invalid.
func (p *Profile) ApplyDefaults() error {
	if p.FeedTitle == "" {
		p.FeedTitle = p.Name
	}
	if len(p.StateGlobals) == 0 {
		p.StateGlobals = []string{"window.__PAGE_DATA__", "window.__PRELOADED_STATE__", "__NEXT_DATA__"}
	}
	if p.TileTypeField == "" {
		p.TileTypeField = "cmsType"
	}
	if len(p.TileTypes) == 0 {
		p.TileTypes = []string{"FeaturedContentTile", "ContentTile", "VideoContentTile", "CarouselTile"}
	}
	if len(p.ContainerSelectors) == 0 {
		p.ContainerSelectors = SelectorChain{
			"article",
			"[class*=card]",
			"[class*=promo]",
			"[class*=tile]",
			"section [class*=item]",
		}
	}
	if len(p.LinkSelectors) == 0 {
		p.LinkSelectors = SelectorChain{"h2 a", "h3 a", "a[class*=headline]", "a[class*=title]"}
	}
	if len(p.TitleSelectors) == 0 {
		p.TitleSelectors = SelectorChain{"h2", "h3", "[class*=headline]", "[class*=title]"}
	}
	if len(p.AuthorSelectors) == 0 {
		p.AuthorSelectors = SelectorChain{".byline", "[class*=author]", "[rel=author]"}
	}
	if len(p.DateSelectors) == 0 {
		p.DateSelectors = SelectorChain{"time", "[class*=date]", "[class*=timestamp]"}
	}
	if len(p.TopicSelectors) == 0 {
		p.TopicSelectors = SelectorChain{"[class*=kicker]", "[class*=topic]", "[class*=section]", "[class*=tag]"}
	}
	if len(p.SummarySelectors) == 0 {
		p.SummarySelectors = SelectorChain{"[class*=dek]", "[class*=teaser]", "[class*=summary]", "[class*=abstract]", "p"}
	}
	if p.ArticlePattern == "" {
		p.ArticlePattern = `/(article|news|story|pages)/`
	}
	if p.MinTitleLength == 0 {
		p.MinTitleLength = 5
	}
	if p.RequestDelay == "" {
		p.RequestDelay = "1500ms"
	}
	if len(p.HeroSelectors) == 0 {
		p.HeroSelectors = SelectorChain{"figure img", "[class*=hero] img", "[class*=lead] img", "article img"}
	}
	if len(p.BodySelectors) == 0 {
		p.BodySelectors = SelectorChain{
			"[class*=article-body]",
			"[class*=story-body]",
			"article [class*=body]",
			"article [class*=content]",
			"article",
			"main",
		}
	}
	if len(p.StripSelectors) == 0 {
		p.StripSelectors = SelectorChain{
			"script",
			"style",
			"iframe",
			"aside",
			"[class*=advert]",
			"[class*=ad-slot]",
			"[class*=newsletter]",
			"[class*=related]",
			"[class*=promo]",
			"[class*=share]",
			"[class*=social]",
		}
	}
	if p.KeyPointSelector == "" {
		p.KeyPointSelector = "[class*=key-point], [class*=keypoint], [class*=takeaway], [class*=highlights]"
	}

	re, err := regexp.Compile(p.ArticlePattern)
	if err != nil {
		return fmt.Errorf("failed to compile article pattern: %w", err)
	}
	p.articleRe = re

	if _, err := time.ParseDuration(p.RequestDelay); err != nil {
		return fmt.Errorf("invalid request_delay: must be a valid duration (e.g., 1500ms, 2s)")
	}

	return nil
}

// ArticleRegexp returns the compiled article path pattern. ApplyDefaults
// must have been called first.
func (p *Profile) ArticleRegexp() *regexp.Regexp {
	return p.articleRe
}

// Delay returns the inter-request delay as a duration. ApplyDefaults
// validates the string, so parsing here cannot fail.
func (p *Profile) Delay() time.Duration {
	d, _ := time.ParseDuration(p.RequestDelay)
	return d
}
