// Package rss serializes teaser items into an RSS 2.0 document. The feed
// model is a plain encoding/xml struct tree; gofeed (which only parses) can
// read the output back, and the tests do exactly that.
package rss

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kmaher/teaserfeed"
)

// Feed is the root RSS 2.0 document.
type Feed struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel Channel  `xml:"channel"`
}

// Channel holds the feed metadata and its items.
type Channel struct {
	Title         string `xml:"title"`
	Link          string `xml:"link"`
	Description   string `xml:"description"`
	LastBuildDate string `xml:"lastBuildDate"`
	Items         []Item `xml:"item"`
}

// Item is one feed entry. GUID is the article link, matching the pipeline's
// link-as-identity model.
type Item struct {
	Title       string     `xml:"title"`
	Link        string     `xml:"link"`
	GUID        string     `xml:"guid"`
	PubDate     string     `xml:"pubDate,omitempty"`
	Description string     `xml:"description"`
	Author      string     `xml:"author,omitempty"`
	Categories  []string   `xml:"category,omitempty"`
	Enclosure   *Enclosure `xml:"enclosure,omitempty"`
}

// Enclosure references the teaser image.
type Enclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length string `xml:"length,attr"`
}

// Build assembles a feed document from teaser items. The item description is
// the enriched article body when present, otherwise the teaser summary.
func Build(title, link, description string, items []teaserfeed.TeaserItem) *Feed {
	feed := &Feed{
		Version: "2.0",
		Channel: Channel{
			Title:         title,
			Link:          link,
			Description:   description,
			LastBuildDate: time.Now().UTC().Format(time.RFC1123Z),
		},
	}

	for _, t := range items {
		item := Item{
			Title:       t.Title,
			Link:        t.Link,
			GUID:        t.Link,
			PubDate:     pubDate(t.Date),
			Description: t.Description,
			Author:      t.Author,
		}
		if item.Description == "" {
			item.Description = t.Summary
		}
		if t.Topic != "" {
			item.Categories = []string{t.Topic}
		}
		if t.Image != "" {
			item.Enclosure = &Enclosure{
				URL:    t.Image,
				Type:   imageMIMEType(t.Image),
				Length: "0",
			}
		}
		feed.Channel.Items = append(feed.Channel.Items, item)
	}

	return feed
}

// FailureFeed builds the single-item feed written when a run fails at the
// listing stage, so the output file is never left stale or missing.
func FailureFeed(title, listingURL string, runErr error) *Feed {
	item := teaserfeed.TeaserItem{
		Title:   "Feed generation failed",
		Link:    listingURL,
		Summary: fmt.Sprintf("The last attempt to generate this feed failed: %v. The listing page is available at %s.", runErr, listingURL),
		Date:    time.Now().UTC().Format(time.RFC1123Z),
	}
	return Build(title, listingURL, "Feed generation failed on the last run.", []teaserfeed.TeaserItem{item})
}

// Write serializes the feed to path (0644, world-readable: feed files are
// meant to be served).
func Write(path string, feed *Feed) error {
	data, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal feed: %w", err)
	}

	out := append([]byte(xml.Header), data...)
	out = append(out, '\n')
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write feed: %w", err)
	}
	return nil
}

// pubDate normalizes a source date string into RFC 1123 when it parses under
// a known layout; otherwise the raw string is passed through, since source
// date formats vary and a wrong guess is worse than none.
func pubDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02",
		"January 2, 2006",
		"Jan 2, 2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(time.RFC1123Z)
		}
	}
	return raw
}

// imageMIMEType guesses the enclosure MIME type from the URL's extension,
// defaulting to JPEG.
func imageMIMEType(imageURL string) string {
	u := strings.ToLower(imageURL)
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	switch {
	case strings.HasSuffix(u, ".png"):
		return "image/png"
	case strings.HasSuffix(u, ".gif"):
		return "image/gif"
	case strings.HasSuffix(u, ".webp"):
		return "image/webp"
	case strings.HasSuffix(u, ".svg"):
		return "image/svg+xml"
	default:
		return "image/jpeg"
	}
}
