// Package extract locates article teasers in fetched listing pages. A fixed
// chain of strategies is tried in priority order: the structured-state walk
// when the page embeds a JSON state blob, a selector-driven card scan, and a
// last-resort anchor scan.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a parsed listing or article page. The DOM is always present;
// the structured state is non-nil only when one of the configured globals
// was found in a script tag and its JSON payload decoded. Immutable once
// built.
type Document struct {
	dom   *goquery.Document
	state map[string]any
}

// NewDocument parses rawHTML and attempts to decode an embedded structured
// state object keyed by any of the given global names. A missing or
// malformed state blob is not an error -- the DOM strategies still apply.
func NewDocument(rawHTML string, stateGlobals []string) (*Document, error) {
	dom, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return &Document{
		dom:   dom,
		state: decodeState(dom, stateGlobals),
	}, nil
}

// DOM returns the parsed document tree.
func (d *Document) DOM() *goquery.Document {
	return d.dom
}

// State returns the decoded structured-state object, or nil if the page did
// not carry one.
func (d *Document) State() map[string]any {
	return d.state
}

// decodeState scans script elements for the first occurrence of a known
// state global and decodes the JSON object literal assigned to it. Returns
// nil when no global is present or the payload does not parse.
func decodeState(dom *goquery.Document, globals []string) map[string]any {
	var state map[string]any

	dom.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		text := script.Text()
		for _, global := range globals {
			idx := strings.Index(text, global)
			if idx < 0 {
				continue
			}
			literal := objectLiteralAfter(text[idx+len(global):])
			if literal == "" {
				continue
			}
			var decoded map[string]any
			if err := json.Unmarshal([]byte(literal), &decoded); err != nil {
				// Malformed state is recoverable; the DOM strategies
				// take over.
				continue
			}
			state = decoded
			return false
		}
		return true
	})

	return state
}

// objectLiteralAfter returns the balanced JSON object literal starting at
// the first '{' in s, honoring string escapes so braces inside string values
// do not terminate the scan early.
func objectLiteralAfter(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
