package extract

import (
	"sort"

	"github.com/kmaher/teaserfeed"
	"github.com/kmaher/teaserfeed/source"
)

// StateWalk extracts tiles from the page's embedded structured state. The
// state schema is undocumented and varies by node type, so the walk visits
// every reachable object value rather than probing known keys, and tests
// each node's type discriminator against the profile's tile types.
type StateWalk struct {
	Profile *source.Profile
}

// Name implements Strategy.
func (s *StateWalk) Name() string {
	return "state-walk"
}

// Extract implements Strategy. Returns nil when the document carries no
// structured state.
func (s *StateWalk) Extract(doc *Document) []teaserfeed.TeaserItem {
	if doc.State() == nil {
		return nil
	}

	var out []teaserfeed.TeaserItem
	seen := make(map[string]bool)
	s.walk(doc.State(), seen, &out)
	return out
}

// walk visits v depth-first. Map keys are visited in sorted order so that
// extraction is a pure function of the document.
func (s *StateWalk) walk(v any, seen map[string]bool, out *[]teaserfeed.TeaserItem) {
	switch node := v.(type) {
	case map[string]any:
		if s.isTile(node) {
			if item, ok := resolveStateNode(node, s.Profile); ok && !seen[item.Link] {
				seen[item.Link] = true
				*out = append(*out, item)
			}
		}
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.walk(node[k], seen, out)
		}
	case []any:
		for _, elem := range node {
			s.walk(elem, seen, out)
		}
	}
}

func (s *StateWalk) isTile(node map[string]any) bool {
	typ, ok := node[s.Profile.TileTypeField].(string)
	if !ok {
		return false
	}
	for _, want := range s.Profile.TileTypes {
		if typ == want {
			return true
		}
	}
	return false
}
