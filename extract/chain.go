package extract

import (
	"github.com/kmaher/teaserfeed"
	"github.com/kmaher/teaserfeed/source"
)

// Strategy produces teaser candidates from a document. Strategies are
// stateless and must yield the same ordered sequence for the same document.
type Strategy interface {
	// Name identifies the strategy in progress logs.
	Name() string
	// Extract returns zero or more teaser items found in the document.
	Extract(doc *Document) []teaserfeed.TeaserItem
}

// Chain tries strategies in fixed priority order and stops at the first one
// returning a non-empty result. Results are never merged across strategies.
type Chain struct {
	strategies []Strategy
}

// NewChain builds the standard three-strategy chain for a profile:
// structured-state walk, card scan, anchor scan.
func NewChain(p *source.Profile) *Chain {
	return &Chain{
		strategies: []Strategy{
			&StateWalk{Profile: p},
			&CardScan{Profile: p},
			&AnchorScan{Profile: p},
		},
	}
}

// Extract runs the chain against doc. The returned strategy name tells the
// caller which layer produced the items; it is empty when nothing matched.
func (c *Chain) Extract(doc *Document) ([]teaserfeed.TeaserItem, string) {
	for _, s := range c.strategies {
		if items := s.Extract(doc); len(items) > 0 {
			return items, s.Name()
		}
	}
	return nil, ""
}
