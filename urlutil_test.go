package teaserfeed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestResolveURL verifies relative and absolute href resolution
func TestResolveURL(t *testing.T) {
	base := "https://example.com/news"

	assert.Equal(t, "https://example.com/animals/sharks", ResolveURL(base, "/animals/sharks"))
	assert.Equal(t, "https://other.com/a", ResolveURL(base, "https://other.com/a"))
	assert.Equal(t, "https://example.com/section/page", ResolveURL("https://example.com/section/", "page"))
	assert.Empty(t, ResolveURL(base, ""))
	assert.Empty(t, ResolveURL(base, "   "))
	assert.Empty(t, ResolveURL("", "/relative"), "relative href without a base cannot resolve")
}

// TestOnHost verifies domain matching including subdomains and www
func TestOnHost(t *testing.T) {
	base := "https://www.example.com"

	assert.True(t, OnHost(base, "https://example.com/a"))
	assert.True(t, OnHost(base, "https://www.example.com/a"))
	assert.True(t, OnHost(base, "https://video.example.com/a"), "subdomains are on-site")
	assert.False(t, OnHost(base, "https://example.org/a"))
	assert.False(t, OnHost(base, "https://notexample.com/a"))
	assert.False(t, OnHost(base, ""))
}

// TestExcludedHost verifies exclusion pattern matching
func TestExcludedHost(t *testing.T) {
	excluded := []string{"kids.example.com"}

	assert.True(t, ExcludedHost("https://kids.example.com/a", excluded))
	assert.True(t, ExcludedHost("https://games.kids.example.com/a", excluded))
	assert.False(t, ExcludedHost("https://example.com/a", excluded))
	assert.False(t, ExcludedHost("https://example.com/a", nil))
}

// TestCollapseWhitespace verifies trimming and run collapsing
func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("  a \n b\t\tc  "))
	assert.Empty(t, CollapseWhitespace(" \n\t "))
}
