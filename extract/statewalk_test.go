package extract

import (
	"testing"

	"github.com/kmaher/teaserfeed/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile(t *testing.T) *source.Profile {
	t.Helper()
	p := &source.Profile{
		Name:         "Example News",
		BaseURL:      "https://example.com",
		ListingURL:   "https://example.com/news",
		ExcludeHosts: []string{"kids.example.com"},
	}
	require.NoError(t, p.ApplyDefaults())
	return p
}

func stateDoc(t *testing.T, stateJSON string) *Document {
	t.Helper()
	doc, err := NewDocument(`<html><body><script>window.__PAGE_DATA__ = `+stateJSON+`;</script></body></html>`, testGlobals)
	require.NoError(t, err)
	require.NotNil(t, doc.State())
	return doc
}

// TestStateWalk_FeaturedTile verifies the canonical tile-to-teaser resolution
func TestStateWalk_FeaturedTile(t *testing.T) {
	doc := stateDoc(t, `{
		"page": {
			"sections": [
				{"cmsType": "FeaturedContentTile", "title": "Sharks", "ctas": [{"url": "/animals/sharks"}]}
			]
		}
	}`)

	items := (&StateWalk{Profile: testProfile(t)}).Extract(doc)

	require.Len(t, items, 1)
	assert.Equal(t, "Sharks", items[0].Title)
	assert.Equal(t, "https://example.com/animals/sharks", items[0].Link)
}

// TestStateWalk_VisitsEveryObject verifies the walk reaches tiles under unknown keys
func TestStateWalk_VisitsEveryObject(t *testing.T) {
	doc := stateDoc(t, `{
		"weird": {"deeply": [{"nested": {"frames": [
			{"cmsType": "ContentTile", "title": "Deep tile found", "url": "/article/deep"}
		]}}]}
	}`)

	items := (&StateWalk{Profile: testProfile(t)}).Extract(doc)

	require.Len(t, items, 1)
	assert.Equal(t, "https://example.com/article/deep", items[0].Link)
}

// TestStateWalk_DeduplicatesWithinPass verifies no duplicate links in one extraction
func TestStateWalk_DeduplicatesWithinPass(t *testing.T) {
	doc := stateDoc(t, `{
		"a": {"cmsType": "ContentTile", "title": "Same story", "url": "/article/same"},
		"b": {"cmsType": "ContentTile", "title": "Same story again", "url": "/article/same"},
		"c": {"cmsType": "ContentTile", "title": "Other story", "url": "/article/other"}
	}`)

	items := (&StateWalk{Profile: testProfile(t)}).Extract(doc)

	require.Len(t, items, 2)
	seen := make(map[string]bool)
	for _, item := range items {
		assert.False(t, seen[item.Link], "duplicate link %s", item.Link)
		seen[item.Link] = true
	}
}

// TestStateWalk_Deterministic verifies extraction is a pure function of the document
func TestStateWalk_Deterministic(t *testing.T) {
	doc := stateDoc(t, `{
		"z": {"cmsType": "ContentTile", "title": "Last alphabetically", "url": "/article/z"},
		"a": {"cmsType": "ContentTile", "title": "First alphabetically", "url": "/article/a"},
		"m": {"cmsType": "ContentTile", "title": "Middle of the pack", "url": "/article/m"}
	}`)
	walk := &StateWalk{Profile: testProfile(t)}

	first := walk.Extract(doc)
	second := walk.Extract(doc)

	assert.Equal(t, first, second)
	require.Len(t, first, 3)
	assert.Equal(t, "https://example.com/article/a", first[0].Link, "map keys walk in sorted order")
}

// TestStateWalk_RejectsInvalidCandidates verifies the title/link invariants
func TestStateWalk_RejectsInvalidCandidates(t *testing.T) {
	doc := stateDoc(t, `{
		"noTitle": {"cmsType": "ContentTile", "url": "/article/untitled"},
		"offDomain": {"cmsType": "ContentTile", "title": "Elsewhere", "url": "https://other.org/article/x"},
		"excluded": {"cmsType": "ContentTile", "title": "For kids", "url": "https://kids.example.com/article/x"},
		"noLink": {"cmsType": "ContentTile", "title": "Going nowhere"},
		"good": {"cmsType": "ContentTile", "title": "Keeps the run honest", "url": "/article/good"}
	}`)

	items := (&StateWalk{Profile: testProfile(t)}).Extract(doc)

	require.Len(t, items, 1)
	assert.Equal(t, "https://example.com/article/good", items[0].Link)
}

// TestStateWalk_CropPreference verifies 16x9 wins over 3x2 and listing order
func TestStateWalk_CropPreference(t *testing.T) {
	doc := stateDoc(t, `{
		"tile": {
			"cmsType": "ContentTile",
			"title": "Crops in order",
			"url": "/article/crops",
			"img": {"crps": [{"nm": "3x2", "url": "X"}, {"nm": "16x9", "url": "Y"}]}
		}
	}`)

	items := (&StateWalk{Profile: testProfile(t)}).Extract(doc)

	require.Len(t, items, 1)
	assert.Equal(t, "Y", items[0].Image)
}

// TestStateWalk_CropFallbacks verifies first-crop and raw-source fallbacks
func TestStateWalk_CropFallbacks(t *testing.T) {
	p := testProfile(t)

	doc := stateDoc(t, `{
		"tile": {"cmsType": "ContentTile", "title": "No preferred crop", "url": "/article/a",
			"img": {"crps": [{"nm": "1x1", "url": "F"}, {"nm": "4x3", "url": "G"}]}}
	}`)
	items := (&StateWalk{Profile: p}).Extract(doc)
	require.Len(t, items, 1)
	assert.Equal(t, "F", items[0].Image, "first listed crop wins when no named crop matches")

	doc = stateDoc(t, `{
		"tile": {"cmsType": "ContentTile", "title": "Raw source only", "url": "/article/b",
			"img": {"src": "https://cdn.example.com/raw.jpg"}}
	}`)
	items = (&StateWalk{Profile: p}).Extract(doc)
	require.Len(t, items, 1)
	assert.Equal(t, "https://cdn.example.com/raw.jpg", items[0].Image)
}

// TestStateWalk_CTAPrecedence verifies ctas[0].url beats the direct url field
func TestStateWalk_CTAPrecedence(t *testing.T) {
	doc := stateDoc(t, `{
		"tile": {"cmsType": "FeaturedContentTile", "title": "CTA first",
			"ctas": [{"url": "/article/cta"}], "url": "/article/direct"}
	}`)

	items := (&StateWalk{Profile: testProfile(t)}).Extract(doc)

	require.Len(t, items, 1)
	assert.Equal(t, "https://example.com/article/cta", items[0].Link)
}

// TestStateWalk_OptionalFields verifies author/date/topic/summary resolution
func TestStateWalk_OptionalFields(t *testing.T) {
	doc := stateDoc(t, `{
		"tile": {"cmsType": "ContentTile", "title": "Full house", "url": "/article/full",
			"byline": "Jane  Doe", "publishedDate": "2026-08-01", "section": "Animals",
			"abstract": "A   summary with   runs."}
	}`)

	items := (&StateWalk{Profile: testProfile(t)}).Extract(doc)

	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, "Jane Doe", item.Author)
	assert.Equal(t, "2026-08-01", item.Date)
	assert.Equal(t, "Animals", item.Topic)
	assert.Equal(t, "A summary with runs.", item.Summary)
}

// TestStateWalk_NoState verifies a DOM-only document yields nothing here
func TestStateWalk_NoState(t *testing.T) {
	doc, err := NewDocument(`<html><body><article><h3><a href="/article/x">Card headline</a></h3></article></body></html>`, testGlobals)
	require.NoError(t, err)

	assert.Nil(t, (&StateWalk{Profile: testProfile(t)}).Extract(doc))
}
