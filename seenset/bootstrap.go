package seenset

import (
	"fmt"
	"os"

	"github.com/mmcdole/gofeed"
)

// BootstrapFromFeed seeds set with the item links of a previously written
// feed document, so a deployment that predates seen-set persistence does not
// re-emit its whole history. Returns the number of links added. A missing or
// unparseable feed adds nothing; it is not an error.
func BootstrapFromFeed(set *Set, feedPath string) int {
	f, err := os.Open(feedPath)
	if err != nil {
		return 0
	}
	defer f.Close()

	feed, err := gofeed.NewParser().Parse(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to parse existing feed %s for bootstrap: %v\n", feedPath, err)
		return 0
	}

	added := 0
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		if set.Add(item.Link) {
			added++
		}
	}
	return added
}
