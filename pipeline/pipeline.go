// Package pipeline sequences one scrape-extract-dedup-emit cycle for a
// single source: load the seen-set, fetch the listing page, run the
// extraction chain, filter already-emitted links, optionally enrich each new
// item, and write the RSS feed. Execution is strictly sequential -- one
// fetch at a time, separated by the profile's inter-request delay.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/kmaher/teaserfeed"
	"github.com/kmaher/teaserfeed/enrich"
	"github.com/kmaher/teaserfeed/extract"
	"github.com/kmaher/teaserfeed/rss"
	"github.com/kmaher/teaserfeed/seenset"
	"github.com/kmaher/teaserfeed/source"
)

// Pipeline runs the full cycle for one source. The seen-set is owned
// exclusively by the pipeline and mutated only between sequential steps.
type Pipeline struct {
	Profile    *source.Profile
	Fetcher    Fetcher
	Store      seenset.Store
	FeedPath   string
	ReportPath string

	// Sleep is a seam for tests; nil means time.Sleep.
	Sleep func(time.Duration)
	// Progress receives log lines; nil means os.Stderr.
	Progress io.Writer
}

// New wires a pipeline for a profile. Enrichment is driven by the profile's
// Enrich flag.
func New(profile *source.Profile, fetcher Fetcher, store seenset.Store, feedPath, reportPath string) *Pipeline {
	return &Pipeline{
		Profile:    profile,
		Fetcher:    fetcher,
		Store:      store,
		FeedPath:   feedPath,
		ReportPath: reportPath,
	}
}

// Run executes one cycle and returns its report. On a listing-stage failure
// the feed file still gets written, containing a single explanatory
// placeholder item, and the error is returned to the caller.
func (pl *Pipeline) Run() (*RunReport, error) {
	report := &RunReport{
		RunID:     uuid.New(),
		Source:    pl.Profile.Name,
		StartedAt: time.Now().UTC(),
	}
	defer func() {
		report.Duration = time.Since(report.StartedAt).Round(time.Millisecond).String()
		WriteReport(pl.ReportPath, report)
	}()

	set, err := pl.Store.Load()
	if err != nil {
		pl.logf("Warning: failed to load seen-set, starting with no history: %v\n", err)
		set = seenset.NewSet()
	}
	if set.Len() == 0 {
		if n := seenset.BootstrapFromFeed(set, pl.FeedPath); n > 0 {
			pl.logf("Seeded seen-set with %d links from existing feed\n", n)
		}
	}
	pl.logf("Run %s: %d links in seen-set\n", report.RunID, set.Len())

	body, err := pl.Fetcher.Fetch(pl.Profile.ListingURL)
	if err != nil {
		return pl.fail(report, fmt.Errorf("failed to fetch listing page: %w", err))
	}

	doc, err := extract.NewDocument(body, pl.Profile.StateGlobals)
	if err != nil {
		return pl.fail(report, fmt.Errorf("failed to parse listing page: %w", err))
	}

	items, strategy := extract.NewChain(pl.Profile).Extract(doc)
	report.Extracted = len(items)
	report.Strategy = strategy
	pl.logf("Extracted %d teasers via %s\n", len(items), strategy)

	var enricher *enrich.Enricher
	if pl.Profile.Enrich {
		enricher = enrich.New(pl.Fetcher, pl.Profile)
	}

	var fresh []teaserfeed.TeaserItem
	for _, item := range items {
		if set.Contains(item.Link) {
			continue
		}

		if enricher != nil {
			if len(fresh) > 0 {
				pl.sleep(pl.Profile.Delay())
			}
			item.Description = enricher.Enrich(item.Link).String()
			report.Enriched++
		}

		// Checkpoint after every unit of work: a mid-run failure loses
		// at most the in-flight item.
		set.Add(item.Link)
		if enricher != nil {
			if err := pl.Store.Save(set); err != nil {
				pl.logf("Warning: failed to checkpoint seen-set: %v\n", err)
			}
		}

		fresh = append(fresh, item)
		pl.logf("New item: %s\n", item.Link)
	}
	report.New = len(fresh)

	feed := rss.Build(pl.Profile.FeedTitle, pl.Profile.BaseURL, pl.Profile.FeedDescription, fresh)
	if err := rss.Write(pl.FeedPath, feed); err != nil {
		report.Error = err.Error()
		return report, err
	}

	if err := pl.Store.Save(set); err != nil {
		report.Error = err.Error()
		return report, fmt.Errorf("failed to persist seen-set: %w", err)
	}

	pl.logf("Wrote %d new items to %s\n", len(fresh), pl.FeedPath)
	return report, nil
}

// fail writes the single-placeholder failure feed and surfaces the run
// error.
func (pl *Pipeline) fail(report *RunReport, runErr error) (*RunReport, error) {
	report.Error = runErr.Error()
	pl.logf("Error: %v\n", runErr)

	feed := rss.FailureFeed(pl.Profile.FeedTitle, pl.Profile.ListingURL, runErr)
	if writeErr := rss.Write(pl.FeedPath, feed); writeErr != nil {
		pl.logf("Warning: failed to write failure feed: %v\n", writeErr)
	}
	return report, runErr
}

func (pl *Pipeline) sleep(d time.Duration) {
	if pl.Sleep != nil {
		pl.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (pl *Pipeline) logf(format string, args ...any) {
	w := pl.Progress
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, format, args...)
}
