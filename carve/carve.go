// Package carve provides page carving orchestration.
// It coordinates fetching, block extraction, widget title resolution,
// and storage of carved pages.
package carve

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mabho/pagecarve"
	"golang.org/x/sync/errgroup"
)

// DefaultTitleTimeout bounds a single widget title lookup.
const DefaultTitleTimeout = 5 * time.Second

// Carver orchestrates the carving of pages into content blocks.
type Carver struct {
	Fetcher      pagecarve.Fetcher
	Extractor    pagecarve.BlockExtractor
	Titles       pagecarve.TitleResolver
	Scrapes      pagecarve.ScrapeService
	RateLimiter  pagecarve.DomainLimiter
	Selector     string
	Concurrency  int
	TitleTimeout time.Duration
	RetryDelays  []time.Duration
}

// Result holds the outcome of a batch carve operation.
type Result struct {
	Carved  int // pages carved successfully
	Failed  int // pages that failed
	Blocks  int // total blocks across carved pages
	Widgets int // widget blocks across carved pages
	Bytes   int // total block markup bytes
}

// ProgressEvent reports progress during a batch carve operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting carve progress.
type ProgressFunc func(event ProgressEvent)

// carveResult holds the outcome of processing a single URL.
type carveResult struct {
	position int
	url      string
	scrape   *pagecarve.Scrape
	err      error
}

// CarvePage fetches a single page, extracts its blocks, resolves widget
// titles, and persists the scrape when a ScrapeService is configured.
func (c *Carver) CarvePage(ctx context.Context, pageURL string) (*pagecarve.Scrape, error) {
	html, err := c.fetchWithRetry(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return c.CarveFetched(ctx, pageURL, html)
}

// CarveFetched carves already-fetched page HTML. Callers that fetch the
// page themselves (to display or probe the raw markup) use this to avoid
// a second fetch.
func (c *Carver) CarveFetched(ctx context.Context, pageURL, html string) (*pagecarve.Scrape, error) {
	extraction, err := c.Extractor.Extract(html, pageURL)
	if err != nil {
		return nil, err
	}

	c.resolveTitles(ctx, extraction.Blocks)

	scrape := &pagecarve.Scrape{
		PageURL:      pageURL,
		Selector:     c.Selector,
		ContentCount: extraction.ContentCount,
		WidgetCount:  extraction.WidgetCount,
		ContentHash:  ComputeHash(joinBlockHTML(extraction.Blocks)),
		FetchedAt:    time.Now().UTC(),
		Blocks:       extraction.Blocks,
	}

	if c.Scrapes != nil {
		if err := c.Scrapes.CreateScrape(ctx, scrape); err != nil {
			return nil, fmt.Errorf("saving scrape: %w", err)
		}
	}

	return scrape, nil
}

// resolveTitles fills in widget block titles concurrently.
// Blocks stay in detection order; each lookup writes only its own index.
// Resolution failures leave the title empty and are not reported.
func (c *Carver) resolveTitles(ctx context.Context, blocks []pagecarve.Block) {
	if c.Titles == nil {
		return
	}

	timeout := c.TitleTimeout
	if timeout <= 0 {
		timeout = DefaultTitleTimeout
	}
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i := range blocks {
		if blocks[i].Kind != pagecarve.BlockWidget || blocks[i].SourceURL == "" {
			continue
		}
		i := i
		g.Go(func() error {
			tctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			title, err := c.Titles.ResolveTitle(tctx, blocks[i].SourceURL)
			if err == nil {
				blocks[i].Title = title
			}
			return nil
		})
	}

	_ = g.Wait()
}

// fetchWithRetry fetches a URL using the configured retry delays.
func (c *Carver) fetchWithRetry(ctx context.Context, url string) (string, error) {
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	fetchFn := func(ctx context.Context, url string) (string, error) {
		return c.Fetcher.Fetch(ctx, url)
	}
	return FetchWithRetryDelays(ctx, url, fetchFn, nil, delays)
}

// CarveAll carves every URL in the list with bounded concurrency.
// The progress callback, if provided, receives events as carving proceeds.
// Per-URL failures are counted in the result, not returned as errors.
func (c *Carver) CarveAll(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	if len(urls) == 0 {
		return &Result{}, nil
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	resultCh := make(chan carveResult, len(urls))

	var completed atomic.Int64
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			i, url := i, url
			g.Go(func() error {
				scrape, err := c.CarvePage(gctx, url)
				resultCh <- carveResult{position: i, url: url, scrape: scrape, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in input order
	results := make([]carveResult, len(urls))
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if progress != nil {
			event := ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       result.url,
			}
			if result.err != nil {
				event.Type = ProgressFailed
				event.Error = result.err
			}
			progress(event)
		}
	}

	var out Result
	for _, result := range results {
		if result.err != nil {
			out.Failed++
			continue
		}
		out.Carved++
		accumulate(&out, result.scrape)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return &out, nil
}

// accumulate adds a carved scrape's block stats to the result.
func accumulate(r *Result, scrape *pagecarve.Scrape) {
	r.Blocks += len(scrape.Blocks)
	r.Widgets += scrape.WidgetCount
	for i := range scrape.Blocks {
		r.Bytes += len(scrape.Blocks[i].HTML)
	}
}

// joinBlockHTML concatenates block markup for content hashing.
func joinBlockHTML(blocks []pagecarve.Block) string {
	parts := make([]string, len(blocks))
	for i := range blocks {
		parts[i] = blocks[i].HTML
	}
	return strings.Join(parts, "\n")
}
