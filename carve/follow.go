package carve

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mabho/pagecarve"
	"github.com/mabho/pagecarve/goquery"
)

// Frontier configuration for follow carving.
const (
	// followExpectedURLs is the expected number of URLs for Bloom filter sizing.
	followExpectedURLs = 10000
	// followFalsePositiveRate is the acceptable false positive rate for deduplication.
	followFalsePositiveRate = 0.01
	// maxFollowURLs limits the number of URLs processed to prevent runaway walks.
	maxFollowURLs = 1000
)

// FollowCarve walks same-site links starting from seedURL and carves every
// page it reaches. Links are followed only within the seed's host and path
// prefix. The walk stops when the frontier is empty or limit pages have
// been processed (maxFollowURLs when limit is zero or negative).
//
// URLs are processed sequentially to keep per-domain rate limiting simple.
// For high-throughput batches, discover URLs up front and use CarveAll.
func (c *Carver) FollowCarve(ctx context.Context, seedURL string, limit int, progress ProgressFunc) (*Result, error) {
	seed, err := url.Parse(seedURL)
	if err != nil {
		return nil, fmt.Errorf("invalid seed URL: %w", err)
	}
	pathPrefix := seed.Path

	if limit <= 0 {
		limit = maxFollowURLs
	}

	frontier := NewFrontier(followExpectedURLs, followFalsePositiveRate)
	frontier.Push(pagecarve.DiscoveredLink{
		URL:      seedURL,
		Priority: pagecarve.PrioritySeed,
	})

	var result Result
	processed := 0

	for {
		link, ok := frontier.Pop()
		if !ok {
			break
		}

		if processed >= limit {
			break
		}
		processed++

		if ctx.Err() != nil {
			break
		}

		linkURL, err := url.Parse(link.URL)
		if err != nil {
			result.Failed++
			continue
		}
		if c.RateLimiter != nil {
			if err := c.RateLimiter.Wait(ctx, linkURL.Host); err != nil {
				break // context canceled
			}
		}

		html, err := c.fetchWithRetry(ctx, link.URL)
		if err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:  ProgressFailed,
					URL:   link.URL,
					Error: err,
				})
			}
			continue
		}

		// Queue in-scope links before carving so a failed extraction
		// still contributes to the walk.
		links, err := goquery.CollectLinks(html, link.URL)
		if err == nil {
			for _, discovered := range links {
				if !inScope(discovered.URL, seed, pathPrefix) {
					continue
				}
				frontier.Push(discovered)
			}
		}

		scrape, err := c.CarveFetched(ctx, link.URL, html)
		if err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:  ProgressFailed,
					URL:   link.URL,
					Error: err,
				})
			}
			continue
		}

		result.Carved++
		accumulate(&result, scrape)

		if progress != nil {
			progress(ProgressEvent{
				Type: ProgressCompleted,
				URL:  link.URL,
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type: ProgressFinished,
		})
	}

	return &result, nil
}

// inScope reports whether a discovered URL stays on the seed's host
// and under its path prefix.
func inScope(rawURL string, seed *url.URL, pathPrefix string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Host != seed.Host {
		return false
	}
	return strings.HasPrefix(parsed.Path, pathPrefix)
}
