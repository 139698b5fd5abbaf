package carve_test

import (
	"context"
	"testing"
	"time"

	"github.com/mabho/pagecarve"
	"github.com/mabho/pagecarve/carve"
	"github.com/mabho/pagecarve/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarver_FollowCarve(t *testing.T) {
	t.Parallel()

	singleBlock := func(_, _ string) (*pagecarve.Extraction, error) {
		return &pagecarve.Extraction{
			Blocks:       []pagecarve.Block{{Kind: pagecarve.BlockContent, HTML: "<p>Body</p>"}},
			ContentCount: 1,
		}, nil
	}

	t.Run("follows in-scope links from the seed", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			"https://example.com/articles/": `<html><body>
				<a href="/articles/a">A</a>
				<a href="https://other.com/x">External</a>
				<a href="/about">About</a>
			</body></html>`,
			"https://example.com/articles/a": `<html><body><p>A</p></body></html>`,
		}

		var fetched []string
		c := &carve.Carver{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					fetched = append(fetched, url)
					html, ok := pages[url]
					if !ok {
						return "", pagecarve.Errorf(pagecarve.ENOTFOUND, "no such page %q", url)
					}
					return html, nil
				},
			},
			Extractor:   &mock.BlockExtractor{ExtractFn: singleBlock},
			RetryDelays: []time.Duration{0},
		}

		result, err := c.FollowCarve(context.Background(), "https://example.com/articles/", 0, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Carved)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t, []string{
			"https://example.com/articles/",
			"https://example.com/articles/a",
		}, fetched, "external and out-of-prefix links should not be fetched")
	})

	t.Run("respects the page limit", func(t *testing.T) {
		t.Parallel()

		seedHTML := `<html><body>
			<a href="/articles/a">A</a>
			<a href="/articles/b">B</a>
			<a href="/articles/c">C</a>
		</body></html>`

		c := &carve.Carver{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if url == "https://example.com/articles/" {
						return seedHTML, nil
					}
					return "<html><body><p>Page</p></body></html>", nil
				},
			},
			Extractor:   &mock.BlockExtractor{ExtractFn: singleBlock},
			RetryDelays: []time.Duration{0},
		}

		result, err := c.FollowCarve(context.Background(), "https://example.com/articles/", 2, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Carved)
	})

	t.Run("skips links that were already seen", func(t *testing.T) {
		t.Parallel()

		// Two pages linking to each other: each should be carved once.
		pages := map[string]string{
			"https://example.com/articles/":  `<html><body><a href="/articles/a">A</a></body></html>`,
			"https://example.com/articles/a": `<html><body><a href="/articles/">Back</a></body></html>`,
		}

		var fetchCount int
		c := &carve.Carver{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					fetchCount++
					return pages[url], nil
				},
			},
			Extractor:   &mock.BlockExtractor{ExtractFn: singleBlock},
			RetryDelays: []time.Duration{0},
		}

		result, err := c.FollowCarve(context.Background(), "https://example.com/articles/", 0, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Carved)
		assert.Equal(t, 2, fetchCount, "each page should be fetched exactly once")
	})

	t.Run("rate limits each page by host", func(t *testing.T) {
		t.Parallel()

		var waitedDomains []string
		c := &carve.Carver{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if url == "https://example.com/articles/" {
						return `<html><body><a href="/articles/a">A</a></body></html>`, nil
					}
					return "<html><body><p>A</p></body></html>", nil
				},
			},
			Extractor: &mock.BlockExtractor{ExtractFn: singleBlock},
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, domain string) error {
					waitedDomains = append(waitedDomains, domain)
					return nil
				},
			},
			RetryDelays: []time.Duration{0},
		}

		result, err := c.FollowCarve(context.Background(), "https://example.com/articles/", 0, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Carved)
		assert.Equal(t, []string{"example.com", "example.com"}, waitedDomains)
	})

	t.Run("still follows links when extraction fails", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			"https://example.com/articles/":  `<html><body><a href="/articles/a">A</a></body></html>`,
			"https://example.com/articles/a": `<html><body><p>A</p></body></html>`,
		}

		c := &carve.Carver{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return pages[url], nil
				},
			},
			Extractor: &mock.BlockExtractor{
				ExtractFn: func(_, pageURL string) (*pagecarve.Extraction, error) {
					if pageURL == "https://example.com/articles/" {
						return nil, pagecarve.Errorf(pagecarve.ENOTFOUND, "no content region found")
					}
					return singleBlock("", pageURL)
				},
			},
			RetryDelays: []time.Duration{0},
		}

		result, err := c.FollowCarve(context.Background(), "https://example.com/articles/", 0, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Carved)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("stops when the rate limiter reports cancellation", func(t *testing.T) {
		t.Parallel()

		c := &carve.Carver{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html></html>", nil
				},
			},
			Extractor: &mock.BlockExtractor{ExtractFn: singleBlock},
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, _ string) error {
					return context.Canceled
				},
			},
			RetryDelays: []time.Duration{0},
		}

		result, err := c.FollowCarve(context.Background(), "https://example.com/articles/", 0, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, result.Carved)
		assert.Equal(t, 0, result.Failed)
	})

	t.Run("reports progress per page", func(t *testing.T) {
		t.Parallel()

		c := &carve.Carver{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if url == "https://example.com/articles/broken" {
						return "", pagecarve.Errorf(pagecarve.EUNAVAILABLE, "fetch failed")
					}
					return `<html><body><a href="/articles/broken">Broken</a></body></html>`, nil
				},
			},
			Extractor:   &mock.BlockExtractor{ExtractFn: singleBlock},
			RetryDelays: []time.Duration{0},
		}

		var events []carve.ProgressEvent
		progress := func(e carve.ProgressEvent) {
			events = append(events, e)
		}

		_, err := c.FollowCarve(context.Background(), "https://example.com/articles/", 0, progress)

		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, carve.ProgressCompleted, events[0].Type)
		assert.Equal(t, "https://example.com/articles/", events[0].URL)
		assert.Equal(t, carve.ProgressFailed, events[1].Type)
		assert.Equal(t, "https://example.com/articles/broken", events[1].URL)
		assert.Equal(t, carve.ProgressFinished, events[2].Type)
	})

	t.Run("rejects an unparseable seed URL", func(t *testing.T) {
		t.Parallel()

		c := &carve.Carver{
			Fetcher:     &mock.Fetcher{},
			Extractor:   &mock.BlockExtractor{},
			RetryDelays: []time.Duration{0},
		}

		_, err := c.FollowCarve(context.Background(), "https://exa mple.com/", 0, nil)

		require.Error(t, err)
	})
}
