package main

import (
	"context"
	"net/url"
	"sync"

	"github.com/mabho/pagecarve"
	"github.com/mabho/pagecarve/carve"
)

// Ensure ProbingFetcher implements pagecarve.Fetcher at compile time.
var _ pagecarve.Fetcher = (*ProbingFetcher)(nil)

// ProbingFetcher picks between plain HTTP and a headless browser per
// site. The first fetch for a host probes with both and the winner
// serves every later fetch for that host.
//
// Decision flow:
//   - HTTP fetch fails → Use Rod
//   - Rod fetch fails → Use HTTP (best effort)
//   - Rendering adds extractable content → Use Rod
type ProbingFetcher struct {
	HTTP      pagecarve.Fetcher
	Rod       pagecarve.Fetcher
	Extractor pagecarve.BlockExtractor

	mu     sync.Mutex
	byHost map[string]pagecarve.Fetcher
}

// Fetch retrieves the page with the fetcher probed for its host. The
// probe returns the markup it already fetched, so no page is fetched
// twice beyond the probe itself.
func (f *ProbingFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return f.HTTP.Fetch(ctx, pageURL)
	}

	f.mu.Lock()
	chosen, ok := f.byHost[u.Host]
	f.mu.Unlock()
	if ok {
		return chosen.Fetch(ctx, pageURL)
	}

	html, chosen, err := f.probe(ctx, pageURL)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	if f.byHost == nil {
		f.byHost = make(map[string]pagecarve.Fetcher)
	}
	f.byHost[u.Host] = chosen
	f.mu.Unlock()

	return html, nil
}

// probe fetches pageURL with both fetchers and picks the one whose
// markup carries the extractable content.
func (f *ProbingFetcher) probe(ctx context.Context, pageURL string) (string, pagecarve.Fetcher, error) {
	httpHTML, httpErr := f.HTTP.Fetch(ctx, pageURL)
	if httpErr != nil {
		html, err := f.Rod.Fetch(ctx, pageURL)
		if err != nil {
			return "", nil, httpErr
		}
		return html, f.Rod, nil
	}

	renderedHTML, rodErr := f.Rod.Fetch(ctx, pageURL)
	if rodErr != nil {
		return httpHTML, f.HTTP, nil
	}

	if carve.RenderingMatters(httpHTML, renderedHTML, pageURL, f.Extractor) {
		return renderedHTML, f.Rod, nil
	}

	return httpHTML, f.HTTP, nil
}

// Close closes both underlying fetchers.
func (f *ProbingFetcher) Close() error {
	httpErr := f.HTTP.Close()
	if err := f.Rod.Close(); err != nil {
		return err
	}
	return httpErr
}
