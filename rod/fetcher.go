// Package rod provides a Fetcher that renders pages in headless Chrome,
// for sites that assemble their content or embeds with JavaScript.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/mabho/pagecarve"
)

// DefaultFetchTimeout bounds a single rendered fetch. Rendering is much
// slower than a plain HTTP fetch, so the default is generous.
const DefaultFetchTimeout = 30 * time.Second

// serializeJS returns the rendered document as a string, descending into
// open shadow roots so web-component embeds survive serialization.
// Chrome's outerHTML skips shadow content; getHTML with an explicit root
// list includes it. Falls back to outerHTML on older Chrome.
const serializeJS = `() => {
	const collectRoots = (root, acc) => {
		for (const el of root.querySelectorAll('*')) {
			if (el.shadowRoot) {
				acc.push(el.shadowRoot);
				collectRoots(el.shadowRoot, acc);
			}
		}
		return acc;
	};
	const doc = document.documentElement;
	if (doc.getHTML) {
		return '<!DOCTYPE html>\n' + doc.getHTML({shadowRoots: collectRoots(document, [])});
	}
	return '<!DOCTYPE html>\n' + doc.outerHTML;
}`

// Ensure Fetcher implements pagecarve.Fetcher at compile time.
var _ pagecarve.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// The underlying browser is recycled periodically to keep long walks from
// accumulating memory. Fetcher is safe for concurrent use by multiple
// goroutines.
type Fetcher struct {
	manager  *BrowserManager
	timeout  time.Duration
	maxPages int64
	closed   atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each Fetch call. Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithPagesPerBrowser sets how many pages are rendered before the browser
// is recycled. Defaults to DefaultMaxPages.
func WithPagesPerBrowser(n int64) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher creates a new Fetcher backed by a managed headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(WithMaxPages(f.maxPages))
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML, including the
// content of any open shadow roots.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", pagecarve.Errorf(pagecarve.EINVALID, "fetcher is closed")
	}

	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	// Create a new page on the current browser
	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	// Navigate to URL
	if err := page.Navigate(url); err != nil {
		return "", err
	}

	// Wait for page to load
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	// Serialize the rendered document
	obj, err := page.Eval(serializeJS)
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return obj.Value.Str(), nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
