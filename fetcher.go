package pagecarve

import "context"

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// TitleResolver resolves the title of an embedded document.
type TitleResolver interface {
	// ResolveTitle fetches the document at url and returns the text of
	// its highest-ranked heading. It returns an error when the fetch
	// fails or the document has no heading; callers treat any error as
	// an absent title.
	ResolveTitle(ctx context.Context, url string) (string, error)
}
