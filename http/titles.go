package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mabho/pagecarve"
)

// Ensure TitleResolver implements pagecarve.TitleResolver at compile time.
var _ pagecarve.TitleResolver = (*TitleResolver)(nil)

// TitleResolver resolves widget titles by fetching the embedded
// document and scanning it for a heading. Heading tags are tried in
// priority order; the first one with visible text wins.
type TitleResolver struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	headings  []string
}

// TitleOption configures a TitleResolver.
type TitleOption func(*TitleResolver)

// WithTitleTimeout sets the timeout for title fetches.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTitleTimeout(d time.Duration) TitleOption {
	return func(r *TitleResolver) {
		r.timeout = d
	}
}

// WithTitleHeadings overrides the heading tags scanned for a title,
// in priority order.
func WithTitleHeadings(tags []string) TitleOption {
	return func(r *TitleResolver) {
		r.headings = tags
	}
}

// WithTitleUserAgent overrides the User-Agent header sent with title fetches.
func WithTitleUserAgent(ua string) TitleOption {
	return func(r *TitleResolver) {
		r.userAgent = ua
	}
}

// NewTitleResolver creates an HTTP-based TitleResolver.
func NewTitleResolver(opts ...TitleOption) *TitleResolver {
	r := &TitleResolver{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		headings:  pagecarve.DefaultRules().TitleHeadings,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.client = &http.Client{
		Timeout: r.timeout,
	}

	return r
}

// ResolveTitle fetches the document at url and returns the
// whitespace-normalized text of its highest-ranked heading.
// Returns EUNAVAILABLE on transport or status failures and ENOTFOUND
// when the document has no heading with visible text.
func (r *TitleResolver) ResolveTitle(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", pagecarve.Errorf(pagecarve.EINVALID, "invalid widget URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", pagecarve.Errorf(pagecarve.EUNAVAILABLE, "fetch widget document: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", pagecarve.Errorf(pagecarve.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", pagecarve.Errorf(pagecarve.EINTERNAL, "parse widget document: %v", err)
	}

	for _, tag := range r.headings {
		heading := doc.Find(tag).First()
		if heading.Length() == 0 {
			continue
		}
		if title := strings.Join(strings.Fields(heading.Text()), " "); title != "" {
			return title, nil
		}
	}

	return "", pagecarve.Errorf(pagecarve.ENOTFOUND, "no heading found at %s", url)
}
