// Package goquery implements block extraction on top of the goquery
// HTML library. It locates the content region of a page and carves it
// into content and widget blocks in document order.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mabho/pagecarve"
)

// DefaultSelector matches the content region of the pages this tool was
// originally built for.
const DefaultSelector = ".ResponsivePage-content"

// Ensure Extractor implements pagecarve.BlockExtractor at compile time.
var _ pagecarve.BlockExtractor = (*Extractor)(nil)

// Extractor carves pages into blocks. The rules, selector and fallback
// locator are fixed at construction.
type Extractor struct {
	rules    pagecarve.Rules
	selector string
	locator  pagecarve.ContentLocator
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithRules overrides the default extraction rules.
func WithRules(rules pagecarve.Rules) ExtractorOption {
	return func(e *Extractor) {
		e.rules = rules
	}
}

// WithSelector sets the CSS selector locating the content region.
func WithSelector(selector string) ExtractorOption {
	return func(e *Extractor) {
		e.selector = selector
	}
}

// WithLocator sets a fallback used when the selector matches nothing.
func WithLocator(locator pagecarve.ContentLocator) ExtractorOption {
	return func(e *Extractor) {
		e.locator = locator
	}
}

// NewExtractor creates an Extractor with the provided options.
func NewExtractor(opts ...ExtractorOption) (*Extractor, error) {
	e := &Extractor{
		rules:    pagecarve.DefaultRules(),
		selector: DefaultSelector,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.rules.Validate(); err != nil {
		return nil, err
	}
	if e.selector == "" {
		return nil, pagecarve.Errorf(pagecarve.EINVALID, "content selector required")
	}
	return e, nil
}

// Extract parses the page, locates the content region by selector, and
// carves it into blocks. When the selector matches nothing the fallback
// locator, if configured, supplies the region instead; otherwise the
// error code is ENOTFOUND.
func (e *Extractor) Extract(pageHTML, pageURL string) (*pagecarve.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, pagecarve.Errorf(pagecarve.EINVALID, "failed to parse HTML: %v", err)
	}

	sel := doc.Find(e.selector)
	if sel.Length() == 0 {
		if e.locator == nil {
			return nil, pagecarve.Errorf(pagecarve.ENOTFOUND, "no element matches selector %q", e.selector)
		}
		region, err := e.locator.Locate(pageHTML)
		if err != nil {
			return nil, pagecarve.Errorf(pagecarve.ENOTFOUND, "no element matches selector %q and no content region found", e.selector)
		}
		regionDoc, err := goquery.NewDocumentFromReader(strings.NewReader(region.HTML))
		if err != nil {
			return nil, pagecarve.Errorf(pagecarve.EINVALID, "failed to parse located region: %v", err)
		}
		sel = regionDoc.Find("body")
	}

	return e.ExtractSelection(sel.First(), pageURL)
}

// ExtractSelection carves the nodes of an existing selection. Each node
// is treated as its own content region root; blocks never merge across
// roots. The pageURL resolves relative embed sources and may be empty.
func (e *Extractor) ExtractSelection(sel *goquery.Selection, pageURL string) (*pagecarve.Extraction, error) {
	t := &traversal{rules: &e.rules}
	if pageURL != "" {
		if base, err := url.Parse(pageURL); err == nil {
			t.base = base
		}
	}

	for _, node := range sel.Nodes {
		if err := t.walk(node); err != nil {
			return nil, err
		}
		t.flush()
	}
	return t.finish(), nil
}
