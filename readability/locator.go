// Package readability locates the main content region of a page with
// go-readability's scoring heuristics.
package readability

import (
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/mabho/pagecarve"
)

// Ensure Locator implements pagecarve.ContentLocator at compile time.
var _ pagecarve.ContentLocator = (*Locator)(nil)

// Locator wraps go-readability to find the main content of an HTML page.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Locate processes raw page HTML and returns the main content region.
func (l *Locator) Locate(rawHTML string) (*pagecarve.ContentRegion, error) {
	if rawHTML == "" {
		return nil, pagecarve.Errorf(pagecarve.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &pagecarve.ContentRegion{
		Title: article.Title,
		HTML:  article.Content,
	}, nil
}
