// Package trafilatura locates the main content region of a page with
// go-trafilatura's boilerplate removal.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/mabho/pagecarve"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Locator implements pagecarve.ContentLocator at compile time.
var _ pagecarve.ContentLocator = (*Locator)(nil)

// Locator wraps go-trafilatura to find the main content of an HTML page.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &pagecarve.ContentRegion{
		Title: result.Metadata.Title,
		HTML:  contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
