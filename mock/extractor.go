package mock

import "github.com/mabho/pagecarve"

var _ pagecarve.BlockExtractor = (*BlockExtractor)(nil)

// BlockExtractor is a mock implementation of pagecarve.BlockExtractor.
type BlockExtractor struct {
	ExtractFn func(pageHTML, pageURL string) (*pagecarve.Extraction, error)
}

func (e *BlockExtractor) Extract(pageHTML, pageURL string) (*pagecarve.Extraction, error) {
	return e.ExtractFn(pageHTML, pageURL)
}

var _ pagecarve.ContentLocator = (*ContentLocator)(nil)

// ContentLocator is a mock implementation of pagecarve.ContentLocator.
type ContentLocator struct {
	LocateFn func(html string) (*pagecarve.ContentRegion, error)
}

func (l *ContentLocator) Locate(html string) (*pagecarve.ContentRegion, error) {
	return l.LocateFn(html)
}
