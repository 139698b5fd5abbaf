package mock

import (
	"context"

	"github.com/mabho/pagecarve"
)

var _ pagecarve.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of pagecarve.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *pagecarve.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *pagecarve.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
