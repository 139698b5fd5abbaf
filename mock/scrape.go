package mock

import (
	"context"

	"github.com/mabho/pagecarve"
)

var _ pagecarve.ScrapeService = (*ScrapeService)(nil)

// ScrapeService is a mock implementation of pagecarve.ScrapeService.
type ScrapeService struct {
	CreateScrapeFn   func(ctx context.Context, scrape *pagecarve.Scrape) error
	FindScrapeByIDFn func(ctx context.Context, id string) (*pagecarve.Scrape, error)
	FindScrapesFn    func(ctx context.Context, filter pagecarve.ScrapeFilter) ([]*pagecarve.Scrape, error)
	DeleteScrapeFn   func(ctx context.Context, id string) error
}

func (s *ScrapeService) CreateScrape(ctx context.Context, scrape *pagecarve.Scrape) error {
	return s.CreateScrapeFn(ctx, scrape)
}

func (s *ScrapeService) FindScrapeByID(ctx context.Context, id string) (*pagecarve.Scrape, error) {
	return s.FindScrapeByIDFn(ctx, id)
}

func (s *ScrapeService) FindScrapes(ctx context.Context, filter pagecarve.ScrapeFilter) ([]*pagecarve.Scrape, error) {
	return s.FindScrapesFn(ctx, filter)
}

func (s *ScrapeService) DeleteScrape(ctx context.Context, id string) error {
	return s.DeleteScrapeFn(ctx, id)
}
