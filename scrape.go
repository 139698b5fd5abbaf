package pagecarve

import (
	"context"
	"time"
)

// Scrape represents one carved page: the extraction outcome plus the
// parameters it was produced with.
type Scrape struct {
	ID           string    `json:"id"`
	PageURL      string    `json:"pageUrl"`
	Selector     string    `json:"selector"`
	ContentCount int       `json:"contentCount"`
	WidgetCount  int       `json:"widgetCount"`
	ContentHash  string    `json:"contentHash"`
	FetchedAt    time.Time `json:"fetchedAt"`

	// Blocks holds the extracted blocks in document order.
	// FindScrapes leaves it empty; FindScrapeByID loads it.
	Blocks []Block `json:"blocks,omitempty"`
}

// Validate returns an error if the scrape contains invalid fields.
func (s *Scrape) Validate() error {
	if s.PageURL == "" {
		return Errorf(EINVALID, "scrape page URL required")
	}
	for i := range s.Blocks {
		if err := s.Blocks[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ScrapeService represents a service for managing stored scrapes.
type ScrapeService interface {
	// CreateScrape persists a scrape and its blocks.
	CreateScrape(ctx context.Context, scrape *Scrape) error

	// FindScrapeByID retrieves a scrape with its blocks.
	// Returns ENOTFOUND if the scrape does not exist.
	FindScrapeByID(ctx context.Context, id string) (*Scrape, error)

	// FindScrapes retrieves scrapes matching the filter, newest first,
	// without their blocks.
	FindScrapes(ctx context.Context, filter ScrapeFilter) ([]*Scrape, error)

	// DeleteScrape permanently removes a scrape and its blocks.
	// Returns ENOTFOUND if the scrape does not exist.
	DeleteScrape(ctx context.Context, id string) error
}

// ScrapeFilter represents a filter for FindScrapes.
type ScrapeFilter struct {
	ID      *string `json:"id"`
	PageURL *string `json:"pageUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
