package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mabho/pagecarve"
)

// Compile-time interface verification.
var _ pagecarve.ScrapeService = (*ScrapeService)(nil)

// ScrapeService implements pagecarve.ScrapeService using SQLite.
type ScrapeService struct {
	db *DB
}

// NewScrapeService creates a new ScrapeService.
func NewScrapeService(db *DB) *ScrapeService {
	return &ScrapeService{db: db}
}

// CreateScrape persists a scrape and its blocks in one transaction.
// A new ID is generated; FetchedAt is set to now when unset.
func (s *ScrapeService) CreateScrape(ctx context.Context, scrape *pagecarve.Scrape) error {
	if err := scrape.Validate(); err != nil {
		return err
	}

	scrape.ID = uuid.New().String()
	if scrape.FetchedAt.IsZero() {
		scrape.FetchedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO scrapes (id, page_url, selector, content_count, widget_count, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, scrape.ID, scrape.PageURL, scrape.Selector, scrape.ContentCount, scrape.WidgetCount,
		scrape.ContentHash, scrape.FetchedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO blocks (scrape_id, position, kind, html, title, source_url)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range scrape.Blocks {
		block := &scrape.Blocks[i]
		if _, err := stmt.ExecContext(ctx, scrape.ID, i, string(block.Kind),
			block.HTML, block.Title, block.SourceURL); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindScrapeByID retrieves a scrape and its blocks ordered by position.
func (s *ScrapeService) FindScrapeByID(ctx context.Context, id string) (*pagecarve.Scrape, error) {
	var scrape pagecarve.Scrape
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, page_url, selector, content_count, widget_count, content_hash, fetched_at
		FROM scrapes
		WHERE id = ?
	`, id).Scan(&scrape.ID, &scrape.PageURL, &scrape.Selector, &scrape.ContentCount,
		&scrape.WidgetCount, &scrape.ContentHash, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, pagecarve.Errorf(pagecarve.ENOTFOUND, "scrape not found")
	}
	if err != nil {
		return nil, err
	}

	scrape.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	blocks, err := s.findBlocks(ctx, id)
	if err != nil {
		return nil, err
	}
	scrape.Blocks = blocks

	return &scrape, nil
}

// findBlocks loads a scrape's blocks ordered by position.
func (s *ScrapeService) findBlocks(ctx context.Context, scrapeID string) ([]pagecarve.Block, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, html, title, source_url
		FROM blocks
		WHERE scrape_id = ?
		ORDER BY position ASC
	`, scrapeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []pagecarve.Block
	for rows.Next() {
		var block pagecarve.Block
		var kind string
		if err := rows.Scan(&kind, &block.HTML, &block.Title, &block.SourceURL); err != nil {
			return nil, err
		}
		block.Kind = pagecarve.BlockKind(kind)
		blocks = append(blocks, block)
	}

	return blocks, rows.Err()
}

// FindScrapes retrieves scrapes matching the filter, newest first.
// Blocks are not loaded; use FindScrapeByID for the full scrape.
func (s *ScrapeService) FindScrapes(ctx context.Context, filter pagecarve.ScrapeFilter) ([]*pagecarve.Scrape, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, page_url, selector, content_count, widget_count, content_hash, fetched_at FROM scrapes WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.PageURL != nil {
		query.WriteString(" AND page_url = ?")
		args = append(args, *filter.PageURL)
	}

	query.WriteString(" ORDER BY fetched_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scrapes []*pagecarve.Scrape
	for rows.Next() {
		var scrape pagecarve.Scrape
		var fetchedAt string

		if err := rows.Scan(&scrape.ID, &scrape.PageURL, &scrape.Selector, &scrape.ContentCount,
			&scrape.WidgetCount, &scrape.ContentHash, &fetchedAt); err != nil {
			return nil, err
		}

		scrape.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}

		scrapes = append(scrapes, &scrape)
	}

	return scrapes, rows.Err()
}

// DeleteScrape permanently removes a scrape; its blocks go with it.
func (s *ScrapeService) DeleteScrape(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM scrapes WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return pagecarve.Errorf(pagecarve.ENOTFOUND, "scrape not found")
	}

	return nil
}
