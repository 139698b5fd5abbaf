package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mabho/pagecarve"
	"github.com/mabho/pagecarve/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScrape(pageURL string) *pagecarve.Scrape {
	return &pagecarve.Scrape{
		PageURL:      pageURL,
		Selector:     ".ResponsivePage-content",
		ContentCount: 1,
		WidgetCount:  1,
		ContentHash:  "deadbeef",
		Blocks: []pagecarve.Block{
			{Kind: pagecarve.BlockContent, HTML: "<p>First paragraph</p>"},
			{
				Kind:      pagecarve.BlockWidget,
				HTML:      `<iframe src="https://example.com/embed/1"></iframe><script src="https://example.com/embed/1.js"></script>`,
				Title:     "Daily Poll",
				SourceURL: "https://example.com/embed/1",
			},
		},
	}
}

func TestScrapeService_CreateScrape(t *testing.T) {
	t.Parallel()

	t.Run("creates scrape with generated ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScrapeService(db)
		ctx := context.Background()

		scrape := testScrape("https://example.com/articles/one")

		err := svc.CreateScrape(ctx, scrape)
		require.NoError(t, err)

		assert.NotEmpty(t, scrape.ID, "ID should be generated")
		assert.False(t, scrape.FetchedAt.IsZero(), "FetchedAt should be set")
	})

	t.Run("preserves a caller-provided fetched time", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScrapeService(db)
		ctx := context.Background()

		fetchedAt := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)
		scrape := testScrape("https://example.com/articles/one")
		scrape.FetchedAt = fetchedAt

		require.NoError(t, svc.CreateScrape(ctx, scrape))

		found, err := svc.FindScrapeByID(ctx, scrape.ID)
		require.NoError(t, err)
		assert.True(t, found.FetchedAt.Equal(fetchedAt))
	})

	t.Run("returns EINVALID for a scrape without a page URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScrapeService(db)
		ctx := context.Background()

		err := svc.CreateScrape(ctx, &pagecarve.Scrape{})
		require.Error(t, err)
		assert.Equal(t, pagecarve.EINVALID, pagecarve.ErrorCode(err))
	})

	t.Run("returns EINVALID for a block without markup", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScrapeService(db)
		ctx := context.Background()

		scrape := &pagecarve.Scrape{
			PageURL: "https://example.com/articles/one",
			Blocks:  []pagecarve.Block{{Kind: pagecarve.BlockContent}},
		}

		err := svc.CreateScrape(ctx, scrape)
		require.Error(t, err)
		assert.Equal(t, pagecarve.EINVALID, pagecarve.ErrorCode(err))
	})
}

func TestScrapeService_FindScrapeByID(t *testing.T) {
	t.Parallel()

	t.Run("returns scrape with blocks in position order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScrapeService(db)
		ctx := context.Background()

		scrape := testScrape("https://example.com/articles/one")
		require.NoError(t, svc.CreateScrape(ctx, scrape))

		found, err := svc.FindScrapeByID(ctx, scrape.ID)
		require.NoError(t, err)

		assert.Equal(t, scrape.ID, found.ID)
		assert.Equal(t, "https://example.com/articles/one", found.PageURL)
		assert.Equal(t, ".ResponsivePage-content", found.Selector)
		assert.Equal(t, 1, found.ContentCount)
		assert.Equal(t, 1, found.WidgetCount)
		assert.Equal(t, "deadbeef", found.ContentHash)

		require.Len(t, found.Blocks, 2)
		assert.Equal(t, pagecarve.BlockContent, found.Blocks[0].Kind)
		assert.Equal(t, "<p>First paragraph</p>", found.Blocks[0].HTML)
		assert.Equal(t, pagecarve.BlockWidget, found.Blocks[1].Kind)
		assert.Equal(t, "Daily Poll", found.Blocks[1].Title)
		assert.Equal(t, "https://example.com/embed/1", found.Blocks[1].SourceURL)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScrapeService(db)
		ctx := context.Background()

		_, err := svc.FindScrapeByID(ctx, "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, pagecarve.ENOTFOUND, pagecarve.ErrorCode(err))
	})
}

func TestScrapeService_FindScrapes(t *testing.T) {
	t.Parallel()

	t.Run("returns all scrapes without blocks", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScrapeService(db)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			scrape := testScrape(fmt.Sprintf("https://example.com/articles/%d", i+1))
			require.NoError(t, svc.CreateScrape(ctx, scrape))
		}

		scrapes, err := svc.FindScrapes(ctx, pagecarve.ScrapeFilter{})
		require.NoError(t, err)
		require.Len(t, scrapes, 3)
		for _, s := range scrapes {
			assert.Empty(t, s.Blocks, "list results should not carry blocks")
		}
	})

	t.Run("filters by page URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScrapeService(db)
		ctx := context.Background()

		url := "https://example.com/articles/unique"
		require.NoError(t, svc.CreateScrape(ctx, testScrape(url)))
		require.NoError(t, svc.CreateScrape(ctx, testScrape("https://example.com/articles/other")))

		scrapes, err := svc.FindScrapes(ctx, pagecarve.ScrapeFilter{PageURL: &url})
		require.NoError(t, err)
		require.Len(t, scrapes, 1)
		assert.Equal(t, url, scrapes[0].PageURL)
	})

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScrapeService(db)
		ctx := context.Background()

		older := testScrape("https://example.com/articles/older")
		older.FetchedAt = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
		require.NoError(t, svc.CreateScrape(ctx, older))

		newer := testScrape("https://example.com/articles/newer")
		newer.FetchedAt = time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)
		require.NoError(t, svc.CreateScrape(ctx, newer))

		scrapes, err := svc.FindScrapes(ctx, pagecarve.ScrapeFilter{})
		require.NoError(t, err)
		require.Len(t, scrapes, 2)
		assert.Equal(t, "https://example.com/articles/newer", scrapes[0].PageURL)
		assert.Equal(t, "https://example.com/articles/older", scrapes[1].PageURL)
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScrapeService(db)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			scrape := testScrape(fmt.Sprintf("https://example.com/articles/%d", i+1))
			require.NoError(t, svc.CreateScrape(ctx, scrape))
		}

		scrapes, err := svc.FindScrapes(ctx, pagecarve.ScrapeFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, scrapes, 2)
	})
}

func TestScrapeService_DeleteScrape(t *testing.T) {
	t.Parallel()

	t.Run("deletes scrape and its blocks", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScrapeService(db)
		ctx := context.Background()

		scrape := testScrape("https://example.com/articles/one")
		require.NoError(t, svc.CreateScrape(ctx, scrape))

		err := svc.DeleteScrape(ctx, scrape.ID)
		require.NoError(t, err)

		_, err = svc.FindScrapeByID(ctx, scrape.ID)
		assert.Equal(t, pagecarve.ENOTFOUND, pagecarve.ErrorCode(err))

		// Cascade should have removed the blocks too
		var blockCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM blocks WHERE scrape_id = ?", scrape.ID).Scan(&blockCount)
		require.NoError(t, err)
		assert.Equal(t, 0, blockCount)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScrapeService(db)
		ctx := context.Background()

		err := svc.DeleteScrape(ctx, "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, pagecarve.ENOTFOUND, pagecarve.ErrorCode(err))
	})
}
