package gin_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/mabho/pagecarve"
	"github.com/mabho/pagecarve/carve"
	pagecarvegin "github.com/mabho/pagecarve/gin"
	"github.com/mabho/pagecarve/goquery"
	"github.com/mabho/pagecarve/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// articlePage wraps blocks in the content region the default selector
// targets.
const articlePage = `<html><body>
<nav><a href="/">Home</a></nav>
<div class="ResponsivePage-content">
  <p>First paragraph.</p>
  <p>Second paragraph.</p>
  <iframe src="https://polls.example.com/embed/1"></iframe>
  <script src="https://polls.example.com/embed.js"></script>
</div>
<footer>Copyright</footer>
</body></html>`

func newTestServer(t *testing.T, fetcher pagecarve.Fetcher) *pagecarvegin.Server {
	t.Helper()

	extractor, err := goquery.NewExtractor()
	require.NoError(t, err)

	carver := &carve.Carver{
		Fetcher:     fetcher,
		Extractor:   extractor,
		RetryDelays: []time.Duration{0},
	}

	return pagecarvegin.NewServer(pagecarvegin.Config{}, carver, nil)
}

func postForm(t *testing.T, srv *pagecarvegin.Server, rawURL string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{"url": {rawURL}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestServer_Index(t *testing.T) {
	srv := newTestServer(t, &mock.Fetcher{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<h1>Page Carver</h1>")
	assert.Contains(t, body, `name="url"`)
	assert.NotContains(t, body, "Summary:")
	assert.NotContains(t, body, "Error:")
}

func TestServer_Carve(t *testing.T) {
	t.Run("renders blocks and summary for a carved page", func(t *testing.T) {
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return articlePage, nil
			},
		}

		w := postForm(t, newTestServer(t, fetcher), "https://example.com/news")

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()

		assert.Contains(t, body, "2 content blocks, 1 widget blocks")
		assert.Contains(t, body, "Extracted content blocks")
		// Block markup renders escaped so it shows as text, not markup.
		assert.Contains(t, body, "&lt;p&gt;First paragraph.&lt;/p&gt;")
		assert.Contains(t, body, "&lt;iframe")
		assert.NotContains(t, body, "Error:")
	})

	t.Run("shows the full escaped page source", func(t *testing.T) {
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return articlePage, nil
			},
		}

		w := postForm(t, newTestServer(t, fetcher), "https://example.com/news")

		body := w.Body.String()
		assert.Contains(t, body, "Full HTML source")
		assert.Contains(t, body, "&lt;nav&gt;")
		assert.Contains(t, body, "&lt;footer&gt;")
	})

	t.Run("normalizes the submitted URL before fetching", func(t *testing.T) {
		var fetchedURL string
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				fetchedURL = url
				return articlePage, nil
			},
		}

		w := postForm(t, newTestServer(t, fetcher), "  example.com/news  ")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://example.com/news", fetchedURL)
		// The form redisplays the normalized URL.
		assert.Contains(t, w.Body.String(), `value="https://example.com/news"`)
	})

	t.Run("rejects an invalid URL without fetching", func(t *testing.T) {
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				t.Error("Fetch should not be called for an invalid URL")
				return "", nil
			},
		}

		w := postForm(t, newTestServer(t, fetcher), "   ")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "The URL looks invalid. Include hostname and scheme.")
	})

	t.Run("reports fetch failures in the error line", func(t *testing.T) {
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", pagecarve.Errorf(pagecarve.EUNAVAILABLE, "HTTP 503 for https://example.com/news")
			},
		}

		w := postForm(t, newTestServer(t, fetcher), "https://example.com/news")

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Request failed:")
		assert.NotContains(t, body, "Summary:")
	})

	t.Run("reports a missing content region", func(t *testing.T) {
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html><body><p>No content region here.</p></body></html>", nil
			},
		}

		w := postForm(t, newTestServer(t, fetcher), "https://example.com/news")

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "no element matches selector")
		// The fetched source still shows so the user can inspect it.
		assert.Contains(t, body, "Full HTML source")
	})

	t.Run("persists the scrape when a scrape service is configured", func(t *testing.T) {
		var saved *pagecarve.Scrape
		scrapes := &mock.ScrapeService{
			CreateScrapeFn: func(_ context.Context, scrape *pagecarve.Scrape) error {
				scrape.ID = "scrape-1"
				saved = scrape
				return nil
			},
		}

		extractor, err := goquery.NewExtractor()
		require.NoError(t, err)

		carver := &carve.Carver{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return articlePage, nil
				},
			},
			Extractor:   extractor,
			Scrapes:     scrapes,
			RetryDelays: []time.Duration{0},
		}
		srv := pagecarvegin.NewServer(pagecarvegin.Config{}, carver, nil)

		w := postForm(t, srv, "https://example.com/news")

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, saved)
		assert.Equal(t, "https://example.com/news", saved.PageURL)
		assert.Equal(t, 2, saved.ContentCount)
		assert.Equal(t, 1, saved.WidgetCount)
	})
}

func TestConfig_SetDefaults(t *testing.T) {
	var cfg pagecarvegin.Config
	cfg.SetDefaults()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.NotZero(t, cfg.ReadTimeout)
	assert.NotZero(t, cfg.WriteTimeout)
	assert.NotZero(t, cfg.IdleTimeout)
}

func TestServer_RunStopsOnContextCancel(t *testing.T) {
	carver := &carve.Carver{Fetcher: &mock.Fetcher{}}
	srv := pagecarvegin.NewServer(pagecarvegin.Config{Addr: "127.0.0.1:0"}, carver, nil)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	// Give the listener a moment to start, then trigger shutdown.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancellation")
	}
}
