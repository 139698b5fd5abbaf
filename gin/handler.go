package gin

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mabho/pagecarve"
)

// page is the single form page. Template execution escapes block markup
// and the page source, so both render as visible HTML inside <pre>.
const page = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8"/>
  <title>Page Carver</title>
  <style>
    body { font-family: system-ui, -apple-system, "Segoe UI", Roboto; padding: 20px; max-width: 1000px; margin: auto; }
    form { margin-bottom: 1rem; display: flex; gap: 8px; align-items: center; }
    input[type="text"] { flex: 1; padding: 8px; font-size: 1rem; }
    button { padding: 8px 12px; font-size: 1rem; }
    pre { background: #f6f8fa; border: 1px solid #e1e4e8; padding: 12px; overflow: auto; white-space: pre-wrap; }
    .summary { margin-bottom: 1rem; color: #333; }
    .error { color: #a00; }
  </style>
</head>
<body>
  <h1>Page Carver</h1>
  <form method="post" action="/">
    <input id="url" name="url" type="text" placeholder="https://example.com" value="{{ .URLValue }}" required />
    <button type="submit">Carve</button>
  </form>

  {{ if .Error }}
  <p class="error"><strong>Error:</strong> {{ .Error }}</p>
  {{ end }}

  {{ if .Scrape }}
  <div class="summary">
    <strong>Summary:</strong> {{ .Scrape.ContentCount }} content blocks, {{ .Scrape.WidgetCount }} widget blocks
  </div>
  <h2>Extracted content blocks</h2>
  {{ range .Scrape.Blocks }}
  <pre>{{ .HTML }}</pre>
  {{ end }}
  {{ end }}

  {{ if .Source }}
  <h2>Full HTML source</h2>
  <pre>{{ .Source }}</pre>
  {{ end }}
</body>
</html>
`

var pageTemplate = template.Must(template.New("index").Parse(page))

// pageData carries the state rendered into the form page.
type pageData struct {
	URLValue string
	Error    string
	Scrape   *pagecarve.Scrape
	Source   string
}

// handleIndex renders the empty form.
func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index", pageData{})
}

// handleCarve fetches and carves the submitted URL. Failures render
// back into the form page rather than an error status, so the user can
// correct the URL and resubmit.
func (s *Server) handleCarve(c *gin.Context) {
	data := pageData{URLValue: c.PostForm("url")}

	normalized, err := pagecarve.NormalizeURL(data.URLValue)
	if err != nil {
		data.Error = "The URL looks invalid. Include hostname and scheme."
		c.HTML(http.StatusOK, "index", data)
		return
	}
	data.URLValue = normalized

	ctx := c.Request.Context()

	html, err := s.carver.Fetcher.Fetch(ctx, normalized)
	if err != nil {
		data.Error = "Request failed: " + err.Error()
		c.HTML(http.StatusOK, "index", data)
		return
	}
	data.Source = html

	scrape, err := s.carver.CarveFetched(ctx, normalized, html)
	if err != nil {
		data.Error = pagecarve.ErrorMessage(err)
		c.HTML(http.StatusOK, "index", data)
		return
	}

	data.Scrape = scrape
	c.HTML(http.StatusOK, "index", data)
}
