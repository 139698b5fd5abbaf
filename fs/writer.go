// Package fs writes carved scrapes to disk.
package fs

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mabho/pagecarve"
)

// URLToDir converts a page URL to a relative export directory.
// Example: https://example.com/articles/one → articles/one
func URLToDir(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := strings.Trim(u.Path, "/")

	// Root becomes the index directory
	if path == "" {
		return "index", nil
	}

	// url.Parse keeps dot segments, so check them explicitly
	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return "", pagecarve.Errorf(pagecarve.EINVALID, "path traversal in URL %q", rawURL)
		}
	}

	return path, nil
}

// FormatMarkdown renders a scrape as a markdown document with YAML
// frontmatter. Content blocks are converted to markdown; widget blocks
// are listed with their title and source URL.
func FormatMarkdown(scrape *pagecarve.Scrape, conv pagecarve.Converter) (string, error) {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(scrape.PageURL)
	b.WriteString("\ncarved: ")
	b.WriteString(scrape.FetchedAt.Format("2006-01-02"))
	b.WriteString("\ncontent_blocks: ")
	b.WriteString(strconv.Itoa(scrape.ContentCount))
	b.WriteString("\nwidget_blocks: ")
	b.WriteString(strconv.Itoa(scrape.WidgetCount))
	b.WriteString("\n---\n")

	for _, block := range scrape.Blocks {
		b.WriteString("\n")

		if block.Kind == pagecarve.BlockWidget {
			b.WriteString("## Widget")
			if block.Title != "" {
				b.WriteString(": ")
				b.WriteString(block.Title)
			}
			b.WriteString("\n\nSource: ")
			b.WriteString(block.SourceURL)
			b.WriteString("\n")
			continue
		}

		md, err := conv.Convert(block.HTML)
		if err != nil {
			return "", err
		}
		b.WriteString(strings.TrimSpace(md))
		b.WriteString("\n")
	}

	return b.String(), nil
}

// Writer writes a scrape's blocks to a directory.
type Writer struct {
	dir  string
	conv pagecarve.Converter
}

// NewWriter creates a new Writer that writes into dir.
func NewWriter(dir string, conv pagecarve.Converter) *Writer {
	return &Writer{dir: dir, conv: conv}
}

// WriteScrape writes blocks.md and blocks.json for the scrape into the
// writer's directory, creating it if needed.
func (w *Writer) WriteScrape(scrape *pagecarve.Scrape) error {
	if err := scrape.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return err
	}

	md, err := FormatMarkdown(scrape, w.conv)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(w.dir, "blocks.md"), []byte(md), 0644); err != nil {
		return err
	}

	extraction := pagecarve.Extraction{
		Blocks:       scrape.Blocks,
		ContentCount: scrape.ContentCount,
		WidgetCount:  scrape.WidgetCount,
	}
	data, err := json.MarshalIndent(extraction, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.dir, "blocks.json"), append(data, '\n'), 0644)
}
