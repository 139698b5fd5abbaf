package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mabho/pagecarve"
	"github.com/mabho/pagecarve/fs"
)

// Run executes the carve command.
func (c *CarveCmd) Run(deps *Dependencies) error {
	pageURL, err := pagecarve.NormalizeURL(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagecarve.ErrorMessage(err))
		return err
	}

	scrape, err := deps.Carver.CarvePage(deps.Ctx, pageURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagecarve.ErrorMessage(err))
		return err
	}

	if err := writeScrape(deps.Stdout, scrape, c.Format, deps.Converter); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagecarve.ErrorMessage(err))
		return err
	}

	if c.Save {
		fmt.Fprintf(deps.Stderr, "Saved scrape %s\n", scrape.ID)
	}

	return nil
}

// writeScrape renders a scrape to w in the requested format. The text
// format mirrors what the web form shows; html emits raw block markup
// for piping into other tools.
func writeScrape(w io.Writer, scrape *pagecarve.Scrape, format string, conv pagecarve.Converter) error {
	switch format {
	case "html":
		for _, block := range scrape.Blocks {
			fmt.Fprintln(w, block.HTML)
		}
		return nil

	case "markdown":
		md, err := fs.FormatMarkdown(scrape, conv)
		if err != nil {
			return err
		}
		fmt.Fprint(w, md)
		return nil

	case "json":
		buf, err := json.MarshalIndent(scrape, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", buf)
		return nil
	}

	summary := pagecarve.FormatSummary(&pagecarve.Extraction{
		ContentCount: scrape.ContentCount,
		WidgetCount:  scrape.WidgetCount,
	})
	fmt.Fprintln(w, scrape.PageURL)
	fmt.Fprintf(w, "%s\n\n", summary)
	fmt.Fprintln(w, pagecarve.FormatBlocks(scrape.Blocks))
	return nil
}
