package main

import (
	"fmt"

	"github.com/mabho/pagecarve"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := pagecarve.ScrapeFilter{Limit: c.Limit}
	if c.URL != "" {
		pageURL, err := pagecarve.NormalizeURL(c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagecarve.ErrorMessage(err))
			return err
		}
		filter.PageURL = &pageURL
	}

	scrapes, err := deps.Scrapes.FindScrapes(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagecarve.ErrorMessage(err))
		return err
	}

	if len(scrapes) == 0 {
		fmt.Fprintln(deps.Stdout, "No scrapes found. Use 'pagecarve carve <url> --save' to create one.")
		return nil
	}

	for _, s := range scrapes {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d content, %d widgets\n",
			s.ID, s.FetchedAt.Format("2006-01-02 15:04"), s.PageURL, s.ContentCount, s.WidgetCount)
	}

	return nil
}
