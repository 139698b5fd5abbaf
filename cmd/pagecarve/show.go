package main

import (
	"fmt"

	"github.com/mabho/pagecarve"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	scrape, err := deps.Scrapes.FindScrapeByID(deps.Ctx, c.ID)
	if err != nil {
		if pagecarve.ErrorCode(err) == pagecarve.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: scrape %q not found. Use 'pagecarve list' to see stored scrapes.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagecarve.ErrorMessage(err))
		return err
	}

	if err := writeScrape(deps.Stdout, scrape, c.Format, deps.Converter); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagecarve.ErrorMessage(err))
		return err
	}

	return nil
}
