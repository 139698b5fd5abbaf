package main

import (
	"fmt"

	"github.com/mabho/pagecarve"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return pagecarve.Errorf(pagecarve.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Scrapes.DeleteScrape(deps.Ctx, c.ID); err != nil {
		if pagecarve.ErrorCode(err) == pagecarve.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: scrape %q not found. Use 'pagecarve list' to see stored scrapes.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagecarve.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted scrape %q\n", c.ID)
	return nil
}
