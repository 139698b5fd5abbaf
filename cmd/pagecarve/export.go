package main

import (
	"fmt"
	"path/filepath"

	"github.com/mabho/pagecarve"
	"github.com/mabho/pagecarve/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	if c.ID == "" && !c.All {
		fmt.Fprintf(deps.Stderr, "error: provide a scrape ID or use --all\n")
		return pagecarve.Errorf(pagecarve.EINVALID, "provide a scrape ID or use --all")
	}

	ids := []string{c.ID}
	if c.All {
		scrapes, err := deps.Scrapes.FindScrapes(deps.Ctx, pagecarve.ScrapeFilter{})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagecarve.ErrorMessage(err))
			return err
		}
		if len(scrapes) == 0 {
			fmt.Fprintln(deps.Stdout, "No scrapes found. Use 'pagecarve carve <url> --save' to create one.")
			return nil
		}
		ids = ids[:0]
		for _, s := range scrapes {
			ids = append(ids, s.ID)
		}
	}

	store := fs.NewExportStore(filepath.Dir(c.Dir), filepath.Base(c.Dir), deps.Converter)

	for _, id := range ids {
		scrape, err := deps.Scrapes.FindScrapeByID(deps.Ctx, id)
		if err != nil {
			_ = store.Abort()
			if pagecarve.ErrorCode(err) == pagecarve.ENOTFOUND {
				fmt.Fprintf(deps.Stderr, "error: scrape %q not found. Use 'pagecarve list' to see stored scrapes.\n", id)
				return err
			}
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagecarve.ErrorMessage(err))
			return err
		}

		if err := store.Save(scrape); err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagecarve.ErrorMessage(err))
			return err
		}
	}

	if err := store.Commit(); err != nil {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagecarve.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d scrapes to %s\n", len(ids), c.Dir)
	return nil
}
