package main

import (
	"fmt"
	"io"
	"regexp"

	"github.com/mabho/pagecarve"
	"github.com/mabho/pagecarve/carve"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	siteURL, err := pagecarve.NormalizeURL(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagecarve.ErrorMessage(err))
		return err
	}

	if c.Follow {
		result, err := deps.Carver.FollowCarve(deps.Ctx, siteURL, c.Limit, progressPrinter(deps.Stderr))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error carving: %v\n", err)
			return err
		}
		printResult(deps.Stdout, result)
		return nil
	}

	// Compile filters to URLFilter (validates regex patterns early)
	var urlFilter *pagecarve.URLFilter
	if len(c.Filter) > 0 {
		urlFilter = &pagecarve.URLFilter{}
		for _, pattern := range c.Filter {
			re, err := regexp.Compile(pattern)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: invalid filter pattern %q: %v\n", pattern, err)
				return err
			}
			urlFilter.Include = append(urlFilter.Include, re)
		}
	}

	urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, siteURL, urlFilter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagecarve.ErrorMessage(err))
		return err
	}

	result, err := deps.Carver.CarveAll(deps.Ctx, urls, progressPrinter(deps.Stderr))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error carving: %v\n", err)
		return err
	}

	printResult(deps.Stdout, result)
	return nil
}

// progressPrinter writes carve progress to w. Completions overwrite a
// single line so failures stay visible in the scrollback.
func progressPrinter(w io.Writer) carve.ProgressFunc {
	var count int
	return func(event carve.ProgressEvent) {
		switch event.Type {
		case carve.ProgressStarted:
			fmt.Fprintf(w, "Found %d URLs\n", event.Total)
		case carve.ProgressCompleted:
			if event.Total > 0 {
				fmt.Fprintf(w, "\r[%d/%d] %s", event.Completed, event.Total, carve.TruncateURL(event.URL, 40))
			} else {
				count++
				fmt.Fprintf(w, "\r[%d] %s", count, carve.TruncateURL(event.URL, 40))
			}
		case carve.ProgressFailed:
			fmt.Fprintf(w, "\r%80s\r", "")
			fmt.Fprintf(w, "skip %s: %v\n", event.URL, event.Error)
		case carve.ProgressFinished:
			fmt.Fprintf(w, "\r%80s\r", "")
		}
	}
}

// printResult writes the batch summary line.
func printResult(w io.Writer, result *carve.Result) {
	fmt.Fprintf(w, "Carved %d pages, %d failed (%d blocks, %d widgets, %s)\n",
		result.Carved, result.Failed, result.Blocks, result.Widgets, carve.FormatBytes(result.Bytes))
}
