package main

import (
	"context"
	"io"
	"time"

	"github.com/mabho/pagecarve"
	"github.com/mabho/pagecarve/carve"
	"github.com/mabho/pagecarve/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Scrapes   pagecarve.ScrapeService
	Sitemaps  pagecarve.SitemapService
	Converter pagecarve.Converter
	Carver    *carve.Carver
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Carve  CarveCmd  `cmd:"" help:"Carve a page into content blocks"`
	Batch  BatchCmd  `cmd:"" help:"Carve every page of a site and store the scrapes"`
	List   ListCmd   `cmd:"" help:"List stored scrapes"`
	Show   ShowCmd   `cmd:"" help:"Show a stored scrape"`
	Delete DeleteCmd `cmd:"" help:"Delete a stored scrape"`
	Export ExportCmd `cmd:"" help:"Export stored scrapes as markdown files"`
	Serve  ServeCmd  `cmd:"" help:"Serve a web form for interactive carving"`
}

// CarveFlags holds the fetching and extraction flags shared by the
// commands that carve pages.
type CarveFlags struct {
	Selector     string        `short:"s" default:".ResponsivePage-content" help:"CSS selector of the content region"`
	Browser      string        `enum:"auto,http,rod" default:"auto" help:"Fetch with plain HTTP, a headless browser, or probe per site"`
	Locate       string        `enum:"trafilatura,readability,off" default:"trafilatura" help:"Locator used when the selector matches nothing"`
	Timeout      time.Duration `default:"10s" help:"Fetch timeout per page"`
	TitleTimeout time.Duration `default:"5s" help:"Timeout per widget title resolution"`
	UserAgent    string        `help:"Override the User-Agent header for plain HTTP fetches"`
	Concurrency  int           `short:"c" default:"10" help:"Concurrent fetch limit"`
	NoTitles     bool          `help:"Skip widget title resolution"`
}

// CarveCmd is the "carve" subcommand.
type CarveCmd struct {
	URL string `arg:"" help:"Page URL"`
	CarveFlags
	Format  string `short:"f" enum:"text,html,markdown,json" default:"text" help:"Output format"`
	Save    bool   `help:"Store the scrape in the database"`
	Verbose bool   `short:"v" help:"Log fetch and extraction detail to stderr"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URL string `arg:"" help:"Site URL: sitemap origin, or seed page with --follow"`
	CarveFlags
	Filter  []string `short:"F" name:"filter" help:"Filter sitemap URLs by regex (repeatable)"`
	Follow  bool     `help:"Follow same-site links from the seed instead of reading the sitemap"`
	Limit   int      `default:"1000" help:"Maximum pages to carve with --follow"`
	Rate    float64  `default:"1" help:"Requests per second per domain with --follow"`
	Verbose bool     `short:"v" help:"Log fetch and extraction detail to stderr"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	URL   string `help:"Show only scrapes of this page URL"`
	Limit int    `help:"Maximum scrapes to list (0 for all)"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Scrape ID"`
	Format string `short:"f" enum:"text,html,markdown,json" default:"text" help:"Output format"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Scrape ID"`
	Force bool   `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ID  string `arg:"" optional:"" help:"Scrape ID to export"`
	All bool   `help:"Export every stored scrape"`
	Dir string `default:"carved" help:"Destination directory"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	CarveFlags
	Addr  string `default:":8080" help:"Listen address"`
	Save  bool   `help:"Store each carved page in the database"`
	Debug bool   `help:"Run the web server in debug mode"`
}
