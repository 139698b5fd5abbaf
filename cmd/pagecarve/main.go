package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/mabho/pagecarve"
	"github.com/mabho/pagecarve/carve"
	"github.com/mabho/pagecarve/goquery"
	"github.com/mabho/pagecarve/htmltomarkdown"
	pagecarvehttp "github.com/mabho/pagecarve/http"
	"github.com/mabho/pagecarve/readability"
	"github.com/mabho/pagecarve/rod"
	carveslog "github.com/mabho/pagecarve/slog"
	"github.com/mabho/pagecarve/sqlite"
	"github.com/mabho/pagecarve/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Service for end-to-end testing.
	ScrapeService pagecarve.ScrapeService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagecarve"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagecarve --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open the database only for commands that read or store scrapes.
	needsDB := cmd == "list" || cmd == "show" || cmd == "delete" || cmd == "export" ||
		cmd == "batch" || (cmd == "carve" && cli.Carve.Save) || (cmd == "serve" && cli.Serve.Save)
	if needsDB {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PAGECARVE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.ScrapeService = sqlite.NewScrapeService(m.DB)
		deps.DB = m.DB
		deps.Scrapes = m.ScrapeService
	}

	deps.Converter = htmltomarkdown.NewConverter()

	var logger *slog.Logger
	if (cmd == "carve" && cli.Carve.Verbose) || (cmd == "batch" && cli.Batch.Verbose) {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Wire the carving pipeline for commands that fetch pages
	switch cmd {
	case "carve":
		if err := wireCarver(deps, &cli.Carve.CarveFlags, logger); err != nil {
			return err
		}
		defer deps.Carver.Fetcher.Close()

	case "batch":
		if err := wireCarver(deps, &cli.Batch.CarveFlags, logger); err != nil {
			return err
		}
		defer deps.Carver.Fetcher.Close()

		deps.Carver.RateLimiter = carve.NewDomainLimiter(cli.Batch.Rate)
		deps.Sitemaps = pagecarvehttp.NewSitemapService(nil)
		if logger != nil {
			deps.Sitemaps = carveslog.NewLoggingSitemapService(deps.Sitemaps, logger)
		}

	case "serve":
		if err := wireCarver(deps, &cli.Serve.CarveFlags, logger); err != nil {
			return err
		}
		defer deps.Carver.Fetcher.Close()
	}

	return kongCtx.Run(deps)
}

// wireCarver builds the fetch-and-extract pipeline shared by the carve,
// batch, and serve commands and stores it in deps.
func wireCarver(deps *Dependencies, flags *CarveFlags, logger *slog.Logger) error {
	extractorOpts := []goquery.ExtractorOption{goquery.WithSelector(flags.Selector)}
	switch flags.Locate {
	case "trafilatura":
		extractorOpts = append(extractorOpts, goquery.WithLocator(trafilatura.NewLocator()))
	case "readability":
		extractorOpts = append(extractorOpts, goquery.WithLocator(readability.NewLocator()))
	}
	extractor, err := goquery.NewExtractor(extractorOpts...)
	if err != nil {
		return err
	}

	fetcher, err := newFetcher(flags, extractor, deps.Stderr)
	if err != nil {
		return err
	}

	var titles pagecarve.TitleResolver
	if !flags.NoTitles {
		titleOpts := []pagecarvehttp.TitleOption{pagecarvehttp.WithTitleTimeout(flags.TitleTimeout)}
		if flags.UserAgent != "" {
			titleOpts = append(titleOpts, pagecarvehttp.WithTitleUserAgent(flags.UserAgent))
		}
		titles = pagecarvehttp.NewTitleResolver(titleOpts...)
	}

	carver := &carve.Carver{
		Fetcher:      fetcher,
		Extractor:    extractor,
		Titles:       titles,
		Scrapes:      deps.Scrapes,
		Selector:     flags.Selector,
		Concurrency:  flags.Concurrency,
		TitleTimeout: flags.TitleTimeout,
	}

	if logger != nil {
		carver.Fetcher = carveslog.NewLoggingFetcher(carver.Fetcher, logger)
		carver.Extractor = carveslog.NewLoggingExtractor(carver.Extractor, logger)
		if carver.Titles != nil {
			carver.Titles = carveslog.NewLoggingTitleResolver(carver.Titles, logger)
		}
	}

	deps.Carver = carver
	return nil
}

// newFetcher builds the page fetcher for the requested browser mode.
// Auto mode probes each site and degrades to plain HTTP when no
// browser is available.
func newFetcher(flags *CarveFlags, extractor pagecarve.BlockExtractor, stderr io.Writer) (pagecarve.Fetcher, error) {
	httpOpts := []pagecarvehttp.Option{pagecarvehttp.WithTimeout(flags.Timeout)}
	if flags.UserAgent != "" {
		httpOpts = append(httpOpts, pagecarvehttp.WithUserAgent(flags.UserAgent))
	}
	httpFetcher := pagecarvehttp.NewFetcher(httpOpts...)

	if flags.Browser == "http" {
		return httpFetcher, nil
	}

	rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(flags.Timeout))
	if err != nil {
		if flags.Browser == "rod" {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fmt.Fprintf(stderr, "Warning: no browser available, fetching over plain HTTP: %v\n", err)
		return httpFetcher, nil
	}

	if flags.Browser == "rod" {
		return rodFetcher, nil
	}

	return &ProbingFetcher{
		HTTP:      httpFetcher,
		Rod:       rodFetcher,
		Extractor: extractor,
	}, nil
}

func defaultDBPath() string {
	if path := os.Getenv("PAGECARVE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagecarve.db"
	}
	dir := filepath.Join(home, ".pagecarve")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pagecarve.db")
}
