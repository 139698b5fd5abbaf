package pagecarve

// ContentRegion holds a located content region of an HTML page.
type ContentRegion struct {
	// Title is the page title extracted from metadata.
	Title string

	// HTML is the region's markup with surrounding boilerplate
	// (nav, footer, sidebar, ads) removed.
	HTML string
}

// ContentLocator finds the main content region of an HTML page.
// It backs extraction when no CSS selector matches the page.
type ContentLocator interface {
	// Locate processes raw page HTML and returns the main content region.
	Locate(html string) (*ContentRegion, error)
}
