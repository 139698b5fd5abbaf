package pagecarve

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be block markup produced by extraction.
	// Returns the Markdown representation of the content.
	Convert(html string) (string, error)
}
