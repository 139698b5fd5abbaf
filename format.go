package pagecarve

import (
	"fmt"
	"strings"
)

// FormatBlocks formats extracted blocks for display.
// Widget blocks show their resolved title and source URL when present.
// Blocks are separated by blank lines.
func FormatBlocks(blocks []Block) string {
	if len(blocks) == 0 {
		return ""
	}

	parts := make([]string, 0, len(blocks))
	for i, block := range blocks {
		header := fmt.Sprintf("## Block %d: %s", i+1, block.Kind)
		if block.Kind == BlockWidget && block.Title != "" {
			header += " (" + block.Title + ")"
		}

		lines := []string{header}
		if block.SourceURL != "" {
			lines = append(lines, "Source: "+block.SourceURL)
		}
		lines = append(lines, block.HTML)
		parts = append(parts, strings.Join(lines, "\n"))
	}

	return strings.Join(parts, "\n\n")
}

// FormatSummary formats the extraction counts as a sentence.
func FormatSummary(e *Extraction) string {
	return fmt.Sprintf("Found %d content blocks and %d widget blocks.", e.ContentCount, e.WidgetCount)
}
