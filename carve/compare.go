package carve

import "github.com/mabho/pagecarve"

// RenderingMatters compares blocks extracted from plain-HTTP HTML against
// blocks from browser-rendered HTML for the same page. Returns true when
// the rendered version carries significantly more block content (>50%),
// meaning JavaScript rendering adds material the plain fetch misses. Also
// returns true on extraction errors (assumes rendering is needed).
func RenderingMatters(httpHTML, renderedHTML, pageURL string, extractor pagecarve.BlockExtractor) bool {
	httpResult, err := extractor.Extract(httpHTML, pageURL)
	if err != nil {
		return true
	}

	renderedResult, err := extractor.Extract(renderedHTML, pageURL)
	if err != nil {
		return true
	}

	httpLen := blockLen(httpResult)
	renderedLen := blockLen(renderedResult)

	if httpLen == 0 && renderedLen > 0 {
		return true
	}

	threshold := float64(httpLen) * 1.5
	return float64(renderedLen) > threshold
}

// blockLen totals the markup length across an extraction's blocks.
func blockLen(e *pagecarve.Extraction) int {
	var n int
	for i := range e.Blocks {
		n += len(e.Blocks[i].HTML)
	}
	return n
}
