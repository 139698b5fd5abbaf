package slog

import (
	"log/slog"
	"time"

	"github.com/mabho/pagecarve"
)

// Ensure LoggingExtractor implements pagecarve.BlockExtractor.
var _ pagecarve.BlockExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a BlockExtractor with debug logging for block counts.
type LoggingExtractor struct {
	next   pagecarve.BlockExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pagecarve.BlockExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs what was carved.
func (e *LoggingExtractor) Extract(pageHTML, pageURL string) (extraction *pagecarve.Extraction, err error) {
	defer func(begin time.Time) {
		contentCount, widgetCount := 0, 0
		if extraction != nil {
			contentCount = extraction.ContentCount
			widgetCount = extraction.WidgetCount
		}
		e.logger.Info("block extraction",
			"url", pageURL,
			"content", contentCount,
			"widgets", widgetCount,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(pageHTML, pageURL)
}
