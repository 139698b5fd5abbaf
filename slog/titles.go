package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mabho/pagecarve"
)

// Ensure LoggingTitleResolver implements pagecarve.TitleResolver.
var _ pagecarve.TitleResolver = (*LoggingTitleResolver)(nil)

// LoggingTitleResolver wraps a TitleResolver with debug logging.
type LoggingTitleResolver struct {
	next   pagecarve.TitleResolver
	logger *slog.Logger
}

// NewLoggingTitleResolver creates a new LoggingTitleResolver.
func NewLoggingTitleResolver(next pagecarve.TitleResolver, logger *slog.Logger) *LoggingTitleResolver {
	return &LoggingTitleResolver{next: next, logger: logger}
}

// ResolveTitle delegates to the wrapped resolver and logs the operation.
func (r *LoggingTitleResolver) ResolveTitle(ctx context.Context, url string) (title string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("title resolution",
			"url", url,
			"title", title,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ResolveTitle(ctx, url)
}
