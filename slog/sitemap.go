// Package slog provides structured logging decorators for the scrape
// interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scrape"
)

// Ensure LoggingSitemapService implements scrape.SitemapService.
var _ scrape.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging.
type LoggingSitemapService struct {
	next   scrape.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next scrape.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs how many links
// survived the filter.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *scrape.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		var include, exclude int
		if filter != nil {
			include, exclude = len(filter.Include), len(filter.Exclude)
		}
		s.logger.Info("sitemap",
			"url", baseURL,
			"include", include,
			"exclude", exclude,
			"links", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
