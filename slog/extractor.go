package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/scrape"
)

// Ensure LoggingExtractor implements scrape.Extractor.
var _ scrape.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   scrape.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next scrape.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the block count.
func (e *LoggingExtractor) Extract(res *scrape.FetchResult) (out *scrape.ExtractResult, err error) {
	defer func(begin time.Time) {
		var url string
		if res != nil {
			url = res.URL
		}
		var title string
		var blocks, size int
		if out != nil {
			title, blocks, size = out.Title, len(out.Blocks), len(out.Content)
		}
		e.logger.Debug("extract",
			"url", url,
			"title", title,
			"blocks", blocks,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(res)
}
