package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scrape"
)

// Ensure LoggingFetcher implements scrape.Fetcher.
var _ scrape.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and logs each request.
type LoggingFetcher struct {
	next   scrape.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next scrape.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the response size and status.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (res *scrape.FetchResult, err error) {
	defer func(begin time.Time) {
		var status, size int
		var charset string
		if res != nil {
			status, size, charset = res.StatusCode, len(res.Body), res.Charset
		}
		f.logger.Info("fetch",
			"url", url,
			"status", status,
			"bytes", size,
			"charset", charset,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
