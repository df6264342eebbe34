package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scrape"
)

// Compile-time interface verification.
var (
	_ scrape.SearchClient   = (*LoggingSearchClient)(nil)
	_ scrape.ParameterStore = (*LoggingParameterStore)(nil)
)

// LoggingSearchClient wraps a SearchClient with logging. The API key is
// never logged.
type LoggingSearchClient struct {
	next   scrape.SearchClient
	logger *slog.Logger
}

// NewLoggingSearchClient creates a new LoggingSearchClient.
func NewLoggingSearchClient(next scrape.SearchClient, logger *slog.Logger) *LoggingSearchClient {
	return &LoggingSearchClient{next: next, logger: logger}
}

// Search delegates to the wrapped client and logs the result count.
func (c *LoggingSearchClient) Search(ctx context.Context, query string, opts scrape.SearchOptions) (results []scrape.SearchResult, err error) {
	defer func(begin time.Time) {
		c.logger.Info("search",
			"query", query,
			"max_results", opts.MaxResults,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Search(ctx, query, opts)
}

// LoggingParameterStore wraps a ParameterStore with logging. Values are
// never logged.
type LoggingParameterStore struct {
	next   scrape.ParameterStore
	logger *slog.Logger
}

// NewLoggingParameterStore creates a new LoggingParameterStore.
func NewLoggingParameterStore(next scrape.ParameterStore, logger *slog.Logger) *LoggingParameterStore {
	return &LoggingParameterStore{next: next, logger: logger}
}

// GetParameter delegates to the wrapped store and logs the lookup.
func (s *LoggingParameterStore) GetParameter(ctx context.Context, name string) (value string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("get parameter",
			"name", name,
			"found", value != "",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.GetParameter(ctx, name)
}
