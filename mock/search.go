package mock

import (
	"context"

	"github.com/fwojciec/scrape"
)

var (
	_ scrape.SearchClient   = (*SearchClient)(nil)
	_ scrape.ParameterStore = (*ParameterStore)(nil)
)

// SearchClient is a mock implementation of scrape.SearchClient.
type SearchClient struct {
	SearchFn func(ctx context.Context, query string, opts scrape.SearchOptions) ([]scrape.SearchResult, error)
}

func (c *SearchClient) Search(ctx context.Context, query string, opts scrape.SearchOptions) ([]scrape.SearchResult, error) {
	return c.SearchFn(ctx, query, opts)
}

// ParameterStore is a mock implementation of scrape.ParameterStore.
type ParameterStore struct {
	GetParameterFn func(ctx context.Context, name string) (string, error)
}

func (s *ParameterStore) GetParameter(ctx context.Context, name string) (string, error) {
	return s.GetParameterFn(ctx, name)
}
