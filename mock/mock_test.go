package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/scrape"
	"github.com/fwojciec/scrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageService_CreatePage(t *testing.T) {
	t.Parallel()

	t.Run("delegates to CreatePageFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *scrape.Page
		s := &mock.PageService{
			CreatePageFn: func(_ context.Context, page *scrape.Page) error {
				calledWith = page
				return nil
			},
		}

		page := &scrape.Page{URL: "https://example.com/doc", Title: "Doc", Outcome: scrape.OutcomeOK}

		err := s.CreatePage(context.Background(), page)

		require.NoError(t, err)
		assert.Equal(t, page, calledWith)
	})
}

func TestSearchClient_Search(t *testing.T) {
	t.Parallel()

	t.Run("delegates to SearchFn", func(t *testing.T) {
		t.Parallel()

		c := &mock.SearchClient{
			SearchFn: func(_ context.Context, query string, opts scrape.SearchOptions) ([]scrape.SearchResult, error) {
				return []scrape.SearchResult{{Title: query, URL: opts.APIKey}}, nil
			},
		}

		results, err := c.Search(context.Background(), "golang", scrape.SearchOptions{APIKey: "key"})

		require.NoError(t, err)
		assert.Equal(t, []scrape.SearchResult{{Title: "golang", URL: "key"}}, results)
	})
}
