package node

import (
	"context"

	"github.com/fwojciec/scrape"
)

// SearchOutput is the value returned by SearchHandler.
type SearchOutput struct {
	Result []scrape.SearchResult `json:"result"`
}

// SearchHandler runs a keyword search for the query carried by the event.
// The API key is read from the parameter store on every call; a missing key
// aborts the node.
type SearchHandler struct {
	Client        scrape.SearchClient
	Parameters    scrape.ParameterStore
	ParameterName string
	MaxResults    int
}

// Handle resolves the API key and runs the search.
func (h *SearchHandler) Handle(ctx context.Context, ev *scrape.Event) (any, error) {
	query, err := ev.TextInput()
	if err != nil {
		return nil, err
	}
	if h.ParameterName == "" {
		return nil, scrape.Errorf(scrape.ECONFIG, "search API key parameter name not configured")
	}

	key, err := h.Parameters.GetParameter(ctx, h.ParameterName)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, scrape.Errorf(scrape.ECONFIG, "parameter %q is empty", h.ParameterName)
	}

	maxResults := h.MaxResults
	if maxResults <= 0 {
		maxResults = scrape.DefaultMaxSearchResults
	}

	results, err := h.Client.Search(ctx, query, scrape.SearchOptions{APIKey: key, MaxResults: maxResults})
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []scrape.SearchResult{}
	}
	return &SearchOutput{Result: results}, nil
}
