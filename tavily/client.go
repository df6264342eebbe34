// Package tavily implements keyword search against the Tavily search API.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/scrape"
)

const (
	// DefaultEndpoint is the search API URL.
	DefaultEndpoint = "https://api.tavily.com/search"

	defaultTimeout   = 30 * time.Second
	maxErrorBodySize = 4096
)

var _ scrape.SearchClient = (*Client)(nil)

// Client runs searches against the Tavily API.
type Client struct {
	client   *http.Client
	endpoint string
}

// Option configures a Client.
type Option func(*Client)

// WithClient sets the HTTP client.
func WithClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.client = c
	}
}

// WithEndpoint overrides DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(cl *Client) {
		cl.endpoint = endpoint
	}
}

// NewClient creates a search client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		client:   &http.Client{Timeout: defaultTimeout},
		endpoint: DefaultEndpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type searchResponse struct {
	Query   string                `json:"query"`
	Results []scrape.SearchResult `json:"results"`
}

// Search returns up to opts.MaxResults results ordered by relevance.
func (c *Client) Search(ctx context.Context, query string, opts scrape.SearchOptions) ([]scrape.SearchResult, error) {
	if opts.APIKey == "" {
		return nil, scrape.Errorf(scrape.ECONFIG, "search API key required")
	}
	if query == "" {
		return nil, scrape.Errorf(scrape.EINVALID, "search query required")
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = scrape.DefaultMaxSearchResults
	}

	body, err := json.Marshal(searchRequest{APIKey: opts.APIKey, Query: query, MaxResults: maxResults})
	if err != nil {
		return nil, scrape.Errorf(scrape.EINTERNAL, "marshal search request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, scrape.Errorf(scrape.EINVALID, "create search request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, scrape.Errorf(scrape.ENETWORK, "search request: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, scrape.Errorf(scrape.ECONFIG, "search API rejected the key: status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, scrape.Errorf(scrape.ENETWORK, "search API returned %d: %s", resp.StatusCode, msg)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, scrape.Errorf(scrape.EDECODE, "decode search response: %v", err)
	}
	if len(out.Results) > maxResults {
		out.Results = out.Results[:maxResults]
	}
	return out.Results, nil
}
