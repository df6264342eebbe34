package mock

import (
	"context"

	"github.com/fwojciec/scrape"
)

var _ scrape.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of scrape.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *scrape.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *scrape.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
