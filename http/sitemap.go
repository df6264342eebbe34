package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/scrape"
)

// maxSitemapDepth bounds sitemap index nesting.
const maxSitemapDepth = 5

// Ensure SitemapService implements scrape.SitemapService.
var _ scrape.SitemapService = (*SitemapService)(nil)

// SitemapService discovers links from XML sitemaps via HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs returns the page URLs listed by a sitemap, in sitemap order.
// When baseURL points at an .xml file it is read directly; otherwise
// /sitemap.xml on the same host is used and only URLs under the base path
// are kept.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *scrape.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, scrape.Errorf(scrape.EINVALID, "invalid base URL %q", baseURL)
	}

	sitemapURL := base.String()
	pathPrefix := ""
	if !strings.HasSuffix(strings.ToLower(base.Path), ".xml") {
		pathPrefix = strings.TrimSuffix(base.Path, "/")
		sitemapURL = base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	}

	urls, err := s.processSitemap(ctx, sitemapURL, make(map[string]bool), 0)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if pathPrefix != "" && !matchesPathPrefix(u, pathPrefix) {
			continue
		}
		if !filter.Match(u) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

// matchesPathPrefix checks if a URL's path starts with prefix on a path
// boundary: /docs matches /docs and /docs/intro but not /documentation.
func matchesPathPrefix(rawURL, prefix string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Path == prefix || strings.HasPrefix(parsed.Path, prefix+"/")
}

// processSitemap fetches and parses a sitemap, handling both urlset and sitemapindex.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool, depth int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if seen[sitemapURL] || depth > maxSitemapDepth {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, scrape.Errorf(scrape.EDECODE, "parsing sitemap %s: %v", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, scrape.Errorf(scrape.EDECODE, "empty sitemap %s", sitemapURL)
	}

	if root.Tag != "sitemapindex" {
		return locs(root, "url"), nil
	}

	var all []string
	for _, child := range locs(root, "sitemap") {
		urls, err := s.processSitemap(ctx, child, seen, depth+1)
		if err != nil {
			return nil, err
		}
		all = append(all, urls...)
	}
	return all, nil
}

// locs returns the trimmed <loc> text of every tag child of root.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// fetchURL fetches a URL and returns the response body.
func (s *SitemapService) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fetchError(targetURL, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, scrape.Errorf(scrape.ENOTFOUND, "no sitemap at %s", targetURL)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, scrape.Errorf(scrape.ENETWORK, "HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp.Body, nil
}
