// Package http provides net/http implementations of scrape.Fetcher and
// scrape.SitemapService.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/scrape"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout bounds a single GET request, body included.
const DefaultFetchTimeout = 4 * time.Second

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize = 10 << 20

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "scrape/1.0"

// Ensure Fetcher implements scrape.Fetcher at compile time.
var _ scrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages with plain HTTP GET requests. A single client and
// its connection pool are shared by all concurrent Fetch calls.
// It does not execute JavaScript and never retries.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout (4s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithClient replaces the pooled client built by NewFetcher.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize caps the number of body bytes read per response.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   f.timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: f.timeout,
			},
		}
	}

	return f
}

// Fetch issues a single GET request and returns the raw body, status and
// resolved charset. A non-2xx status is returned as a result, not an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*scrape.FetchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, scrape.Errorf(scrape.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fetchError(url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, fetchError(url, err)
	}

	contentType := resp.Header.Get("Content-Type")
	name := detectCharset(body, contentType)

	return &scrape.FetchResult{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Charset:     name,
		Body:        body,
	}, nil
}

// Close drops idle pooled connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// detectCharset resolves the body encoding from the Content-Type header, a
// BOM or a meta tag. Sniffing only looks at the first 1024 bytes, so a guess
// made without any declaration is replaced by utf-8 when the whole body is
// valid UTF-8.
func detectCharset(body []byte, contentType string) string {
	_, name, certain := charset.DetermineEncoding(body, contentType)
	if !certain && utf8.Valid(body) {
		return "utf-8"
	}
	return name
}

// fetchError classifies a transport failure as ETIMEOUT or ENETWORK.
func fetchError(url string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return scrape.Errorf(scrape.ETIMEOUT, "fetch %s: %v", url, err)
	}
	return scrape.Errorf(scrape.ENETWORK, "fetch %s: %v", url, err)
}
