package scrape

import "context"

// FetchResult holds the raw response for a single link.
type FetchResult struct {
	// URL is the final URL after redirects.
	URL string

	// StatusCode is the HTTP status. Non-2xx responses are still returned
	// so their body can be parsed.
	StatusCode int

	ContentType string

	// Charset is the resolved encoding label (e.g. "utf-8", "windows-1252")
	// from the Content-Type header, meta tags or content sniffing.
	Charset string

	// Body is the raw, undecoded response payload.
	Body []byte
}

// Fetcher retrieves raw page content from URLs.
type Fetcher interface {
	// Fetch issues a single GET request for the URL.
	// Returns ETIMEOUT when the request times out and ENETWORK for any other
	// transport failure. A non-2xx status is not an error.
	// Implementations must be safe for concurrent use.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases idle connections held by the fetcher.
	Close() error
}
