// Package trafilatura provides an alternate content extractor built on
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"io"
	"net/url"
	"strings"

	"github.com/fwojciec/scrape"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html/charset"
)

// Ensure Extractor implements scrape.Extractor at compile time.
var _ scrape.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main text from HTML.
type Extractor struct {
	// IncludeComments keeps user comment sections in the content.
	IncludeComments bool
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract decodes the fetched body and returns its main text as blocks.
// Returns EDECODE when no main content can be found.
func (e *Extractor) Extract(res *scrape.FetchResult) (*scrape.ExtractResult, error) {
	if res == nil || len(bytes.TrimSpace(res.Body)) == 0 {
		return scrape.NewExtractResult("", nil), nil
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: !e.IncludeComments,
	}
	if u, err := url.Parse(res.URL); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(decode(res), opts)
	if err != nil {
		return nil, scrape.Errorf(scrape.EDECODE, "extract %s: %v", res.URL, err)
	}

	return scrape.NewExtractResult(strings.TrimSpace(result.Metadata.Title), scrape.TextBlocks(result.ContentText)), nil
}

// decode returns the body as UTF-8, falling back to the raw bytes when the
// charset label is unknown.
func decode(res *scrape.FetchResult) io.Reader {
	r := bytes.NewReader(res.Body)
	if res.Charset == "" || strings.EqualFold(res.Charset, "utf-8") {
		return r
	}
	dr, err := charset.NewReaderLabel(res.Charset, r)
	if err != nil {
		return bytes.NewReader(res.Body)
	}
	return dr
}
