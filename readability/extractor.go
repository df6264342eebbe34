// Package readability provides an alternate content extractor built on
// go-readability.
package readability

import (
	"bytes"
	"io"
	"net/url"
	"strings"

	"github.com/fwojciec/scrape"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html/charset"
)

// Ensure Extractor implements scrape.Extractor at compile time.
var _ scrape.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the main article text.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract decodes the fetched body and returns the article text as blocks.
// Returns EDECODE when the document cannot be parsed.
func (e *Extractor) Extract(res *scrape.FetchResult) (*scrape.ExtractResult, error) {
	if res == nil || len(bytes.TrimSpace(res.Body)) == 0 {
		return scrape.NewExtractResult("", nil), nil
	}

	var pageURL *url.URL
	if u, err := url.Parse(res.URL); err == nil && u.Host != "" {
		pageURL = u
	}

	article, err := readability.FromReader(decode(res), pageURL)
	if err != nil {
		return nil, scrape.Errorf(scrape.EDECODE, "extract %s: %v", res.URL, err)
	}

	return scrape.NewExtractResult(strings.TrimSpace(article.Title), scrape.TextBlocks(article.TextContent)), nil
}

func decode(res *scrape.FetchResult) io.Reader {
	if res.Charset == "" || strings.EqualFold(res.Charset, "utf-8") {
		return bytes.NewReader(res.Body)
	}
	r, err := charset.NewReaderLabel(res.Charset, bytes.NewReader(res.Body))
	if err != nil {
		return bytes.NewReader(res.Body)
	}
	return r
}
