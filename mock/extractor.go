package mock

import "github.com/fwojciec/scrape"

var _ scrape.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of scrape.Extractor.
type Extractor struct {
	ExtractFn func(res *scrape.FetchResult) (*scrape.ExtractResult, error)
}

func (e *Extractor) Extract(res *scrape.FetchResult) (*scrape.ExtractResult, error) {
	return e.ExtractFn(res)
}
