// Package pipeline runs the fetch, extract and chunk stages over a list of
// links with bounded concurrency and returns one result per link in input
// order.
package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/scrape"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of links processed at once.
const DefaultConcurrency = 5

// Pipeline extracts text from many links concurrently.
type Pipeline struct {
	Fetcher   scrape.Fetcher
	Extractor scrape.Extractor

	// Chunking configures segmentation of each page. A zero Size selects
	// scrape.DefaultChunkSize.
	Chunking scrape.ChunkConfig

	Concurrency int

	// RateLimiter, if set, is waited on per host before each fetch.
	RateLimiter scrape.DomainLimiter

	// RunID is stamped on every page.
	RunID string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Result holds the pages for one run, one per input link and in input order.
type Result struct {
	Pages   []*scrape.Page
	Failed  int
	Skipped int
}

// Contents returns the delivered text for each link. Failed and skipped
// links yield empty strings.
func (r *Result) Contents() []string {
	out := make([]string, len(r.Pages))
	for i, p := range r.Pages {
		out[i] = p.Output()
	}
	return out
}

// OK returns the pages that were extracted successfully.
func (r *Result) OK() []*scrape.Page {
	var out []*scrape.Page
	for _, p := range r.Pages {
		if p.Outcome == scrape.OutcomeOK {
			out = append(out, p)
		}
	}
	return out
}

// Run processes links and returns one page per link. A failure on one link
// never fails the run: the page is left empty with its outcome set. Once ctx
// is done no new fetches start and the remaining links are skipped.
// Run returns an error only for invalid configuration.
func (p *Pipeline) Run(ctx context.Context, links []string, progress scrape.ProgressFunc) (*Result, error) {
	cfg := p.Chunking
	if cfg.Size == 0 {
		cfg.Size = scrape.DefaultChunkSize
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if p.Fetcher == nil || p.Extractor == nil {
		return nil, scrape.Errorf(scrape.ECONFIG, "pipeline requires a fetcher and an extractor")
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	result := &Result{Pages: make([]*scrape.Page, len(links))}
	for i, link := range links {
		result.Pages[i] = &scrape.Page{RunID: p.RunID, Position: i, URL: link}
	}
	if len(links) == 0 {
		return result, nil
	}

	pageCh := make(chan *scrape.Page, len(links))

	// The group has no derived context so one failing link does not cancel
	// its siblings.
	var g errgroup.Group
	g.SetLimit(concurrency)

	go func() {
		for _, page := range result.Pages {
			g.Go(func() error {
				if ctx.Err() == nil {
					p.process(ctx, page, cfg)
				}
				pageCh <- page
				return nil
			})
		}
		_ = g.Wait()
		close(pageCh)
	}()

	completed := 0
	for page := range pageCh {
		completed++
		switch page.Outcome {
		case scrape.OutcomeOK:
		case scrape.OutcomeSkipped:
			result.Skipped++
		default:
			result.Failed++
		}
		if progress != nil {
			progress(scrape.Progress{
				URL:       page.URL,
				Completed: completed,
				Total:     len(links),
				Outcome:   page.Outcome,
				Err:       page.Err,
			})
		}
	}

	return result, nil
}

// process runs the stages for one link and records the outcome on page.
func (p *Pipeline) process(ctx context.Context, page *scrape.Page, cfg scrape.ChunkConfig) {
	defer func() {
		if r := recover(); r != nil {
			*page = scrape.Page{
				RunID:    page.RunID,
				Position: page.Position,
				URL:      page.URL,
				Outcome:  scrape.OutcomeInternalError,
				Err:      scrape.Errorf(scrape.EINTERNAL, "panic processing %s: %v", page.URL, r),
			}
		}
	}()

	if p.RateLimiter != nil {
		if u, err := url.Parse(page.URL); err == nil && u.Host != "" {
			// A wait that cannot finish before the deadline means the
			// fetch never starts.
			if err := p.RateLimiter.Wait(ctx, u.Host); err != nil {
				page.Outcome = scrape.OutcomeSkipped
				page.Err = scrape.Errorf(scrape.ETIMEOUT, "rate limit wait for %s: %v", u.Host, err)
				return
			}
		}
	}

	fetched, err := p.Fetcher.Fetch(ctx, page.URL)
	if err != nil {
		page.Outcome = scrape.OutcomeNetworkError
		page.Err = err
		return
	}

	extracted, err := p.Extractor.Extract(fetched)
	if err != nil {
		page.Outcome = scrape.OutcomeParseError
		page.Err = err
		return
	}

	chunks, err := scrape.SplitText(extracted.Content, cfg)
	if err != nil {
		page.Outcome = scrape.OutcomeInternalError
		page.Err = err
		return
	}
	kept := cfg.Apply(chunks)

	page.Title = extracted.Title
	page.Content = extracted.Content
	page.Chunks = kept
	page.Truncated = len(kept) < len(chunks)
	page.ContentHash = ComputeHash(extracted.Content)
	page.FetchedAt = p.now()
	page.Outcome = scrape.OutcomeOK
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// ComputeHash computes a hash of the content using xxhash.
func ComputeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
