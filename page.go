package scrape

import (
	"context"
	"time"
)

// Outcome classifies how extraction of a single link ended.
type Outcome int

const (
	// OutcomeSkipped means the link was never attempted because the
	// pipeline deadline passed first.
	OutcomeSkipped Outcome = iota
	OutcomeOK
	OutcomeNetworkError
	OutcomeParseError
	OutcomeInternalError
)

// String returns the outcome name used in logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNetworkError:
		return "network_error"
	case OutcomeParseError:
		return "parse_error"
	case OutcomeInternalError:
		return "internal_error"
	default:
		return "skipped"
	}
}

// Page is the pipeline result for one input link.
type Page struct {
	ID       string  `json:"id,omitempty"`
	RunID    string  `json:"runId,omitempty"`
	Position int     `json:"position"`
	URL      string  `json:"url"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Chunks   []Chunk `json:"chunks,omitempty"`

	// Truncated is set when the first-chunk-only policy dropped chunks.
	Truncated bool `json:"truncated,omitempty"`

	ContentHash string    `json:"contentHash,omitempty"`
	FetchedAt   time.Time `json:"fetchedAt"`

	Outcome Outcome `json:"outcome"`
	Err     error   `json:"-"`
}

// Output returns the text delivered for this link: empty unless extraction
// succeeded, the first chunk when the page was truncated, the full content
// otherwise.
func (p *Page) Output() string {
	if p.Outcome != OutcomeOK {
		return ""
	}
	if p.Truncated && len(p.Chunks) > 0 {
		return p.Chunks[0].Content
	}
	return p.Content
}

// Validate returns an error if the page cannot be stored.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	if p.Outcome != OutcomeOK {
		return Errorf(EINVALID, "page %q has outcome %s", p.URL, p.Outcome)
	}
	return nil
}

// Progress reports progress while links are processed.
type Progress struct {
	URL       string
	Completed int
	Total     int
	Outcome   Outcome
	Err       error
}

// ProgressFunc is called as links are processed.
type ProgressFunc func(Progress)

// PageStore persists pages with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}

// PageService represents a service for managing stored pages.
type PageService interface {
	// CreatePage stores a page and its chunks.
	CreatePage(ctx context.Context, page *Page) error

	// FindPageByID retrieves a page with its chunks.
	// Returns ENOTFOUND if the page does not exist.
	FindPageByID(ctx context.Context, id string) (*Page, error)

	// FindPages retrieves pages matching the filter, without chunks.
	FindPages(ctx context.Context, filter PageFilter) ([]*Page, error)
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	RunID *string `json:"runId"`
	URL   *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
