package scrape

import (
	"context"
	"time"
)

// Run records one invocation of the pipeline over a set of links.
type Run struct {
	ID string `json:"id"`

	// Source describes where the links came from, such as a sitemap URL.
	Source string `json:"source"`

	Total   int `json:"total"`
	Saved   int `json:"saved"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`

	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Source == "" {
		return Errorf(EINVALID, "run source required")
	}
	if r.Total < 0 || r.Saved < 0 || r.Failed < 0 || r.Skipped < 0 {
		return Errorf(EINVALID, "run counts must not be negative")
	}
	if r.Saved+r.Failed+r.Skipped > r.Total {
		return Errorf(EINVALID, "run counts exceed total of %d", r.Total)
	}
	return nil
}

// RunService represents a service for managing runs.
type RunService interface {
	// CreateRun creates a new run.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FinishRun records the final counts of a run.
	// Returns ENOTFOUND if run does not exist.
	FinishRun(ctx context.Context, id string, upd RunUpdate) (*Run, error)

	// DeleteRun permanently removes a run and all of its pages.
	// Returns ENOTFOUND if run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID     *string `json:"id"`
	Source *string `json:"source"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RunUpdate holds the counts recorded when a run finishes.
type RunUpdate struct {
	Saved   int `json:"saved"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}
