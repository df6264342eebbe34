package mock

import (
	"context"

	"github.com/fwojciec/scrape"
)

var _ scrape.RunService = (*RunService)(nil)

// RunService is a mock implementation of scrape.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *scrape.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*scrape.Run, error)
	FindRunsFn    func(ctx context.Context, filter scrape.RunFilter) ([]*scrape.Run, error)
	FinishRunFn   func(ctx context.Context, id string, upd scrape.RunUpdate) (*scrape.Run, error)
	DeleteRunFn   func(ctx context.Context, id string) error
}

func (s *RunService) CreateRun(ctx context.Context, run *scrape.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*scrape.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter scrape.RunFilter) ([]*scrape.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) FinishRun(ctx context.Context, id string, upd scrape.RunUpdate) (*scrape.Run, error) {
	return s.FinishRunFn(ctx, id, upd)
}

func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}
