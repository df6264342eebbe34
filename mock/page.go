package mock

import (
	"context"

	"github.com/fwojciec/scrape"
)

// Compile-time interface verification.
var (
	_ scrape.PageStore   = (*PageStore)(nil)
	_ scrape.PageService = (*PageService)(nil)
)

// PageStore is a mock implementation of scrape.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *scrape.Page) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *scrape.Page) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}

// PageService is a mock implementation of scrape.PageService.
type PageService struct {
	CreatePageFn   func(ctx context.Context, page *scrape.Page) error
	FindPageByIDFn func(ctx context.Context, id string) (*scrape.Page, error)
	FindPagesFn    func(ctx context.Context, filter scrape.PageFilter) ([]*scrape.Page, error)
}

func (s *PageService) CreatePage(ctx context.Context, page *scrape.Page) error {
	return s.CreatePageFn(ctx, page)
}

func (s *PageService) FindPageByID(ctx context.Context, id string) (*scrape.Page, error) {
	return s.FindPageByIDFn(ctx, id)
}

func (s *PageService) FindPages(ctx context.Context, filter scrape.PageFilter) ([]*scrape.Page, error) {
	return s.FindPagesFn(ctx, filter)
}
