package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/scrape"
	main "github.com/fwojciec/scrape/cmd/scrape"
	"github.com/fwojciec/scrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagesCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists pages with filter", func(t *testing.T) {
		t.Parallel()

		var got scrape.PageFilter
		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, filter scrape.PageFilter) ([]*scrape.Page, error) {
				got = filter
				return []*scrape.Page{
					{ID: "page-1", Position: 0, URL: "https://a.test/1", Title: "One"},
					{ID: "page-2", Position: 1, URL: "https://a.test/2", Title: "Two"},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Pages:  pages,
		}

		cmd := &main.PagesCmd{RunID: "run-1", Limit: 10}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.RunID)
		assert.Equal(t, "run-1", *got.RunID)
		assert.Nil(t, got.URL)
		assert.Equal(t, 10, got.Limit)
		assert.Contains(t, stdout.String(), "page-1  0  https://a.test/1  One")
		assert.Contains(t, stdout.String(), "page-2  1  https://a.test/2  Two")
	})

	t.Run("full output loads chunks for truncated pages", func(t *testing.T) {
		t.Parallel()

		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, _ scrape.PageFilter) ([]*scrape.Page, error) {
				return []*scrape.Page{{ID: "page-1", URL: "https://a.test/1"}}, nil
			},
			FindPageByIDFn: func(_ context.Context, id string) (*scrape.Page, error) {
				return &scrape.Page{
					ID:        id,
					URL:       "https://a.test/1",
					Content:   "first second",
					Chunks:    []scrape.Chunk{{Content: "first "}},
					Truncated: true,
					Outcome:   scrape.OutcomeOK,
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Pages:  pages,
		}

		cmd := &main.PagesCmd{Full: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "truncated: true")
		assert.Contains(t, stdout.String(), "first ")
		assert.NotContains(t, stdout.String(), "second")
	})

	t.Run("shows helpful message when no pages exist", func(t *testing.T) {
		t.Parallel()

		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, _ scrape.PageFilter) ([]*scrape.Page, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Pages:  pages,
		}

		err := (&main.PagesCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No pages found")
	})

	t.Run("returns error when FindPages fails", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database connection failed")
		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, _ scrape.PageFilter) ([]*scrape.Page, error) {
				return nil, dbErr
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Pages:  pages,
		}

		err := (&main.PagesCmd{}).Run(deps)

		require.ErrorIs(t, err, dbErr)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestRunsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists runs with counts", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, filter scrape.RunFilter) ([]*scrape.Run, error) {
				assert.Equal(t, 20, filter.Limit)
				return []*scrape.Run{{
					ID:        "run-1",
					Source:    "https://a.test",
					Total:     3,
					Saved:     2,
					Failed:    1,
					StartedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
				}}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs:   runs,
		}

		err := (&main.RunsCmd{Limit: 20}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "run-1  2025-01-15T10:00:00Z  2/3 saved  1 failed  0 skipped  https://a.test\n", stdout.String())
	})

	t.Run("shows message when no runs exist", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, _ scrape.RunFilter) ([]*scrape.Run, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs:   runs,
		}

		err := (&main.RunsCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No runs found")
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes run when --force is set", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		runs := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, id string) (*scrape.Run, error) {
				return &scrape.Run{ID: id, Source: "https://a.test"}, nil
			},
			DeleteRunFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs:   runs,
		}

		err := (&main.DeleteCmd{ID: "run-1", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "run-1", deletedID)
		assert.Contains(t, stdout.String(), "Deleted run run-1")
	})

	t.Run("requires --force", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		err := (&main.DeleteCmd{ID: "run-1"}).Run(deps)

		assert.Equal(t, scrape.EINVALID, scrape.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("reports missing run", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, id string) (*scrape.Run, error) {
				return nil, scrape.Errorf(scrape.ENOTFOUND, "run not found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Runs:   runs,
		}

		err := (&main.DeleteCmd{ID: "missing", Force: true}).Run(deps)

		assert.Equal(t, scrape.ENOTFOUND, scrape.ErrorCode(err))
		assert.Contains(t, stderr.String(), "scrape runs")
	})
}
