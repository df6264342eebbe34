package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/scrape"
	"github.com/fwojciec/scrape/pipeline"
	"github.com/fwojciec/scrape/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageService_CreatePage(t *testing.T) {
	t.Parallel()

	t.Run("creates page with generated ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		run := createTestRun(t, db)
		svc := sqlite.NewPageService(db)

		page := &scrape.Page{
			RunID:   run.ID,
			URL:     "https://example.com/docs/page1",
			Title:   "Page 1",
			Content: "This is the content.",
			Outcome: scrape.OutcomeOK,
		}

		err := svc.CreatePage(context.Background(), page)

		require.NoError(t, err)
		assert.NotEmpty(t, page.ID)
		assert.Equal(t, pipeline.ComputeHash(page.Content), page.ContentHash)
		assert.False(t, page.FetchedAt.IsZero())
	})

	t.Run("keeps hash computed upstream", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		run := createTestRun(t, db)
		svc := sqlite.NewPageService(db)

		page := &scrape.Page{
			RunID:       run.ID,
			URL:         "https://example.com/docs/page2",
			Content:     "Body text.",
			ContentHash: "00000000deadbeef",
			Outcome:     scrape.OutcomeOK,
		}

		require.NoError(t, svc.CreatePage(context.Background(), page))

		found, err := svc.FindPageByID(context.Background(), page.ID)
		require.NoError(t, err)
		assert.Equal(t, "00000000deadbeef", found.ContentHash)
	})

	t.Run("rejects failed pages", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		run := createTestRun(t, db)

		err := sqlite.NewPageService(db).CreatePage(context.Background(), &scrape.Page{
			RunID:   run.ID,
			URL:     "https://example.com/down",
			Outcome: scrape.OutcomeNetworkError,
		})

		assert.Equal(t, scrape.EINVALID, scrape.ErrorCode(err))
	})

	t.Run("requires a run", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		err := sqlite.NewPageService(db).CreatePage(context.Background(), &scrape.Page{
			URL:     "https://example.com/",
			Outcome: scrape.OutcomeOK,
		})

		assert.Equal(t, scrape.EINVALID, scrape.ErrorCode(err))
	})

	t.Run("rejects unknown run", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		err := sqlite.NewPageService(db).CreatePage(context.Background(), &scrape.Page{
			RunID:   "missing",
			URL:     "https://example.com/",
			Outcome: scrape.OutcomeOK,
		})

		require.Error(t, err)
	})

	t.Run("rolls back the page when a chunk fails", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		run := createTestRun(t, db)
		ctx := context.Background()

		err := sqlite.NewPageService(db).CreatePage(ctx, &scrape.Page{
			RunID:   run.ID,
			URL:     "https://example.com/dup",
			Content: "ab",
			Chunks:  []scrape.Chunk{{Index: 0, Content: "a"}, {Index: 0, Content: "b"}},
			Outcome: scrape.OutcomeOK,
		})
		require.Error(t, err)

		var pages int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&pages))
		assert.Zero(t, pages)
	})
}

func TestPageService_FindPageByID(t *testing.T) {
	t.Parallel()

	t.Run("returns page with chunks in order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		run := createTestRun(t, db)
		svc := sqlite.NewPageService(db)
		ctx := context.Background()

		page := &scrape.Page{
			RunID:     run.ID,
			Position:  2,
			URL:       "https://example.com/long",
			Title:     "Long Page",
			Content:   "abcdefghij",
			Truncated: true,
			Chunks:    []scrape.Chunk{{Index: 0, Content: "abcd", Start: 0, End: 4}},
			FetchedAt: time.Date(2024, 6, 1, 8, 0, 0, 500, time.UTC),
			Outcome:   scrape.OutcomeOK,
		}
		require.NoError(t, svc.CreatePage(ctx, page))

		found, err := svc.FindPageByID(ctx, page.ID)

		require.NoError(t, err)
		assert.Equal(t, page.ID, found.ID)
		assert.Equal(t, run.ID, found.RunID)
		assert.Equal(t, 2, found.Position)
		assert.Equal(t, "Long Page", found.Title)
		assert.True(t, found.Truncated)
		assert.Equal(t, page.Chunks, found.Chunks)
		assert.Equal(t, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), found.FetchedAt)
		assert.Equal(t, "abcd", found.Output())
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		_, err := sqlite.NewPageService(db).FindPageByID(context.Background(), "nonexistent")

		assert.Equal(t, scrape.ENOTFOUND, scrape.ErrorCode(err))
	})
}

func TestPageService_FindPages(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, db *sqlite.DB) (*scrape.Run, *scrape.Run) {
		t.Helper()
		ctx := context.Background()
		first, second := createTestRun(t, db), createTestRun(t, db)
		svc := sqlite.NewPageService(db)
		for i := 2; i >= 0; i-- {
			require.NoError(t, svc.CreatePage(ctx, &scrape.Page{
				RunID:    first.ID,
				Position: i,
				URL:      fmt.Sprintf("https://example.com/page%d", i),
				Content:  fmt.Sprintf("content %d", i),
				Outcome:  scrape.OutcomeOK,
			}))
		}
		require.NoError(t, svc.CreatePage(ctx, &scrape.Page{
			RunID:   second.ID,
			URL:     "https://example.com/page0",
			Content: "content again",
			Outcome: scrape.OutcomeOK,
		}))
		return first, second
	}

	t.Run("filters by run in position order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		first, _ := seed(t, db)

		pages, err := sqlite.NewPageService(db).FindPages(context.Background(), scrape.PageFilter{RunID: &first.ID})

		require.NoError(t, err)
		require.Len(t, pages, 3)
		for i, p := range pages {
			assert.Equal(t, i, p.Position)
			assert.Empty(t, p.Chunks)
		}
	})

	t.Run("filters by URL across runs", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		seed(t, db)
		url := "https://example.com/page0"

		pages, err := sqlite.NewPageService(db).FindPages(context.Background(), scrape.PageFilter{URL: &url})

		require.NoError(t, err)
		assert.Len(t, pages, 2)
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		first, _ := seed(t, db)

		pages, err := sqlite.NewPageService(db).FindPages(context.Background(), scrape.PageFilter{
			RunID:  &first.ID,
			Limit:  1,
			Offset: 1,
		})

		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, 1, pages[0].Position)
	})
}
