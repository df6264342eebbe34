package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/scrape"
	"github.com/fwojciec/scrape/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkCreatePage measures storing one page as its chunk count grows.
// Pages and chunks are written in a single transaction.
func BenchmarkCreatePage(b *testing.B) {
	for _, chunks := range []int{1, 10, 100} {
		b.Run(fmt.Sprintf("chunks=%d", chunks), func(b *testing.B) {
			db, runID := openBenchDB(b)
			pages := sqlite.NewPageService(db)
			ctx := context.Background()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := pages.CreatePage(ctx, benchPage(runID, i, chunks)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkFindPages measures listing one run out of a populated database.
func BenchmarkFindPages(b *testing.B) {
	const pagesPerRun = 200

	db, runID := openBenchDB(b)
	pages := sqlite.NewPageService(db)
	ctx := context.Background()
	for i := 0; i < pagesPerRun; i++ {
		require.NoError(b, pages.CreatePage(ctx, benchPage(runID, i, 5)))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		found, err := pages.FindPages(ctx, scrape.PageFilter{RunID: &runID, Limit: 50})
		if err != nil {
			b.Fatal(err)
		}
		if len(found) != 50 {
			b.Fatalf("got %d pages", len(found))
		}
	}
}

// openBenchDB opens a file-backed database with one run, so the WAL journal
// is exercised.
func openBenchDB(b *testing.B) (*sqlite.DB, string) {
	b.Helper()

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	b.Cleanup(func() { db.Close() })

	run := &scrape.Run{Source: "benchmark"}
	require.NoError(b, sqlite.NewRunService(db).CreateRun(context.Background(), run))
	return db, run.ID
}

// benchPage returns a page whose content splits into exactly n hard chunks.
func benchPage(runID string, i, n int) *scrape.Page {
	const size = 64
	content := strings.Repeat(fmt.Sprintf("page %04d text ", i), n*size/15+1)[:n*size]
	chunks, _ := scrape.SplitText(content, scrape.ChunkConfig{Size: size, Mode: scrape.ChunkHard})
	return &scrape.Page{
		RunID:    runID,
		Position: i,
		URL:      fmt.Sprintf("https://example.com/docs/page%d", i),
		Title:    fmt.Sprintf("Page %d", i),
		Content:  content,
		Chunks:   chunks,
		Outcome:  scrape.OutcomeOK,
	}
}
