package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/scrape"
	"github.com/fwojciec/scrape/pipeline"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ scrape.PageService = (*PageService)(nil)

// PageService implements scrape.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

const pageColumns = "id, run_id, position, url, title, content, content_hash, truncated, fetched_at"

// CreatePage stores a page and its chunks in one transaction. A content hash
// already set by the pipeline is kept.
func (s *PageService) CreatePage(ctx context.Context, page *scrape.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}
	if page.RunID == "" {
		return scrape.Errorf(scrape.EINVALID, "page run ID required")
	}

	page.ID = uuid.New().String()
	if page.FetchedAt.IsZero() {
		page.FetchedAt = time.Now()
	}
	page.FetchedAt = page.FetchedAt.UTC().Truncate(time.Second)
	if page.ContentHash == "" {
		page.ContentHash = pipeline.ComputeHash(page.Content)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO pages (`+pageColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, page.ID, page.RunID, page.Position, page.URL, page.Title, page.Content, page.ContentHash,
		page.Truncated, page.FetchedAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("insert page: %w", err)
	}

	for _, c := range page.Chunks {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO chunks (page_id, idx, content, start_offset, end_offset)
			VALUES (?, ?, ?, ?, ?)
		`, page.ID, c.Index, c.Content, c.Start, c.End); err != nil {
			return fmt.Errorf("insert chunk %d: %w", c.Index, err)
		}
	}

	return tx.Commit()
}

// FindPageByID retrieves a page with its chunks.
func (s *PageService) FindPageByID(ctx context.Context, id string) (*scrape.Page, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+pageColumns+" FROM pages WHERE id = ?", id)
	page, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, scrape.Errorf(scrape.ENOTFOUND, "page not found")
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, content, start_offset, end_offset
		FROM chunks
		WHERE page_id = ?
		ORDER BY idx ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c scrape.Chunk
		if err := rows.Scan(&c.Index, &c.Content, &c.Start, &c.End); err != nil {
			return nil, err
		}
		page.Chunks = append(page.Chunks, c)
	}

	return page, rows.Err()
}

// FindPages retrieves pages matching the filter ordered by run and position.
// Chunks are not loaded.
func (s *PageService) FindPages(ctx context.Context, filter scrape.PageFilter) ([]*scrape.Page, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + pageColumns + " FROM pages WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY run_id, position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*scrape.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

func scanPage(row scanner) (*scrape.Page, error) {
	var page scrape.Page
	var fetchedAt string

	if err := row.Scan(&page.ID, &page.RunID, &page.Position, &page.URL, &page.Title,
		&page.Content, &page.ContentHash, &page.Truncated, &fetchedAt); err != nil {
		return nil, err
	}

	var err error
	if page.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}
	page.Outcome = scrape.OutcomeOK

	return &page, nil
}
