package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/scrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ scrape.RunService = (*RunService)(nil)

// RunService implements scrape.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

const runColumns = "id, source, total, saved, failed, skipped, started_at, finished_at"

// CreateRun creates a new run.
func (s *RunService) CreateRun(ctx context.Context, run *scrape.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.StartedAt = run.StartedAt.UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Source, run.Total, run.Saved, run.Failed, run.Skipped,
		run.StartedAt.Format(time.RFC3339), formatOptionalTime(run.FinishedAt))

	return err
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*scrape.Run, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, scrape.Errorf(scrape.ENOTFOUND, "run not found")
	}
	return run, err
}

// FindRuns retrieves runs matching the filter.
func (s *RunService) FindRuns(ctx context.Context, filter scrape.RunFilter) ([]*scrape.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + runColumns + " FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*scrape.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// FinishRun records the final counts and completion time of a run.
func (s *RunService) FinishRun(ctx context.Context, id string, upd scrape.RunUpdate) (*scrape.Run, error) {
	run, err := s.FindRunByID(ctx, id)
	if err != nil {
		return nil, err
	}

	run.Saved = upd.Saved
	run.Failed = upd.Failed
	run.Skipped = upd.Skipped
	if err := run.Validate(); err != nil {
		return nil, err
	}
	run.FinishedAt = time.Now().UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx, `
		UPDATE runs
		SET saved = ?, failed = ?, skipped = ?, finished_at = ?
		WHERE id = ?
	`, run.Saved, run.Failed, run.Skipped, run.FinishedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return run, nil
}

// DeleteRun permanently removes a run. Its pages and chunks are removed by
// cascade.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return scrape.Errorf(scrape.ENOTFOUND, "run not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*scrape.Run, error) {
	var run scrape.Run
	var startedAt, finishedAt string

	if err := row.Scan(&run.ID, &run.Source, &run.Total, &run.Saved, &run.Failed, &run.Skipped,
		&startedAt, &finishedAt); err != nil {
		return nil, err
	}

	var err error
	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if finishedAt != "" {
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}
	}

	return &run, nil
}
