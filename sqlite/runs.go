package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/AndKraev/hotelweather"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ hotelweather.RunLog = (*RunService)(nil)

// RunService implements hotelweather.RunLog using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// RecordRun persists a completed fetch run. The run is assigned an ID.
func (s *RunService) RecordRun(ctx context.Context, run *hotelweather.FetchRun) error {
	run.ID = uuid.New().String()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, requests, failures)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.UTC().Format(time.RFC3339), run.FinishedAt.UTC().Format(time.RFC3339),
		run.Requests, run.Failures)

	return err
}

// FindRunByID retrieves a recorded run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*hotelweather.FetchRun, error) {
	var run hotelweather.FetchRun
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, requests, failures
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &startedAt, &finishedAt, &run.Requests, &run.Failures)

	if err == sql.ErrNoRows {
		return nil, hotelweather.Errorf(hotelweather.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	return &run, nil
}

// parseRFC3339 parses an RFC3339 formatted timestamp string.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, hotelweather.Errorf(hotelweather.EINTERNAL, "failed to parse %s: %v", fieldName, err)
	}
	return t, nil
}
