// Package journal records the outcome of each asset-class run in a SQLite
// database, giving the pipeline a queryable audit trail beyond its log
// output.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Run statuses.
const (
	StatusOK     = "ok"      // document written (and published when configured)
	StatusNoData = "no_data" // fetch returned nothing, no write performed
	StatusFailed = "failed"  // class pipeline aborted with an error
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	run_at        TEXT NOT NULL,
	class         TEXT NOT NULL,
	mode          TEXT NOT NULL,
	window_start  TEXT NOT NULL,
	instruments   INTEGER NOT NULL,
	records       INTEGER NOT NULL,
	status        TEXT NOT NULL,
	error         TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_runs_class_run_at ON runs(class, run_at);
`

// Record is one asset-class run outcome.
type Record struct {
	ID          string
	RunAt       time.Time
	Class       string
	Mode        string // "first_run" or "incremental"
	WindowStart string
	Instruments int
	Records     int
	Status      string
	Error       string
}

// Journal appends and queries run records in a SQLite database.
type Journal struct {
	db *sql.DB
}

// Open opens (or creates) the journal database at dbPath and ensures the
// schema exists.
func Open(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening journal db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the underlying database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Append inserts a run record. A missing ID is assigned a fresh UUID and a
// zero RunAt is stamped with the current time. The stored ID is returned.
func (j *Journal) Append(ctx context.Context, rec Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.RunAt.IsZero() {
		rec.RunAt = time.Now().UTC()
	}

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO runs (id, run_at, class, mode, window_start, instruments, records, status, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.RunAt.Format(time.RFC3339), rec.Class, rec.Mode, rec.WindowStart,
		rec.Instruments, rec.Records, rec.Status, rec.Error)
	if err != nil {
		return "", fmt.Errorf("inserting run record: %w", err)
	}
	return rec.ID, nil
}

// Recent returns the most recent run records for a class, newest first, up
// to limit. An empty class returns records for all classes.
func (j *Journal) Recent(ctx context.Context, class string, limit int) ([]Record, error) {
	query := `SELECT id, run_at, class, mode, window_start, instruments, records, status, error
	          FROM runs`
	args := []any{}
	if class != "" {
		query += ` WHERE class = ?`
		args = append(args, class)
	}
	query += ` ORDER BY run_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying run records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var runAt string
		if err := rows.Scan(&rec.ID, &runAt, &rec.Class, &rec.Mode, &rec.WindowStart,
			&rec.Instruments, &rec.Records, &rec.Status, &rec.Error); err != nil {
			return nil, fmt.Errorf("scanning run record: %w", err)
		}
		rec.RunAt, err = time.Parse(time.RFC3339, runAt)
		if err != nil {
			return nil, fmt.Errorf("parsing run_at %q: %w", runAt, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
