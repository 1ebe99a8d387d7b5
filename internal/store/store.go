// Package store persists run records in SQLite so successive runs of the
// same configuration can be compared.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"phasegen/internal/graph"
	"phasegen/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	config       TEXT NOT NULL,
	points       INTEGER NOT NULL,
	aborted      INTEGER NOT NULL DEFAULT 0,
	dimensions   INTEGER NOT NULL,
	mean_weight  REAL NOT NULL,
	duration_ms  INTEGER NOT NULL,
	created_at   DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_config ON runs(config, created_at);
`

// RunRecord is one persisted run summary.
type RunRecord struct {
	ID         string
	Config     string
	Points     int
	Aborted    int
	Dimensions int
	MeanWeight float64
	DurationMs int64
	CreatedAt  time.Time
}

// Store wraps the SQLite database holding run records.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes the database at path, creating parent directories and
// the schema as needed.
func Open(path string) (*Store, error) {
	timer := logging.StartTimer(logging.CategoryStore, "Open")
	defer timer.Stop()

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	logging.Store("opened run store at %s", path)
	return &Store{db: db, path: path}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun persists one run result.
func (s *Store) SaveRun(res *graph.Result) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, config, points, aborted, dimensions, mean_weight, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.RunID, res.Config, res.Points, res.Aborted, res.Dimensions,
		res.MeanWeight, res.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", res.RunID, err)
	}
	logging.StoreDebug("saved run %s (config=%s, mean=%g)", res.RunID, res.Config, res.MeanWeight)
	return nil
}

// Runs returns the most recent records, newest first.
func (s *Store) Runs(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, config, points, aborted, dimensions, mean_weight, duration_ms, created_at
		 FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.Config, &r.Points, &r.Aborted, &r.Dimensions,
			&r.MeanWeight, &r.DurationMs, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// RunsForConfig returns records for one configuration name, newest first.
func (s *Store) RunsForConfig(config string, limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, config, points, aborted, dimensions, mean_weight, duration_ms, created_at
		 FROM runs WHERE config = ? ORDER BY created_at DESC, id LIMIT ?`, config, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs for %s: %w", config, err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.Config, &r.Points, &r.Aborted, &r.Dimensions,
			&r.MeanWeight, &r.DurationMs, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
