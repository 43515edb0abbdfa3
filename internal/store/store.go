// Package store persists differential-run results in a SQLite database so
// discovered divergences survive the process and can be replayed later from
// their recorded seed and options.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/shadesmith/shadesmith/internal/harness"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	seed       INTEGER NOT NULL,
	options    TEXT NOT NULL,
	source     TEXT NOT NULL,
	verdict    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS outcomes (
	run_id  TEXT NOT NULL REFERENCES runs(id),
	backend TEXT NOT NULL,
	ok      INTEGER NOT NULL,
	message TEXT NOT NULL,
	error   TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_runs_verdict ON runs(verdict);
`

// Store wraps the results database.
type Store struct {
	db *sql.DB
}

// RunRecord is one persisted run, as read back from the database.
type RunRecord struct {
	ID      string
	Seed    int64
	Options string
	Source  string
	Verdict string
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun persists one run and its per-backend outcomes. options is the
// serialized configuration the run was generated under.
func (s *Store) RecordRun(result harness.RunResult, seed int64, options, source string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, created_at, seed, options, source, verdict) VALUES (?, ?, ?, ?, ?, ?)`,
		result.ID, time.Now().UTC().Format(time.RFC3339), seed, options, source, result.Verdict.String(),
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", result.ID, err)
	}

	for _, o := range result.Outcomes {
		errText := ""
		if o.Err != nil {
			errText = o.Err.Error()
		}
		_, err = tx.Exec(
			`INSERT INTO outcomes (run_id, backend, ok, message, error) VALUES (?, ?, ?, ?, ?)`,
			result.ID, o.Backend, boolToInt(o.OK), o.Message, errText,
		)
		if err != nil {
			return fmt.Errorf("inserting outcome for %s: %w", o.Backend, err)
		}
	}

	return tx.Commit()
}

// Divergences returns every run on which the backends disagreed, newest
// first.
func (s *Store) Divergences() ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, seed, options, source, verdict FROM runs WHERE verdict != 'agree' ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying divergences: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.Seed, &r.Options, &r.Source, &r.Verdict); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
