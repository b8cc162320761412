// internal/manifest/manifest.go
package manifest

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS stage_runs (
	run_id      TEXT PRIMARY KEY,
	stage       TEXT NOT NULL,
	inputs      TEXT NOT NULL,
	outputs     TEXT NOT NULL,
	rows        INTEGER NOT NULL,
	started_at  TEXT NOT NULL,
	duration_ms INTEGER NOT NULL
);`

// Recorder appends one provenance row per stage execution to an embedded
// SQLite ledger. It is a soft collaborator: every stage keeps running when
// recording fails, and a nil *Recorder is a no-op, so the pipeline works
// identically with the manifest disabled.
type Recorder struct {
	db *sql.DB
}

// Open creates (or opens) the ledger at path and ensures the schema.
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open manifest %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("manifest schema: %w", err)
	}
	return &Recorder{db: db}, nil
}

// Record inserts one run row. Paths are stored space-joined; rows is the
// number of data rows the stage materialized.
func (r *Recorder) Record(stage string, inputs, outputs []string, rows int, started time.Time) error {
	if r == nil {
		return nil
	}
	_, err := r.db.Exec(
		`INSERT INTO stage_runs (run_id, stage, inputs, outputs, rows, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), stage,
		strings.Join(inputs, " "), strings.Join(outputs, " "),
		rows, started.UTC().Format(time.RFC3339Nano),
		time.Since(started).Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("manifest record %s: %w", stage, err)
	}
	return nil
}

// Runs returns the number of recorded stage executions, optionally
// filtered by stage name ("" counts all).
func (r *Recorder) Runs(stage string) (int, error) {
	if r == nil {
		return 0, nil
	}
	var n int
	var err error
	if stage == "" {
		err = r.db.QueryRow(`SELECT COUNT(*) FROM stage_runs`).Scan(&n)
	} else {
		err = r.db.QueryRow(`SELECT COUNT(*) FROM stage_runs WHERE stage = ?`, stage).Scan(&n)
	}
	return n, err
}

// Close releases the underlying database. Safe on nil.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	return r.db.Close()
}
