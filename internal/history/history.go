// Package history keeps a SQLite record of patch runs.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Mavwarf/voxa-build/internal/paths"
	"github.com/Mavwarf/voxa-build/internal/pbxproj"

	_ "modernc.org/sqlite"
)

// Step is one stored step result.
type Step struct {
	Num    int
	Name   string
	Status string
	Hint   string
}

// Run is one stored patch run.
type Run struct {
	ID       int64
	Time     time.Time
	Command  string
	Project  string
	Outcome  string
	DryRun   bool
	GitState string
	Steps    []Step
}

// Store is a history database. Timestamps are stored as UTC RFC3339 so
// they compare correctly as text.
type Store struct {
	db   *sql.DB
	path string
}

const ddl = `
CREATE TABLE IF NOT EXISTS runs (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp TEXT    NOT NULL,
    command   TEXT    NOT NULL,
    project   TEXT    NOT NULL,
    outcome   TEXT    NOT NULL,
    dry_run   INTEGER NOT NULL DEFAULT 0,
    git_state TEXT    NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS step_results (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id   INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    step_num INTEGER NOT NULL,
    name     TEXT    NOT NULL,
    status   TEXT    NOT NULL,
    hint     TEXT    NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_step_results_run ON step_results(run_id);
`

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Set PRAGMAs before any DDL.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a report together with the run's context and returns the
// new run id.
func (s *Store) Record(command, project string, rep pbxproj.Report, dryRun bool, gitState string) (int64, error) {
	return s.record(time.Now(), command, project, rep, dryRun, gitState)
}

func (s *Store) record(ts time.Time, command, project string, rep pbxproj.Report, dryRun bool, gitState string) (int64, error) {
	dry := 0
	if dryRun {
		dry = 1
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (timestamp, command, project, outcome, dry_run, git_state)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ts.UTC().Format(time.RFC3339), command, project, rep.Outcome.String(), dry, gitState,
	)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, r := range rep.Results {
		if _, err := tx.Exec(
			`INSERT INTO step_results (run_id, step_num, name, status, hint)
			 VALUES (?, ?, ?, ?, ?)`,
			runID, i+1, r.Step, r.Status.String(), r.Hint,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// Recent returns the last n runs, newest first, with their steps.
// n <= 0 returns every run.
func (s *Store) Recent(n int) ([]Run, error) {
	query := `SELECT id, timestamp, command, project, outcome, dry_run, git_state
		FROM runs ORDER BY id DESC`
	var args []any
	if n > 0 {
		query += ` LIMIT ?`
		args = append(args, n)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ts string
		var dry int
		if err := rows.Scan(&r.ID, &ts, &r.Command, &r.Project, &r.Outcome, &dry, &r.GitState); err != nil {
			return nil, err
		}
		if r.Time, err = time.Parse(time.RFC3339, ts); err != nil {
			return nil, fmt.Errorf("run %d: bad timestamp %q: %w", r.ID, ts, err)
		}
		r.DryRun = dry != 0
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i := range runs {
		steps, err := s.steps(runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Steps = steps
	}
	return runs, nil
}

func (s *Store) steps(runID int64) ([]Step, error) {
	rows, err := s.db.Query(
		`SELECT step_num, name, status, hint FROM step_results
		 WHERE run_id = ? ORDER BY step_num`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []Step
	for rows.Next() {
		var st Step
		if err := rows.Scan(&st.Num, &st.Name, &st.Status, &st.Hint); err != nil {
			return nil, err
		}
		steps = append(steps, st)
	}
	return steps, rows.Err()
}

// Prune deletes runs older than cutoff. Their step results go with them.
func (s *Store) Prune(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM runs WHERE timestamp < ?`, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
