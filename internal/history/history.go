// Package history persists work time report runs in a local SQLite database.
package history

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"worktally/pkg/output"
)

// Store records and lists report runs.
type Store struct {
	db *sql.DB
}

// Run is one recorded report invocation.
type Run struct {
	ID          int64
	RanAt       time.Time
	Sources     []string
	LoginFilter string
	Users       int
	Diagnostics int
}

// Total is one login's accumulated seconds within a run.
type Total struct {
	Login   string
	Seconds float64
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	store := &Store{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) init() error {
	runsQuery := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ran_at TEXT NOT NULL,
		sources TEXT NOT NULL,
		login_filter TEXT NOT NULL DEFAULT '',
		users INTEGER NOT NULL,
		diagnostics INTEGER NOT NULL
	)
	`
	if _, err := s.db.Exec(runsQuery); err != nil {
		return fmt.Errorf("initializing history schema: %w", err)
	}

	totalsQuery := `
	CREATE TABLE IF NOT EXISTS run_totals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		login TEXT NOT NULL,
		seconds REAL NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	)
	`
	if _, err := s.db.Exec(totalsQuery); err != nil {
		return fmt.Errorf("initializing history schema: %w", err)
	}
	return nil
}

// RecordRun stores a report and returns the new run id.
func (s *Store) RecordRun(report *output.Report) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (ran_at, sources, login_filter, users, diagnostics) VALUES (?, ?, ?, ?, ?)",
		report.Metadata.AnalyzedAt.Format(time.RFC3339),
		strings.Join(report.Metadata.Sources, "\n"),
		report.Metadata.Login,
		report.Summary.Users,
		report.Summary.Diagnostics,
	)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}

	logins := make([]string, 0, len(report.Totals))
	for login := range report.Totals {
		logins = append(logins, login)
	}
	sort.Strings(logins)

	for _, login := range logins {
		_, err := s.db.Exec(
			"INSERT INTO run_totals (run_id, login, seconds) VALUES (?, ?, ?)",
			runID, login, report.Totals[login],
		)
		if err != nil {
			return 0, fmt.Errorf("recording totals for run %d: %w", runID, err)
		}
	}

	return runID, nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		"SELECT id, ran_at, sources, login_filter, users, diagnostics FROM runs ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ranAt, sources string
		if err := rows.Scan(&r.ID, &ranAt, &sources, &r.LoginFilter, &r.Users, &r.Diagnostics); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.RanAt, _ = time.Parse(time.RFC3339, ranAt)
		if sources != "" {
			r.Sources = strings.Split(sources, "\n")
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunTotals returns the per-login totals of one run, sorted by login.
func (s *Store) RunTotals(runID int64) ([]Total, error) {
	rows, err := s.db.Query(
		"SELECT login, seconds FROM run_totals WHERE run_id = ? ORDER BY login",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing totals for run %d: %w", runID, err)
	}
	defer rows.Close()

	var totals []Total
	for rows.Next() {
		var t Total
		if err := rows.Scan(&t.Login, &t.Seconds); err != nil {
			return nil, fmt.Errorf("scanning total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
