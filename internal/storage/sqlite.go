// Package storage provides SQLite-based persistence for the run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// dataRelPath is the database location relative to the XDG data dirs.
const dataRelPath = "onedrop/runs.db"

// Store manages the SQLite database connection for the run history.
// It is safe for concurrent use; the SSH server shares one Store.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished run.
type RunRecord struct {
	ID        int64
	LayoutID  string
	Outcome   string  // "success", "evaporated", "crushed", "caught"
	Seconds   float64 // Run time when it ended
	Cause     string  // Final status message
	Player    string  // SSH user; empty for local play
	CreatedAt time.Time
}

// Success reports whether the run reached the goal.
func (r RunRecord) Success() bool {
	return r.Outcome == OutcomeSuccess
}

// OutcomeSuccess is the stored outcome of a completed run.
const OutcomeSuccess = "success"

// LayoutStats contains aggregated statistics for a layout.
type LayoutStats struct {
	LayoutID   string
	Runs       int
	Successes  int
	BestTime   float64 // Fastest success; 0 if none
	AvgTime    float64 // Mean success time; 0 if none
	LastPlayed time.Time
}

// SuccessRate returns the fraction of runs that reached the goal.
func (s LayoutStats) SuccessRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Runs)
}

// DefaultPath returns the database path under the XDG data home,
// creating its parent directory.
func DefaultPath() (string, error) {
	p, err := xdg.DataFile(dataRelPath)
	if err != nil {
		return "", fmt.Errorf("storage: cannot resolve data path: %w", err)
	}
	return p, nil
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// An empty path opens the default location.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		dbPath = p
	}

	// Expand ~ to home directory
	if dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite has a single writer; share one connection between sessions.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			layout_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			seconds REAL NOT NULL,
			cause TEXT NOT NULL DEFAULT '',
			player TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_layout ON runs(layout_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(layout_id, outcome, seconds);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	if r.LayoutID == "" {
		return 0, errors.New("storage: run has no layout id")
	}

	result, err := s.db.Exec(
		"INSERT INTO runs (layout_id, outcome, seconds, cause, player) VALUES (?, ?, ?, ?, ?)",
		r.LayoutID, r.Outcome, r.Seconds, r.Cause, r.Player,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, layout_id, outcome, seconds, cause, player, created_at`

// BestTimes retrieves the fastest successful runs for a layout.
// Results are ordered by time ascending.
func (s *Store) BestTimes(layoutID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE layout_id = ? AND outcome = ?
		 ORDER BY seconds ASC, id ASC
		 LIMIT ?`,
		layoutID, OutcomeSuccess, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best times: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns retrieves the latest runs, newest first.
// An empty layoutID returns runs of every layout.
func (s *Store) RecentRuns(layoutID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var (
		rows *sql.Rows
		err  error
	)
	if layoutID == "" {
		rows, err = s.db.Query(
			`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`,
			limit,
		)
	} else {
		rows, err = s.db.Query(
			`SELECT `+runColumns+` FROM runs WHERE layout_id = ? ORDER BY id DESC LIMIT ?`,
			layoutID, limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// BestTime returns the fastest successful run time for a layout.
// The second result is false if the layout was never completed.
func (s *Store) BestTime(layoutID string) (float64, bool, error) {
	var best sql.NullFloat64
	err := s.db.QueryRow(
		"SELECT MIN(seconds) FROM runs WHERE layout_id = ? AND outcome = ?",
		layoutID, OutcomeSuccess,
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}
	if !best.Valid {
		return 0, false, nil
	}
	return best.Float64, true, nil
}

// ClearRuns deletes the history of a layout.
func (s *Store) ClearRuns(layoutID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE layout_id = ?", layoutID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// GetLayoutStats retrieves aggregated statistics for a specific layout.
func (s *Store) GetLayoutStats(layoutID string) (*LayoutStats, error) {
	stats := &LayoutStats{LayoutID: layoutID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(CASE WHEN outcome = ? THEN seconds END), 0),
		        COALESCE(AVG(CASE WHEN outcome = ? THEN seconds END), 0),
		        MAX(created_at)
		 FROM runs WHERE layout_id = ?`,
		OutcomeSuccess, OutcomeSuccess, OutcomeSuccess, layoutID,
	).Scan(&stats.Runs, &stats.Successes, &stats.BestTime, &stats.AvgTime, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get layout stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllLayoutStats retrieves statistics for every layout that has runs.
func (s *Store) GetAllLayoutStats() (map[string]*LayoutStats, error) {
	rows, err := s.db.Query(
		`SELECT layout_id, COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(CASE WHEN outcome = ? THEN seconds END), 0),
		        COALESCE(AVG(CASE WHEN outcome = ? THEN seconds END), 0),
		        MAX(created_at)
		 FROM runs
		 GROUP BY layout_id`,
		OutcomeSuccess, OutcomeSuccess, OutcomeSuccess,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all layout stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LayoutStats)
	for rows.Next() {
		var st LayoutStats
		var lastPlayed any
		if err := rows.Scan(&st.LayoutID, &st.Runs, &st.Successes, &st.BestTime, &st.AvgTime, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.LayoutID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LayoutID, &r.Outcome, &r.Seconds, &r.Cause, &r.Player, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
