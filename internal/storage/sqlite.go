// Package storage provides SQLite-based persistence for the ranked score
// list and the run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/lane-dodge/internal/highscore"
)

const sqliteDateTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry is one finished run in the history.
type RunEntry struct {
	ID           string
	Variant      string
	Score        int
	Ticks        int
	SpeedProfile string
	CreatedAt    time.Time
}

// RunStats summarizes the history of one variant.
type RunStats struct {
	Variant string
	Runs    int
	Best    int
	Average float64
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One connection: SSH sessions share the store and SQLite has a single writer.
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS ranked_lists (
			name TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			speed_profile TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_variant ON runs(variant);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// List returns a highscore backend persisting the named list as one row.
func (s *Store) List(name string) highscore.Backend {
	return &listBackend{db: s.db, name: name}
}

type listBackend struct {
	db   *sql.DB
	name string
}

// Load returns the stored document, or nil when the list was never written.
func (b *listBackend) Load() ([]byte, error) {
	var body string
	err := b.db.QueryRow("SELECT body FROM ranked_lists WHERE name = ?", b.name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load list %q: %w", b.name, err)
	}
	return []byte(body), nil
}

// Replace swaps the whole document in a single statement.
func (b *listBackend) Replace(data []byte) error {
	_, err := b.db.Exec(
		`INSERT INTO ranked_lists (name, body, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		b.name, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot replace list %q: %w", b.name, err)
	}
	return nil
}

// SaveRun records a finished run and returns its generated ID.
func (s *Store) SaveRun(variant string, score, ticks int, speedProfile string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO runs (id, variant, score, ticks, speed_profile) VALUES (?, ?, ?, ?, ?)",
		id, variant, score, ticks, speedProfile,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return id, nil
}

// RecentRuns retrieves the most recent runs, newest first.
// An empty variant matches every variant.
func (s *Store) RecentRuns(variant string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, variant, score, ticks, speed_profile, created_at
		 FROM runs
		 WHERE ? = '' OR variant = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Variant, &e.Score, &e.Ticks, &e.SpeedProfile, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Stats aggregates the history per variant, sorted by variant.
func (s *Store) Stats() ([]RunStats, error) {
	rows, err := s.db.Query(
		`SELECT variant, COUNT(*), MAX(score), AVG(score)
		 FROM runs
		 GROUP BY variant
		 ORDER BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run stats: %w", err)
	}
	defer rows.Close()

	var stats []RunStats
	for rows.Next() {
		var st RunStats
		if err := rows.Scan(&st.Variant, &st.Runs, &st.Best, &st.Average); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearRuns deletes the run history. An empty variant clears everything.
// The ranked lists are not touched.
func (s *Store) ClearRuns(variant string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR variant = ?", variant, variant)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared runs: %w", err)
	}
	return n, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteDateTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
