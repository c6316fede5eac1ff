package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS first_run (
	key          TEXT PRIMARY KEY,
	triggered_at TEXT NOT NULL,
	updated_at   TEXT NOT NULL
);
`

// instantFormat is the persisted timestamp format. RFC3339 keeps the
// zone offset, so calendar-boundary comparisons see the original wall
// clock after a round trip.
const instantFormat = time.RFC3339

// SQLiteStore is a SQLite-backed first-run store.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite-backed store at the provided path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite store: db path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite store: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: open db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite store: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite store: create schema: %w", err)
	}
	return nil
}

// Get returns the stored instant for key and whether a record exists.
func (s *SQLiteStore) Get(key string) (time.Time, bool, error) {
	var raw string
	err := s.db.QueryRow("SELECT triggered_at FROM first_run WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("sqlite store: get: %w", err)
	}

	at, err := time.Parse(instantFormat, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("sqlite store: parse stored instant %q: %w", raw, err)
	}
	return at, true, nil
}

// Put records the instant for key, replacing any existing record.
func (s *SQLiteStore) Put(key string, at time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO first_run (key, triggered_at, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET triggered_at = excluded.triggered_at, updated_at = excluded.updated_at`,
		key, at.Format(instantFormat), time.Now().UTC().Format(instantFormat),
	)
	if err != nil {
		return fmt.Errorf("sqlite store: put: %w", err)
	}
	return nil
}

// Delete removes the record for key. Deleting a missing key is not an error.
func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM first_run WHERE key = ?", key); err != nil {
		return fmt.Errorf("sqlite store: delete: %w", err)
	}
	return nil
}

// Close closes the underlying SQLite connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
