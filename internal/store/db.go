// Package store persists the saved palette collection and the chosen theme in a
// small sqlite key-value table.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

// Keys used in the kv table.
const (
	KeySavedPalettes = "savedPalettes"
	KeyTheme         = "theme"
)

// KV is the local persistence boundary.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// DB is a sqlite-backed KV. Read-modify-write sequences additionally hold a
// file lock so a CLI command and a running TUI never clobber each other.
type DB struct {
	db   *sql.DB
	mu   sync.Mutex // flock does not exclude goroutines sharing one handle
	lock *flock.Flock
}

// Open opens (creating if needed) the database at path. lockPath may be empty
// to skip cross-process locking.
func Open(path, lockPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	query := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER
	);
	`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	s := &DB{db: db}
	if lockPath != "" {
		s.lock = flock.New(lockPath)
	}
	return s, nil
}

// Close closes the database connection
func (s *DB) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the value stored under key.
func (s *DB) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *DB) Set(key, value string) error {
	return s.withTx(func(tx *sql.Tx) error {
		return setTx(tx, key, value)
	})
}

// Update runs fn on the current value of key and stores its result, all under
// the file lock and a single transaction.
func (s *DB) Update(key string, fn func(value string, ok bool) (string, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lock != nil {
		if err := s.lock.Lock(); err != nil {
			return fmt.Errorf("failed to lock store: %w", err)
		}
		defer s.lock.Unlock()
	}

	return s.withTx(func(tx *sql.Tx) error {
		var value string
		ok := true
		err := tx.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
		if errors.Is(err, sql.ErrNoRows) {
			ok = false
		} else if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}

		next, err := fn(value, ok)
		if err != nil {
			return err
		}
		return setTx(tx, key, next)
	})
}

func setTx(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Transaction helper
func (s *DB) withTx(fn func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
