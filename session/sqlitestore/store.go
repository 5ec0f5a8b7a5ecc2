// Package sqlitestore backs the session token store with a terminal-local
// SQLite database, for installations that already keep one on disk.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/comanda-pos/sdk-go/session"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS session_tokens (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// Store persists token material in a session_tokens table. The database is
// opened lazily on first use; until the open handshake succeeds every
// operation reports session.ErrStorageUnavailable, so the session layer's
// retry and memory-cache fallback apply unchanged.
type Store struct {
	dsn string

	mu sync.Mutex
	db *sql.DB
}

// NewStore returns a store for the given SQLite DSN. The file (and schema)
// are created on first use.
func NewStore(dsn string) *Store {
	return &Store{dsn: dsn}
}

func (s *Store) conn(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}
	db, err := sql.Open("sqlite", s.dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", session.ErrStorageUnavailable, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", session.ErrStorageUnavailable, err)
	}
	s.db = db
	return db, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return "", err
	}
	var value string
	err = db.QueryRowContext(ctx, `SELECT value FROM session_tokens WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", session.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", session.ErrStorageUnavailable, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO session_tokens (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("%w: %v", session.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM session_tokens WHERE key = ?`, key); err != nil {
		return fmt.Errorf("%w: %v", session.ErrStorageUnavailable, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
