package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type sqliteBackend struct {
	db   *sql.DB
	path string
}

func openSQLite(dbPath string) (*sqliteBackend, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, errors.New("store: sqlite path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("store: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: exec %q: %w", p, err)
		}
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS records (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ensure schema: %w", err)
	}
	return &sqliteBackend{db: db, path: dbPath}, nil
}

func (s *sqliteBackend) read(ctx context.Context, key string) ([]byte, error) {
	var val string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(val), nil
}

func (s *sqliteBackend) write(ctx context.Context, key string, val []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(val), time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

func (s *sqliteBackend) keys(ctx context.Context, prefix string) []string {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM records WHERE substr(key, 1, ?) = ? ORDER BY key`, len(prefix), prefix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: list keys: %v\n", err)
		return nil
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			fmt.Fprintf(os.Stderr, "store: scan key: %v\n", err)
			continue
		}
		out = append(out, key)
	}
	if err := rows.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "store: list keys: %v\n", err)
	}
	return out
}

func (s *sqliteBackend) watchRoot() (string, bool) { return filepath.Dir(s.path), false }

// keyForPath only recognises the database and its -wal/-shm siblings. It
// cannot tell which row changed.
func (s *sqliteBackend) keyForPath(path string) (string, bool) {
	return "", strings.HasPrefix(filepath.Base(path), filepath.Base(s.path))
}

func (s *sqliteBackend) close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
