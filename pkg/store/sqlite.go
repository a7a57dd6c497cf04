package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	// modernc.org/sqlite registers the "sqlite" driver.
	_ "modernc.org/sqlite"
)

const sqliteFile = "phoneshell.db"

type sqlitePersistence struct {
	db  *sql.DB
	log *slog.Logger
}

func openSQLite(ctx context.Context, basePath string, log *slog.Logger) (*sqlitePersistence, error) {
	if basePath == "" {
		return nil, ErrBasePathUndefined
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(basePath, sqliteFile))
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS kv (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: prepare sqlite: %w", err)
		}
	}
	return &sqlitePersistence{db: db, log: log.With("backend", BackendSQLite)}, nil
}

func (s *sqlitePersistence) Load(key string) (string, bool) {
	if !validKey(key) {
		s.log.Warn("load rejected", "key", key, "err", ErrInvalidKey)
		return "", false
	}
	var v string
	err := s.db.QueryRow(`SELECT v FROM kv WHERE k = ?`, key).Scan(&v)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false
	case err != nil:
		s.log.Warn("load failed", "key", key, "err", err)
		return "", false
	}
	return v, true
}

func (s *sqlitePersistence) Save(key, value string) error {
	if !validKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	_, err := s.db.Exec(`INSERT INTO kv(k, v) VALUES(?, ?)
		ON CONFLICT(k) DO UPDATE SET v = excluded.v`, key, value)
	if err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (s *sqlitePersistence) Keys(ctx context.Context) []string {
	rows, err := s.db.QueryContext(ctx, `SELECT k FROM kv ORDER BY k`)
	if err != nil {
		s.log.Warn("list keys failed", "err", err)
		return nil
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			s.log.Warn("scan key failed", "err", err)
			continue
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		s.log.Warn("list keys failed", "err", err)
	}
	return keys
}

func (s *sqlitePersistence) Watch(context.Context) (<-chan Event, error) {
	return nil, ErrWatchUnsupported
}

func (s *sqlitePersistence) Close() error {
	return s.db.Close()
}
