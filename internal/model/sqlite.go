package model

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// #region schema

const kvSchema = `
CREATE TABLE IF NOT EXISTS predictor_models (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);
`

// #endregion schema

// #region sqlite-repo

// SQLiteRepository is the durable Repository implementation.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens a SQLite database and runs migrations.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(kvSchema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// NewSQLiteRepositoryWithDB runs migrations against an existing
// connection, sharing a database with the round-log store.
func NewSQLiteRepositoryWithDB(db *sql.DB) (*SQLiteRepository, error) {
	if _, err := db.Exec(kvSchema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Close closes the underlying database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages.
func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

// Get implements Repository.
func (r *SQLiteRepository) Get(key string) ([]byte, bool, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM predictor_models WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Set implements Repository.
func (r *SQLiteRepository) Set(key string, value []byte) error {
	_, err := r.db.Exec(
		`INSERT INTO predictor_models (key, value, updated_at)
		 VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Remove implements Repository.
func (r *SQLiteRepository) Remove(key string) error {
	if _, err := r.db.Exec(`DELETE FROM predictor_models WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// #endregion sqlite-repo
