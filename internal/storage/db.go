// Package storage persists captured leads and their assessment snapshots in
// an embedded SQLite database.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS leads (
	session_id            TEXT PRIMARY KEY,
	name                  TEXT NOT NULL,
	email                 TEXT NOT NULL,
	phone                 TEXT NOT NULL DEFAULT '',
	consent               INTEGER NOT NULL DEFAULT 0,
	age                   INTEGER,
	household_type        TEXT NOT NULL DEFAULT '',
	employment            TEXT NOT NULL DEFAULT '',
	score_overall         INTEGER NOT NULL DEFAULT 0,
	score_liquidity       INTEGER NOT NULL DEFAULT 0,
	score_wealth          INTEGER NOT NULL DEFAULT 0,
	score_protection      INTEGER NOT NULL DEFAULT 0,
	score_retirement      INTEGER NOT NULL DEFAULT 0,
	score_debt            INTEGER NOT NULL DEFAULT 0,
	recommended_modules   TEXT NOT NULL DEFAULT '',
	profile_json          TEXT NOT NULL,
	created_at            INTEGER NOT NULL,
	updated_at            INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email);
`

// DB wraps the leads database connection.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens (or creates) the leads database at path and applies the schema.
func Open(path string) (*DB, error) {
	if !strings.HasPrefix(path, "file:") {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		path = absPath
	}

	conn, err := sql.Open("sqlite", connectionString(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open leads database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxIdleTime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping leads database: %w", err)
	}

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to apply leads schema: %w", err)
	}

	return &DB{conn: conn, path: path}, nil
}

// connectionString builds the SQLite connection string with WAL mode and the
// standard durability pragmas.
func connectionString(path string) string {
	return path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=foreign_keys(1)" +
		"&_pragma=temp_store(MEMORY)" +
		"&_pragma=cache_size(-16000)"
}

// Conn returns the underlying sql.DB connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
