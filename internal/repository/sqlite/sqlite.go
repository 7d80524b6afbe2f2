// Package sqlite implements the repository interfaces on SQLite.
//
// SQLite is embedded — a single file, no server to run. That fits this
// deployment: one process, low write volume (account signups and the admin
// skill form). modernc.org/sqlite is a pure Go translation of the SQLite C
// code, so no CGo and painless cross-compilation.
//
// The database is optional for the server as a whole: without it the skill
// listing falls back to the fixed in-memory set, skill writes are refused,
// and accounts live in the in-memory store instead.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements the repository interfaces.
type DB struct {
	conn *sql.DB
}

// New creates a SQLite database connection and runs migrations.
//
// dbPath examples:
//   - "data/wiki.db"  → file-based database (persistent)
//   - ":memory:"      → in-memory database (tests)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// sql.Open only creates the pool; Ping forces a real connection so a bad
	// path or permissions problem surfaces at startup, not on first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight — needed the moment
	// two HTTP requests overlap.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this safe to
// run on every startup.
func (db *DB) migrate() error {
	// Accounts. The UNIQUE constraint on email is the uniqueness invariant —
	// the service checks first for a friendly error, the constraint backstops it.
	// reset_token/reset_token_expires are NULL except while a reset is pending.
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id                  TEXT PRIMARY KEY,
			email               TEXT NOT NULL UNIQUE,
			password_hash       TEXT NOT NULL DEFAULT '',
			name                TEXT NOT NULL DEFAULT '',
			created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			reset_token         TEXT,
			reset_token_expires DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_users_reset_token ON users(reset_token);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// Skill records. Optional fields are nullable; tags/specialization/effects
	// hold JSON text. cast_time is TEXT because it is either a numeric value
	// in seconds or a free-text label.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS skills (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			class          TEXT NOT NULL,
			level          INTEGER NOT NULL,
			type           TEXT NOT NULL,
			usage_type     TEXT NOT NULL,
			element        TEXT,
			cooldown       INTEGER NOT NULL,
			mp_cost        INTEGER NOT NULL,
			"range"        INTEGER NOT NULL,
			cast_time      TEXT NOT NULL,
			description    TEXT NOT NULL,
			groggy_gauge   INTEGER,
			max_charge     INTEGER,
			tags           TEXT,
			target         TEXT,
			specialization TEXT,
			effects        TEXT,
			icon           TEXT,
			created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_skills_class ON skills(class);
		CREATE INDEX IF NOT EXISTS idx_skills_level_name ON skills(level DESC, name ASC);
	`)
	if err != nil {
		return fmt.Errorf("creating skills table: %w", err)
	}

	return nil
}
