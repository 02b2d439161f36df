package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const defaultTimeout = 5 * time.Second

// timeLayout is how timestamps are stored in TEXT columns, always UTC.
const timeLayout = "2006-01-02 15:04:05"

// Config captures the settings required to open the SQLite database.
type Config struct {
	Path    string
	Timeout time.Duration
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	role       TEXT,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS clients (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	name         TEXT NOT NULL,
	email        TEXT,
	phone        TEXT,
	company      TEXT,
	industry     TEXT,
	status       TEXT NOT NULL DEFAULT 'active',
	value        INTEGER,
	created_at   TEXT NOT NULL,
	last_contact TEXT
);

CREATE TABLE IF NOT EXISTS user_clients (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id      INTEGER NOT NULL REFERENCES users(id),
	client_id    INTEGER NOT NULL REFERENCES clients(id),
	access_level TEXT NOT NULL DEFAULT 'read',
	assigned_at  TEXT NOT NULL,
	UNIQUE(user_id, client_id)
);

CREATE INDEX IF NOT EXISTS idx_user_clients_user ON user_clients(user_id);
`

// Open opens the database file, applies connection pragmas, creates the
// schema if missing, and verifies connectivity with a ping.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	openCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(openCtx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	if _, err := db.ExecContext(openCtx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	if err := db.PingContext(openCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}

	return db, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
