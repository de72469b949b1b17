// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package journal

import (
	"context"
	"fmt"
	"log/slog"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Config holds the parameters for opening a journal. Path is required;
// all other fields have defaults.
type Config struct {
	// Path is the filesystem path to the SQLite database file. The
	// parent directory must exist. The file is created if it does not
	// exist. Use ":memory:" with PoolSize 1 for tests.
	Path string

	// PoolSize is the number of connections in the pool. If zero or
	// negative, defaults to 2. The journal is write-light — one
	// connection covers the session write path, a second serves
	// concurrent history reads.
	PoolSize int

	// Logger receives operational messages. If nil, a no-op logger is
	// used.
	Logger *slog.Logger
}

// Journal is a SQLite-backed store for session history and cached
// analysis results.
//
// Journal is safe for concurrent use. Connections are pooled
// internally; every method borrows one for the duration of the call.
type Journal struct {
	pool   *sqlitex.Pool
	logger *slog.Logger
	path   string
}

// schema is applied to every connection. CREATE IF NOT EXISTS keeps it
// idempotent across connections and process restarts.
const schema = `
	CREATE TABLE IF NOT EXISTS sessions (
		id         INTEGER PRIMARY KEY,
		name       TEXT NOT NULL,
		editor     TEXT NOT NULL,
		width      INTEGER NOT NULL,
		height     INTEGER NOT NULL,
		recording  TEXT,
		started_at INTEGER NOT NULL,
		stopped_at INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at);
	CREATE INDEX IF NOT EXISTS idx_sessions_name ON sessions(name, started_at);

	CREATE TABLE IF NOT EXISTS analyses (
		digest          TEXT PRIMARY KEY,
		recording       TEXT NOT NULL,
		mode            TEXT NOT NULL,
		model           TEXT NOT NULL,
		summarize_model TEXT NOT NULL DEFAULT '',
		result          TEXT NOT NULL,
		created_at      INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at);
`

// Open creates the journal database if needed and opens a connection
// pool against it. The first connection is established eagerly so that
// an unwritable path or corrupt database surfaces here rather than on
// the first write. The caller must call Close when done.
func Open(cfg Config) (*Journal, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("journal: Path is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 2
	}

	pool, err := sqlitex.NewPool(cfg.Path, sqlitex.PoolOptions{
		PoolSize:    poolSize,
		PrepareConn: prepareConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("journal: opening %s: %w", cfg.Path, err)
	}

	journal := &Journal{
		pool:   pool,
		logger: logger,
		path:   cfg.Path,
	}

	// Connections initialize lazily; force the first one now so that
	// pragma and schema failures are reported by Open.
	conn, err := pool.Take(context.Background())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("journal: initializing %s: %w", cfg.Path, err)
	}
	pool.Put(conn)

	logger.Info("journal opened", "path", cfg.Path, "pool_size", poolSize)
	return journal, nil
}

// Close closes all connections in the pool. Blocks until all borrowed
// connections are returned.
func (j *Journal) Close() error {
	if err := j.pool.Close(); err != nil {
		return fmt.Errorf("journal: closing %s: %w", j.path, err)
	}
	return nil
}

// prepareConnection applies pragmas and the schema. Runs once per
// pooled connection, on first use.
func prepareConnection(conn *sqlite.Conn) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("journal: %s: %w", pragma, err)
		}
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return fmt.Errorf("journal: applying schema: %w", err)
	}
	return nil
}
