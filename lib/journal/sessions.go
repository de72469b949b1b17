// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package journal

import (
	"context"
	"fmt"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// SessionRecord is one row of session history.
type SessionRecord struct {
	ID        int64
	Name      string
	Editor    string
	Width     int
	Height    int
	Recording string    // recording file path, empty when the session was not recorded
	StartedAt time.Time
	StoppedAt time.Time // zero while the session is still open
}

// Running reports whether the record has no stop time yet. A record
// can remain open forever if the process that started the session was
// killed before it could record the stop.
func (r SessionRecord) Running() bool {
	return r.StoppedAt.IsZero()
}

// RecordStart inserts a session row and returns its id. ID, StoppedAt
// and any zero fields of the given record are ignored; StartedAt is
// required.
func (j *Journal) RecordStart(ctx context.Context, record SessionRecord) (int64, error) {
	if record.StartedAt.IsZero() {
		return 0, fmt.Errorf("journal: record start: StartedAt is required")
	}

	conn, err := j.pool.Take(ctx)
	if err != nil {
		return 0, fmt.Errorf("journal: record start: %w", err)
	}
	defer j.pool.Put(conn)

	var recording any
	if record.Recording != "" {
		recording = record.Recording
	}

	var id int64
	err = sqlitex.Execute(conn, `INSERT INTO sessions
		(name, editor, width, height, recording, started_at)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		&sqlitex.ExecOptions{
			Args: []any{
				record.Name,
				record.Editor,
				record.Width,
				record.Height,
				recording,
				record.StartedAt.UnixNano(),
			},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				id = stmt.ColumnInt64(0)
				return nil
			},
		})
	if err != nil {
		return 0, fmt.Errorf("journal: record start %s: %w", record.Name, err)
	}

	j.logger.Debug("session start recorded", "name", record.Name, "id", id)
	return id, nil
}

// RecordStop closes every open row for the named session. Live session
// names are unique, so at most one open row is current; older open
// rows belong to runs that never recorded their stop and get this stop
// time as their best available bound. A name with no open rows is not
// an error.
func (j *Journal) RecordStop(ctx context.Context, name string, stoppedAt time.Time) error {
	conn, err := j.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("journal: record stop: %w", err)
	}
	defer j.pool.Put(conn)

	err = sqlitex.Execute(conn,
		"UPDATE sessions SET stopped_at = ? WHERE name = ? AND stopped_at IS NULL",
		&sqlitex.ExecOptions{
			Args: []any{stoppedAt.UnixNano(), name},
		})
	if err != nil {
		return fmt.Errorf("journal: record stop %s: %w", name, err)
	}

	j.logger.Debug("session stop recorded", "name", name)
	return nil
}

// OpenSessions returns the records with no stop time, newest first.
// These are the sessions the journal believes are still running; a row
// can outlive its session when the stopping process was killed, so
// callers joining against live state must treat misses as stale rows,
// not errors.
func (j *Journal) OpenSessions(ctx context.Context) ([]SessionRecord, error) {
	conn, err := j.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("journal: open sessions: %w", err)
	}
	defer j.pool.Put(conn)

	var records []SessionRecord
	err = sqlitex.Execute(conn, `SELECT
		id, name, editor, width, height, recording, started_at
		FROM sessions WHERE stopped_at IS NULL ORDER BY started_at DESC`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				record := SessionRecord{
					ID:        stmt.ColumnInt64(0),
					Name:      stmt.ColumnText(1),
					Editor:    stmt.ColumnText(2),
					Width:     stmt.ColumnInt(3),
					Height:    stmt.ColumnInt(4),
					StartedAt: time.Unix(0, stmt.ColumnInt64(6)),
				}
				if !stmt.ColumnIsNull(5) {
					record.Recording = stmt.ColumnText(5)
				}
				records = append(records, record)
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("journal: open sessions: %w", err)
	}
	return records, nil
}

// History returns session records sorted by start time descending
// (newest first). Open records are included with a zero StoppedAt.
// If limit is zero or negative, it defaults to 50.
func (j *Journal) History(ctx context.Context, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	conn, err := j.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("journal: history: %w", err)
	}
	defer j.pool.Put(conn)

	var records []SessionRecord
	err = sqlitex.Execute(conn, `SELECT
		id, name, editor, width, height, recording, started_at, stopped_at
		FROM sessions ORDER BY started_at DESC LIMIT ?`,
		&sqlitex.ExecOptions{
			Args: []any{limit},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				record := SessionRecord{
					ID:        stmt.ColumnInt64(0),
					Name:      stmt.ColumnText(1),
					Editor:    stmt.ColumnText(2),
					Width:     stmt.ColumnInt(3),
					Height:    stmt.ColumnInt(4),
					StartedAt: time.Unix(0, stmt.ColumnInt64(6)),
				}
				if !stmt.ColumnIsNull(5) {
					record.Recording = stmt.ColumnText(5)
				}
				if !stmt.ColumnIsNull(7) {
					record.StoppedAt = time.Unix(0, stmt.ColumnInt64(7))
				}
				records = append(records, record)
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("journal: history: %w", err)
	}
	return records, nil
}
