// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vimpilot/vimpilot/cmd/vimpilot/cli"
	"github.com/vimpilot/vimpilot/lib/config"
	"github.com/vimpilot/vimpilot/lib/journal"
	libsession "github.com/vimpilot/vimpilot/lib/session"
	"github.com/vimpilot/vimpilot/lib/tmux"
)

// newManager builds a session manager against the configured tmux
// server. Every subcommand goes through here so the socket path,
// editor command, and timing defaults come from one place.
func newManager(cfg *config.Config, logger *slog.Logger) (*libsession.Manager, error) {
	server := tmux.NewServer(cfg.Server.SocketPath, cfg.Server.ConfigFile)

	manager, err := libsession.NewManager(libsession.Config{
		Server:         server,
		DefaultName:    cfg.Session.DefaultName,
		Editor:         cfg.Session.Editor,
		RecordingsDir:  cfg.Paths.Recordings,
		RecorderBinary: cfg.Recorder.Binary,
		Width:          cfg.Session.Width,
		Height:         cfg.Session.Height,
		SettleDelay:    cfg.SettleDelay(),
		PollInterval:   cfg.PollInterval(),
		WaitTimeout:    cfg.WaitTimeout(),
		Logger:         logger,
	})
	if err != nil {
		return nil, cli.Internal("session manager: %w", err)
	}
	return manager, nil
}

// targetName resolves the session a command operates on: the explicit
// name when given, otherwise the configured default.
func targetName(cfg *config.Config, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return cfg.Session.DefaultName
}

// mapError converts session-layer failures into categorized tool
// errors so CLI exit paths and MCP clients both see the right
// category.
func mapError(err error) error {
	var timeout *libsession.PatternTimeoutError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, libsession.ErrSessionExists):
		return cli.Conflict("%v", err).
			WithHint("Pick another name, or stop the existing session with 'vimpilot session stop'.")
	case errors.Is(err, libsession.ErrSessionNotFound):
		return cli.NotFound("%v", err).
			WithHint("Run 'vimpilot session list' to see live sessions.")
	case errors.As(err, &timeout):
		return cli.Transient("%v", err)
	}
	return cli.Internal("%v", err)
}

// recordStart writes a session-start row to the journal when enabled.
// Journal failures are logged, not returned: the session is already
// running, and the journal is an audit trail, not a prerequisite.
func recordStart(ctx context.Context, cfg *config.Config, logger *slog.Logger, record journal.SessionRecord) {
	if !cfg.Journal.Enabled {
		return
	}
	j, err := journal.Open(journal.Config{Path: cfg.Journal.Path, Logger: logger})
	if err != nil {
		logger.Warn("journal open failed", "error", err)
		return
	}
	defer j.Close()

	if _, err := j.RecordStart(ctx, record); err != nil {
		logger.Warn("journal record failed", "name", record.Name, "error", err)
	}
}

// openRecords returns the journal's open rows keyed by session name,
// for joining journal state onto live tmux sessions. Best-effort like
// the writers: disabled or failing journals yield nil, and the caller
// renders tmux state alone.
func openRecords(ctx context.Context, cfg *config.Config, logger *slog.Logger) map[string]journal.SessionRecord {
	if !cfg.Journal.Enabled {
		return nil
	}
	j, err := journal.Open(journal.Config{Path: cfg.Journal.Path, Logger: logger})
	if err != nil {
		logger.Warn("journal open failed", "error", err)
		return nil
	}
	defer j.Close()

	records, err := j.OpenSessions(ctx)
	if err != nil {
		logger.Warn("journal read failed", "error", err)
		return nil
	}

	byName := make(map[string]journal.SessionRecord, len(records))
	for _, record := range records {
		// Newest first, so the first row per name wins; older open
		// rows are leftovers from interrupted runs.
		if _, ok := byName[record.Name]; !ok {
			byName[record.Name] = record
		}
	}
	return byName
}

// recordStop closes the open journal rows for stopped sessions. Same
// best-effort contract as recordStart.
func recordStop(ctx context.Context, cfg *config.Config, logger *slog.Logger, names []string) {
	if !cfg.Journal.Enabled || len(names) == 0 {
		return
	}
	j, err := journal.Open(journal.Config{Path: cfg.Journal.Path, Logger: logger})
	if err != nil {
		logger.Warn("journal open failed", "error", err)
		return
	}
	defer j.Close()

	stoppedAt := time.Now()
	for _, name := range names {
		if err := j.RecordStop(ctx, name, stoppedAt); err != nil {
			logger.Warn("journal record failed", "name", name, "error", err)
		}
	}
}
