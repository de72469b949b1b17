// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vimpilot/vimpilot/lib/clock"
	"github.com/vimpilot/vimpilot/lib/tmux"
)

var (
	// ErrSessionExists is returned by Start when a live session
	// already has the requested name.
	ErrSessionExists = errors.New("session already exists")

	// ErrSessionNotFound is returned by operations targeting a name
	// with no live session.
	ErrSessionNotFound = errors.New("session not found")
)

// Multiplexer is the tmux surface the Manager drives. *tmux.Server
// implements it; tests substitute a fake.
type Multiplexer interface {
	NewSession(sessionName string, width, height int, command ...string) error
	HasSession(sessionName string) (bool, error)
	KillSession(sessionName string) error
	SendKeys(sessionName string, keys ...string) error
	SendLiteral(sessionName, text string) error
	CapturePane(sessionName string, maxLines int) (string, error)
	CapturePaneStyled(sessionName string, maxLines int) (string, error)
	ListSessions() ([]tmux.SessionInfo, error)
}

// Config holds the parameters for a Manager. Server is required; all
// other fields have defaults.
type Config struct {
	// Server is the tmux server hosting the sessions.
	Server Multiplexer

	// DefaultName is used when Start is called with an empty name.
	// Defaults to "vim".
	DefaultName string

	// Editor is the shell command launched in each session's pane.
	// Defaults to "vim".
	Editor string

	// RecordingsDir receives cast files for recorded sessions. The
	// directory is created on first recorded start. Defaults to the
	// working directory.
	RecordingsDir string

	// RecorderBinary is the asciinema-compatible recorder used to
	// wrap the editor when recording. Defaults to "asciinema".
	RecorderBinary string

	// Width and Height are the session dimensions used when
	// StartOptions leaves them zero. Default 80x24.
	Width  int
	Height int

	// SettleDelay is slept after session creation so the editor can
	// finish its own startup. Heuristic only. Zero means the
	// one-second default; negative disables the delay.
	SettleDelay time.Duration

	// PollInterval is the capture cadence of WaitFor. Defaults to
	// 300ms.
	PollInterval time.Duration

	// WaitTimeout bounds WaitFor when WaitOptions leaves the timeout
	// zero. Defaults to 5s.
	WaitTimeout time.Duration

	// Clock drives settle delays and WaitFor polling. Defaults to the
	// real clock.
	Clock clock.Clock

	// Logger receives operational messages. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Session describes a live session as returned by Start.
type Session struct {
	Name      string
	Width     int
	Height    int
	Recording bool
	LogPath   string // cast file path, empty when not recording
	CreatedAt time.Time
}

// Manager starts, stops and drives editor sessions on one tmux
// server. Methods are safe for concurrent use; operations against
// different session names proceed independently.
type Manager struct {
	server       Multiplexer
	defaultName  string
	editor       string
	recordings   string
	recorder     string
	width        int
	height       int
	settleDelay  time.Duration
	pollInterval time.Duration
	waitTimeout  time.Duration
	clock        clock.Clock
	logger       *slog.Logger

	captures singleflight.Group
}

// Registry of sessions started by any Manager in this process. Managers
// are cheap and often live for a single command invocation, so the
// bookkeeping that lets a later StopAll find their sessions has to
// outlive them. Each entry remembers the server the session lives on.
var (
	startedMu sync.Mutex
	started   = make(map[string]Multiplexer)
)

func trackStarted(name string, server Multiplexer) {
	startedMu.Lock()
	started[name] = server
	startedMu.Unlock()
}

func untrackStarted(name string) {
	startedMu.Lock()
	delete(started, name)
	startedMu.Unlock()
}

// NewManager validates the configuration and returns a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Server == nil {
		return nil, fmt.Errorf("session: Server is required")
	}

	manager := &Manager{
		server:       cfg.Server,
		defaultName:  cfg.DefaultName,
		editor:       cfg.Editor,
		recordings:   cfg.RecordingsDir,
		recorder:     cfg.RecorderBinary,
		width:        cfg.Width,
		height:       cfg.Height,
		settleDelay:  cfg.SettleDelay,
		pollInterval: cfg.PollInterval,
		waitTimeout:  cfg.WaitTimeout,
		clock:        cfg.Clock,
		logger:       cfg.Logger,
	}
	if manager.defaultName == "" {
		manager.defaultName = "vim"
	}
	if manager.editor == "" {
		manager.editor = "vim"
	}
	if manager.recorder == "" {
		manager.recorder = "asciinema"
	}
	if manager.width <= 0 {
		manager.width = 80
	}
	if manager.height <= 0 {
		manager.height = 24
	}
	if cfg.SettleDelay == 0 {
		manager.settleDelay = time.Second
	}
	if manager.pollInterval <= 0 {
		manager.pollInterval = 300 * time.Millisecond
	}
	if manager.waitTimeout <= 0 {
		manager.waitTimeout = 5 * time.Second
	}
	if manager.clock == nil {
		manager.clock = clock.Real()
	}
	if manager.logger == nil {
		manager.logger = slog.Default()
	}
	return manager, nil
}

// StartOptions control Start. Zero values take the Manager's
// configured defaults.
type StartOptions struct {
	Width  int
	Height int
	Record bool
}

// Start creates a live session running the configured editor and
// returns its descriptor. An empty name means the configured default
// name. Returns ErrSessionExists when the name is already live — the
// pre-check is advisory; losing a concurrent race is detected from
// tmux's own duplicate-name rejection.
//
// With Record set, the editor is wrapped in the recorder writing to a
// fresh timestamped cast file under the recordings directory, which is
// created if missing.
//
// Start sleeps the configured settle delay before returning so the
// editor can draw its initial screen. The delay is a heuristic: the
// editor is not guaranteed interactive the moment Start returns.
func (m *Manager) Start(name string, opts StartOptions) (*Session, error) {
	if name == "" {
		name = m.defaultName
	}
	width := opts.Width
	if width <= 0 {
		width = m.width
	}
	height := opts.Height
	if height <= 0 {
		height = m.height
	}

	live, err := m.server.HasSession(name)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", name, err)
	}
	if live {
		return nil, fmt.Errorf("session %s: %w", name, ErrSessionExists)
	}

	now := m.clock.Now()

	var logPath string
	if opts.Record {
		dir := m.recordings
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("session %s: recordings dir: %w", name, err)
		}
		logPath = filepath.Join(dir, recordingName(name, now))
	}

	if err := m.server.NewSession(name, width, height, m.launchCommand(logPath)); err != nil {
		if tmux.IsDuplicateSessionError(err) {
			return nil, fmt.Errorf("session %s: %w", name, ErrSessionExists)
		}
		return nil, fmt.Errorf("session %s: %w", name, err)
	}

	trackStarted(name, m.server)

	m.logger.Info("session started",
		"name", name,
		"size", fmt.Sprintf("%dx%d", width, height),
		"recording", opts.Record,
	)

	if m.settleDelay > 0 {
		m.clock.Sleep(m.settleDelay)
	}

	return &Session{
		Name:      name,
		Width:     width,
		Height:    height,
		Recording: opts.Record,
		LogPath:   logPath,
		CreatedAt: now,
	}, nil
}

// Stop terminates a live session unconditionally. There is no
// graceful-shutdown negotiation with the editor. Returns
// ErrSessionNotFound when the name is not live.
func (m *Manager) Stop(name string) error {
	if err := m.ensureLive(name); err != nil {
		return err
	}
	if err := m.server.KillSession(name); err != nil {
		return fmt.Errorf("session %s: %w", name, err)
	}

	untrackStarted(name)

	m.logger.Info("session stopped", "name", name)
	return nil
}

// StopAll kills every session this process started. Best-effort:
// failures are logged and swallowed, since StopAll runs on the way
// out.
func (m *Manager) StopAll() {
	KillStarted(m.logger)
}

// KillStarted kills every session started by any Manager in this
// process, each on the server it was created on. Failures are logged
// and swallowed. The MCP server calls this when its client disconnects
// so that agent-created sessions do not outlive the agent.
func KillStarted(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	startedMu.Lock()
	drained := maps.Clone(started)
	clear(started)
	startedMu.Unlock()

	for name, server := range drained {
		if err := server.KillSession(name); err != nil {
			logger.Warn("session cleanup failed", "name", name, "error", err)
			continue
		}
		logger.Debug("session cleaned up", "name", name)
	}
}

// List returns the live sessions on the server, whether or not this
// process started them.
func (m *Manager) List() ([]tmux.SessionInfo, error) {
	infos, err := m.server.ListSessions()
	if err != nil {
		return nil, fmt.Errorf("session: list: %w", err)
	}
	return infos, nil
}

// ensureLive resolves a name against the server, wrapping absence as
// ErrSessionNotFound.
func (m *Manager) ensureLive(name string) error {
	live, err := m.server.HasSession(name)
	if err != nil {
		return fmt.Errorf("session %s: %w", name, err)
	}
	if !live {
		return fmt.Errorf("session %s: %w", name, ErrSessionNotFound)
	}
	return nil
}

// launchCommand composes the pane's shell command: the editor alone,
// or the editor wrapped in the recorder when logPath is set. The
// recorder invocation is a single opaque command string so the pane
// process tree stays the recorder's business.
func (m *Manager) launchCommand(logPath string) string {
	if logPath == "" {
		return m.editor
	}
	return fmt.Sprintf("%s rec -q -c %s %s",
		m.recorder, shellQuote(m.editor), shellQuote(logPath))
}

// recordingName derives a collision-free cast file name from the
// session name and a nanosecond-resolution timestamp.
func recordingName(sessionName string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%d.cast",
		sessionName, now.Format("20060102-150405"), now.Nanosecond())
}

// shellQuote wraps s in single quotes, escaping embedded single
// quotes, so it survives the shell that tmux runs pane commands
// through.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
