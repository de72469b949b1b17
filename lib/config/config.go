// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for vimpilot.
type Config struct {
	// Paths configures directory locations.
	Paths PathsConfig `yaml:"paths"`

	// Server configures the dedicated tmux server.
	Server ServerConfig `yaml:"server"`

	// Session configures editor session defaults.
	Session SessionConfig `yaml:"session"`

	// Recorder configures the cast recorder/replayer binary.
	Recorder RecorderConfig `yaml:"recorder"`

	// Analysis configures model resolution and the AI command template.
	Analysis AnalysisConfig `yaml:"analysis"`

	// Journal configures the session history database.
	Journal JournalConfig `yaml:"journal"`

	// Logging configures log output.
	Logging LoggingConfig `yaml:"logging"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Root is the base directory for vimpilot data.
	// Default: ~/.vimpilot
	Root string `yaml:"root"`

	// Recordings is where session cast files are written.
	// Default: ${VIMPILOT_ROOT}/recordings
	Recordings string `yaml:"recordings"`

	// State is where runtime state is stored (journal database, logs).
	// Default: ${VIMPILOT_ROOT}/state
	State string `yaml:"state"`
}

// ServerConfig configures the dedicated tmux server that hosts editor
// sessions. Vimpilot never attaches to the user's personal tmux server.
type ServerConfig struct {
	// SocketPath is the Unix socket for the vimpilot tmux server.
	// Default: ${VIMPILOT_ROOT}/tmux.sock
	SocketPath string `yaml:"socket_path"`

	// ConfigFile is the tmux config loaded when the server starts.
	// Default: /dev/null (never the user's ~/.tmux.conf)
	ConfigFile string `yaml:"config_file"`
}

// SessionConfig configures editor session defaults.
type SessionConfig struct {
	// DefaultName is the session name used when the caller gives none.
	// Default: vim
	DefaultName string `yaml:"default_name"`

	// Editor is the command launched inside new sessions.
	// Default: vim
	Editor string `yaml:"editor"`

	// Width and Height are the default pane dimensions.
	// Defaults: 80x24
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// SettleDelay is how long start waits after creating a session so
	// the editor can finish drawing its initial screen. A heuristic,
	// not a readiness guarantee.
	// Default: 1s
	SettleDelay string `yaml:"settle_delay"`

	// PollInterval is the capture interval used by pattern waits.
	// Default: 300ms
	PollInterval string `yaml:"poll_interval"`

	// WaitTimeout is the default pattern-wait timeout.
	// Default: 5s
	WaitTimeout string `yaml:"wait_timeout"`
}

// RecorderConfig configures the cast recorder.
type RecorderConfig struct {
	// Binary is the asciinema-compatible executable used both to record
	// sessions (rec) and to replay casts when rendering timelines (cat).
	// Default: asciinema
	Binary string `yaml:"binary"`
}

// AnalysisConfig configures recording analysis. Model resolution is
// always: stage-specific override → DefaultModel → built-in fallback.
type AnalysisConfig struct {
	// DefaultModel is the model used by both stages when no
	// stage-specific override is set.
	DefaultModel string `yaml:"default_model"`

	// AnalyzeModel overrides the model for the detailed-analysis stage.
	AnalyzeModel string `yaml:"analyze_model"`

	// SummarizeModel overrides the model for the summarization stage.
	SummarizeModel string `yaml:"summarize_model"`

	// CommandTemplate is the AI command line with a {model} placeholder.
	// The resolved command reads the prompt on stdin and writes its
	// answer to stdout.
	// Default: claude --model {model} --print
	CommandTemplate string `yaml:"command_template"`

	// PromptsDir overrides the embedded prompt texts. Files named
	// analyze.md and summarize.md in this directory replace the
	// corresponding built-in prompts.
	PromptsDir string `yaml:"prompts_dir"`
}

// JournalConfig configures the session history database.
type JournalConfig struct {
	// Enabled turns the journal on. When disabled, session history and
	// the analysis cache are unavailable but everything else works.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file.
	// Default: ${VIMPILOT_ROOT}/state/journal.db
	Path string `yaml:"path"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`

	// File, when set, mirrors log records to a rotating JSON log file
	// in addition to stderr. The MCP server sets this by default since
	// its stderr is usually invisible to the user.
	File string `yaml:"file"`

	// MaxSizeMB is the rotation threshold for File.
	// Default: 10
	MaxSizeMB int `yaml:"max_size_mb"`

	// MaxBackups is how many rotated files to keep.
	// Default: 5
	MaxBackups int `yaml:"max_backups"`

	// MaxAgeDays is how long to keep rotated files.
	// Default: 10
	MaxAgeDays int `yaml:"max_age_days"`
}

// Default returns the default configuration. Unlike most fields, the
// model fields default to empty: analysis falls back to its built-in
// model name when nothing is configured.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultRoot := filepath.Join(homeDir, ".vimpilot")

	return &Config{
		Paths: PathsConfig{
			Root:       defaultRoot,
			Recordings: filepath.Join(defaultRoot, "recordings"),
			State:      filepath.Join(defaultRoot, "state"),
		},
		Server: ServerConfig{
			SocketPath: filepath.Join(defaultRoot, "tmux.sock"),
			ConfigFile: "/dev/null",
		},
		Session: SessionConfig{
			DefaultName:  "vim",
			Editor:       "vim",
			Width:        80,
			Height:       24,
			SettleDelay:  "1s",
			PollInterval: "300ms",
			WaitTimeout:  "5s",
		},
		Recorder: RecorderConfig{
			Binary: "asciinema",
		},
		Analysis: AnalysisConfig{
			CommandTemplate: "claude --model {model} --print",
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    filepath.Join(defaultRoot, "state", "journal.db"),
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 10,
		},
	}
}

// Load loads configuration from VIMPILOT_CONFIG if set, from
// ~/.vimpilot/config.yaml if that file exists, and from built-in
// defaults otherwise. Environment overrides are applied in all three
// cases, so vimpilot runs usefully with no config file at all.
func Load() (*Config, error) {
	if path := os.Getenv("VIMPILOT_CONFIG"); path != "" {
		return LoadFile(path)
	}

	cfg := Default()
	defaultPath := filepath.Join(cfg.Paths.Root, "config.yaml")
	if _, err := os.Stat(defaultPath); err == nil {
		return LoadFile(defaultPath)
	}

	cfg.applyEnvOverrides()
	cfg.expandVariables()
	return cfg, nil
}

// LoadFile loads configuration from a specific file path, merging it
// over the defaults, then applies environment overrides and variable
// expansion.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// applyEnvOverrides applies VIMPILOT_* environment variables over the
// loaded values. The model variables exist so a calling agent can steer
// analysis per invocation without editing the config file.
func (c *Config) applyEnvOverrides() {
	overrides := []struct {
		envVar string
		field  *string
	}{
		{"VIMPILOT_SOCKET", &c.Server.SocketPath},
		{"VIMPILOT_RECORDINGS_DIR", &c.Paths.Recordings},
		{"VIMPILOT_DEFAULT_MODEL", &c.Analysis.DefaultModel},
		{"VIMPILOT_ANALYZE_MODEL", &c.Analysis.AnalyzeModel},
		{"VIMPILOT_SUMMARIZE_MODEL", &c.Analysis.SummarizeModel},
		{"VIMPILOT_ANALYZE_COMMAND", &c.Analysis.CommandTemplate},
		{"VIMPILOT_PROMPTS_DIR", &c.Analysis.PromptsDir},
	}
	for _, o := range overrides {
		if value := os.Getenv(o.envVar); value != "" {
			*o.field = value
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in path
// fields. ${VIMPILOT_ROOT} resolves to Paths.Root so dependent paths
// can be written relative to a relocated root.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"VIMPILOT_ROOT": c.Paths.Root,
		"HOME":          os.Getenv("HOME"),
	}

	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["VIMPILOT_ROOT"] = c.Paths.Root // Update for dependent paths.

	c.Paths.Recordings = expandVars(c.Paths.Recordings, vars)
	c.Paths.State = expandVars(c.Paths.State, vars)
	c.Server.SocketPath = expandVars(c.Server.SocketPath, vars)
	c.Server.ConfigFile = expandVars(c.Server.ConfigFile, vars)
	c.Journal.Path = expandVars(c.Journal.Path, vars)
	c.Logging.File = expandVars(c.Logging.File, vars)
	c.Analysis.PromptsDir = expandVars(c.Analysis.PromptsDir, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Paths.Root == "" {
		errs = append(errs, fmt.Errorf("paths.root is required"))
	}
	if c.Paths.Recordings == "" {
		errs = append(errs, fmt.Errorf("paths.recordings is required"))
	}
	if c.Server.SocketPath == "" {
		errs = append(errs, fmt.Errorf("server.socket_path is required"))
	}

	if c.Session.DefaultName == "" {
		errs = append(errs, fmt.Errorf("session.default_name is required"))
	}
	if c.Session.Editor == "" {
		errs = append(errs, fmt.Errorf("session.editor is required"))
	}
	if c.Session.Width <= 0 || c.Session.Height <= 0 {
		errs = append(errs, fmt.Errorf("session dimensions must be positive, got %dx%d",
			c.Session.Width, c.Session.Height))
	}

	for _, d := range []struct {
		name  string
		value string
	}{
		{"session.settle_delay", c.Session.SettleDelay},
		{"session.poll_interval", c.Session.PollInterval},
		{"session.wait_timeout", c.Session.WaitTimeout},
	} {
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid duration %q", d.name, d.value))
		} else if parsed < 0 {
			errs = append(errs, fmt.Errorf("%s: must not be negative", d.name))
		}
	}
	if parsed, err := time.ParseDuration(c.Session.PollInterval); err == nil && parsed == 0 {
		errs = append(errs, fmt.Errorf("session.poll_interval: must be positive"))
	}

	if c.Recorder.Binary == "" {
		errs = append(errs, fmt.Errorf("recorder.binary is required"))
	}

	if !strings.Contains(c.Analysis.CommandTemplate, "{model}") {
		errs = append(errs, fmt.Errorf("analysis.command_template must contain the {model} placeholder"))
	}

	if c.Journal.Enabled && c.Journal.Path == "" {
		errs = append(errs, fmt.Errorf("journal.path is required when the journal is enabled"))
	}

	levels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levels, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level must be one of: %v", levels))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsurePaths creates all configured directories if they don't exist.
func (c *Config) EnsurePaths() error {
	paths := []string{
		c.Paths.Root,
		c.Paths.Recordings,
		c.Paths.State,
		filepath.Dir(c.Server.SocketPath),
	}
	if c.Journal.Enabled && c.Journal.Path != "" {
		paths = append(paths, filepath.Dir(c.Journal.Path))
	}
	if c.Logging.File != "" {
		paths = append(paths, filepath.Dir(c.Logging.File))
	}

	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}

	return nil
}

// SettleDelay returns the parsed session settle delay. Values that
// fail Validate parse as zero.
func (c *Config) SettleDelay() time.Duration {
	return parseDuration(c.Session.SettleDelay)
}

// PollInterval returns the parsed pattern-wait poll interval.
func (c *Config) PollInterval() time.Duration {
	return parseDuration(c.Session.PollInterval)
}

// WaitTimeout returns the parsed default pattern-wait timeout.
func (c *Config) WaitTimeout() time.Duration {
	return parseDuration(c.Session.WaitTimeout)
}

func parseDuration(s string) time.Duration {
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return parsed
}
