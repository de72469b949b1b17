// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package mcp

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/vimpilot/vimpilot/cmd/vimpilot/cli"
	"github.com/vimpilot/vimpilot/lib/logging"
	"github.com/vimpilot/vimpilot/lib/session"
	"github.com/vimpilot/vimpilot/lib/version"
)

// Command returns the "mcp" command group. The root parameter is the
// top-level CLI command tree, used for tool discovery when the "serve"
// subcommand starts.
func Command(root *cli.Command) *cli.Command {
	return &cli.Command{
		Name:    "mcp",
		Summary: "Model Context Protocol server for agent tool access",
		Description: `MCP server that exposes vimpilot CLI commands as tools over
newline-delimited JSON-RPC 2.0 on stdin/stdout.

AI agents use this to drive editor sessions via structured tool
calls: starting sessions, sending keystrokes, capturing screens,
and analyzing recordings. The server discovers tools from the CLI
command tree and generates JSON Schema descriptions from parameter
struct tags.`,
		Subcommands: []*cli.Command{
			serveCommand(root),
		},
	}
}

func serveCommand(root *cli.Command) *cli.Command {
	var params struct {
		cli.ConfigFlags
	}
	return &cli.Command{
		Name:    "serve",
		Summary: "Start MCP server on stdin/stdout",
		Description: `Start a Model Context Protocol server that reads JSON-RPC 2.0
requests from stdin and writes responses to stdout.

The server discovers all CLI commands with typed parameter structs
and exposes them as MCP tools. Tool names are underscore-joined
command paths (e.g., vimpilot_session_start). Tool calls force JSON
output mode, so every result is structured.

When the client disconnects, the server stops every editor session
it started during its lifetime, so agent sessions do not leak.

This command is intended to be launched by MCP-capable clients
(such as AI agent frameworks) as a subprocess.`,
		Usage: "vimpilot mcp serve",
		Examples: []cli.Example{
			{
				Description: "Start MCP server (typically launched by an agent framework)",
				Command:     "vimpilot mcp serve",
			},
		},
		// Flags rather than Params: the server must not discover
		// itself as a callable tool.
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("serve", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}

			// An MCP client typically swallows stderr, so the server
			// logs to a file even when the config doesn't ask for one.
			logFile := cfg.Logging.File
			if logFile == "" {
				logFile = filepath.Join(cfg.Paths.State, "mcp.log")
			}
			serverLogger, closeLogs, err := logging.New(logging.Options{
				Level:      cfg.Logging.Level,
				File:       logFile,
				MaxSizeMB:  cfg.Logging.MaxSizeMB,
				MaxBackups: cfg.Logging.MaxBackups,
				MaxAgeDays: cfg.Logging.MaxAgeDays,
			})
			if err != nil {
				return cli.Internal("logging setup: %w", err)
			}
			defer closeLogs()

			server := NewServer(root)
			serverLogger.Info("mcp server started",
				"tools", len(server.tools),
				"version", version.Info(),
			)

			serveErr := server.Serve(ctx, serverLogger)

			// The client is gone; sessions the agent started die
			// with it.
			session.KillStarted(serverLogger)
			serverLogger.Info("mcp server stopped")
			return serveErr
		},
	}
}
