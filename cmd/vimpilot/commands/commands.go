// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete vimpilot CLI command tree.
// The vimpilot binary imports it for dispatch, and the MCP server
// walks the same tree for tool discovery, so CLI and tool surface
// cannot drift apart.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	analyzecmd "github.com/vimpilot/vimpilot/cmd/vimpilot/analyze"
	"github.com/vimpilot/vimpilot/cmd/vimpilot/cli"
	mcpcmd "github.com/vimpilot/vimpilot/cmd/vimpilot/mcp"
	recordingcmd "github.com/vimpilot/vimpilot/cmd/vimpilot/recording"
	sessioncmd "github.com/vimpilot/vimpilot/cmd/vimpilot/session"
	"github.com/vimpilot/vimpilot/lib/version"
)

// Root builds and returns the complete vimpilot CLI command tree.
// Tool discovery walks root.Subcommands, so the MCP command is
// added last (after the tree is constructed) and receives the
// root pointer for introspection.
func Root() *cli.Command {
	root := &cli.Command{
		Name: "vimpilot",
		Description: `Vimpilot: drive and observe terminal editor sessions.

Run editors headless inside a private tmux server, type into them,
capture their screens, record them as asciinema casts, and feed the
rendered recordings to an AI model for analysis. Every command is
also available to agents as an MCP tool via 'vimpilot mcp serve'.`,
		Subcommands: []*cli.Command{
			sessioncmd.Command(),
			recordingcmd.Command(),
			analyzecmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Printf("vimpilot %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Start a recorded editor session",
				Command:     "vimpilot session start scratch --record",
			},
			{
				Description: "Type into it and wait for the editor to react",
				Command:     "vimpilot session send-keys i 'Hello, world.' Escape",
			},
			{
				Description: "Capture the current screen",
				Command:     "vimpilot session capture --session scratch",
			},
			{
				Description: "Stop the session and list what was recorded",
				Command:     "vimpilot session stop scratch && vimpilot recording list",
			},
			{
				Description: "Replay the most recent recording in the terminal",
				Command:     "vimpilot recording inspect",
			},
			{
				Description: "Ask the model what happened in it",
				Command:     "vimpilot analyze --mode summarized",
			},
		},
	}

	// The MCP command needs access to the full command tree: it walks
	// root.Subcommands for tool discovery, so it is added after the
	// tree is constructed.
	root.Subcommands = append(root.Subcommands, mcpcmd.Command(root))

	return root
}
