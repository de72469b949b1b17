// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package session

import "github.com/vimpilot/vimpilot/cmd/vimpilot/cli"

// Command returns the "session" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "session",
		Summary: "Start, drive, and inspect editor sessions",
		Description: `Manage editor sessions running inside vimpilot's private tmux
server.

Sessions are headless: the editor runs in a detached tmux pane
that vimpilot drives programmatically. Commands send keystrokes,
run ex commands, capture the rendered screen, and wait for
screen content — which is how a calling agent or script
interacts with the editor without a human at the keyboard.

Sessions started with --record wrap the editor in the asciinema
recorder and write a cast file under the recordings directory.
The "recording" and "analyze" commands consume these files.

All commands read ~/.vimpilot/config.yaml (override with
--config or $VIMPILOT_CONFIG) for the tmux socket path, editor
command, default session name, and timing defaults.`,
		Subcommands: []*cli.Command{
			startCommand(),
			stopCommand(),
			listCommand(),
			sendKeysCommand(),
			sendTextCommand(),
			commandCommand(),
			captureCommand(),
			waitCommand(),
			historyCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Start a recorded session with the default editor",
				Command:     "vimpilot session start --record",
			},
			{
				Description: "Enter insert mode, type a line, return to normal mode",
				Command:     "vimpilot session send-keys i 'Hello, world.' Escape",
			},
			{
				Description: "Save the buffer via an ex command",
				Command:     "vimpilot session command w",
			},
			{
				Description: "Wait for a search result to appear on screen",
				Command:     "vimpilot session wait 'match found' --timeout 10s",
			},
			{
				Description: "Capture the rendered screen with colors",
				Command:     "vimpilot session capture --color",
			},
			{
				Description: "Stop every live session",
				Command:     "vimpilot session stop --all",
			},
		},
	}
}
