// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package recording

import "github.com/vimpilot/vimpilot/cmd/vimpilot/cli"

// Command returns the "recording" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "recording",
		Summary: "Browse and decode session recordings",
		Description: `Work with the asciinema cast files written by recorded sessions.

A cast file is a line-delimited JSON log: a header with the
terminal geometry, then one event per line with an offset,
a kind (input, output, marker, resize), and a payload. These
commands list the recordings directory, render a recording as
a readable timeline, and open an interactive inspector for
stepping through events.

Recordings are referenced by pattern: an exact path, a
substring of the file name, or nothing at all for the most
recent recording. Typos get fuzzy suggestions.`,
		Subcommands: []*cli.Command{
			listCommand(),
			showCommand(),
			inspectCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "List recordings, newest first",
				Command:     "vimpilot recording list",
			},
			{
				Description: "Render the most recent recording as a timeline",
				Command:     "vimpilot recording show",
			},
			{
				Description: "Render a recording matched by substring",
				Command:     "vimpilot recording show scratch-2026",
			},
			{
				Description: "Step through events interactively",
				Command:     "vimpilot recording inspect",
			},
		},
	}
}
