// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package recording

import (
	"context"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/vimpilot/vimpilot/cmd/vimpilot/cli"
	"github.com/vimpilot/vimpilot/lib/cast"
	"github.com/vimpilot/vimpilot/lib/castui"
)

// applyColorProfile honors a VIMPILOT_COLOR override before the
// inspector takes over the terminal. Auto-detection misjudges some
// terminals (tmux panes, CI), and the inspector is the only vimpilot
// surface where color fidelity matters. Unset or unrecognized values
// leave lipgloss to detect on its own.
func applyColorProfile() {
	switch strings.ToLower(os.Getenv("VIMPILOT_COLOR")) {
	case "truecolor", "24bit":
		lipgloss.SetColorProfile(termenv.TrueColor)
	case "256", "ansi256":
		lipgloss.SetColorProfile(termenv.ANSI256)
	case "16", "ansi":
		lipgloss.SetColorProfile(termenv.ANSI)
	case "none", "off":
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

type inspectParams struct {
	cli.ConfigFlags
}

func inspectCommand() *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Step through a recording interactively",
		Description: `Open a recording in the full-screen inspector: an event list with
offsets, kinds, and one-line previews on the left, the selected
event's complete payload on the right.

The inspector is a debugger-style viewer, not a player. Payloads
are shown with control characters escaped to visible text, which
makes escape-sequence-heavy editor output legible.

Keys: j/k or arrows move, g/G jump to the first/last event,
m/M jump between markers, tab switches panes, q quits.`,
		Usage: "vimpilot recording inspect [pattern] [flags]",
		Examples: []cli.Example{
			{
				Description: "Inspect the most recent recording",
				Command:     "vimpilot recording inspect",
			},
			{
				Description: "Inspect a recording matched by substring",
				Command:     "vimpilot recording inspect refactor",
			},
		},
		// The inspector takes over the terminal, so it is bound as
		// Flags rather than Params and never surfaces as an MCP tool.
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("inspect", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			pattern := ""
			if len(args) == 1 {
				pattern = args[0]
			} else if len(args) > 1 {
				return cli.Validation("expected at most 1 positional argument, got %d", len(args))
			}

			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}

			path, err := cast.Resolve(pattern, cfg.Paths.Recordings)
			if err != nil {
				return mapError(err)
			}

			recording, err := cast.Decode(path)
			if err != nil {
				return mapError(err)
			}

			logger.Info("inspecting recording", "path", path, "events", len(recording.Events))

			applyColorProfile()
			program := tea.NewProgram(castui.NewModel(recording),
				tea.WithAltScreen(), tea.WithMouseAllMotion())
			if _, err := program.Run(); err != nil {
				return cli.Internal("inspector: %w", err)
			}
			return nil
		},
	}
}
