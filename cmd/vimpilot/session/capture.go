// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vimpilot/vimpilot/cmd/vimpilot/cli"
)

// captureResult is the output type for the capture command.
type captureResult struct {
	Session string `json:"session" desc:"session name"`
	Color   bool   `json:"color"   desc:"whether styling escape sequences are included"`
	Screen  string `json:"screen"  desc:"rendered screen content, one line per terminal row"`
}

type captureParams struct {
	cli.ConfigFlags
	cli.JSONOutput
	Session string `json:"session" flag:"session,s" desc:"session name (defaults to the configured name)"`
	Color   bool   `json:"color"   flag:"color,c"   desc:"keep styling escape sequences in the output"`
}

func captureCommand() *cli.Command {
	var params captureParams

	return &cli.Command{
		Name:    "capture",
		Summary: "Capture a session's rendered screen",
		Description: `Print the session's visible viewport as rendered text: what a
human would see looking at the terminal, with the editor's own
layout, status line, and any messages.

By default the capture is plain text. With --color, ANSI
styling escape sequences are kept exactly as rendered, which
matters when syntax highlighting or UI colors carry meaning.

The capture is a point-in-time snapshot; it does not wait for
the editor to finish drawing. Pair with "vimpilot session wait"
when the screen must contain something specific first.`,
		Usage: "vimpilot session capture [flags]",
		Examples: []cli.Example{
			{
				Description: "Capture the default session's screen",
				Command:     "vimpilot session capture",
			},
			{
				Description: "Capture with syntax-highlighting colors",
				Command:     "vimpilot session capture --color",
			},
			{
				Description: "Capture a named session as JSON",
				Command:     "vimpilot session capture --session scratch --json",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &captureResult{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			manager, err := newManager(cfg, logger)
			if err != nil {
				return err
			}

			name := targetName(cfg, params.Session)
			screen, err := manager.Capture(name, params.Color)
			if err != nil {
				return mapError(err)
			}

			result := captureResult{Session: name, Color: params.Color, Screen: screen}
			if done, err := params.EmitJSON(result); done {
				return err
			}

			fmt.Print(screen)
			if !strings.HasSuffix(screen, "\n") {
				fmt.Println()
			}
			return nil
		},
	}
}
