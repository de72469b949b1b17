// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vimpilot/vimpilot/cmd/vimpilot/cli"
	"github.com/vimpilot/vimpilot/lib/journal"
	libsession "github.com/vimpilot/vimpilot/lib/session"
)

// startResult is the output type for the start command.
type startResult struct {
	Name      string `json:"name"                desc:"session name"`
	Width     int    `json:"width"               desc:"terminal width in columns"`
	Height    int    `json:"height"              desc:"terminal height in rows"`
	Recording bool   `json:"recording"           desc:"whether the session writes a cast recording"`
	CastPath  string `json:"cast_path,omitempty" desc:"cast file path (empty when not recording)"`
	CreatedAt string `json:"created_at"          desc:"session creation time (RFC 3339)"`
}

type startParams struct {
	cli.ConfigFlags
	cli.JSONOutput
	Session string `json:"session" desc:"session name (defaults to the configured name)"`
	Width   int    `json:"width"   flag:"width"    desc:"terminal width in columns (0 uses the configured default)"`
	Height  int    `json:"height"  flag:"height"   desc:"terminal height in rows (0 uses the configured default)"`
	Record  bool   `json:"record"  flag:"record,r" desc:"record the session to an asciinema cast file"`
}

func startCommand() *cli.Command {
	var params startParams

	return &cli.Command{
		Name:    "start",
		Summary: "Start an editor session",
		Description: `Create a detached tmux session running the configured editor and
wait for it to settle. The session persists until stopped, so
later commands can type into it and read its screen.

With --record, the editor is wrapped in the asciinema recorder
and every byte of terminal output is written to a timestamped
cast file under the recordings directory.

The command sleeps a short settle delay after creating the
session so the editor can draw its initial screen. Use
"vimpilot session wait" for a real readiness check when the
startup content is known.`,
		Usage: "vimpilot session start [name] [flags]",
		Examples: []cli.Example{
			{
				Description: "Start a session with the configured defaults",
				Command:     "vimpilot session start",
			},
			{
				Description: "Start a recorded session named scratch",
				Command:     "vimpilot session start scratch --record",
			},
			{
				Description: "Start with an unusual terminal size",
				Command:     "vimpilot session start --width 120 --height 40",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &startResult{} },
		Annotations: cli.Create(),
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 1 {
				params.Session = args[0]
			} else if len(args) > 1 {
				return cli.Validation("expected at most 1 positional argument, got %d", len(args))
			}

			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			manager, err := newManager(cfg, logger)
			if err != nil {
				return err
			}

			started, err := manager.Start(params.Session, libsession.StartOptions{
				Width:  params.Width,
				Height: params.Height,
				Record: params.Record,
			})
			if err != nil {
				return mapError(err)
			}

			recordStart(ctx, cfg, logger, journal.SessionRecord{
				Name:      started.Name,
				Editor:    cfg.Session.Editor,
				Width:     started.Width,
				Height:    started.Height,
				Recording: started.LogPath,
				StartedAt: started.CreatedAt,
			})

			result := startResult{
				Name:      started.Name,
				Width:     started.Width,
				Height:    started.Height,
				Recording: started.Recording,
				CastPath:  started.LogPath,
				CreatedAt: started.CreatedAt.Format(timeFormat),
			}

			if done, err := params.EmitJSON(result); done {
				return err
			}

			fmt.Printf("Session:   %s\n", result.Name)
			fmt.Printf("Size:      %dx%d\n", result.Width, result.Height)
			if result.Recording {
				fmt.Printf("Recording: %s\n", result.CastPath)
			}
			return nil
		},
	}
}
