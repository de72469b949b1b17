// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"log/slog"

	"github.com/vimpilot/vimpilot/cmd/vimpilot/cli"
)

// stopResult is the output type for the stop command.
type stopResult struct {
	Stopped []string `json:"stopped" desc:"names of the sessions that were stopped"`
}

type stopParams struct {
	cli.ConfigFlags
	cli.JSONOutput
	Session string `json:"session" desc:"session name (defaults to the configured name)"`
	All     bool   `json:"all"     flag:"all" desc:"stop every live session on the server"`
}

func stopCommand() *cli.Command {
	var params stopParams

	return &cli.Command{
		Name:    "stop",
		Summary: "Stop an editor session",
		Description: `Kill a live session. Termination is unconditional: the editor is
not asked to save, and unsaved buffer content is lost. Save
first with "vimpilot session command w" if the content matters.

Stopping a recorded session finalizes its cast file; the
recording becomes visible to "vimpilot recording list" and
"vimpilot analyze".

With --all, every live session on the server is stopped,
including sessions started by other vimpilot processes.`,
		Usage: "vimpilot session stop [name] [flags]",
		Examples: []cli.Example{
			{
				Description: "Stop the default session",
				Command:     "vimpilot session stop",
			},
			{
				Description: "Stop a named session",
				Command:     "vimpilot session stop scratch",
			},
			{
				Description: "Stop everything",
				Command:     "vimpilot session stop --all",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &stopResult{} },
		Annotations: cli.Idempotent(),
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 1 {
				params.Session = args[0]
			} else if len(args) > 1 {
				return cli.Validation("expected at most 1 positional argument, got %d", len(args))
			}
			if params.All && params.Session != "" {
				return cli.Validation("--all cannot be combined with a session name")
			}

			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			manager, err := newManager(cfg, logger)
			if err != nil {
				return err
			}

			var stopped []string
			if params.All {
				infos, err := manager.List()
				if err != nil {
					return mapError(err)
				}
				for _, info := range infos {
					if err := manager.Stop(info.Name); err != nil {
						return mapError(err)
					}
					stopped = append(stopped, info.Name)
				}
			} else {
				name := targetName(cfg, params.Session)
				if err := manager.Stop(name); err != nil {
					return mapError(err)
				}
				stopped = []string{name}
			}

			recordStop(ctx, cfg, logger, stopped)

			result := stopResult{Stopped: stopped}
			if done, err := params.EmitJSON(result); done {
				return err
			}

			// The manager logs each stop; only the empty --all case
			// needs its own message.
			if len(stopped) == 0 {
				logger.Info("no live sessions")
			}
			return nil
		},
	}
}
