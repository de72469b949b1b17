// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package recording

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vimpilot/vimpilot/cmd/vimpilot/cli"
	"github.com/vimpilot/vimpilot/lib/cast"
)

// showResult is the output type for the show command.
type showResult struct {
	Path     string  `json:"path"     desc:"resolved cast file path"`
	Width    int     `json:"width"    desc:"recorded terminal width in columns"`
	Height   int     `json:"height"   desc:"recorded terminal height in rows"`
	Events   int     `json:"events"   desc:"number of events in the recording"`
	Duration float64 `json:"duration" desc:"recording duration in seconds"`
	Timeline string  `json:"timeline" desc:"rendered event timeline with a final-screen transcript"`
}

type showParams struct {
	cli.ConfigFlags
	cli.JSONOutput
	Pattern string `json:"pattern" desc:"recording to show: a path, a file-name substring, or empty for the most recent"`
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Render a recording as a readable timeline",
		Description: `Decode a cast file and render it as a timeline: one line per
event with its offset, kind, and payload, followed by a replay
transcript of the final screen state.

Output payloads are previewed to 80 characters with control
characters escaped, so raw terminal noise stays readable. The
transcript is produced by the configured recorder's "cat"
subcommand; when the recorder is unavailable, a bounded tail of
raw output payloads is shown instead.

This rendering is the same timeline "vimpilot analyze" feeds to
the analysis model.`,
		Usage: "vimpilot recording show [pattern] [flags]",
		Examples: []cli.Example{
			{
				Description: "Show the most recent recording",
				Command:     "vimpilot recording show",
			},
			{
				Description: "Show a recording matched by substring",
				Command:     "vimpilot recording show scratch-2026",
			},
			{
				Description: "Show a cast file by path",
				Command:     "vimpilot recording show ~/demos/refactor.cast",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &showResult{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 1 {
				params.Pattern = args[0]
			} else if len(args) > 1 {
				return cli.Validation("expected at most 1 positional argument, got %d", len(args))
			}

			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}

			path, err := cast.Resolve(params.Pattern, cfg.Paths.Recordings)
			if err != nil {
				return mapError(err)
			}

			recording, err := cast.Decode(path)
			if err != nil {
				return mapError(err)
			}

			timeline := cast.Render(ctx, recording, cast.AsciinemaReplay(cfg.Recorder.Binary))

			result := showResult{
				Path:     recording.Path,
				Width:    recording.Header.Width,
				Height:   recording.Header.Height,
				Events:   len(recording.Events),
				Duration: recording.Duration(),
				Timeline: timeline,
			}

			if done, err := params.EmitJSON(result); done {
				return err
			}

			fmt.Print(timeline)
			return nil
		},
	}
}
