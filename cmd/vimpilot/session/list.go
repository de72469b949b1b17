// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/vimpilot/vimpilot/cmd/vimpilot/cli"
)

// sessionEntry is the output type for the list command: live tmux
// state joined with the journal's open row for the name, when one
// exists. Editor and Recording are empty for sessions the journal
// never saw (journal disabled, or started by something else).
type sessionEntry struct {
	Name      string `json:"name"                desc:"session name"`
	Width     int    `json:"width"               desc:"terminal width in columns"`
	Height    int    `json:"height"              desc:"terminal height in rows"`
	Created   string `json:"created"             desc:"session creation time (RFC 3339)"`
	Editor    string `json:"editor,omitempty"    desc:"editor command from the journal"`
	Recording string `json:"recording,omitempty" desc:"cast file path when the session is recorded"`
}

type listParams struct {
	cli.ConfigFlags
	cli.JSONOutput
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List live editor sessions",
		Description: `List every live session on the configured tmux server, whether or
not this process started it. Sessions the journal knows about are
annotated with their editor and recording path. A stopped server
yields an empty list, not an error.`,
		Usage: "vimpilot session list [flags]",
		Examples: []cli.Example{
			{
				Description: "List live sessions",
				Command:     "vimpilot session list",
			},
			{
				Description: "JSON output for scripting",
				Command:     "vimpilot session list --json",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &[]sessionEntry{} },
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

			infos, err := manager.List()
			if err != nil {
				return mapError(err)
			}

			open := openRecords(ctx, cfg, logger)

			entries := make([]sessionEntry, len(infos))
			for index, info := range infos {
				entry := sessionEntry{
					Name:    info.Name,
					Width:   info.Width,
					Height:  info.Height,
					Created: info.Created.Format(timeFormat),
				}
				if record, ok := open[info.Name]; ok {
					entry.Editor = record.Editor
					entry.Recording = record.Recording
				}
				entries[index] = entry
			}

			if done, err := params.EmitJSON(entries); done {
				return err
			}

			if len(entries) == 0 {
				logger.Info("no live sessions")
				return nil
			}

			writer := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintf(writer, "NAME\tSIZE\tCREATED\tRECORDING\n")
			for index, entry := range entries {
				recording := entry.Recording
				if recording == "" {
					recording = "-"
				}
				fmt.Fprintf(writer, "%s\t%dx%d\t%s\t%s\n",
					entry.Name,
					entry.Width,
					entry.Height,
					formatTime(infos[index].Created),
					recording,
				)
			}
			return writer.Flush()
		},
	}
}
