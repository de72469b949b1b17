// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package recording

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/vimpilot/vimpilot/cmd/vimpilot/cli"
	"github.com/vimpilot/vimpilot/lib/cast"
)

// recordingEntry is the output type for the list command.
type recordingEntry struct {
	Name     string `json:"name"     desc:"cast file name"`
	Path     string `json:"path"     desc:"full cast file path"`
	Size     int64  `json:"size"     desc:"file size in bytes"`
	Modified string `json:"modified" desc:"last modification time (RFC 3339)"`
}

type listParams struct {
	cli.ConfigFlags
	cli.JSONOutput
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List session recordings",
		Description: `List the cast files in the recordings directory, most recently
modified first. Compressed recordings (.cast.gz, .cast.zst) are
included. A missing directory yields an empty list, not an
error.`,
		Usage: "vimpilot recording list [flags]",
		Examples: []cli.Example{
			{
				Description: "List recordings",
				Command:     "vimpilot recording list",
			},
			{
				Description: "JSON output for scripting",
				Command:     "vimpilot recording list --json",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &[]recordingEntry{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}

			metas, err := cast.List(cfg.Paths.Recordings)
			if err != nil {
				return mapError(err)
			}

			entries := make([]recordingEntry, len(metas))
			for index, meta := range metas {
				entries[index] = recordingEntry{
					Name:     meta.Name,
					Path:     meta.Path,
					Size:     meta.Size,
					Modified: meta.ModTime.Format(time.RFC3339),
				}
			}

			if done, err := params.EmitJSON(entries); done {
				return err
			}

			if len(entries) == 0 {
				logger.Info("no recordings", "dir", cfg.Paths.Recordings)
				return nil
			}

			writer := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintf(writer, "NAME\tSIZE\tMODIFIED\n")
			for index, entry := range entries {
				fmt.Fprintf(writer, "%s\t%s\t%s\n",
					entry.Name,
					formatBytes(entry.Size),
					metas[index].ModTime.Local().Format("2006-01-02T15:04:05"),
				)
			}
			return writer.Flush()
		},
	}
}
