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
	"github.com/vimpilot/vimpilot/lib/journal"
)

// historyEntry is the output type for the history command. Flattens
// a journal row for tabular display with desc tags for MCP schema.
type historyEntry struct {
	ID        int64  `json:"id"                   desc:"journal row ID"`
	Name      string `json:"name"                 desc:"session name"`
	Editor    string `json:"editor"               desc:"editor command the session ran"`
	Width     int    `json:"width"                desc:"terminal width in columns"`
	Height    int    `json:"height"               desc:"terminal height in rows"`
	Recording string `json:"recording,omitempty"  desc:"cast file path (empty when the session was not recorded)"`
	StartedAt string `json:"started_at"           desc:"session start time (RFC 3339)"`
	StoppedAt string `json:"stopped_at,omitempty" desc:"session stop time (RFC 3339, empty while open)"`
}

type historyParams struct {
	cli.ConfigFlags
	cli.JSONOutput
	Limit int `json:"limit" flag:"limit,n" desc:"maximum number of entries to return" default:"50"`
}

func historyCommand() *cli.Command {
	var params historyParams

	return &cli.Command{
		Name:    "history",
		Summary: "Show past editor sessions",
		Description: `List session history from the journal, newest first. Each entry
records the editor, terminal size, start and stop times, and the
cast file path for recorded sessions.

A session whose process was killed before it could record its
stop shows an open entry; the next stop of the same name closes
it with the best available bound.

Requires the journal to be enabled in the configuration (it is
by default).`,
		Usage: "vimpilot session history [flags]",
		Examples: []cli.Example{
			{
				Description: "The last 50 sessions",
				Command:     "vimpilot session history",
			},
			{
				Description: "Only the most recent few",
				Command:     "vimpilot session history --limit 5",
			},
			{
				Description: "JSON output for scripting",
				Command:     "vimpilot session history --json",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &[]historyEntry{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				return cli.Validation("the session journal is disabled").
					WithHint("Set journal.enabled to true in ~/.vimpilot/config.yaml to record session history.")
			}

			j, err := journal.Open(journal.Config{Path: cfg.Journal.Path, Logger: logger})
			if err != nil {
				return cli.Internal("open journal: %w", err)
			}
			defer j.Close()

			records, err := j.History(ctx, params.Limit)
			if err != nil {
				return cli.Internal("%v", err)
			}

			entries := make([]historyEntry, len(records))
			for index, record := range records {
				entry := historyEntry{
					ID:        record.ID,
					Name:      record.Name,
					Editor:    record.Editor,
					Width:     record.Width,
					Height:    record.Height,
					Recording: record.Recording,
					StartedAt: record.StartedAt.Format(timeFormat),
				}
				if !record.Running() {
					entry.StoppedAt = record.StoppedAt.Format(timeFormat)
				}
				entries[index] = entry
			}

			if done, err := params.EmitJSON(entries); done {
				return err
			}

			if len(entries) == 0 {
				logger.Info("no recorded sessions")
				return nil
			}

			writer := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintf(writer, "NAME\tEDITOR\tSIZE\tSTARTED\tDURATION\tRECORDING\n")
			for index, entry := range entries {
				record := records[index]
				recording := entry.Recording
				if recording == "" {
					recording = "-"
				}
				fmt.Fprintf(writer, "%s\t%s\t%dx%d\t%s\t%s\t%s\n",
					entry.Name,
					entry.Editor,
					entry.Width,
					entry.Height,
					formatTime(record.StartedAt),
					formatSpan(record.StartedAt, record.StoppedAt),
					recording,
				)
			}
			return writer.Flush()
		},
	}
}
