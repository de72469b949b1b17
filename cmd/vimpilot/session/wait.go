// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vimpilot/vimpilot/cmd/vimpilot/cli"
	libsession "github.com/vimpilot/vimpilot/lib/session"
)

// waitResult is the output type for the wait command.
type waitResult struct {
	Session string `json:"session" desc:"session name"`
	Pattern string `json:"pattern" desc:"pattern that was waited for"`
	Matched bool   `json:"matched" desc:"whether the pattern appeared before the timeout"`
	Waited  string `json:"waited"  desc:"time spent polling before match or timeout"`
}

type waitParams struct {
	cli.ConfigFlags
	cli.JSONOutput
	Session string        `json:"session" flag:"session,s" desc:"session name (defaults to the configured name)"`
	Pattern string        `json:"pattern" desc:"text that must appear on screen" required:"true"`
	Timeout time.Duration `json:"timeout" flag:"timeout,t" desc:"total wait bound (0 uses the configured default)"`
	Regex   bool          `json:"regex"   flag:"regex,r"   desc:"treat the pattern as a regular expression"`
}

func waitCommand() *cli.Command {
	var params waitParams

	return &cli.Command{
		Name:    "wait",
		Summary: "Wait for screen content to appear",
		Description: `Poll the session's screen until the pattern appears or the
timeout elapses. The screen is captured plain (no styling
escapes) at the configured poll interval and tested for
substring containment, or for a regular expression match with
--regex.

A timeout is an expected outcome, not a crash: the editor may
legitimately never show the pattern. Exit code 0 when the
pattern appears, 1 on timeout. JSON output always exits 0 and
reports the outcome in the "matched" field.`,
		Usage: "vimpilot session wait <pattern> [flags]",
		Examples: []cli.Example{
			{
				Description: "Wait for vim to finish writing a file",
				Command:     "vimpilot session wait 'written'",
			},
			{
				Description: "Wait for a prompt with a longer bound",
				Command:     "vimpilot session wait 'Press ENTER' --timeout 15s",
			},
			{
				Description: "Wait for any error message",
				Command:     "vimpilot session wait 'E[0-9]+:' --regex",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &waitResult{} },
		Annotations: cli.Idempotent(),
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 1 {
				params.Pattern = args[0]
			} else if len(args) > 1 {
				return cli.Validation("expected 1 positional argument, got %d", len(args)).
					WithHint("Quote patterns containing spaces: vimpilot session wait 'Press ENTER'")
			}
			if params.Pattern == "" {
				return cli.Validation("a pattern is required\n\nUsage: vimpilot session wait <pattern> [flags]")
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
			begin := time.Now()
			err = manager.WaitFor(ctx, name, params.Pattern, libsession.WaitOptions{
				Timeout: params.Timeout,
				Regex:   params.Regex,
			})

			var timeoutErr *libsession.PatternTimeoutError
			if err != nil && !errors.As(err, &timeoutErr) {
				return mapError(err)
			}

			result := waitResult{
				Session: name,
				Pattern: params.Pattern,
				Matched: err == nil,
				Waited:  time.Since(begin).Round(time.Millisecond).String(),
			}

			if done, err := params.EmitJSON(result); done {
				return err
			}

			logger.Info("wait finished",
				"session", result.Session,
				"pattern", result.Pattern,
				"matched", result.Matched,
				"waited", result.Waited,
			)

			if !result.Matched {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}
