// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vimpilot/vimpilot/cmd/vimpilot/cli"
)

// --- send-keys ---

// sendKeysResult is the output type for the send-keys command.
type sendKeysResult struct {
	Session string   `json:"session" desc:"session name"`
	Keys    []string `json:"keys"    desc:"key tokens that were delivered"`
}

type sendKeysParams struct {
	cli.ConfigFlags
	cli.JSONOutput
	Session string   `json:"session" flag:"session,s" desc:"session name (defaults to the configured name)"`
	Keys    []string `json:"keys"    desc:"key tokens to type: named keys (Enter, Escape, Tab), chords (ctrl+c), single characters, or literal text" required:"true"`
}

func sendKeysCommand() *cli.Command {
	var params sendKeysParams

	return &cli.Command{
		Name:    "send-keys",
		Summary: "Type key tokens into a session",
		Description: `Type a sequence of key tokens into the editor. Each token is a
named key (Enter, Escape, Tab, Space, Backspace, up, pgdn, f5),
a modifier chord (ctrl+c, alt+x, ctrl+shift+left), a single
character, or any longer text, which is typed literally.

Key names are case-insensitive and normalized to tmux syntax
before sending, so "escape", "Esc", and "Escape" all work.

Delivery does not wait for the editor to process the input. Use
"vimpilot session wait" or "vimpilot session capture" as the
consistency point when the next step depends on the editor's
reaction.

To type text that collides with a key name (the word "enter",
for instance), use "vimpilot session send-text" instead.`,
		Usage: "vimpilot session send-keys <key>... [flags]",
		Examples: []cli.Example{
			{
				Description: "Enter insert mode, type a line, return to normal mode",
				Command:     "vimpilot session send-keys i 'Hello, world.' Escape",
			},
			{
				Description: "Scroll half a page down",
				Command:     "vimpilot session send-keys ctrl+d",
			},
			{
				Description: "Delete three lines in a named session",
				Command:     "vimpilot session send-keys 3 d d --session scratch",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &sendKeysResult{} },
		Annotations: cli.Create(),
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				params.Keys = args
			}
			if len(params.Keys) == 0 {
				return cli.Validation("at least one key is required\n\nUsage: vimpilot session send-keys <key>... [flags]")
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
			if err := manager.SendKeys(name, params.Keys); err != nil {
				return mapError(err)
			}

			result := sendKeysResult{Session: name, Keys: params.Keys}
			if done, err := params.EmitJSON(result); done {
				return err
			}

			logger.Info("keys sent", "session", name, "keys", strings.Join(params.Keys, " "))
			return nil
		},
	}
}

// --- send-text ---

// sendTextResult is the output type for the send-text command.
type sendTextResult struct {
	Session    string `json:"session"    desc:"session name"`
	Characters int    `json:"characters" desc:"number of characters delivered"`
}

type sendTextParams struct {
	cli.ConfigFlags
	cli.JSONOutput
	Session string `json:"session" flag:"session,s" desc:"session name (defaults to the configured name)"`
	Text    string `json:"text"    desc:"text to type verbatim" required:"true"`
}

func sendTextCommand() *cli.Command {
	var params sendTextParams

	return &cli.Command{
		Name:    "send-text",
		Summary: "Type text into a session verbatim",
		Description: `Type text into the editor with no key-name interpretation: every
character arrives as-is, including words that send-keys would
treat as key names ("enter", "escape", "ctrl+c").

The text is delivered as keystrokes, so the editor's current
mode decides what happens to it. In vim's normal mode the
characters are commands; enter insert mode first when the text
is meant for the buffer.`,
		Usage: "vimpilot session send-text <text> [flags]",
		Examples: []cli.Example{
			{
				Description: "Type a sentence containing key names",
				Command:     "vimpilot session send-text 'press enter to continue'",
			},
			{
				Description: "Type into a named session",
				Command:     "vimpilot session send-text 'func main() {' --session scratch",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &sendTextResult{} },
		Annotations: cli.Create(),
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 1 {
				params.Text = args[0]
			} else if len(args) > 1 {
				return cli.Validation("expected 1 positional argument, got %d", len(args)).
					WithHint("Quote the text so the shell passes it as one argument: vimpilot session send-text 'hello world'")
			}
			if params.Text == "" {
				return cli.Validation("text is required\n\nUsage: vimpilot session send-text <text> [flags]")
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
			if err := manager.SendLiteral(name, params.Text); err != nil {
				return mapError(err)
			}

			result := sendTextResult{Session: name, Characters: len(params.Text)}
			if done, err := params.EmitJSON(result); done {
				return err
			}

			logger.Info("text sent", "session", name, "characters", result.Characters)
			return nil
		},
	}
}

// --- command ---

// commandResult is the output type for the command command.
type commandResult struct {
	Session string `json:"session" desc:"session name"`
	Command string `json:"command" desc:"ex command that was run"`
}

type commandParams struct {
	cli.ConfigFlags
	cli.JSONOutput
	Session string `json:"session" flag:"session,s" desc:"session name (defaults to the configured name)"`
	Command string `json:"command" desc:"ex command to run, without the leading colon" required:"true"`
}

func commandCommand() *cli.Command {
	var params commandParams

	return &cli.Command{
		Name:    "command",
		Summary: "Run an ex command in a session",
		Description: `Run an ex-style editor command: Escape first to leave any pending
mode, then a colon, the command text, and Enter. The leading
colon is added automatically.

This is sugar over send-keys and send-text for the common
":w", ":e file", ":%s/old/new/g" cases. Like the send commands,
it does not wait for the editor to finish; check the screen
afterwards when the outcome matters.`,
		Usage: "vimpilot session command <command> [flags]",
		Examples: []cli.Example{
			{
				Description: "Save the current buffer",
				Command:     "vimpilot session command w",
			},
			{
				Description: "Open a file in a named session",
				Command:     "vimpilot session command 'e main.go' --session scratch",
			},
			{
				Description: "Project-wide substitute",
				Command:     "vimpilot session command '%s/foo/bar/g'",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &commandResult{} },
		Annotations: cli.Create(),
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 1 {
				params.Command = args[0]
			} else if len(args) > 1 {
				return cli.Validation("expected 1 positional argument, got %d", len(args)).
					WithHint("Quote commands containing spaces: vimpilot session command 'e main.go'")
			}
			if params.Command == "" {
				return cli.Validation("an ex command is required\n\nUsage: vimpilot session command <command> [flags]")
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
			if err := manager.SendCommand(name, params.Command); err != nil {
				return mapError(err)
			}

			result := commandResult{Session: name, Command: params.Command}
			if done, err := params.EmitJSON(result); done {
				return err
			}

			logger.Info("command sent", "session", name, "command", ":"+params.Command)
			return nil
		},
	}
}
