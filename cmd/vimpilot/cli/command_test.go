// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "vimpilot",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "session",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "session"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"session"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "session" {
		t.Errorf("dispatched to %q, want %q", called, "session")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "vimpilot",
		Subcommands: []*Command{
			{
				Name: "session",
				Subcommands: []*Command{
					{
						Name: "start",
						Run: func(_ context.Context, args []string, _ *slog.Logger) error {
							called = "session start"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"session", "start", "extra-arg"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "session start" {
		t.Errorf("dispatched to %q, want %q", called, "session start")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "extra-arg" {
		t.Errorf("args = %v, want [extra-arg]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var socketPath string
	var target string

	command := &Command{
		Name: "capture",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("capture", pflag.ContinueOnError)
			flagSet.StringVar(&socketPath, "socket", "/default.sock", "socket path")
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--socket", "/custom.sock", "vim"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if socketPath != "/custom.sock" {
		t.Errorf("socketPath = %q, want %q", socketPath, "/custom.sock")
	}
	if target != "vim" {
		t.Errorf("target = %q, want %q", target, "vim")
	}
}

func TestCommand_Execute_ParamsFlags(t *testing.T) {
	type captureParams struct {
		Session string `json:"session" flag:"session" default:"vim" desc:"session name"`
		Color   bool   `json:"color" flag:"color" desc:"keep color codes"`
	}

	var params captureParams
	var ran bool

	command := &Command{
		Name:   "capture",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			ran = true
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--session", "scratch", "--color"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !ran {
		t.Fatal("Run was not called")
	}
	if params.Session != "scratch" {
		t.Errorf("Session = %q, want %q", params.Session, "scratch")
	}
	if !params.Color {
		t.Error("Color = false, want true")
	}
}

func TestCommand_FlagSet_ReappliesDefaults(t *testing.T) {
	type waitParams struct {
		Session string `json:"session" flag:"session" default:"vim" desc:"session name"`
	}

	var params waitParams
	command := &Command{
		Name:   "wait",
		Params: func() any { return &params },
	}

	flagSet := command.FlagSet()
	if err := flagSet.Parse([]string{"--session", "scratch"}); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if params.Session != "scratch" {
		t.Fatalf("Session = %q, want %q", params.Session, "scratch")
	}

	// Building a fresh flag set rebinds the tag defaults, so a reused
	// command does not leak values from the previous invocation.
	command.FlagSet()
	if params.Session != "vim" {
		t.Errorf("Session after FlagSet() = %q, want default %q", params.Session, "vim")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "capture",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("capture", pflag.ContinueOnError)
			flagSet.Bool("color", false, "keep color codes")
			flagSet.String("socket", "/default.sock", "socket path")
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--colro"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --color") {
		t.Errorf("error = %q, want suggestion for '--color'", errStr)
	}
	// Suggestion should be on the same line as the error, not buried.
	if !strings.Contains(errStr, "colro") {
		t.Errorf("error = %q, should mention the bad flag", errStr)
	}
	// Should include a pointer to --help.
	if !strings.Contains(errStr, "--help") {
		t.Errorf("error = %q, should point to --help", errStr)
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	command := &Command{
		Name: "capture",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("capture", pflag.ContinueOnError)
			flagSet.Bool("color", false, "keep color codes")
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
	if !strings.Contains(err.Error(), "--help") {
		t.Errorf("error = %q, should point to --help", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "vimpilot",
		Subcommands: []*Command{
			{Name: "session"},
			{Name: "recording"},
			{Name: "version"},
		},
	}

	err := root.Execute(context.Background(), []string{"sesion"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), "did you mean \"session\"") {
		t.Errorf("error = %q, want suggestion for 'session'", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandNoSuggestion(t *testing.T) {
	root := &Command{
		Name: "vimpilot",
		Subcommands: []*Command{
			{Name: "session"},
			{Name: "recording"},
		},
	}

	err := root.Execute(context.Background(), []string{"zzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not contain suggestion for distant input", err.Error())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			root := &Command{
				Name:    "vimpilot",
				Summary: "Drive vim sessions for AI agents",
				Subcommands: []*Command{
					{Name: "session", Summary: "Manage editor sessions"},
				},
			}

			err := root.Execute(context.Background(), []string{helpArg})
			if err != nil {
				t.Errorf("Execute(%q) error: %v", helpArg, err)
			}
		})
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	root := &Command{
		Name: "vimpilot",
		Subcommands: []*Command{
			{Name: "session", Summary: "Manage editor sessions"},
		},
	}

	err := root.Execute(context.Background(), []string{})
	if err == nil {
		t.Fatal("Execute() = nil, want error for missing subcommand")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want 'subcommand required'", err.Error())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "vimpilot",
		Description: "Drive vim sessions for AI agents.",
		Subcommands: []*Command{
			{Name: "session", Summary: "Manage editor sessions"},
			{Name: "recording", Summary: "Inspect session recordings"},
			{Name: "version", Summary: "Print version information"},
		},
		Examples: []Example{
			{
				Description: "Start a recorded vim session",
				Command:     "vimpilot session start --record",
			},
			{
				Description: "Analyze the most recent recording",
				Command:     "vimpilot analyze --mode summarized",
			},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	// Verify structural elements are present.
	for _, want := range []string{
		"Drive vim sessions for AI agents.",
		"Usage:",
		"vimpilot <command> [flags]",
		"Commands:",
		"session",
		"Manage editor sessions",
		"recording",
		"Inspect session recordings",
		"Examples:",
		"vimpilot session start --record",
		"vimpilot analyze",
		"Run 'vimpilot <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_PrintHelp_WithFlags(t *testing.T) {
	command := &Command{
		Name:    "capture",
		Summary: "Capture the current screen",
		Usage:   "vimpilot session capture [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("capture", pflag.ContinueOnError)
			flagSet.String("session", "vim", "session name")
			flagSet.Bool("color", false, "keep color codes")
			return flagSet
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"vimpilot session capture [flags]",
		"Flags:",
		"session",
		"color",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{Name: "vimpilot"}
	session := &Command{Name: "session", parent: root}
	start := &Command{Name: "start", parent: session}

	if got := root.fullName(); got != "vimpilot" {
		t.Errorf("root.fullName() = %q, want %q", got, "vimpilot")
	}
	if got := session.fullName(); got != "vimpilot session" {
		t.Errorf("session.fullName() = %q, want %q", got, "vimpilot session")
	}
	if got := start.fullName(); got != "vimpilot session start" {
		t.Errorf("start.fullName() = %q, want %q", got, "vimpilot session start")
	}
}
