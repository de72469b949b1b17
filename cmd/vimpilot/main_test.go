// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"
	"testing"

	"github.com/vimpilot/vimpilot/cmd/vimpilot/cli"
	"github.com/vimpilot/vimpilot/cmd/vimpilot/commands"
)

// TestCommandTreeAnnotations walks the full production command tree
// and validates that every MCP-visible command (one with Params and
// Run) declares Annotations. Without annotations, agents can't
// determine whether a tool is read-only, destructive, idempotent, or
// interacts with external systems — they must assume the worst (MCP
// defaults: destructive, non-idempotent, open-world).
//
// Use cli.ReadOnly(), cli.Idempotent(), cli.Create(), or
// cli.Destructive() to set appropriate annotations on each command.
func TestCommandTreeAnnotations(t *testing.T) {
	root := commands.Root()
	walkCommands(root, nil, func(command *cli.Command, path []string) {
		if command.Params == nil || command.Run == nil {
			return
		}
		if command.Annotations == nil {
			t.Errorf("%s: MCP-visible command missing Annotations", strings.Join(path, " "))
		}
	})
}

// Every MCP-visible command needs an Output declaration so tool calls
// produce structured results, and a Summary so the tool catalog is
// readable.
func TestCommandTreeToolMetadata(t *testing.T) {
	root := commands.Root()
	walkCommands(root, nil, func(command *cli.Command, path []string) {
		if command.Params == nil || command.Run == nil {
			return
		}
		name := strings.Join(path, " ")
		if command.Output == nil {
			t.Errorf("%s: MCP-visible command missing Output", name)
		}
		if command.Summary == "" {
			t.Errorf("%s: command missing Summary", name)
		}
	})
}

// Tool names are underscore-joined command paths; a collision would
// make one tool shadow another in the MCP catalog.
func TestCommandTreeToolNamesUnique(t *testing.T) {
	root := commands.Root()
	seen := make(map[string]string)
	walkCommands(root, nil, func(command *cli.Command, path []string) {
		if command.Params == nil || command.Run == nil {
			return
		}
		toolName := strings.Join(path, "_")
		if previous, ok := seen[toolName]; ok {
			t.Errorf("tool name %q claimed by both %q and %q",
				toolName, previous, strings.Join(path, " "))
		}
		seen[toolName] = strings.Join(path, " ")
	})
	if len(seen) == 0 {
		t.Error("command tree exposes no tools at all")
	}
}

func TestRootSubcommands(t *testing.T) {
	root := commands.Root()

	want := []string{"session", "recording", "analyze", "version", "mcp"}
	if len(root.Subcommands) != len(want) {
		t.Fatalf("root has %d subcommands, want %d", len(root.Subcommands), len(want))
	}
	for i, name := range want {
		if root.Subcommands[i].Name != name {
			t.Errorf("subcommand[%d] = %q, want %q", i, root.Subcommands[i].Name, name)
		}
	}
}

// walkCommands recursively visits every command in the tree,
// calling visit for each node with the accumulated command path.
func walkCommands(command *cli.Command, path []string, visit func(*cli.Command, []string)) {
	current := make([]string, len(path)+1)
	copy(current, path)
	current[len(path)] = command.Name
	visit(command, current)
	for _, sub := range command.Subcommands {
		walkCommands(sub, current, visit)
	}
}
