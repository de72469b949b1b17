// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

// Package integration_test provides end-to-end tests that drive the
// full vimpilot command tree against a real tmux server. Every test
// runs the same code path as the installed binary: the command tree
// from commands.Root with real flag parsing, config loading, and JSON
// output.
//
// The tests need external binaries (tmux, plus asciinema for the
// recording coverage) and skip themselves when those are missing. They
// never use t.Parallel: stdout capture and the VIMPILOT_CONFIG
// variable are process-global.
package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vimpilot/vimpilot/cmd/vimpilot/commands"
	"github.com/vimpilot/vimpilot/lib/tmux"
)

// fakeAnswer is what the stand-in model script prints for every
// analysis request.
const fakeAnswer = "the recorded session ran shell commands"

// requireTmux skips the test when tmux is not installed.
func requireTmux(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tmux"); err != nil {
		t.Skip("tmux not installed")
	}
}

// requireAsciinema skips the test when asciinema is not installed.
func requireAsciinema(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("asciinema"); err != nil {
		t.Skip("asciinema not installed")
	}
}

// testEnv describes the temporary vimpilot root a test runs against.
type testEnv struct {
	Root       string
	Recordings string
	Socket     string
	ConfigPath string
}

// setupEnv builds a throwaway vimpilot root: a config file pointing
// every path into a temp directory, a private tmux socket, a shell as
// the editor, and a stand-in model script for analysis. The config is
// exported through VIMPILOT_CONFIG so that direct CLI calls and MCP
// tool calls load the same one. Any tmux server left on the private
// socket is killed on cleanup.
func setupEnv(t *testing.T) testEnv {
	t.Helper()

	root := t.TempDir()
	env := testEnv{
		Root:       root,
		Recordings: filepath.Join(root, "recordings"),
		Socket:     filepath.Join(root, "tmux.sock"),
		ConfigPath: filepath.Join(root, "config.yaml"),
	}

	script := filepath.Join(root, "model.sh")
	content := fmt.Sprintf("#!/bin/sh\ncat >/dev/null\necho %q\n", fakeAnswer)
	if err := os.WriteFile(script, []byte(content), 0755); err != nil {
		t.Fatal(err)
	}

	config := fmt.Sprintf(`paths:
  root: %s
  recordings: %s
  state: %s
server:
  socket_path: %s
session:
  editor: sh
  settle_delay: 500ms
  poll_interval: 100ms
  wait_timeout: 5s
analysis:
  default_model: integration-model
  command_template: "%s --model {model}"
journal:
  enabled: true
  path: %s
`, root, env.Recordings, filepath.Join(root, "state"), env.Socket,
		script, filepath.Join(root, "state", "journal.db"))
	if err := os.WriteFile(env.ConfigPath, []byte(config), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("VIMPILOT_CONFIG", env.ConfigPath)
	t.Cleanup(func() {
		tmux.NewServer(env.Socket, "/dev/null").KillServer()
	})

	return env
}

// runCommand executes vimpilot with the given arguments in-process and
// returns everything it printed to stdout. A fresh command tree per
// call keeps parameter state from leaking between invocations.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	saved := os.Stdout
	os.Stdout = writer

	runErr := commands.Root().Execute(context.Background(), args)

	os.Stdout = saved
	writer.Close()
	output, err := io.ReadAll(reader)
	if err != nil {
		t.Fatal(err)
	}
	return string(output), runErr
}

// runOrFail is runCommand for steps that must succeed.
func runOrFail(t *testing.T, args ...string) string {
	t.Helper()
	output, err := runCommand(t, args...)
	if err != nil {
		t.Fatalf("vimpilot %s: %v\noutput:\n%s", strings.Join(args, " "), err, output)
	}
	return output
}

// typeMarker makes the session's shell print VIMPILOT_<suffix> on its
// own line and returns the full marker. The printf format string is
// split so the marker appears in the command's output but never in the
// echoed command line, which makes a following wait unambiguous.
func typeMarker(t *testing.T, session, suffix string) string {
	t.Helper()
	runOrFail(t, "session", "send-text",
		fmt.Sprintf("printf 'VIMPILOT_%%s\\n' %s", suffix),
		"--session", session)
	runOrFail(t, "session", "send-keys", "Enter", "--session", session)
	return "VIMPILOT_" + suffix
}

// listedSessions returns the names from session list --json.
func listedSessions(t *testing.T) []string {
	t.Helper()
	output := runOrFail(t, "session", "list", "--json")
	var entries []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(output), &entries); err != nil {
		t.Fatalf("parse list JSON: %v\noutput:\n%s", err, output)
	}
	names := make([]string, len(entries))
	for index, entry := range entries {
		names[index] = entry.Name
	}
	return names
}

// waitSessionGone polls session list until the named session
// disappears. Recorded sessions end on their own once the shell inside
// them exits, and the cast file is only complete after that.
func waitSessionGone(t *testing.T, name string) {
	t.Helper()
	deadline := time.Now().Add(15 * time.Second)
	for time.Now().Before(deadline) {
		alive := false
		for _, listed := range listedSessions(t) {
			if listed == name {
				alive = true
			}
		}
		if !alive {
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	t.Fatalf("session %q still listed after 15s", name)
}
