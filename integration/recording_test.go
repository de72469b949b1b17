// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package integration_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestRecordingEndToEnd records a real session through asciinema, lets
// the shell inside it exit, and checks the finished cast through
// recording list, recording show, and a cached analyze run.
func TestRecordingEndToEnd(t *testing.T) {
	requireTmux(t)
	requireAsciinema(t)
	env := setupEnv(t)

	output := runOrFail(t, "session", "start", "rec", "--record", "--json")
	var started struct {
		Recording bool   `json:"recording"`
		CastPath  string `json:"cast_path"`
	}
	if err := json.Unmarshal([]byte(output), &started); err != nil {
		t.Fatalf("parse start JSON: %v\noutput:\n%s", err, output)
	}
	if !started.Recording {
		t.Fatal("recording = false for a --record start")
	}
	if !strings.HasPrefix(started.CastPath, env.Recordings) {
		t.Fatalf("cast path %q is outside the recordings directory %q",
			started.CastPath, env.Recordings)
	}

	// The journal join surfaces the cast path on the live list entry.
	output = runOrFail(t, "session", "list", "--json")
	var entries []struct {
		Name      string `json:"name"`
		Recording string `json:"recording"`
	}
	if err := json.Unmarshal([]byte(output), &entries); err != nil {
		t.Fatalf("parse list JSON: %v\noutput:\n%s", err, output)
	}
	for _, entry := range entries {
		if entry.Name == "rec" && entry.Recording != started.CastPath {
			t.Errorf("listed recording = %q, want %q", entry.Recording, started.CastPath)
		}
	}

	marker := typeMarker(t, "rec", "CAST")
	runOrFail(t, "session", "wait", marker,
		"--session", "rec", "--timeout", "10s", "--json")

	// End the shell so the recorder exits and finalizes the cast. The
	// session dies with it, so gone-from-list means the file is done.
	runOrFail(t, "session", "send-text", "exit", "--session", "rec")
	runOrFail(t, "session", "send-keys", "Enter", "--session", "rec")
	waitSessionGone(t, "rec")

	if info, err := os.Stat(started.CastPath); err != nil {
		t.Fatalf("cast file missing after session end: %v", err)
	} else if info.Size() == 0 {
		t.Fatal("cast file is empty after session end")
	}

	output = runOrFail(t, "recording", "list", "--json")
	var casts []struct {
		Name string `json:"name"`
		Path string `json:"path"`
		Size int64  `json:"size"`
	}
	if err := json.Unmarshal([]byte(output), &casts); err != nil {
		t.Fatalf("parse recording list JSON: %v\noutput:\n%s", err, output)
	}
	if len(casts) != 1 {
		t.Fatalf("recording list has %d entries, want 1:\n%s", len(casts), output)
	}
	if casts[0].Path != started.CastPath {
		t.Errorf("listed path = %q, want %q", casts[0].Path, started.CastPath)
	}
	if casts[0].Name != filepath.Base(started.CastPath) {
		t.Errorf("listed name = %q, want %q", casts[0].Name, filepath.Base(started.CastPath))
	}
	if casts[0].Size == 0 {
		t.Error("listed cast has size 0")
	}

	// No pattern resolves to the most recent cast.
	output = runOrFail(t, "recording", "show", "--json")
	var shown struct {
		Path     string  `json:"path"`
		Width    int     `json:"width"`
		Height   int     `json:"height"`
		Events   int     `json:"events"`
		Duration float64 `json:"duration"`
		Timeline string  `json:"timeline"`
	}
	if err := json.Unmarshal([]byte(output), &shown); err != nil {
		t.Fatalf("parse recording show JSON: %v\noutput:\n%s", err, output)
	}
	if shown.Path != started.CastPath {
		t.Errorf("shown path = %q, want %q", shown.Path, started.CastPath)
	}
	if shown.Width != 80 || shown.Height != 24 {
		t.Errorf("shown size = %dx%d, want 80x24", shown.Width, shown.Height)
	}
	if shown.Events == 0 {
		t.Error("shown recording has no events")
	}
	if shown.Duration <= 0 {
		t.Errorf("shown duration = %v, want > 0", shown.Duration)
	}
	if !strings.Contains(shown.Timeline, marker) {
		t.Errorf("timeline does not contain %q:\n%s", marker, shown.Timeline)
	}

	// Analyze the cast with the stand-in model, then again from cache.
	output = runOrFail(t, "analyze", "--json")
	var analyzed struct {
		Recording string `json:"recording"`
		Mode      string `json:"mode"`
		Model     string `json:"model"`
		Cached    bool   `json:"cached"`
		Analysis  string `json:"analysis"`
	}
	if err := json.Unmarshal([]byte(output), &analyzed); err != nil {
		t.Fatalf("parse analyze JSON: %v\noutput:\n%s", err, output)
	}
	if analyzed.Recording != started.CastPath {
		t.Errorf("analyzed recording = %q, want %q", analyzed.Recording, started.CastPath)
	}
	if analyzed.Mode != "detailed" {
		t.Errorf("mode = %q, want detailed", analyzed.Mode)
	}
	if analyzed.Model != "integration-model" {
		t.Errorf("model = %q, want integration-model", analyzed.Model)
	}
	if analyzed.Cached {
		t.Error("first analyze reported cached = true")
	}
	if !strings.Contains(analyzed.Analysis, fakeAnswer) {
		t.Errorf("analysis %q does not contain the model answer", analyzed.Analysis)
	}

	output = runOrFail(t, "analyze", "--json")
	if err := json.Unmarshal([]byte(output), &analyzed); err != nil {
		t.Fatalf("parse second analyze JSON: %v\noutput:\n%s", err, output)
	}
	if !analyzed.Cached {
		t.Error("second analyze reported cached = false")
	}
	if !strings.Contains(analyzed.Analysis, fakeAnswer) {
		t.Errorf("cached analysis %q does not contain the model answer", analyzed.Analysis)
	}
}

// TestAnalyzeSyntheticCast exercises analyze through the full command
// tree without tmux or asciinema: a hand-written cast dropped into the
// recordings directory is resolved as the most recent recording.
func TestAnalyzeSyntheticCast(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("needs /bin/sh")
	}
	env := setupEnv(t)

	if err := os.MkdirAll(env.Recordings, 0755); err != nil {
		t.Fatal(err)
	}
	cast := `{"version": 2, "width": 80, "height": 24}
[0.10, "o", "~\r\n~\r\n"]
[0.52, "i", "ihello"]
[1.25, "o", "hello"]
`
	castPath := filepath.Join(env.Recordings, "vim-20260821-101500-1.cast")
	if err := os.WriteFile(castPath, []byte(cast), 0644); err != nil {
		t.Fatal(err)
	}

	output := runOrFail(t, "analyze", "--mode", "summarized", "--json")
	var analyzed struct {
		Recording      string `json:"recording"`
		Mode           string `json:"mode"`
		Model          string `json:"model"`
		SummarizeModel string `json:"summarize_model"`
		Cached         bool   `json:"cached"`
		Analysis       string `json:"analysis"`
	}
	if err := json.Unmarshal([]byte(output), &analyzed); err != nil {
		t.Fatalf("parse analyze JSON: %v\noutput:\n%s", err, output)
	}
	if analyzed.Recording != castPath {
		t.Errorf("analyzed recording = %q, want %q", analyzed.Recording, castPath)
	}
	if analyzed.Mode != "summarized" {
		t.Errorf("mode = %q, want summarized", analyzed.Mode)
	}
	if analyzed.Model != "integration-model" || analyzed.SummarizeModel != "integration-model" {
		t.Errorf("models = %q/%q, want integration-model for both stages",
			analyzed.Model, analyzed.SummarizeModel)
	}
	if !strings.Contains(analyzed.Analysis, fakeAnswer) {
		t.Errorf("analysis %q does not contain the model answer", analyzed.Analysis)
	}

	// Mode is part of the cache key, so a detailed run is a miss.
	output = runOrFail(t, "analyze", "--json")
	if err := json.Unmarshal([]byte(output), &analyzed); err != nil {
		t.Fatalf("parse detailed analyze JSON: %v\noutput:\n%s", err, output)
	}
	if analyzed.Mode != "detailed" {
		t.Errorf("mode = %q, want detailed", analyzed.Mode)
	}
	if analyzed.Cached {
		t.Error("detailed analyze hit the summarized cache entry")
	}
}
