// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package cast

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ReplayFunc reconstructs the cumulative terminal output of a cast
// file. The production implementation is [AsciinemaReplay]; callers
// without a replayer pass nil to select the raw fallback.
type ReplayFunc func(ctx context.Context, path string) (string, error)

// fallbackEventLimit bounds how many raw output payloads the render
// fallback emits when no replayer is available.
const fallbackEventLimit = 50

// Render produces the human/AI-readable timeline for a recording: a
// header line with the declared geometry, one line per event with the
// offset fixed to two decimals, and a replay transcript of the final
// screen state appended at the end. Output payloads are previewed;
// other kinds are short by construction and shown raw.
//
// When replay is nil or fails, the transcript is replaced by a bounded
// tail of raw output payloads with a truncation notice — rendering
// never fails for lack of a replayer.
func Render(ctx context.Context, recording *Recording, replay ReplayFunc) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Recording: %s (%dx%d, %d events, %.2fs)\n\n",
		filepath.Base(recording.Path),
		recording.Header.Width, recording.Header.Height,
		len(recording.Events), recording.Duration())

	for _, event := range recording.Events {
		payload := event.Payload
		if event.Kind == Output {
			payload = Preview(payload)
		}
		fmt.Fprintf(&b, "[%7.2fs] %s: %s\n", event.Offset, event.Kind, payload)
	}

	b.WriteString("\n")
	b.WriteString(renderTranscript(ctx, recording, replay))
	return b.String()
}

func renderTranscript(ctx context.Context, recording *Recording, replay ReplayFunc) string {
	if replay != nil {
		transcript, err := replay(ctx, recording.Path)
		if err == nil {
			return "=== replay ===\n" + transcript
		}
	}

	outputs := recording.Outputs()
	var b strings.Builder
	b.WriteString("=== raw output (replay unavailable) ===\n")
	start := 0
	if len(outputs) > fallbackEventLimit {
		start = len(outputs) - fallbackEventLimit
		fmt.Fprintf(&b, "[showing last %d of %d output events]\n",
			fallbackEventLimit, len(outputs))
	}
	for _, index := range outputs[start:] {
		b.WriteString(recording.Events[index].Payload)
	}
	return b.String()
}

// AsciinemaReplay returns a ReplayFunc that shells out to an
// asciinema-compatible binary's cat subcommand, which replays a cast
// without timing and prints the accumulated terminal output.
func AsciinemaReplay(binary string) ReplayFunc {
	return func(ctx context.Context, path string) (string, error) {
		if _, err := exec.LookPath(binary); err != nil {
			return "", err
		}

		cmd := exec.CommandContext(ctx, binary, "cat", path)
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			return "", fmt.Errorf("%s cat %s: %w (%s)",
				binary, path, err, strings.TrimSpace(stderr.String()))
		}
		return stdout.String(), nil
	}
}
