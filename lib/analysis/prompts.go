// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package analysis

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed prompts/*.md
var promptFiles embed.FS

func promptFileName(stage Stage) string {
	if stage == StageSummarize {
		return "summarize.md"
	}
	return "analyze.md"
}

// Prompt returns the instruction text for a stage. A file of the same
// name in PromptsDir overrides the embedded default; overriding one
// stage leaves the other on its built-in text.
func (s Settings) Prompt(stage Stage) (string, error) {
	name := promptFileName(stage)

	if s.PromptsDir != "" {
		data, err := os.ReadFile(filepath.Join(s.PromptsDir, name))
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("reading prompt override %s: %w", name, err)
		}
	}

	data, err := promptFiles.ReadFile("prompts/" + name)
	if err != nil {
		return "", fmt.Errorf("reading embedded prompt %s: %w", name, err)
	}
	return string(data), nil
}
