// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package analysis

import (
	"fmt"
	"strings"
)

// Mode selects the analysis depth.
type Mode string

const (
	// ModeDetailed runs a single model pass over the full timeline.
	ModeDetailed Mode = "detailed"
	// ModeSummarized runs the detailed pass, then condenses its answer
	// with a second model pass.
	ModeSummarized Mode = "summarized"
)

// ParseMode validates a user-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDetailed, ModeSummarized:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown analysis mode %q (want detailed or summarized)", s)
	}
}

// Stage identifies one step of the pipeline. The two stages resolve
// their models independently.
type Stage int

const (
	StageAnalyze Stage = iota
	StageSummarize
)

func (s Stage) String() string {
	if s == StageSummarize {
		return "summarize"
	}
	return "analyze"
}

const (
	// FallbackModel is used when neither a stage override nor the
	// default model is configured.
	FallbackModel = "sonnet"

	// ModelPlaceholder is the token in a command template replaced by
	// the resolved model name.
	ModelPlaceholder = "{model}"

	// DefaultCommandTemplate is the AI command used when none is
	// configured. The command reads a prompt on stdin, prints its
	// answer to stdout, and exits.
	DefaultCommandTemplate = "claude --model {model} --print"
)

// Settings is the analysis configuration surface. All resolution
// methods are pure functions of the struct, so tests can assert exact
// substitution without invoking a real model.
type Settings struct {
	// DefaultModel is used by both stages when no stage override is
	// set. Empty means the built-in fallback.
	DefaultModel string

	// AnalyzeModel overrides the model for the analyze stage.
	AnalyzeModel string

	// SummarizeModel overrides the model for the summarize stage.
	SummarizeModel string

	// CommandTemplate is the AI command line containing
	// ModelPlaceholder. Empty means DefaultCommandTemplate.
	CommandTemplate string

	// PromptsDir optionally overrides the embedded prompt texts,
	// per file (analyze.md, summarize.md).
	PromptsDir string
}

// ResolveModel returns the model for a stage: the stage override if
// set, then DefaultModel, then FallbackModel.
func (s Settings) ResolveModel(stage Stage) string {
	var override string
	switch stage {
	case StageAnalyze:
		override = s.AnalyzeModel
	case StageSummarize:
		override = s.SummarizeModel
	}
	if override != "" {
		return override
	}
	if s.DefaultModel != "" {
		return s.DefaultModel
	}
	return FallbackModel
}

// Command returns the argv for a stage: the template with every
// placeholder occurrence replaced by the resolved model, split on
// whitespace. No shell is involved, so the template cannot use
// quoting or expansion.
func (s Settings) Command(stage Stage) ([]string, error) {
	template := s.CommandTemplate
	if template == "" {
		template = DefaultCommandTemplate
	}
	if !strings.Contains(template, ModelPlaceholder) {
		return nil, fmt.Errorf("command template %q has no %s placeholder", template, ModelPlaceholder)
	}

	resolved := strings.ReplaceAll(template, ModelPlaceholder, s.ResolveModel(stage))
	argv := strings.Fields(resolved)
	if len(argv) == 0 {
		return nil, fmt.Errorf("command template %q resolves to an empty command", template)
	}
	return argv, nil
}
