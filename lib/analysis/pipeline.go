// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Error reports a failed analysis stage. The stage and resolved model
// are carried so callers can tell which half of a two-stage run broke.
type Error struct {
	Stage Stage
	Model string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s stage (model %s): %v", e.Stage, e.Model, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Pipeline chains the analyze and summarize stages over a rendered
// recording timeline.
type Pipeline struct {
	settings Settings
	runner   Runner
	logger   *slog.Logger
}

// New builds a Pipeline. A nil runner selects [ExecRunner]; a nil
// logger selects slog.Default().
func New(settings Settings, runner Runner, logger *slog.Logger) *Pipeline {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		settings: settings,
		runner:   runner,
		logger:   logger,
	}
}

// Analyze explains a rendered recording timeline. Detailed mode runs
// one model pass. Summarized mode feeds the detailed answer through a
// second pass whose model is resolved independently; the second stage
// never runs when the first fails.
func (p *Pipeline) Analyze(ctx context.Context, timeline string, mode Mode) (string, error) {
	if mode != ModeDetailed && mode != ModeSummarized {
		return "", fmt.Errorf("unknown analysis mode %q", mode)
	}

	detailed, err := p.runStage(ctx, StageAnalyze, timeline)
	if err != nil {
		return "", err
	}
	if mode == ModeDetailed {
		return detailed, nil
	}
	return p.runStage(ctx, StageSummarize, detailed)
}

func (p *Pipeline) runStage(ctx context.Context, stage Stage, input string) (string, error) {
	model := p.settings.ResolveModel(stage)

	argv, err := p.settings.Command(stage)
	if err != nil {
		return "", &Error{Stage: stage, Model: model, Err: err}
	}
	prompt, err := p.settings.Prompt(stage)
	if err != nil {
		return "", &Error{Stage: stage, Model: model, Err: err}
	}

	p.logger.Info("running analysis stage",
		"stage", stage.String(),
		"model", model,
		"command", argv[0],
		"input_bytes", len(input))

	output, err := p.runner.Run(ctx, argv, prompt+"\n\n"+input)
	if err != nil {
		return "", &Error{Stage: stage, Model: model, Err: err}
	}

	output = strings.TrimSpace(output)
	if output == "" {
		return "", &Error{Stage: stage, Model: model, Err: fmt.Errorf("command produced no output")}
	}
	return output, nil
}
