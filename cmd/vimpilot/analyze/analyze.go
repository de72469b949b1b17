// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

// Package analyze implements the "vimpilot analyze" command, which
// feeds a rendered recording timeline to an AI model subprocess and
// prints the model's explanation of the session.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vimpilot/vimpilot/cmd/vimpilot/cli"
	"github.com/vimpilot/vimpilot/lib/analysis"
	"github.com/vimpilot/vimpilot/lib/cast"
	"github.com/vimpilot/vimpilot/lib/config"
	"github.com/vimpilot/vimpilot/lib/journal"
)

// analyzeResult is the output type for the analyze command.
type analyzeResult struct {
	Recording      string `json:"recording"                 desc:"resolved cast file path"`
	Mode           string `json:"mode"                      desc:"analysis depth: detailed or summarized"`
	Model          string `json:"model"                     desc:"model used for the analyze stage"`
	SummarizeModel string `json:"summarize_model,omitempty" desc:"model used for the summarize stage (summarized mode only)"`
	Cached         bool   `json:"cached"                    desc:"whether the result came from the analysis cache"`
	Analysis       string `json:"analysis"                  desc:"the model's explanation of the recorded session"`
}

type analyzeParams struct {
	cli.ConfigFlags
	cli.JSONOutput
	Pattern string `json:"pattern"  desc:"recording to analyze: a path, a file-name substring, or empty for the most recent"`
	Mode    string `json:"mode"     flag:"mode,m"   desc:"analysis depth: detailed or summarized" default:"detailed"`
	Model   string `json:"model"    flag:"model"    desc:"model for every stage (overrides configured models)"`
	NoCache bool   `json:"no_cache" flag:"no-cache" desc:"run the analysis even when a cached result exists"`
}

// Command returns the "analyze" command.
func Command() *cli.Command {
	var params analyzeParams

	annotations := cli.Idempotent()
	openWorld := true
	annotations.OpenWorld = &openWorld

	return &cli.Command{
		Name:    "analyze",
		Summary: "Explain a recorded session with an AI model",
		Description: `Decode a recording, render it as an event timeline, and ask an AI
model to explain what happened in the session: what was edited,
which commands ran, and what the final state looks like.

Detailed mode runs a single model pass over the full timeline.
Summarized mode condenses the detailed answer with a second
pass, whose model resolves independently — useful when a cheap
model can compress what an expensive one explained.

Models resolve per stage: the stage-specific setting wins, then
the configured default model, then the built-in fallback. An
explicit --model forces every stage. The model command itself
comes from analysis.command_template, with {model} replaced by
the resolved name; it must read its prompt on stdin and print
the answer to stdout.

Results are cached in the journal, keyed on the recording bytes
and the resolved parameters, so repeating an analysis is free
until the recording or the models change. --no-cache forces a
fresh run (the fresh result replaces the cached one).`,
		Usage: "vimpilot analyze [pattern] [flags]",
		Examples: []cli.Example{
			{
				Description: "Analyze the most recent recording",
				Command:     "vimpilot analyze",
			},
			{
				Description: "Short summary of a specific recording",
				Command:     "vimpilot analyze refactor --mode summarized",
			},
			{
				Description: "Force a specific model for every stage",
				Command:     "vimpilot analyze --model opus --no-cache",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &analyzeResult{} },
		Annotations: annotations,
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 1 {
				params.Pattern = args[0]
			} else if len(args) > 1 {
				return cli.Validation("expected at most 1 positional argument, got %d", len(args))
			}

			mode, err := analysis.ParseMode(params.Mode)
			if err != nil {
				return cli.Validation("%v", err)
			}

			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}

			settings := analysisSettings(cfg, params.Model)

			path, err := cast.Resolve(params.Pattern, cfg.Paths.Recordings)
			if err != nil {
				return mapError(err)
			}

			analyzeModel := settings.ResolveModel(analysis.StageAnalyze)
			summarizeModel := ""
			if mode == analysis.ModeSummarized {
				summarizeModel = settings.ResolveModel(analysis.StageSummarize)
			}

			result := analyzeResult{
				Recording:      path,
				Mode:           string(mode),
				Model:          analyzeModel,
				SummarizeModel: summarizeModel,
			}

			// The cache is an optimization: digest or journal trouble
			// degrades to a fresh analysis, never to a failure.
			var cache *journal.Journal
			var digest string
			if cfg.Journal.Enabled {
				digest, err = journal.AnalysisDigest(path, string(mode), analyzeModel, summarizeModel)
				if err != nil {
					logger.Warn("analysis digest failed", "error", err)
				} else if cache, err = journal.Open(journal.Config{Path: cfg.Journal.Path, Logger: logger}); err != nil {
					logger.Warn("journal open failed", "error", err)
					cache = nil
				} else {
					defer cache.Close()
				}
			}

			if cache != nil && !params.NoCache {
				record, found, err := cache.LookupAnalysis(ctx, digest)
				if err != nil {
					logger.Warn("cache lookup failed", "error", err)
				} else if found {
					logger.Info("analysis cache hit", "recording", path, "digest", digest)
					result.Cached = true
					result.Analysis = record.Result
					return emit(params, result)
				}
			}

			recording, err := cast.Decode(path)
			if err != nil {
				return mapError(err)
			}
			timeline := cast.Render(ctx, recording, cast.AsciinemaReplay(cfg.Recorder.Binary))

			pipeline := analysis.New(settings, nil, logger)
			answer, err := pipeline.Analyze(ctx, timeline, mode)
			if err != nil {
				return mapError(err)
			}
			result.Analysis = answer

			if cache != nil {
				err := cache.StoreAnalysis(ctx, journal.AnalysisRecord{
					Digest:         digest,
					Recording:      path,
					Mode:           string(mode),
					Model:          analyzeModel,
					SummarizeModel: summarizeModel,
					Result:         answer,
					CreatedAt:      time.Now(),
				})
				if err != nil {
					logger.Warn("cache store failed", "error", err)
				}
			}

			return emit(params, result)
		},
	}
}

// analysisSettings maps configuration onto pipeline settings. An
// explicit model forces both stages.
func analysisSettings(cfg *config.Config, model string) analysis.Settings {
	settings := analysis.Settings{
		DefaultModel:    cfg.Analysis.DefaultModel,
		AnalyzeModel:    cfg.Analysis.AnalyzeModel,
		SummarizeModel:  cfg.Analysis.SummarizeModel,
		CommandTemplate: cfg.Analysis.CommandTemplate,
		PromptsDir:      cfg.Analysis.PromptsDir,
	}
	if model != "" {
		settings.AnalyzeModel = model
		settings.SummarizeModel = model
	}
	return settings
}

// emit writes the result as JSON or as the bare analysis text.
func emit(params analyzeParams, result analyzeResult) error {
	if done, err := params.EmitJSON(result); done {
		return err
	}
	fmt.Println(result.Analysis)
	return nil
}

// mapError converts analysis failures into categorized tool errors.
func mapError(err error) error {
	var notFound *cast.NotFoundError
	var decodeErr *cast.DecodeError
	var stageErr *analysis.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &notFound):
		return cli.NotFound("%v", err).
			WithHint("Run 'vimpilot recording list' to see available recordings.")
	case errors.As(err, &decodeErr):
		return cli.Internal("%v", err)
	case errors.As(err, &stageErr):
		return cli.Internal("%v", err).
			WithHint("Check analysis.command_template in the config; the command must accept a prompt on stdin and print its answer to stdout.")
	}
	return cli.Internal("%v", err)
}
