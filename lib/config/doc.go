// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for vimpilot.
//
// Configuration is resolved in a fixed order: built-in defaults, then
// the config file (VIMPILOT_CONFIG, or ~/.vimpilot/config.yaml when it
// exists), then VIMPILOT_* environment overrides. Every setting has a
// working default, so vimpilot runs with no config file at all — the
// common case for MCP deployments, where the server is spawned by a
// client that only sets environment variables.
//
// Environment overrides:
//
//   - VIMPILOT_CONFIG           -- config file path (consumed by [Load])
//   - VIMPILOT_SOCKET           -- server.socket_path
//   - VIMPILOT_RECORDINGS_DIR   -- paths.recordings
//   - VIMPILOT_DEFAULT_MODEL    -- analysis.default_model
//   - VIMPILOT_ANALYZE_MODEL    -- analysis.analyze_model
//   - VIMPILOT_SUMMARIZE_MODEL  -- analysis.summarize_model
//   - VIMPILOT_ANALYZE_COMMAND  -- analysis.command_template
//   - VIMPILOT_PROMPTS_DIR      -- analysis.prompts_dir
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${VIMPILOT_ROOT}, and ${VAR:-default} patterns are expanded.
//
// Key exports:
//
//   - [Config] -- master struct with Paths, Server, Session, Recorder,
//     Analysis, Journal, Logging
//   - [Default] -- returns a Config with working defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other vimpilot packages.
package config
