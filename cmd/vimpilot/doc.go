// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

// Vimpilot is the unified CLI for driving terminal editor sessions.
// It provides subcommands for session lifecycle and input (session),
// asciinema recording inspection (recording), AI-backed recording
// analysis (analyze), and an MCP tool server exposing all of the
// above to agents (mcp).
package main
