// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the vimpilot CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a parameter struct factory, and a
// Run function. Commands are assembled into a tree in
// cmd/vimpilot/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// Parameter structs declare their flags with struct tags (flag, desc,
// default), bound by [BindFlags] and converted to MCP tool schemas by
// [ParamsSchema] and [OutputSchema]. The same struct serves both the
// terminal surface and the MCP tool surface, so the two can never
// drift apart.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// Errors returned by command Run functions should be built with the
// [ToolError] constructors ([Validation], [NotFound], [Transient], ...),
// which carry a category that the MCP server forwards as structured
// metadata alongside the error text.
package cli
