// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

// Package mcp implements a Model Context Protocol server that exposes
// vimpilot CLI commands as MCP tools over newline-delimited JSON-RPC
// 2.0 on stdin/stdout.
//
// The server discovers tools by walking the CLI command tree and
// collecting leaf commands that have both a [cli.Command.Params]
// function and a Run function. Each discovered command becomes an MCP
// tool with inputSchema generated from the parameter struct's tags via
// [cli.ParamsSchema]. Commands that declare [cli.Command.Output] also
// get an outputSchema reflected from the output type via
// [cli.OutputSchema], and their results include structuredContent
// (parsed JSON) alongside the text content block.
//
// Tool names are underscore-joined command paths (e.g.,
// "vimpilot_session_start" for "vimpilot session start"). Arguments
// are JSON objects matching the parameter struct's json tags, with
// validation enforced by the JSON Schema.
//
// Tool invocations force JSON output mode, so commands that format
// tables for human terminals produce structured JSON when called as
// tools. Errors carry an errorInfo extension (category plus a
// retryable flag) derived from [cli.ToolError] classification, so
// agents can decide between retrying, fixing input, and escalating
// without parsing error text.
//
// When the client disconnects (stdin EOF), the server kills every
// editor session this process started, so agent-created sessions do
// not outlive the agent driving them.
//
// This package implements the 2025-11-25 MCP protocol specification.
package mcp
