// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

// Package analysis turns rendered recording timelines into natural
// language explanations by piping them through an external AI command.
//
// The AI command is configured as a template with a {model}
// placeholder ("claude --model {model} --print" by default). Model
// resolution is a fixed precedence chain per stage: the stage-specific
// override, then the general default, then a built-in fallback. The
// detailed mode runs one pass; the summarized mode chains a second,
// independently resolved pass over the first one's answer.
//
// Resolution is deliberately pure: [Settings.ResolveModel] and
// [Settings.Command] depend only on the Settings value, so the exact
// command line for any configuration can be asserted in tests without
// running a model. Subprocess execution is behind the [Runner]
// interface for the same reason.
package analysis
