// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

// Package cast decodes asciinema cast v2 recordings into typed event
// timelines and renders them for human or AI consumption.
//
// A cast file is newline-delimited JSON: a header object declaring
// terminal geometry, then one [offsetSeconds, code, payload] array per
// event. Events are time-ordered by construction of the recorder; the
// decoder preserves file order and never re-sorts. The event code set
// is closed (i, o, m, r — input, output, marker, resize); any other
// code is a decode failure rather than a silently skipped record.
//
// Key exports:
//
//   - [Decode] -- path to [Recording], transparently handling .gz and
//     .zst compressed casts
//   - [List] and [Resolve] -- recordings-directory queries; Resolve
//     returns [NotFoundError] with fuzzy suggestions on a miss
//   - [Preview] -- bounded single-line form of an output payload
//   - [Render] -- the full timeline plus replay transcript, with a
//     bounded raw fallback when no replayer is available
//
// This package depends on no other vimpilot packages.
package cast
