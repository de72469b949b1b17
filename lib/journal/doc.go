// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

// Package journal persists session history and cached analysis results
// in a local SQLite database.
//
// The journal has two tables. The sessions table records one row per
// editor session: the row is inserted when the session starts and its
// stopped_at column is filled in when the session stops. The analyses
// table caches analysis pipeline output keyed by a BLAKE3 digest
// covering the recording bytes and the analysis parameters, so
// re-analyzing an unchanged recording with the same mode and models
// returns the stored result without spawning the model subprocess.
//
// All timestamps are stored as Unix nanoseconds. The journal never
// reads the clock itself; callers supply every timestamp, which keeps
// the stored history deterministic under test.
//
// # Key exports
//
//   - [Open] / [Journal.Close]: connection pool lifecycle (WAL mode,
//     busy timeout, schema creation).
//   - [Journal.RecordStart], [Journal.RecordStop], [Journal.History]:
//     session history.
//   - [AnalysisDigest], [Journal.LookupAnalysis],
//     [Journal.StoreAnalysis]: analysis cache.
package journal
