// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package journal

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/zeebo/blake3"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// analysisDomainKey is the BLAKE3 key for analysis cache digests. The
// byte values are the ASCII encoding of the domain name, zero-padded
// to 32 bytes, so the key is inspectable in hex dumps. Changing it
// invalidates every cached analysis.
var analysisDomainKey = [32]byte{
	'v', 'i', 'm', 'p', 'i', 'l', 'o', 't', '.', 'a', 'n', 'a', 'l', 'y', 's', 'i',
	's', '.', 'c', 'a', 'c', 'h', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// AnalysisDigest computes the cache key for analyzing a recording: a
// keyed BLAKE3 digest over the recording file bytes as stored on disk
// followed by the analysis parameters, each prefixed with a zero byte
// so parameter boundaries cannot collide with content. The digest is
// returned as lowercase hex.
//
// summarizeModel must be empty for detailed mode, so the same
// recording analyzed in both modes produces distinct keys.
func AnalysisDigest(path, mode, analyzeModel, summarizeModel string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("journal: analysis digest: %w", err)
	}
	defer file.Close()

	hasher, err := blake3.NewKeyed(analysisDomainKey[:])
	if err != nil {
		panic("journal: BLAKE3 keyed hash initialization failed: " + err.Error())
	}

	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("journal: analysis digest %s: %w", path, err)
	}
	for _, part := range []string{mode, analyzeModel, summarizeModel} {
		hasher.Write([]byte{0})
		hasher.Write([]byte(part))
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// AnalysisRecord is one cached analysis result.
type AnalysisRecord struct {
	Digest         string // cache key from AnalysisDigest
	Recording      string // recording file path at analysis time
	Mode           string
	Model          string // analyze-stage model
	SummarizeModel string // empty for detailed mode
	Result         string
	CreatedAt      time.Time
}

// LookupAnalysis returns the cached record for a digest. The second
// return value reports whether the digest was found.
func (j *Journal) LookupAnalysis(ctx context.Context, digest string) (AnalysisRecord, bool, error) {
	conn, err := j.pool.Take(ctx)
	if err != nil {
		return AnalysisRecord{}, false, fmt.Errorf("journal: lookup analysis: %w", err)
	}
	defer j.pool.Put(conn)

	var record AnalysisRecord
	var found bool
	err = sqlitex.Execute(conn, `SELECT
		digest, recording, mode, model, summarize_model, result, created_at
		FROM analyses WHERE digest = ?`,
		&sqlitex.ExecOptions{
			Args: []any{digest},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				record = AnalysisRecord{
					Digest:         stmt.ColumnText(0),
					Recording:      stmt.ColumnText(1),
					Mode:           stmt.ColumnText(2),
					Model:          stmt.ColumnText(3),
					SummarizeModel: stmt.ColumnText(4),
					Result:         stmt.ColumnText(5),
					CreatedAt:      time.Unix(0, stmt.ColumnInt64(6)),
				}
				found = true
				return nil
			},
		})
	if err != nil {
		return AnalysisRecord{}, false, fmt.Errorf("journal: lookup analysis: %w", err)
	}
	return record, found, nil
}

// StoreAnalysis inserts a cached analysis result, replacing any
// existing record with the same digest.
func (j *Journal) StoreAnalysis(ctx context.Context, record AnalysisRecord) error {
	if record.Digest == "" {
		return fmt.Errorf("journal: store analysis: Digest is required")
	}
	if record.CreatedAt.IsZero() {
		return fmt.Errorf("journal: store analysis: CreatedAt is required")
	}

	conn, err := j.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("journal: store analysis: %w", err)
	}
	defer j.pool.Put(conn)

	err = sqlitex.Execute(conn, `INSERT OR REPLACE INTO analyses
		(digest, recording, mode, model, summarize_model, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{
				record.Digest,
				record.Recording,
				record.Mode,
				record.Model,
				record.SummarizeModel,
				record.Result,
				record.CreatedAt.UnixNano(),
			},
		})
	if err != nil {
		return fmt.Errorf("journal: store analysis: %w", err)
	}

	j.logger.Debug("analysis cached", "digest", record.Digest, "recording", record.Recording)
	return nil
}
