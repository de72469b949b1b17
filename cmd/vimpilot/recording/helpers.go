// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package recording

import (
	"errors"
	"fmt"

	"github.com/vimpilot/vimpilot/cmd/vimpilot/cli"
	"github.com/vimpilot/vimpilot/lib/cast"
)

// mapError converts cast-layer failures into categorized tool errors.
func mapError(err error) error {
	var notFound *cast.NotFoundError
	var decodeErr *cast.DecodeError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &notFound):
		return cli.NotFound("%v", err).
			WithHint("Run 'vimpilot recording list' to see available recordings.")
	case errors.As(err, &decodeErr):
		return cli.Internal("%v", err).
			WithHint("The cast file is malformed. A recording stopped mid-write can be truncated; earlier recordings should still decode.")
	}
	return cli.Internal("%v", err)
}

// formatBytes formats a byte count as a human-readable string.
func formatBytes(bytes int64) string {
	switch {
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
