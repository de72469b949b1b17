// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package cast

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
)

// RecordingMeta describes one cast file in a recordings directory.
type RecordingMeta struct {
	// Name is the bare file name, the unit of pattern matching.
	Name string

	// Path is the full path, suitable for Decode.
	Path string

	Size    int64
	ModTime time.Time
}

// NotFoundError reports that a pattern matched no recording. When the
// directory held near-misses, Suggestions carries the closest file
// names, best first.
type NotFoundError struct {
	Pattern     string
	Dir         string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("no recording matches %q in %s (closest: %s)",
			e.Pattern, e.Dir, strings.Join(e.Suggestions, ", "))
	}
	return fmt.Sprintf("no recording matches %q in %s", e.Pattern, e.Dir)
}

// maxSuggestions bounds the near-miss list in NotFoundError.
const maxSuggestions = 3

// List returns the cast files in dir, most recently modified first.
// Files with equal modification times are ordered by name for
// determinism. A missing directory yields an empty list, not an error.
func List(dir string) ([]RecordingMeta, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading recordings directory: %w", err)
	}

	var metas []RecordingMeta
	for _, entry := range entries {
		if entry.IsDir() || !isCastFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// The file vanished between ReadDir and Info.
			continue
		}
		metas = append(metas, RecordingMeta{
			Name:    entry.Name(),
			Path:    filepath.Join(dir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	slices.SortFunc(metas, func(a, b RecordingMeta) int {
		if c := b.ModTime.Compare(a.ModTime); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return metas, nil
}

func isCastFile(name string) bool {
	return strings.HasSuffix(name, ".cast") ||
		strings.HasSuffix(name, ".cast.gz") ||
		strings.HasSuffix(name, ".cast.zst")
}

// Resolve turns a user-supplied pattern into a cast file path. A
// pattern that is itself an existing file is returned unchanged;
// otherwise the pattern is matched as a substring of file names in
// dir and the most recently modified match wins. An empty pattern
// resolves to the most recent recording.
//
// When nothing matches, the returned *NotFoundError carries fuzzy
// near-miss suggestions so a caller can correct a typoed name.
func Resolve(pattern, dir string) (string, error) {
	if info, err := os.Stat(pattern); err == nil && !info.IsDir() {
		return pattern, nil
	}

	metas, err := List(dir)
	if err != nil {
		return "", err
	}

	for _, meta := range metas {
		if strings.Contains(meta.Name, pattern) {
			return meta.Path, nil
		}
	}

	names := make([]string, len(metas))
	for i, meta := range metas {
		names[i] = meta.Name
	}
	matches := fuzzy.Find(pattern, names)
	suggestions := make([]string, 0, maxSuggestions)
	for i, match := range matches {
		if i == maxSuggestions {
			break
		}
		suggestions = append(suggestions, match.Str)
	}

	return "", &NotFoundError{Pattern: pattern, Dir: dir, Suggestions: suggestions}
}
