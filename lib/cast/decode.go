// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package cast

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Scanner sizing for event lines. A single Output event can carry a
// full screen repaint; 64KB covers almost everything, 4MB is the hard
// cap before the file is considered malformed.
const (
	initialLineBytes = 64 * 1024
	maxLineBytes     = 4 * 1024 * 1024
)

// DecodeError reports a malformed or unreadable cast file. Line is
// 1-based; zero means the failure was not tied to a specific line
// (open error, empty file).
type DecodeError struct {
	Path string
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("decoding %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("decoding %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode reads a cast v2 file into a Recording. The first line must be
// the header object; every following non-blank line must be a
// three-element [offset, code, payload] array. Events are returned in
// file order — the recorder wrote them time-ordered and the decoder
// never re-sorts, so duplicate offsets keep their file order.
//
// Files ending in .gz or .zst are decompressed transparently.
func Decode(path string) (*Recording, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer file.Close()

	reader, closeReader, err := decompressReader(path, file)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer closeReader()

	recording, err := decode(path, reader)
	if err != nil {
		return nil, err
	}
	return recording, nil
}

// decompressReader wraps file in a decompressor when the path
// extension asks for one.
func decompressReader(path string, file io.Reader) (io.Reader, func(), error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		return gz, func() { gz.Close() }, nil
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(file)
		if err != nil {
			return nil, nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		return zr, zr.Close, nil
	default:
		return file, func() {}, nil
	}
}

func decode(path string, reader io.Reader) (*Recording, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, initialLineBytes), maxLineBytes)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, &DecodeError{Path: path, Err: err}
		}
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("empty file, no header line")}
	}

	var header Header
	if err := json.Unmarshal(scanner.Bytes(), &header); err != nil {
		return nil, &DecodeError{Path: path, Line: 1, Err: fmt.Errorf("parsing header: %w", err)}
	}
	if header.Version != 2 {
		return nil, &DecodeError{Path: path, Line: 1, Err: fmt.Errorf("unsupported cast version %d", header.Version)}
	}
	if header.Width <= 0 || header.Height <= 0 {
		return nil, &DecodeError{Path: path, Line: 1, Err: fmt.Errorf("header declares invalid dimensions %dx%d", header.Width, header.Height)}
	}

	recording := &Recording{
		Path:   path,
		Header: header,
	}

	lineNumber := 1
	for scanner.Scan() {
		lineNumber++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		event, err := parseEvent(line)
		if err != nil {
			return nil, &DecodeError{Path: path, Line: lineNumber, Err: err}
		}
		recording.Events = append(recording.Events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, &DecodeError{Path: path, Line: lineNumber, Err: err}
	}

	return recording, nil
}

// parseEvent decodes one [offset, code, payload] line. The three
// elements have distinct types, so the line is split as raw JSON
// first and each element decoded on its own.
func parseEvent(line []byte) (Event, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(line, &raw); err != nil {
		return Event{}, fmt.Errorf("parsing event: %w", err)
	}
	if len(raw) != 3 {
		return Event{}, fmt.Errorf("event has %d elements, want 3", len(raw))
	}

	var offset float64
	if err := json.Unmarshal(raw[0], &offset); err != nil {
		return Event{}, fmt.Errorf("parsing offset: %w", err)
	}
	if offset < 0 {
		return Event{}, fmt.Errorf("negative offset %v", offset)
	}

	var code string
	if err := json.Unmarshal(raw[1], &code); err != nil {
		return Event{}, fmt.Errorf("parsing event code: %w", err)
	}
	kind, err := parseKind(code)
	if err != nil {
		return Event{}, err
	}

	var payload string
	if err := json.Unmarshal(raw[2], &payload); err != nil {
		return Event{}, fmt.Errorf("parsing payload: %w", err)
	}

	return Event{Offset: offset, Kind: kind, Payload: payload}, nil
}
