// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging assembles the process logger: structured output to
// stderr, plus an optional size-rotated JSONL file for post-mortem
// debugging. The stderr handler filters at the configured level; the
// file handler always records at debug so the file has the full
// picture even when stderr is quiet.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New. The zero value logs human-oriented output to
// stderr at info level with no file.
type Options struct {
	// Level is the minimum stderr level: "debug", "info", "warn" or
	// "error". Empty or unrecognized values mean info.
	Level string

	// File is the path of the rotating log file. Empty disables file
	// logging.
	File string

	// Rotation bounds for the file. Zero values default to 10 MB per
	// file, 5 rotated files, 10 days.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// Stderr overrides the stderr stream, for tests. Defaults to
	// os.Stderr.
	Stderr io.Writer
}

// New builds the logger described by options and returns it together
// with a close function for the file writer. The close function is
// never nil.
//
// When stderr is a terminal the stderr handler is human-readable text;
// otherwise it is JSON, so captured output (MCP clients, CI logs)
// stays machine-parseable.
func New(options Options) (*slog.Logger, func(), error) {
	stderr := options.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	level := ParseLevel(options.Level)
	stderrOptions := &slog.HandlerOptions{Level: level}

	var stderrHandler slog.Handler
	if file, ok := stderr.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		stderrHandler = slog.NewTextHandler(stderr, stderrOptions)
	} else {
		stderrHandler = slog.NewJSONHandler(stderr, stderrOptions)
	}

	if options.File == "" {
		return slog.New(stderrHandler), func() {}, nil
	}

	// Lumberjack only opens the file on first write, which would turn
	// a bad path into silently dropped records. Touch it now instead.
	touch, err := os.OpenFile(options.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: opening %s: %w", options.File, err)
	}
	touch.Close()

	maxSize := options.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	maxBackups := options.MaxBackups
	if maxBackups <= 0 {
		maxBackups = 5
	}
	maxAge := options.MaxAgeDays
	if maxAge <= 0 {
		maxAge = 10
	}

	fileWriter := &lumberjack.Logger{
		Filename:   options.File,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}
	fileHandler := slog.NewJSONHandler(fileWriter, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := slog.New(fanoutHandler{stderrHandler, fileHandler})
	return logger, func() { fileWriter.Close() }, nil
}

// ParseLevel maps a level name to its slog level. Unrecognized names
// map to info.
func ParseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
