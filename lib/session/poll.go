// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// PatternTimeoutError reports that WaitFor exhausted its timeout
// without the pattern appearing on screen.
type PatternTimeoutError struct {
	Pattern string
	Timeout time.Duration
}

func (e *PatternTimeoutError) Error() string {
	return fmt.Sprintf("pattern %q did not appear within %s", e.Pattern, e.Timeout)
}

// Capture returns the session's visible viewport as rendered text.
// With withColor, styling escape sequences are kept exactly as
// rendered; otherwise the text is plain. Returns ErrSessionNotFound
// when the name is not live.
//
// Capture is a point-in-time snapshot — it does not wait for the
// editor to finish drawing. Concurrent captures of the same pane in
// the same mode share one tmux round trip.
func (m *Manager) Capture(name string, withColor bool) (string, error) {
	if err := m.ensureLive(name); err != nil {
		return "", err
	}
	return m.capture(name, withColor)
}

func (m *Manager) capture(name string, withColor bool) (string, error) {
	key := name + "\x00plain"
	if withColor {
		key = name + "\x00styled"
	}
	content, err, _ := m.captures.Do(key, func() (any, error) {
		if withColor {
			return m.server.CapturePaneStyled(name, 0)
		}
		return m.server.CapturePane(name, 0)
	})
	if err != nil {
		return "", fmt.Errorf("session %s: %w", name, err)
	}
	return content.(string), nil
}

// WaitOptions control WaitFor. Zero values take the Manager's
// configured defaults.
type WaitOptions struct {
	// Timeout bounds the total wait. Zero means the configured
	// default.
	Timeout time.Duration

	// Regex treats the pattern as a regular expression instead of a
	// plain substring.
	Regex bool
}

// WaitFor polls the session's screen until the pattern appears, the
// timeout elapses, or ctx is cancelled. The screen is captured plain
// (no styling escapes) at the configured interval and tested for
// substring containment, or for a regexp match when opts.Regex is
// set.
//
// Timeout is communicated as *PatternTimeoutError — an expected
// outcome, not a crash. Total blocking time is bounded by the timeout
// plus at most one poll interval.
func (m *Manager) WaitFor(ctx context.Context, name, pattern string, opts WaitOptions) error {
	if err := m.ensureLive(name); err != nil {
		return err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = m.waitTimeout
	}

	matches := func(screen string) bool { return strings.Contains(screen, pattern) }
	if opts.Regex {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("session %s: pattern: %w", name, err)
		}
		matches = compiled.MatchString
	}

	deadline := m.clock.Now().Add(timeout)
	for {
		screen, err := m.capture(name, false)
		if err != nil {
			return err
		}
		if matches(screen) {
			return nil
		}
		if !m.clock.Now().Before(deadline) {
			return &PatternTimeoutError{Pattern: pattern, Timeout: timeout}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.clock.After(m.pollInterval):
		}
	}
}
