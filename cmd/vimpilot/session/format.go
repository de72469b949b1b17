// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package session

import "time"

// timeFormat is the timestamp layout used in JSON results.
const timeFormat = time.RFC3339

// formatTime renders a timestamp for table display: local time at
// second resolution. Zero times render as "-".
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02T15:04:05")
}

// formatSpan renders the gap between two timestamps for table
// display. An open span (zero end) renders as "running".
func formatSpan(start, end time.Time) string {
	if end.IsZero() {
		return "running"
	}
	return end.Sub(start).Round(time.Second).String()
}
