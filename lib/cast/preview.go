// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package cast

import (
	"regexp"

	"github.com/charmbracelet/x/ansi"
)

// PreviewLimit is the character budget for one-line Output previews.
const PreviewLimit = 80

var whitespaceRuns = regexp.MustCompile(`[\n\r\t]+`)

// Preview renders an event payload as a single bounded line: terminal
// escape sequences are stripped, newline and tab runs collapse to one
// space, and anything past PreviewLimit characters is dropped with a
// trailing ellipsis. Previews are for display only — the Event keeps
// the full payload.
func Preview(payload string) string {
	text := ansi.Strip(payload)
	text = whitespaceRuns.ReplaceAllString(text, " ")
	runes := []rune(text)
	if len(runes) <= PreviewLimit {
		return text
	}
	return string(runes[:PreviewLimit]) + "…"
}
