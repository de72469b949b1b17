// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package castui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/vimpilot/vimpilot/lib/cast"
)

// Column widths for the event table. The preview column fills
// remaining space; all others are fixed.
const (
	columnWidthIndex  = 5
	columnWidthOffset = 9 // "%8.2f" plus the trailing "s"
	columnWidthKind   = 6 // longest kind label ("OUTPUT")

	// rowLeftWidth is the fixed left portion before the preview:
	// leading space + index + gap + offset + gap + kind + gap.
	rowLeftWidth = 1 + columnWidthIndex + 2 + columnWidthOffset + 2 + columnWidthKind + 2
)

// rowRenderer handles the table-style rendering of event rows within
// a given width.
type rowRenderer struct {
	theme Theme
	width int
}

// renderRow renders a single event as a formatted table row. The
// selected flag controls whether the row gets highlight styling.
//
// Row layout: " index  offset  KIND  preview"
//
//	  42     3.20s  OUTPUT  "README.md" 12L, 230B
//	  43     4.01s  INPUT   :wq\r
func (renderer rowRenderer) renderRow(index int, event cast.Event, selected bool) string {
	previewWidth := renderer.width - rowLeftWidth
	if previewWidth < 10 {
		previewWidth = 10
	}

	preview := rowPreview(event)
	if lipgloss.Width(preview) > previewWidth {
		preview = truncateString(preview, previewWidth-1) + "…"
	}

	indexText := fmt.Sprintf("%*d", columnWidthIndex, index)
	offsetText := fmt.Sprintf("%8.2fs", event.Offset)
	kindText := fmt.Sprintf("%-*s", columnWidthKind, event.Kind)

	if selected {
		baseStyle := lipgloss.NewStyle().
			Background(renderer.theme.SelectedBackground).
			Foreground(renderer.theme.SelectedForeground)
		row := " " + indexText + "  " + offsetText + "  " +
			baseStyle.Bold(true).Render(kindText) + "  " + preview
		return baseStyle.Width(renderer.width).MaxWidth(renderer.width).Render(row)
	}

	faintStyle := lipgloss.NewStyle().Foreground(renderer.theme.FaintText)
	kindStyle := lipgloss.NewStyle().Foreground(renderer.theme.KindColor(event.Kind))
	previewStyle := lipgloss.NewStyle().Foreground(renderer.theme.NormalText)

	row := " " +
		faintStyle.Render(indexText) +
		"  " +
		faintStyle.Render(offsetText) +
		"  " +
		kindStyle.Render(kindText) +
		"  " +
		previewStyle.Render(preview)

	return lipgloss.NewStyle().Width(renderer.width).MaxWidth(renderer.width).Render(row)
}

// rowPreview produces the single-line preview text for an event.
// Output payloads go through [cast.Preview] (escape stripping plus
// whitespace collapsing); other kinds are short by construction and
// shown with control characters escaped so keystrokes like ":wq\r"
// stay legible.
func rowPreview(event cast.Event) string {
	if event.Kind == cast.Output {
		return cast.Preview(event.Payload)
	}
	text := escapeControls(event.Payload, false)
	runes := []rune(text)
	if len(runes) <= cast.PreviewLimit {
		return text
	}
	return string(runes[:cast.PreviewLimit]) + "…"
}

// truncateString truncates a string to maxWidth visual characters.
// Handles multi-byte characters correctly via lipgloss width
// measurement.
func truncateString(text string, maxWidth int) string {
	if lipgloss.Width(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for length := len(runes) - 1; length >= 0; length-- {
		candidate := string(runes[:length])
		if lipgloss.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}
