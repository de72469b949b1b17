// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package castui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/vimpilot/vimpilot/lib/cast"
)

// payloadHeaderLines is the fixed number of lines consumed by the
// payload pane header (event summary + separator). Constant so the
// scrollable body never shifts vertically when stepping events.
const payloadHeaderLines = 2

// PayloadPane is the right pane of the inspector: a scrollable
// viewport showing the selected event's full payload with control
// characters made visible. Escape sequences are shown as text, never
// interpreted — the pane is a debugger view, not a terminal.
type PayloadPane struct {
	viewport viewport.Model
	theme    Theme
	width    int
	height   int

	// Retained for re-rendering on resize. Set by SetEvent, cleared
	// by Clear.
	hasEvent bool
	event    cast.Event
	index    int

	// Pre-rendered header string, set by SetEvent and rerender.
	header string
}

// NewPayloadPane creates an empty payload pane.
func NewPayloadPane(theme Theme) PayloadPane {
	return PayloadPane{theme: theme}
}

// bodyHeight returns the number of lines available for the scrollable
// viewport body.
func (pane PayloadPane) bodyHeight() int {
	result := pane.height - payloadHeaderLines
	if result < 1 {
		result = 1
	}
	return result
}

// contentWidth returns the usable width for text content (total width
// minus the left padding column and right scrollbar column).
func (pane PayloadPane) contentWidth() int {
	return pane.width - 2
}

// SetSize updates the pane dimensions. If the width changed and an
// event is displayed, the payload is re-rendered so wrapping stays
// correct.
func (pane *PayloadPane) SetSize(width, height int) {
	previousWidth := pane.width
	pane.width = width
	pane.height = height
	pane.viewport.Width = pane.contentWidth()
	pane.viewport.Height = pane.bodyHeight()

	if pane.hasEvent && width != previousWidth {
		pane.rerender()
	}
}

// SetEvent updates the pane with the payload of the given event. The
// index is the event's position in the recording, shown in the header.
// Scroll position resets to the top when the displayed event changes.
func (pane *PayloadPane) SetEvent(event cast.Event, index int) {
	sameEvent := pane.hasEvent && pane.index == index
	pane.hasEvent = true
	pane.event = event
	pane.index = index
	pane.rerender()
	if !sameEvent {
		pane.viewport.GotoTop()
	}
}

// Clear removes the pane content.
func (pane *PayloadPane) Clear() {
	pane.hasEvent = false
	pane.event = cast.Event{}
	pane.index = 0
	pane.header = ""
	pane.viewport.SetContent("")
}

// rerender regenerates the header and body at the current width.
func (pane *PayloadPane) rerender() {
	contentWidth := max(pane.contentWidth(), 1)

	kindStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(pane.theme.KindColor(pane.event.Kind))
	faintStyle := lipgloss.NewStyle().Foreground(pane.theme.FaintText)

	summary := fmt.Sprintf("#%d  ", pane.index) +
		kindStyle.Render(pane.event.Kind.String()) +
		faintStyle.Render(fmt.Sprintf("  %.2fs  %d bytes",
			pane.event.Offset, len(pane.event.Payload)))

	separator := lipgloss.NewStyle().
		Foreground(pane.theme.BorderColor).
		Render(strings.Repeat("─", contentWidth))

	pane.header = summary + "\n" + separator

	body := escapeControls(pane.event.Payload, true)
	// Wrap to contentWidth so no line exceeds the viewport width.
	body = lipgloss.NewStyle().Width(contentWidth).Render(body)
	pane.viewport.SetContent(body)
}

// ScrollUp scrolls the payload up by half a page.
func (pane *PayloadPane) ScrollUp() {
	pane.viewport.HalfViewUp()
}

// ScrollDown scrolls the payload down by half a page.
func (pane *PayloadPane) ScrollDown() {
	pane.viewport.HalfViewDown()
}

// View renders the pane as a docked panel with a fixed header,
// scrollable body, left padding, and a right scrollbar.
func (pane PayloadPane) View(focused bool) string {
	contentWidth := pane.contentWidth()

	if !pane.hasEvent {
		emptyStyle := lipgloss.NewStyle().Foreground(pane.theme.FaintText)
		contentStyle := lipgloss.NewStyle().
			PaddingLeft(1).
			Width(pane.width - 1).
			Height(pane.height)

		content := contentStyle.Render(
			lipgloss.Place(
				contentWidth, pane.height,
				lipgloss.Center, lipgloss.Center,
				emptyStyle.Render("Select an event to view its payload"),
			),
		)

		scrollbar := renderScrollbar(
			pane.theme, pane.height,
			0, pane.height, 0,
			focused,
		)
		return lipgloss.JoinHorizontal(lipgloss.Top, content, scrollbar)
	}

	paddingStyle := lipgloss.NewStyle().
		PaddingLeft(1).
		Width(pane.width - 1)

	headerView := paddingStyle.Height(payloadHeaderLines).Render(pane.header)
	bodyView := paddingStyle.Height(pane.bodyHeight()).Render(pane.viewport.View())
	content := headerView + "\n" + bodyView

	// Scrollbar: blank column for the header rows, actual scrollbar
	// for the body rows.
	headerColumn := lipgloss.NewStyle().
		Width(1).
		Height(payloadHeaderLines).
		Render("")
	bodyScrollbar := renderScrollbar(
		pane.theme, pane.bodyHeight(),
		pane.viewport.TotalLineCount(), pane.viewport.Height, pane.viewport.YOffset,
		focused,
	)
	scrollColumn := headerColumn + "\n" + bodyScrollbar

	return lipgloss.JoinHorizontal(lipgloss.Top, content, scrollColumn)
}

// escapeControls renders a payload with control characters made
// visible. ESC becomes \e, carriage return \r, tab \t, and any other
// control byte \xNN. When multiline is true newlines survive as real
// line breaks so the payload keeps its shape; when false they become
// \n so the result stays on one line.
func escapeControls(payload string, multiline bool) string {
	var b strings.Builder
	b.Grow(len(payload))
	for _, r := range payload {
		switch {
		case r == '\n':
			if multiline {
				b.WriteRune(r)
			} else {
				b.WriteString(`\n`)
			}
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == 0x1b:
			b.WriteString(`\e`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
