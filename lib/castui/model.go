// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package castui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vimpilot/vimpilot/lib/cast"
)

// FocusRegion identifies which pane has keyboard focus.
type FocusRegion int

const (
	// FocusList means navigation keys step through the event list.
	FocusList FocusRegion = iota
	// FocusPayload means navigation keys scroll the payload viewport.
	FocusPayload
)

// Split ratio bounds and step size.
const (
	splitRatioMin  = 0.25
	splitRatioMax  = 0.75
	splitRatioStep = 0.05
)

// Model is the top-level bubbletea model for the recording inspector.
// It steps through the decoded events of one recording: an event list
// on the left, the selected event's payload on the right.
type Model struct {
	recording *cast.Recording
	theme     Theme
	keys      KeyMap

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	// Event list state.
	cursor       int
	scrollOffset int

	// Two-pane layout.
	focusRegion FocusRegion
	splitRatio  float64 // Fraction of width for the event list.
	payloadPane PayloadPane
}

// NewModel creates a Model over a decoded recording. The cursor
// starts on the first event.
func NewModel(recording *cast.Recording) Model {
	model := Model{
		recording:   recording,
		theme:       DefaultTheme,
		keys:        DefaultKeyMap,
		splitRatio:  0.50,
		payloadPane: NewPayloadPane(DefaultTheme),
	}
	return model
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Routes keyboard events based on the
// current focus region and handles layout changes.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit

		case key.Matches(message, model.keys.FocusToggle):
			if model.focusRegion == FocusList {
				model.focusRegion = FocusPayload
			} else {
				model.focusRegion = FocusList
			}

		case key.Matches(message, model.keys.SplitGrow):
			model.splitRatio = min(model.splitRatio+splitRatioStep, splitRatioMax)
			model.updatePaneSizes()

		case key.Matches(message, model.keys.SplitShrink):
			model.splitRatio = max(model.splitRatio-splitRatioStep, splitRatioMin)
			model.updatePaneSizes()

		case key.Matches(message, model.keys.NextMarker):
			model.jumpMarker(1)

		case key.Matches(message, model.keys.PrevMarker):
			model.jumpMarker(-1)

		default:
			if model.focusRegion == FocusList {
				model.handleListKeys(message)
			} else {
				model.handlePayloadKeys(message)
			}
		}

	case tea.MouseMsg:
		model.handleMouse(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.updatePaneSizes()
		model.ensureCursorVisible()
		model.syncPayloadPane()
	}
	return model, nil
}

// handleListKeys processes navigation keys when the event list has
// focus. Every movement re-syncs the payload pane to the new cursor.
func (model *Model) handleListKeys(message tea.KeyMsg) {
	count := len(model.recording.Events)

	switch {
	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.cursor < count-1 {
			model.cursor++
		}

	case key.Matches(message, model.keys.PageUp):
		model.cursor = max(model.cursor-model.visibleHeight(), 0)

	case key.Matches(message, model.keys.PageDown):
		if count > 0 {
			model.cursor = min(model.cursor+model.visibleHeight(), count-1)
		}

	case key.Matches(message, model.keys.Home):
		model.cursor = 0

	case key.Matches(message, model.keys.End):
		if count > 0 {
			model.cursor = count - 1
		}
	}

	model.ensureCursorVisible()
	model.syncPayloadPane()
}

// handlePayloadKeys processes navigation keys when the payload pane
// has focus.
func (model *Model) handlePayloadKeys(message tea.KeyMsg) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.payloadPane.viewport.LineUp(1)
	case key.Matches(message, model.keys.Down):
		model.payloadPane.viewport.LineDown(1)
	case key.Matches(message, model.keys.PageUp):
		model.payloadPane.ScrollUp()
	case key.Matches(message, model.keys.PageDown):
		model.payloadPane.ScrollDown()
	case key.Matches(message, model.keys.Home):
		model.payloadPane.viewport.GotoTop()
	case key.Matches(message, model.keys.End):
		model.payloadPane.viewport.GotoBottom()
	}
}

// jumpMarker moves the cursor to the next marker event in the given
// direction (+1 forward, -1 backward). The cursor stays put when no
// marker exists in that direction.
func (model *Model) jumpMarker(direction int) {
	events := model.recording.Events
	for index := model.cursor + direction; index >= 0 && index < len(events); index += direction {
		if events[index].Kind == cast.Marker {
			model.cursor = index
			model.focusRegion = FocusList
			model.ensureCursorVisible()
			model.syncPayloadPane()
			return
		}
	}
}

// handleMouse routes mouse events based on position. The scroll wheel
// scrolls whichever pane the cursor is over; a left click in the list
// selects the clicked row.
func (model *Model) handleMouse(message tea.MouseMsg) {
	contentStart := 1 // Header line is row 0.
	listWidth := model.listWidth()

	inContentArea := message.Y >= contentStart && message.Y < model.height-2
	inListPane := message.X >= 0 && message.X <= listWidth

	switch message.Button {
	case tea.MouseButtonWheelUp:
		if !inContentArea {
			return
		}
		if inListPane {
			model.cursor = max(model.cursor-1, 0)
			model.ensureCursorVisible()
			model.syncPayloadPane()
		} else {
			model.payloadPane.viewport.LineUp(3)
		}

	case tea.MouseButtonWheelDown:
		if !inContentArea {
			return
		}
		if inListPane {
			if count := len(model.recording.Events); count > 0 {
				model.cursor = min(model.cursor+1, count-1)
			}
			model.ensureCursorVisible()
			model.syncPayloadPane()
		} else {
			model.payloadPane.viewport.LineDown(3)
		}

	case tea.MouseButtonLeft:
		if message.Action != tea.MouseActionPress || !inContentArea {
			return
		}
		if inListPane {
			model.focusRegion = FocusList
			index := model.scrollOffset + message.Y - contentStart
			if index >= 0 && index < len(model.recording.Events) {
				model.cursor = index
				model.syncPayloadPane()
			}
		} else {
			model.focusRegion = FocusPayload
		}
	}
}

// syncPayloadPane updates the payload pane to show the event under
// the cursor.
func (model *Model) syncPayloadPane() {
	events := model.recording.Events
	if model.cursor < 0 || model.cursor >= len(events) {
		model.payloadPane.Clear()
		return
	}
	model.payloadPane.SetEvent(events[model.cursor], model.cursor)
}

// updatePaneSizes recalculates pane dimensions after a resize or
// split ratio change.
func (model *Model) updatePaneSizes() {
	// 1 column for the vertical divider between panes.
	payloadWidth := model.width - model.listWidth() - 1
	if payloadWidth < 10 {
		payloadWidth = 10
	}
	model.payloadPane.SetSize(payloadWidth, model.visibleHeight())
}

// listWidth returns the width of the event list pane in columns.
func (model Model) listWidth() int {
	return int(float64(model.width) * model.splitRatio)
}

// visibleHeight returns the number of event rows that fit between the
// chrome: header line above, separator and help bar below.
func (model Model) visibleHeight() int {
	return model.height - 3
}

// ensureCursorVisible adjusts scrollOffset so the cursor is within
// the visible window.
func (model *Model) ensureCursorVisible() {
	visible := model.visibleHeight()
	if visible <= 0 {
		return
	}

	maxOffset := max(len(model.recording.Events)-visible, 0)
	if model.scrollOffset > maxOffset {
		model.scrollOffset = maxOffset
	}

	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
}

// View implements tea.Model. Renders the full inspector frame with
// two panes.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	if len(model.recording.Events) == 0 {
		return model.renderEmpty()
	}

	var sections []string
	sections = append(sections, model.renderHeader())

	listView := model.renderListPane()
	divider := model.renderDivider()
	payloadView := model.payloadPane.View(model.focusRegion == FocusPayload)
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, listView, divider, payloadView))

	separator := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))
	sections = append(sections, separator)

	sections = append(sections, model.renderHelp())

	return strings.Join(sections, "\n")
}

// renderHeader renders the title line in the btop style: the recording
// name embedded in a horizontal rule with stats on the right.
//
// Example: ─── vim-20260314.cast ── 80x24 ───── 128 events  3 markers  12.50s ───
func (model Model) renderHeader() string {
	separatorStyle := lipgloss.NewStyle().Foreground(model.theme.BorderColor)
	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	statsStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	name := filepath.Base(model.recording.Path)
	geometry := fmt.Sprintf("%dx%d",
		model.recording.Header.Width, model.recording.Header.Height)

	stats := fmt.Sprintf("%d events", len(model.recording.Events))
	if count := model.markerCount(); count > 0 {
		stats += fmt.Sprintf("  %d markers", count)
	}
	stats += fmt.Sprintf("  %.2fs", model.recording.Duration())

	left := separatorStyle.Render("─── ") +
		nameStyle.Render(name) +
		separatorStyle.Render(" ── ") +
		statsStyle.Render(geometry)
	right := statsStyle.Render(stats) + separatorStyle.Render(" ───")

	fill := model.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if fill < 1 {
		fill = 1
	}
	return left + " " + separatorStyle.Render(strings.Repeat("─", fill)) + " " + right
}

// markerCount returns the number of marker events in the recording.
func (model Model) markerCount() int {
	count := 0
	for _, event := range model.recording.Events {
		if event.Kind == cast.Marker {
			count++
		}
	}
	return count
}

// renderListPane renders the event list with column layout and a
// right scrollbar.
func (model Model) renderListPane() string {
	listWidth := model.listWidth()
	rowWidth := listWidth - 1 // Reserve the scrollbar column.
	renderer := rowRenderer{theme: model.theme, width: rowWidth}

	visible := max(model.visibleHeight(), 0)
	events := model.recording.Events

	var rows []string
	for index := model.scrollOffset; index < model.scrollOffset+visible && index < len(events); index++ {
		rows = append(rows, renderer.renderRow(index, events[index], index == model.cursor))
	}

	// Pad empty rows.
	rendered := len(rows)
	if rendered < visible {
		emptyStyle := lipgloss.NewStyle().Width(rowWidth)
		for padding := rendered; padding < visible; padding++ {
			rows = append(rows, emptyStyle.Render(""))
		}
	}

	scrollbar := renderScrollbar(
		model.theme, visible,
		len(events), visible, model.scrollOffset,
		model.focusRegion == FocusList,
	)

	contentStyle := lipgloss.NewStyle().
		Width(rowWidth).
		Height(visible)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		contentStyle.Render(strings.Join(rows, "\n")),
		scrollbar,
	)
}

// renderDivider renders the single-column vertical divider between
// the panes.
func (model Model) renderDivider() string {
	visible := max(model.visibleHeight(), 0)

	dividerStyle := lipgloss.NewStyle().Foreground(model.theme.BorderColor)
	lines := make([]string, visible)
	for index := range lines {
		lines[index] = "│"
	}
	return dividerStyle.Width(1).Height(visible).Render(strings.Join(lines, "\n"))
}

// renderEmpty renders the full-screen notice for a recording with no
// events (a header-only cast file).
func (model Model) renderEmpty() string {
	style := lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Width(model.width).
		Height(model.height).
		Align(lipgloss.Center, lipgloss.Center)
	return style.Render(fmt.Sprintf("%s has no events",
		filepath.Base(model.recording.Path)))
}

// renderHelp renders the bottom help bar with the focus indicator and
// a scroll position hint.
func (model Model) renderHelp() string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	focusIndicator := "EVENTS"
	if model.focusRegion == FocusPayload {
		focusIndicator = "PAYLOAD"
	}

	help := fmt.Sprintf(" [%s] q quit  ↑↓ step  C-u/C-d page  g/G ends  m/M markers  Tab focus  ]/[ resize",
		focusIndicator)

	count := len(model.recording.Events)
	if count > model.visibleHeight() {
		position := ""
		if model.scrollOffset == 0 {
			position = "top"
		} else if model.scrollOffset+model.visibleHeight() >= count {
			position = "bottom"
		} else {
			percent := float64(model.scrollOffset) / float64(count-model.visibleHeight()) * 100
			position = fmt.Sprintf("%d%%", int(percent))
		}
		help += fmt.Sprintf("  [%s] %d/%d", position, model.cursor+1, count)
	} else if count > 0 {
		help += fmt.Sprintf("  %d/%d", model.cursor+1, count)
	}

	return style.Width(model.width).MaxWidth(model.width).Render(help)
}
