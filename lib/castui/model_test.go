// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package castui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vimpilot/vimpilot/lib/cast"
)

// testRecording builds a small editing session: screen setup, an
// insert, two markers, a resize, and the final write confirmation.
func testRecording() *cast.Recording {
	return &cast.Recording{
		Path: "/tmp/vim-20260314-090000.cast",
		Header: cast.Header{
			Version: 2,
			Width:   80,
			Height:  24,
		},
		Events: []cast.Event{
			{Offset: 0.10, Kind: cast.Output, Payload: "\x1b[2J\x1b[H~\r\n~\r\n\"scratch\" [New]"},
			{Offset: 1.25, Kind: cast.Input, Payload: "ihello"},
			{Offset: 1.30, Kind: cast.Output, Payload: "hello"},
			{Offset: 2.00, Kind: cast.Marker, Payload: "insert done"},
			{Offset: 3.45, Kind: cast.Input, Payload: "\x1b:wq\r"},
			{Offset: 3.50, Kind: cast.Resize, Payload: "120x40"},
			{Offset: 4.20, Kind: cast.Marker, Payload: "saved"},
			{Offset: 5.05, Kind: cast.Output, Payload: "\"scratch\" 1L, 6B written"},
		},
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewModel(t *testing.T) {
	model := NewModel(testRecording())

	if model.cursor != 0 {
		t.Errorf("initial cursor should be 0, got %d", model.cursor)
	}

	// Before receiving WindowSizeMsg, View returns loading text.
	if view := model.View(); view != "Loading..." {
		t.Errorf("expected 'Loading...' before WindowSizeMsg, got %q", view)
	}
}

func TestModelNavigation(t *testing.T) {
	model := NewModel(testRecording())
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	model = updated.(Model)

	// Move down twice.
	updated, _ = model.Update(keyRune('j'))
	model = updated.(Model)
	if model.cursor != 1 {
		t.Errorf("cursor after j should be 1, got %d", model.cursor)
	}
	updated, _ = model.Update(keyRune('j'))
	model = updated.(Model)
	if model.cursor != 2 {
		t.Errorf("cursor after second j should be 2, got %d", model.cursor)
	}

	// Move back up.
	updated, _ = model.Update(keyRune('k'))
	model = updated.(Model)
	if model.cursor != 1 {
		t.Errorf("cursor after k should be 1, got %d", model.cursor)
	}

	// Up past the first event stays at 0.
	updated, _ = model.Update(keyRune('k'))
	model = updated.(Model)
	updated, _ = model.Update(keyRune('k'))
	model = updated.(Model)
	if model.cursor != 0 {
		t.Errorf("cursor should clamp at 0, got %d", model.cursor)
	}

	// End jumps to the last event, down stays there.
	updated, _ = model.Update(keyRune('G'))
	model = updated.(Model)
	if model.cursor != 7 {
		t.Errorf("cursor after G should be 7, got %d", model.cursor)
	}
	updated, _ = model.Update(keyRune('j'))
	model = updated.(Model)
	if model.cursor != 7 {
		t.Errorf("cursor should clamp at last event, got %d", model.cursor)
	}

	// Home returns to the first event.
	updated, _ = model.Update(keyRune('g'))
	model = updated.(Model)
	if model.cursor != 0 {
		t.Errorf("cursor after g should be 0, got %d", model.cursor)
	}
}

func TestModelPageNavigation(t *testing.T) {
	model := NewModel(testRecording())
	// Height 7 leaves 4 visible rows (header + separator + help).
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 7})
	model = updated.(Model)

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	model = updated.(Model)
	if model.cursor != 4 {
		t.Errorf("cursor after C-d should be 4, got %d", model.cursor)
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	model = updated.(Model)
	if model.cursor != 7 {
		t.Errorf("cursor after second C-d should clamp to 7, got %d", model.cursor)
	}
	if model.scrollOffset != 4 {
		t.Errorf("scrollOffset should follow cursor to 4, got %d", model.scrollOffset)
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	model = updated.(Model)
	if model.cursor != 3 {
		t.Errorf("cursor after C-u should be 3, got %d", model.cursor)
	}
}

func TestModelMarkerJumps(t *testing.T) {
	model := NewModel(testRecording())
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	model = updated.(Model)

	// Markers sit at indices 3 and 6.
	updated, _ = model.Update(keyRune('m'))
	model = updated.(Model)
	if model.cursor != 3 {
		t.Errorf("first m should jump to 3, got %d", model.cursor)
	}

	updated, _ = model.Update(keyRune('m'))
	model = updated.(Model)
	if model.cursor != 6 {
		t.Errorf("second m should jump to 6, got %d", model.cursor)
	}

	// No marker past the last one: cursor stays.
	updated, _ = model.Update(keyRune('m'))
	model = updated.(Model)
	if model.cursor != 6 {
		t.Errorf("m with no further marker should stay at 6, got %d", model.cursor)
	}

	updated, _ = model.Update(keyRune('M'))
	model = updated.(Model)
	if model.cursor != 3 {
		t.Errorf("M should jump back to 3, got %d", model.cursor)
	}

	// No marker before the first one: cursor stays.
	updated, _ = model.Update(keyRune('M'))
	model = updated.(Model)
	if model.cursor != 3 {
		t.Errorf("M with no earlier marker should stay at 3, got %d", model.cursor)
	}
}

func TestModelView(t *testing.T) {
	model := NewModel(testRecording())
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 160, Height: 30})
	model = updated.(Model)

	view := model.View()

	if !strings.Contains(view, "vim-20260314-090000.cast") {
		t.Error("view should contain the recording name")
	}
	if !strings.Contains(view, "80x24") {
		t.Error("view should contain the recorded geometry")
	}
	if !strings.Contains(view, "8 events") {
		t.Error("view should contain the event count")
	}
	if !strings.Contains(view, "2 markers") {
		t.Error("view should contain the marker count")
	}
	if !strings.Contains(view, "OUTPUT") {
		t.Error("view should contain an OUTPUT row")
	}
	if !strings.Contains(view, "MARKER") {
		t.Error("view should contain a MARKER row")
	}
	if !strings.Contains(view, "insert done") {
		t.Error("view should contain the marker label")
	}
	if !strings.Contains(view, `\e:wq\r`) {
		t.Error("view should show input keystrokes with escapes visible")
	}
	if !strings.Contains(view, `\e[2J`) {
		t.Error("payload pane should show the selected event's escaped payload")
	}
	if !strings.Contains(view, "q quit") {
		t.Error("view should contain help text")
	}
	if !strings.Contains(view, "1/8") {
		t.Error("view should contain the cursor position indicator")
	}
}

func TestModelEmptyRecording(t *testing.T) {
	recording := &cast.Recording{
		Path:   "/tmp/empty.cast",
		Header: cast.Header{Version: 2, Width: 80, Height: 24},
	}
	model := NewModel(recording)
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	model = updated.(Model)

	if !strings.Contains(model.View(), "has no events") {
		t.Error("empty view should say the recording has no events")
	}
}

func TestModelQuit(t *testing.T) {
	model := NewModel(testRecording())

	_, command := model.Update(keyRune('q'))
	if command == nil {
		t.Fatal("q key should return a command")
	}
	if _, isQuit := command().(tea.QuitMsg); !isQuit {
		t.Errorf("expected QuitMsg from q")
	}
}

func TestModelFocusToggle(t *testing.T) {
	model := NewModel(testRecording())
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	model = updated.(Model)

	if model.focusRegion != FocusList {
		t.Fatalf("initial focus should be the event list")
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model = updated.(Model)
	if model.focusRegion != FocusPayload {
		t.Errorf("tab should focus the payload pane")
	}
	if !strings.Contains(model.View(), "[PAYLOAD]") {
		t.Error("help bar should show payload focus")
	}

	// Navigation keys scroll the payload instead of moving the cursor.
	updated, _ = model.Update(keyRune('j'))
	model = updated.(Model)
	if model.cursor != 0 {
		t.Errorf("j with payload focus should not move the cursor, got %d", model.cursor)
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model = updated.(Model)
	if model.focusRegion != FocusList {
		t.Errorf("second tab should return focus to the list")
	}
}

func TestModelMarkerJumpRefocusesList(t *testing.T) {
	model := NewModel(testRecording())
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	model = updated.(Model)

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model = updated.(Model)
	updated, _ = model.Update(keyRune('m'))
	model = updated.(Model)

	if model.cursor != 3 {
		t.Errorf("m should jump to the marker from payload focus, got cursor %d", model.cursor)
	}
	if model.focusRegion != FocusList {
		t.Errorf("marker jump should move focus back to the list")
	}
}

func TestModelMouseWheelMovesCursor(t *testing.T) {
	model := NewModel(testRecording())
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	model = updated.(Model)

	wheel := tea.MouseMsg{X: 5, Y: 5, Button: tea.MouseButtonWheelDown}
	updated, _ = model.Update(wheel)
	model = updated.(Model)
	if model.cursor != 1 {
		t.Errorf("wheel down over the list should move the cursor to 1, got %d", model.cursor)
	}

	wheel.Button = tea.MouseButtonWheelUp
	updated, _ = model.Update(wheel)
	model = updated.(Model)
	if model.cursor != 0 {
		t.Errorf("wheel up over the list should move the cursor to 0, got %d", model.cursor)
	}

	// Wheel outside the content area is ignored.
	wheel.Y = 0
	wheel.Button = tea.MouseButtonWheelDown
	updated, _ = model.Update(wheel)
	model = updated.(Model)
	if model.cursor != 0 {
		t.Errorf("wheel on the header row should be ignored, got cursor %d", model.cursor)
	}
}

func TestModelMouseClickSelectsRow(t *testing.T) {
	model := NewModel(testRecording())
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	model = updated.(Model)

	// Rows start below the header line (Y=1 is row 0).
	click := tea.MouseMsg{
		X:      5,
		Y:      3,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	}
	updated, _ = model.Update(click)
	model = updated.(Model)
	if model.cursor != 2 {
		t.Errorf("click on row 2 should select it, got cursor %d", model.cursor)
	}

	// Click past the last event leaves the selection alone.
	click.Y = 15
	updated, _ = model.Update(click)
	model = updated.(Model)
	if model.cursor != 2 {
		t.Errorf("click below the last event should keep cursor 2, got %d", model.cursor)
	}

	// Click in the payload pane switches focus.
	click.X = model.listWidth() + 5
	click.Y = 3
	updated, _ = model.Update(click)
	model = updated.(Model)
	if model.focusRegion != FocusPayload {
		t.Errorf("click in the payload pane should focus it")
	}
}
