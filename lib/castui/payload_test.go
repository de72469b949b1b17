// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package castui

import (
	"strings"
	"testing"

	"github.com/vimpilot/vimpilot/lib/cast"
)

func TestEscapeControls(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		multiline bool
		want      string
	}{
		{"plain text", "hello", true, "hello"},
		{"newline kept multiline", "a\nb", true, "a\nb"},
		{"newline escaped inline", "a\nb", false, `a\nb`},
		{"escape sequence", "\x1b[2J", true, `\e[2J`},
		{"carriage return", ":wq\r", true, `:wq\r`},
		{"tab", "a\tb", true, `a\tb`},
		{"bell", "\x07", true, `\x07`},
		{"delete", "\x7f", true, `\x7f`},
		{"unicode preserved", "héllo → wörld", true, "héllo → wörld"},
		{"crlf inline", "one\r\ntwo", false, `one\r\ntwo`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := escapeControls(test.payload, test.multiline)
			if got != test.want {
				t.Errorf("escapeControls(%q, %v) = %q, want %q",
					test.payload, test.multiline, got, test.want)
			}
		})
	}
}

func TestRowPreview(t *testing.T) {
	output := cast.Event{Kind: cast.Output, Payload: "\x1b[1mbold\x1b[0m\nnext"}
	got := rowPreview(output)
	if strings.Contains(got, "\x1b") {
		t.Errorf("output preview should strip escapes, got %q", got)
	}
	if !strings.Contains(got, "bold next") {
		t.Errorf("output preview should collapse newlines to spaces, got %q", got)
	}

	input := cast.Event{Kind: cast.Input, Payload: "\x1b:wq\r"}
	if got := rowPreview(input); got != `\e:wq\r` {
		t.Errorf("input preview should escape controls, got %q", got)
	}

	long := cast.Event{Kind: cast.Marker, Payload: strings.Repeat("x", 200)}
	got = rowPreview(long)
	if len([]rune(got)) != cast.PreviewLimit+1 {
		t.Errorf("long preview should cap at %d runes plus ellipsis, got %d",
			cast.PreviewLimit, len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("capped preview should end with an ellipsis, got %q", got)
	}
}

func TestPayloadPaneView(t *testing.T) {
	pane := NewPayloadPane(DefaultTheme)
	pane.SetSize(50, 12)

	view := pane.View(false)
	if !strings.Contains(view, "Select an event") {
		t.Error("empty pane should show the placeholder")
	}

	event := cast.Event{Offset: 3.45, Kind: cast.Input, Payload: "\x1b:wq\r"}
	pane.SetEvent(event, 4)
	view = pane.View(false)

	if !strings.Contains(view, "#4") {
		t.Error("pane header should show the event index")
	}
	if !strings.Contains(view, "INPUT") {
		t.Error("pane header should show the event kind")
	}
	if !strings.Contains(view, "5 bytes") {
		t.Error("pane header should show the payload size")
	}
	if !strings.Contains(view, `\e:wq\r`) {
		t.Error("pane body should show the escaped payload")
	}
}

func TestPayloadPaneScrollResetsOnNewEvent(t *testing.T) {
	pane := NewPayloadPane(DefaultTheme)
	pane.SetSize(40, 8)

	long := cast.Event{Kind: cast.Output, Payload: strings.Repeat("line\n", 50)}
	pane.SetEvent(long, 0)
	pane.ScrollDown()
	if pane.viewport.YOffset == 0 {
		t.Fatal("ScrollDown should move the viewport")
	}

	// Re-setting the same event keeps the scroll position.
	pane.SetEvent(long, 0)
	if pane.viewport.YOffset == 0 {
		t.Error("re-setting the same event should keep the scroll position")
	}

	// A different event resets to the top.
	pane.SetEvent(cast.Event{Kind: cast.Output, Payload: strings.Repeat("other\n", 50)}, 1)
	if pane.viewport.YOffset != 0 {
		t.Errorf("new event should reset scroll, got offset %d", pane.viewport.YOffset)
	}
}

func TestPayloadPaneResizeRewraps(t *testing.T) {
	pane := NewPayloadPane(DefaultTheme)
	pane.SetSize(30, 10)

	wide := cast.Event{Kind: cast.Output, Payload: strings.Repeat("abc ", 30)}
	pane.SetEvent(wide, 0)
	linesBefore := pane.viewport.TotalLineCount()

	pane.SetSize(60, 10)
	linesAfter := pane.viewport.TotalLineCount()

	if linesAfter >= linesBefore {
		t.Errorf("widening the pane should rewrap to fewer lines, got %d -> %d",
			linesBefore, linesAfter)
	}
}
