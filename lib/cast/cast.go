// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package cast

import "fmt"

// Header is the first line of a cast v2 file: a JSON object declaring
// the terminal geometry the recording was made at, plus optional
// metadata written by the recorder.
type Header struct {
	Version   int     `json:"version"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Timestamp int64   `json:"timestamp,omitempty"`
	IdleLimit float64 `json:"idle_time_limit,omitempty"`
	Title     string  `json:"title,omitempty"`

	// Env carries the recorder's environment snapshot (SHELL, TERM).
	Env map[string]string `json:"env,omitempty"`
}

// EventKind classifies a recorded event.
type EventKind uint8

const (
	// Input is data the user (or driving agent) typed into the session.
	Input EventKind = iota
	// Output is data the hosted program wrote to the terminal.
	Output
	// Marker is an annotation injected into the stream, used to label
	// points of interest for later navigation.
	Marker
	// Resize records a change of terminal dimensions.
	Resize
)

// String returns the timeline label for an event kind.
func (k EventKind) String() string {
	switch k {
	case Input:
		return "INPUT"
	case Output:
		return "OUTPUT"
	case Marker:
		return "MARKER"
	case Resize:
		return "RESIZE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", k)
	}
}

// Code returns the single-letter wire code for an event kind, as it
// appears in the cast file.
func (k EventKind) Code() string {
	switch k {
	case Input:
		return "i"
	case Output:
		return "o"
	case Marker:
		return "m"
	case Resize:
		return "r"
	default:
		return "?"
	}
}

// parseKind maps a wire code to its kind. The code set is closed:
// anything else is a malformed event.
func parseKind(code string) (EventKind, error) {
	switch code {
	case "i":
		return Input, nil
	case "o":
		return Output, nil
	case "m":
		return Marker, nil
	case "r":
		return Resize, nil
	default:
		return 0, fmt.Errorf("unknown event code %q", code)
	}
}

// Event is one decoded record from a cast file. Payload is the
// untruncated wire payload; use [Preview] when formatting Output
// payloads for display.
type Event struct {
	// Offset is seconds since recording start. Events appear in the
	// file in non-decreasing offset order and are never re-sorted.
	Offset float64

	Kind    EventKind
	Payload string
}

// Recording is a fully decoded cast file.
type Recording struct {
	// Path is the source log the recording was decoded from. Decoding
	// never mutates the source.
	Path string

	Header Header
	Events []Event
}

// Outputs returns the indices of all Output events, in order.
func (r *Recording) Outputs() []int {
	var indices []int
	for i, event := range r.Events {
		if event.Kind == Output {
			indices = append(indices, i)
		}
	}
	return indices
}

// Duration returns the offset of the last event, or zero for an empty
// recording.
func (r *Recording) Duration() float64 {
	if len(r.Events) == 0 {
		return 0
	}
	return r.Events[len(r.Events)-1].Offset
}
