// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

// Package castui implements a terminal user interface for stepping
// through decoded recordings. Built on bubbletea (Elm architecture),
// it provides a split-pane view: an event list with offsets, kinds,
// and one-line previews on the left, and the selected event's full
// payload on the right.
//
// The inspector is a debugger-style viewer, not a player: payloads
// are shown with control characters escaped to visible text, and no
// terminal emulation takes place. Marker events act as navigation
// anchors — m/M jump between them.
//
// Data flow:
//
//	[cast file] --cast.Decode--> [Recording]
//	                                  |
//	                              [Model] <- bubbletea event loop
//	                                  |
//	                           [terminal output]
package castui
