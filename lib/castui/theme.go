// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package castui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vimpilot/vimpilot/lib/cast"
)

// Theme defines the color palette for the recording inspector. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Event kind colors.
	KindInput  lipgloss.Color
	KindOutput lipgloss.Color
	KindMarker lipgloss.Color
	KindResize lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	FocusAccent      lipgloss.Color
}

// KindColor returns the color for an event kind. Unknown kinds get
// FaintText.
func (theme Theme) KindColor(kind cast.EventKind) lipgloss.Color {
	switch kind {
	case cast.Input:
		return theme.KindInput
	case cast.Output:
		return theme.KindOutput
	case cast.Marker:
		return theme.KindMarker
	case cast.Resize:
		return theme.KindResize
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background (the common case for
// development environments and tmux sessions).
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	KindInput:  lipgloss.Color("114"), // green: what was typed
	KindOutput: lipgloss.Color("245"), // gray: the bulk of any recording
	KindMarker: lipgloss.Color("220"), // amber: navigation anchors
	KindResize: lipgloss.Color("75"),  // blue

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	FocusAccent:      lipgloss.Color("220"),
}
