// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

// Package session manages the lifecycle of editor sessions hosted in
// tmux: starting and stopping them, typing into them, and observing
// their screens.
//
// The Manager never treats its own bookkeeping as authoritative. Tmux
// is the source of truth for which sessions exist: every operation
// checks liveness against the server, and a start that loses the
// check-then-create race to a concurrent caller surfaces tmux's
// duplicate-name rejection as ErrSessionExists. The process-wide
// registry of started names exists only so StopAll and KillStarted can
// clean up the sessions this process created.
//
// Input has two distinct paths. SendKeys interprets symbolic key
// tokens (Enter, Escape, C-c) through the tmux key syntax; SendLiteral
// types every byte of its text verbatim with no interpretation at all.
// SendCommand composes the two into the editor's command-mode idiom.
//
// Screen observation is pull-based. Capture takes a point-in-time
// snapshot of the visible viewport; WaitFor busy-polls Capture until a
// pattern appears or a deadline passes. There is no push notification
// from the hosted program. All waiting goes through clock.Clock, so
// tests drive WaitFor with a fake clock.
//
// When recording is requested, the editor is launched inside an
// asciinema invocation writing a cast file whose name is derived from
// the session name and a nanosecond timestamp, so repeated recordings
// of the same session name never collide.
package session
