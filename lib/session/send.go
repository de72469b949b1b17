// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"fmt"

	"github.com/vimpilot/vimpilot/lib/tmux"
)

// SendKeys types a sequence of key tokens into a session. Tokens are
// symbolic key names (Enter, Escape, ctrl+c), single characters, or
// anything already in tmux key syntax; see tmux.NormalizeKey for the
// recognized forms. Returns ErrSessionNotFound when the name is not
// live.
//
// SendKeys does not wait for the editor to process the input. Callers
// needing a consistency point follow up with Capture or WaitFor.
func (m *Manager) SendKeys(name string, keys []string) error {
	if err := m.ensureLive(name); err != nil {
		return err
	}
	if err := m.server.SendKeys(name, tmux.NormalizeKeys(keys)...); err != nil {
		return fmt.Errorf("session %s: %w", name, err)
	}
	return nil
}

// SendLiteral types text into a session with no symbolic-key
// interpretation: every byte arrives as-is, including tokens SendKeys
// would treat as key names. Returns ErrSessionNotFound when the name
// is not live.
func (m *Manager) SendLiteral(name, text string) error {
	if err := m.ensureLive(name); err != nil {
		return err
	}
	if err := m.server.SendLiteral(name, text); err != nil {
		return fmt.Errorf("session %s: %w", name, err)
	}
	return nil
}

// SendCommand runs an ex-style editor command: Escape to leave any
// pending mode, the literal ":" plus command text, then Enter. Sugar
// over the two send paths, not a separate channel.
func (m *Manager) SendCommand(name, command string) error {
	if err := m.ensureLive(name); err != nil {
		return err
	}
	if err := m.server.SendKeys(name, "Escape"); err != nil {
		return fmt.Errorf("session %s: %w", name, err)
	}
	if err := m.server.SendLiteral(name, ":"+command); err != nil {
		return fmt.Errorf("session %s: %w", name, err)
	}
	if err := m.server.SendKeys(name, "Enter"); err != nil {
		return fmt.Errorf("session %s: %w", name, err)
	}
	return nil
}
