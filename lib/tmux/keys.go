// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package tmux

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// namedKeys maps lowercased user-facing key names to tmux key names.
// Several common aliases fold to the same tmux key.
var namedKeys = map[string]string{
	"enter":     "Enter",
	"return":    "Enter",
	"cr":        "Enter",
	"tab":       "Tab",
	"btab":      "BTab",
	"esc":       "Escape",
	"escape":    "Escape",
	"space":     "Space",
	"backspace": "BSpace",
	"bspace":    "BSpace",
	"delete":    "DC",
	"del":       "DC",
	"insert":    "IC",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
	"home":      "Home",
	"end":       "End",
	"pageup":    "PageUp",
	"pgup":      "PageUp",
	"pagedown":  "PageDown",
	"pgdown":    "PageDown",
	"pgdn":      "PageDown",
}

// modifierPrefixes maps lowercased modifier names to their tmux prefix.
var modifierPrefixes = map[string]string{
	"c":       "C-",
	"ctrl":    "C-",
	"control": "C-",
	"m":       "M-",
	"alt":     "M-",
	"meta":    "M-",
	"s":       "S-",
	"shift":   "S-",
}

// NormalizeKey translates one user-facing key token into tmux key
// syntax. Friendly names (enter, esc, pgdn, f5) and modifier chains
// (ctrl+c, alt-left) become their tmux equivalents; single characters
// and anything already in tmux syntax pass through unchanged. Tokens
// that cannot be parsed also pass through verbatim, so tmux itself
// remains the authority on what is a valid key.
func NormalizeKey(token string) string {
	if token == "" {
		return token
	}

	// Single characters are literal keys. This also covers "-" and "+",
	// which would otherwise read as empty modifier chains.
	if utf8.RuneCountInString(token) == 1 {
		return token
	}

	if name, ok := namedKeys[strings.ToLower(token)]; ok {
		return name
	}
	if name, ok := functionKey(token); ok {
		return name
	}

	if strings.ContainsAny(token, "+-") {
		if normalized, ok := normalizeChord(token); ok {
			return normalized
		}
	}

	return token
}

// NormalizeKeys translates a sequence of key tokens with NormalizeKey.
func NormalizeKeys(tokens []string) []string {
	normalized := make([]string, len(tokens))
	for i, token := range tokens {
		normalized[i] = NormalizeKey(token)
	}
	return normalized
}

// functionKey recognizes f1 through f12 in any case and returns the
// tmux name (F1..F12).
func functionKey(token string) (string, bool) {
	if len(token) < 2 || (token[0] != 'f' && token[0] != 'F') {
		return "", false
	}
	number, err := strconv.Atoi(token[1:])
	if err != nil || number < 1 || number > 12 {
		return "", false
	}
	return "F" + strconv.Itoa(number), true
}

// normalizeChord parses a modifier chain like ctrl+shift+left or C-c.
// Every part before the last must be a known modifier; the final part
// is the base key, normalized recursively so ctrl+pgdn becomes
// C-PageDown. Reports false when any part fails to parse, in which
// case the caller passes the original token through untouched.
func normalizeChord(token string) (string, bool) {
	parts := strings.FieldsFunc(token, func(r rune) bool {
		return r == '+' || r == '-'
	})
	if len(parts) < 2 {
		return "", false
	}

	var prefix strings.Builder
	for _, part := range parts[:len(parts)-1] {
		modifier, ok := modifierPrefixes[strings.ToLower(part)]
		if !ok {
			return "", false
		}
		prefix.WriteString(modifier)
	}

	base := parts[len(parts)-1]
	if utf8.RuneCountInString(base) > 1 {
		if name, ok := namedKeys[strings.ToLower(base)]; ok {
			base = name
		} else if name, ok := functionKey(base); ok {
			base = name
		} else {
			return "", false
		}
	}

	return prefix.String() + base, true
}
