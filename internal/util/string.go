// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the roomview application.
package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// IDENTIFIER SHORTENING
// =============================================================================

// ShortenSender strips the sigil and server part from a user identifier.
// "@alice:example.org" becomes "alice". Identifiers that do not follow the
// sigil:server form are returned unchanged so a bare nick stays usable.
func ShortenSender(sender string) string {
	s := strings.TrimPrefix(sender, "@")
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return sender
	}
	return s
}

// ShortenRoomID strips the sigil and server part from a room identifier.
// "!abcdef:example.org" becomes "abcdef".
func ShortenRoomID(roomID string) string {
	s := strings.TrimPrefix(roomID, "!")
	s = strings.TrimPrefix(s, "#")
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return roomID
	}
	return s
}

// =============================================================================
// UNICODE: Rune-aware truncation preserves multi-byte characters.
// =============================================================================

// TruncateRunes truncates a string to a maximum number of runes (characters).
// This is safe for UTF-8 strings as it counts characters, not bytes.
// If the string is truncated, "..." is appended.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// TruncateWidth truncates a string to a maximum display width.
// Double-width characters (CJK) count as 2 columns.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth > 3 {
		return runewidth.Truncate(s, maxWidth, "...")
	}
	return runewidth.Truncate(s, maxWidth, "")
}

// PadRight pads a string with spaces to the given display width.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// StringWidth returns the display width of a string.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}
