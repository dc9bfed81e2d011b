// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for roomview.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
//
// The central piece is the nick palette: every member gets a color picked
// deterministically from their nick, stable for the lifetime of the room, so
// the transcript and the roster sidebar always agree. Rank prefixes (&, @, +)
// and membership/topic/redaction lines have fixed semantic colors.
package styles
