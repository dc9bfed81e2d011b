// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package display defines the surface a room projects onto.
package display

import (
	"strconv"
	"strings"
)

// Line tags multiplex two kinds of information: directives the host acts on
// (notification class, log level, highlight suppression) and correlation
// keys that let later events find a line again. The constants here are the
// shared vocabulary between the projection core, the surface and the
// transcript store.

// =============================================================================
// CLASS TAGS
// =============================================================================

const (
	// TagMessage marks message-class lines; highlighting is restricted to
	// lines carrying it.
	TagMessage = "chat_message"

	// TagAction marks emote lines (in addition to TagMessage).
	TagAction = "chat_action"

	TagJoin   = "chat_join"
	TagPart   = "chat_part"
	TagKick   = "chat_kick"
	TagInvite = "chat_invite"
	TagTopic  = "chat_topic"
)

// =============================================================================
// HOST DIRECTIVE TAGS
// =============================================================================

const (
	// TagNotifyMessage asks the host for a normal message notification.
	TagNotifyMessage = "notify_message"

	// TagNotifyNone suppresses notifications; used for self messages.
	TagNotifyNone = "notify_none"

	// TagNoHighlight suppresses highlighting regardless of line content.
	TagNoHighlight = "no_highlight"

	// TagSelfMsg marks lines echoing the user's own messages.
	TagSelfMsg = "self_msg"

	// TagNoLog excludes a line from the transcript store.
	TagNoLog = "no_log"
)

// Log level tags: messages log at level 1, topics at 3, membership churn at
// 4, so a host can keep terse transcripts by capping the level.
const (
	TagLogMessage    = "log1"
	TagLogTopic      = "log3"
	TagLogMembership = "log4"
)

// =============================================================================
// CORRELATION TAGS
// =============================================================================

// TagRedacted marks a line whose content has been redacted. Its presence
// makes redaction idempotent: a marked line is never redacted again.
const TagRedacted = "redacted"

// correlationPrefix starts the tag that embeds a line's protocol event ID.
const correlationPrefix = "id_"

// CorrelationTag builds the tag embedding an event identifier.
func CorrelationTag(eventID string) string {
	return correlationPrefix + eventID
}

// CorrelationID extracts the event identifier from a tag set, if present.
func CorrelationID(tags []string) (string, bool) {
	for _, t := range tags {
		if strings.HasPrefix(t, correlationPrefix) {
			return t[len(correlationPrefix):], true
		}
	}
	return "", false
}

// NickTag builds the nick-identifying tag of a line.
func NickTag(nick string) string {
	return "nick_" + nick
}

// PrefixNickTag builds the color-resolved tag downstream highlighting uses
// to color the prefix column.
func PrefixNickTag(colorName string) string {
	return "prefix_nick_" + colorName
}

// =============================================================================
// TAG QUERIES
// =============================================================================

// HasTag reports whether a tag set contains a tag.
func HasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// LogLevel returns the line's log level and whether it should be logged at
// all. A TagNoLog overrides any level tag.
func LogLevel(tags []string) (int, bool) {
	level := 0
	found := false
	for _, t := range tags {
		if t == TagNoLog {
			return 0, false
		}
		if strings.HasPrefix(t, "log") {
			if n, err := strconv.Atoi(t[3:]); err == nil {
				level = n
				found = true
			}
		}
	}
	return level, found
}
