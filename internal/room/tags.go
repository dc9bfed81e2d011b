// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package room is the event projection and redaction engine.
package room

import "github.com/jeranaias/roomview-tui/internal/display"

// =============================================================================
// MESSAGE CLASSES
// =============================================================================

// messageClass selects the base tag set of a line.
type messageClass string

const (
	classMessage     messageClass = "message"
	classSelfMessage messageClass = "self_message"
	classAction      messageClass = "action"
	classJoin        messageClass = "join"
	classPart        messageClass = "part"
	classKick        messageClass = "kick"
	classInvite      messageClass = "invite"
	classTopic       messageClass = "topic"
)

// baseTags are the class-specific directive tags. Self messages carry the
// quiet set (no notification, no highlight) so users are not pinged by their
// own words.
var baseTags = map[messageClass][]string{
	classMessage: {
		display.TagMessage,
		display.TagNotifyMessage,
		display.TagLogMessage,
	},
	classSelfMessage: {
		display.TagMessage,
		display.TagNotifyNone,
		display.TagNoHighlight,
		display.TagSelfMsg,
		display.TagLogMessage,
	},
	classAction: {
		display.TagMessage,
		display.TagAction,
		display.TagNotifyMessage,
		display.TagLogMessage,
	},
	classJoin: {
		display.TagJoin,
		display.TagLogMembership,
	},
	classPart: {
		display.TagPart,
		display.TagLogMembership,
	},
	classKick: {
		display.TagKick,
		display.TagLogMembership,
	},
	classInvite: {
		display.TagInvite,
		display.TagLogMembership,
	},
	classTopic: {
		display.TagTopic,
		display.TagLogTopic,
	},
}

// messageTags assembles the full tag set for a line: class base tags, the
// nick tag, the color-resolved prefix tag (not for actions, whose prefix
// column is the action star) and any extra tags. The result is always a
// fresh slice; callers own it.
func messageTags(class messageClass, u *User, extra ...string) []string {
	base := baseTags[class]
	tags := make([]string, 0, len(base)+2+len(extra))
	tags = append(tags, base...)
	tags = append(tags, display.NickTag(u.Nick))
	if class != classAction {
		tags = append(tags, display.PrefixNickTag(u.Color.Name))
	}
	tags = append(tags, extra...)
	return tags
}
