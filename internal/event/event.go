// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package event defines the decoded protocol events a room can receive.
package event

// =============================================================================
// EVENT UNION
// =============================================================================

// Event is the closed set of room events. Implementations live in this
// package only; the projector switches over the concrete types.
type Event interface {
	// Common returns the fields shared by every event.
	Common() Info

	// isEvent seals the union.
	isEvent()
}

// Info holds the fields every event carries.
type Info struct {
	// EventID is the protocol-assigned stable identifier of the event.
	// It is the correlation key used to find the event's rendered line later.
	EventID string

	// Sender is the full user identifier of the event author.
	Sender string

	// RoomID is the room the event belongs to.
	RoomID string

	// ServerTime is the origin timestamp in milliseconds since the epoch.
	ServerTime int64
}

// Common implements Event for every variant that embeds Info.
func (i Info) Common() Info { return i }

// =============================================================================
// MEMBERSHIP
// =============================================================================

// MembershipChange distinguishes the membership event subtypes.
type MembershipChange int

const (
	// Join covers both genuine joins and profile-only updates; the previous
	// membership state tells them apart.
	Join MembershipChange = iota

	// Leave covers voluntary parts and kicks; sender != Target means kick.
	Leave

	// Invite is the invitation of a user not yet in the room.
	Invite
)

// String returns the membership change name.
func (c MembershipChange) String() string {
	switch c {
	case Join:
		return "join"
	case Leave:
		return "leave"
	case Invite:
		return "invite"
	default:
		return "unknown"
	}
}

// Membership is a room membership change.
type Membership struct {
	Info

	// Change is the membership subtype.
	Change MembershipChange

	// Target is the user the change applies to. For joins this matches
	// Sender; for kicks and invites it does not.
	Target string

	// DisplayName is the target's display name, when the event carries one.
	DisplayName string

	// PrevMembership is the target's membership state before this event
	// ("join", "leave", "invite", "ban") or empty when there was none.
	PrevMembership string

	// PowerLevel is the target's power level, when known.
	PowerLevel int

	// Reason optionally explains a leave or kick.
	Reason string
}

func (Membership) isEvent() {}

// =============================================================================
// TOPIC
// =============================================================================

// Topic is a room topic change.
type Topic struct {
	Info

	// Text is the new topic.
	Text string
}

func (Topic) isEvent() {}

// =============================================================================
// MESSAGES
// =============================================================================

// Message is a text or emote message.
type Message struct {
	Info

	// Body is the plain-text body.
	Body string

	// Formatted is the optional rich body (markdown). Empty means the plain
	// body is all there is.
	Formatted string

	// Emote marks a "/me" style action message.
	Emote bool
}

func (Message) isEvent() {}

// Redacted is a message that was already redacted when it was received,
// e.g. loaded from backlog after the redaction happened. The original
// content is gone; only the censor and reason remain.
type Redacted struct {
	Info

	// Censor is the user identifier of the redacting user.
	Censor string

	// Reason optionally explains the redaction.
	Reason string
}

func (Redacted) isEvent() {}

// =============================================================================
// REDACTION
// =============================================================================

// Redaction removes the content of a previously delivered event.
type Redaction struct {
	Info

	// TargetID is the event identifier of the event being redacted.
	TargetID string

	// Reason optionally explains the redaction.
	Reason string
}

func (Redaction) isEvent() {}

// =============================================================================
// ROOM LABEL
// =============================================================================

// Name is a room name change.
type Name struct {
	Info

	// Name is the new room name.
	Name string
}

func (Name) isEvent() {}

// Alias is a room canonical alias change.
type Alias struct {
	Info

	// Alias is the new canonical alias.
	Alias string
}

func (Alias) isEvent() {}
