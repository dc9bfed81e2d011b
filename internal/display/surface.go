// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package display defines the surface a room projects onto.
package display

import (
	"errors"
	"time"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNoSuchMember is returned when removing a member the roster does not
	// hold. Callers that treat removal as idempotent may ignore it.
	ErrNoSuchMember = errors.New("no such roster member")

	// ErrNoSuchGroup is returned when adding a member to an unknown group.
	ErrNoSuchGroup = errors.New("no such roster group")
)

// =============================================================================
// LINE HANDLE
// =============================================================================

// Line is a mutable handle to one rendered transcript line. Setters write
// through to the surface; the log is append-ordered but not immutable.
type Line interface {
	Prefix() string
	SetPrefix(prefix string)

	Body() string
	SetBody(body string)

	// Tags returns a copy of the line's tag set. Mutate via SetTags.
	Tags() []string
	SetTags(tags []string)

	// Date is the origin timestamp of the event behind the line.
	Date() time.Time
	SetDate(date time.Time)

	// DatePrinted is when the line was written to the surface. For backlog
	// the two differ.
	DatePrinted() time.Time
	SetDatePrinted(date time.Time)

	// Highlight reports whether the surface highlighted this line. Read-only;
	// highlighting is the host's decision.
	Highlight() bool
}

// =============================================================================
// ROSTER
// =============================================================================

// Member is one roster entry with its display attributes.
type Member struct {
	// Nick is the display name shown in the roster.
	Nick string

	// Color is the palette color name for the nick.
	Color string

	// Prefix is the rank prefix character ("&", "@", "+" or "").
	Prefix string

	// PrefixColor is the color name for the prefix character.
	PrefixColor string
}

// =============================================================================
// SURFACE
// =============================================================================

// Surface is the host display a room projects onto. The projection core is a
// pure producer of Surface calls; swapping the terminal Buffer for any other
// host with these primitives requires no change to the projection logic.
type Surface interface {
	// AppendLine adds a line with the given prefix column, body, origin
	// timestamp and tag set.
	AppendLine(prefix, body string, date time.Time, tags []string) error

	// FindLines returns handles to the lines matching pred, most recent
	// first. Redactions reference recent lines, so reverse order keeps the
	// common search short.
	FindLines(pred func(Line) bool) []Line

	// AddMember puts a member into a roster group, replacing any existing
	// entry for the same nick.
	AddMember(group string, m Member) error

	// RemoveMember drops a member from the roster. Returns ErrNoSuchMember
	// if the nick is not present.
	RemoveMember(nick string) error

	// SetShortName sets the room's short display label.
	SetShortName(name string)
	ShortName() string

	// SetTopic sets the room topic shown in the header.
	SetTopic(topic string)
	Topic() string
}
