// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package display defines the surface a room projects onto.
package display

import (
	"strings"
	"time"
)

// =============================================================================
// BUFFER
// =============================================================================

// Buffer is the in-memory Surface: an ordered line log plus a grouped
// roster. It performs no locking; the caller serializes access per room.
type Buffer struct {
	lines []*bufferLine

	groups  []string
	members map[string]rosterEntry // nick -> entry

	shortName string
	topic     string

	highlightWords []string

	// now is swapped out by tests to pin DatePrinted.
	now func() time.Time
}

type rosterEntry struct {
	group  string
	member Member
}

// NewBuffer creates a buffer with the given roster groups. Group order is
// display order.
func NewBuffer(groups []string) *Buffer {
	return &Buffer{
		groups:  append([]string(nil), groups...),
		members: make(map[string]rosterEntry),
		now:     time.Now,
	}
}

// SetHighlightWords sets the words that trigger a highlight on
// message-class lines, typically the user's own nick.
func (b *Buffer) SetHighlightWords(words []string) {
	b.highlightWords = append([]string(nil), words...)
}

// =============================================================================
// LINE LOG
// =============================================================================

// AppendLine implements Surface.
func (b *Buffer) AppendLine(prefix, body string, date time.Time, tags []string) error {
	line := &bufferLine{
		prefix:      prefix,
		body:        body,
		date:        date,
		datePrinted: b.now(),
		tags:        append([]string(nil), tags...),
	}
	line.highlight = b.shouldHighlight(body, line.tags)
	b.lines = append(b.lines, line)
	return nil
}

// FindLines implements Surface: matching handles, most recent first.
func (b *Buffer) FindLines(pred func(Line) bool) []Line {
	var found []Line
	for i := len(b.lines) - 1; i >= 0; i-- {
		h := &lineHandle{b.lines[i]}
		if pred(h) {
			found = append(found, h)
		}
	}
	return found
}

// Len returns the number of lines in the log.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// LineAt returns a handle to the i-th line in append order.
func (b *Buffer) LineAt(i int) Line {
	return &lineHandle{b.lines[i]}
}

// Lines returns handles to all lines in append order, for rendering.
func (b *Buffer) Lines() []Line {
	out := make([]Line, len(b.lines))
	for i, l := range b.lines {
		out[i] = &lineHandle{l}
	}
	return out
}

func (b *Buffer) shouldHighlight(body string, tags []string) bool {
	if len(b.highlightWords) == 0 {
		return false
	}
	// Highlighting is restricted to message-class lines, so a nick appearing
	// in a join line does not ping its owner.
	if HasTag(tags, TagNoHighlight) || !HasTag(tags, TagMessage) {
		return false
	}
	lower := strings.ToLower(body)
	for _, w := range b.highlightWords {
		if w != "" && strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

// =============================================================================
// ROSTER
// =============================================================================

// AddMember implements Surface. Re-adding a nick moves it to the new group
// and refreshes its display attributes.
func (b *Buffer) AddMember(group string, m Member) error {
	if !b.hasGroup(group) {
		return ErrNoSuchGroup
	}
	b.members[m.Nick] = rosterEntry{group: group, member: m}
	return nil
}

// RemoveMember implements Surface.
func (b *Buffer) RemoveMember(nick string) error {
	if _, ok := b.members[nick]; !ok {
		return ErrNoSuchMember
	}
	delete(b.members, nick)
	return nil
}

// HasMember reports whether a nick is in the roster.
func (b *Buffer) HasMember(nick string) bool {
	_, ok := b.members[nick]
	return ok
}

// MemberCount returns the roster size.
func (b *Buffer) MemberCount() int {
	return len(b.members)
}

// GroupOf returns the group a nick is filed under, or "" when absent.
func (b *Buffer) GroupOf(nick string) string {
	return b.members[nick].group
}

// GroupMembers returns the members of one group, sorted by nick.
func (b *Buffer) GroupMembers(group string) []Member {
	var out []Member
	for _, e := range b.members {
		if e.group == group {
			out = append(out, e.member)
		}
	}
	sortMembers(out)
	return out
}

// Groups returns the group names in display order.
func (b *Buffer) Groups() []string {
	return append([]string(nil), b.groups...)
}

func (b *Buffer) hasGroup(group string) bool {
	for _, g := range b.groups {
		if g == group {
			return true
		}
	}
	return false
}

// sortMembers orders members by nick. Insertion sort; rosters are small.
func sortMembers(ms []Member) {
	for i := 1; i < len(ms); i++ {
		for j := i; j > 0 && ms[j].Nick < ms[j-1].Nick; j-- {
			ms[j], ms[j-1] = ms[j-1], ms[j]
		}
	}
}

// =============================================================================
// ROOM METADATA
// =============================================================================

// SetShortName implements Surface.
func (b *Buffer) SetShortName(name string) { b.shortName = name }

// ShortName implements Surface.
func (b *Buffer) ShortName() string { return b.shortName }

// SetTopic implements Surface.
func (b *Buffer) SetTopic(topic string) { b.topic = topic }

// Topic implements Surface.
func (b *Buffer) Topic() string { return b.topic }

// =============================================================================
// LINE HANDLE IMPLEMENTATION
// =============================================================================

type bufferLine struct {
	prefix      string
	body        string
	tags        []string
	date        time.Time
	datePrinted time.Time
	highlight   bool
}

type lineHandle struct {
	l *bufferLine
}

func (h *lineHandle) Prefix() string          { return h.l.prefix }
func (h *lineHandle) SetPrefix(prefix string) { h.l.prefix = prefix }

func (h *lineHandle) Body() string        { return h.l.body }
func (h *lineHandle) SetBody(body string) { h.l.body = body }

func (h *lineHandle) Tags() []string {
	return append([]string(nil), h.l.tags...)
}

func (h *lineHandle) SetTags(tags []string) {
	h.l.tags = append([]string(nil), tags...)
}

func (h *lineHandle) Date() time.Time        { return h.l.date }
func (h *lineHandle) SetDate(date time.Time) { h.l.date = date }

func (h *lineHandle) DatePrinted() time.Time        { return h.l.datePrinted }
func (h *lineHandle) SetDatePrinted(date time.Time) { h.l.datePrinted = date }

func (h *lineHandle) Highlight() bool { return h.l.highlight }
