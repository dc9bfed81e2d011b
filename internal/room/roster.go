// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package room is the event projection and redaction engine.
package room

import (
	"errors"

	"github.com/jeranaias/roomview-tui/internal/display"
)

// =============================================================================
// ROSTER GROUPS
// =============================================================================

// Roster group names. The numeric prefix is the sort key a host uses to
// order groups in its sidebar.
const (
	GroupOwners     = "000|owners"
	GroupModerators = "001|moderators"
	GroupVoiced     = "002|voiced"
	GroupMembers    = "999|members"
)

// RosterGroups returns all group names in display order, for surface setup.
func RosterGroups() []string {
	return []string{GroupOwners, GroupModerators, GroupVoiced, GroupMembers}
}

// GroupForRank returns the roster group a rank files under.
func GroupForRank(r Rank) string {
	switch r {
	case RankOwner:
		return GroupOwners
	case RankModerator:
		return GroupModerators
	case RankVoiced:
		return GroupVoiced
	default:
		return GroupMembers
	}
}

// =============================================================================
// TRACKER
// =============================================================================

// Tracker keeps the surface roster consistent with the registry. Every
// membership or power-level change goes through it, so there are no stale
// entries after a leave and no divergence between the roster's colors and
// the transcript's.
type Tracker struct {
	surface display.Surface
}

// NewTracker creates a tracker writing to the given surface.
func NewTracker(surface display.Surface) *Tracker {
	return &Tracker{surface: surface}
}

// Add puts a user into the roster group matching their rank, replacing any
// previous entry (a power-level change re-files the nick).
func (t *Tracker) Add(u *User) error {
	prefix := u.RankPrefix()
	m := display.Member{
		Nick:        u.Nick,
		Color:       u.Color.Name,
		Prefix:      prefix,
		PrefixColor: prefixColorName(prefix),
	}
	if err := t.surface.AddMember(GroupForRank(u.Rank()), m); err != nil {
		return err
	}
	return nil
}

// Remove drops a user from the roster. A user who was never displayed (for
// example a leave delivered twice) is not an error.
func (t *Tracker) Remove(u *User) error {
	err := t.surface.RemoveMember(u.Nick)
	if err != nil && !errors.Is(err, display.ErrNoSuchMember) {
		return err
	}
	return nil
}

// prefixColorName maps a rank prefix to the color name carried in the
// roster entry, mirroring the transcript's prefix coloring.
func prefixColorName(prefix string) string {
	switch prefix {
	case "&", "@":
		return "emerald"
	case "+":
		return "amber"
	default:
		return ""
	}
}
