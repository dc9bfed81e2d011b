// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package room is the event projection and redaction engine.
package room

import (
	"testing"

	"github.com/jeranaias/roomview-tui/internal/display"
)

func TestGroupForRank(t *testing.T) {
	tests := []struct {
		rank Rank
		want string
	}{
		{RankOwner, GroupOwners},
		{RankModerator, GroupModerators},
		{RankVoiced, GroupVoiced},
		{RankNone, GroupMembers},
	}

	for _, tc := range tests {
		if got := GroupForRank(tc.rank); got != tc.want {
			t.Errorf("GroupForRank(%v) = %q, want %q", tc.rank, got, tc.want)
		}
	}
}

func TestTracker_AddFilesByRank(t *testing.T) {
	b := display.NewBuffer(RosterGroups())
	tr := NewTracker(b)

	owner := NewUser("@ada:example.org", "", 100, false)
	plain := NewUser("@bob:example.org", "", 0, false)

	if err := tr.Add(owner); err != nil {
		t.Fatalf("Add owner: %v", err)
	}
	if err := tr.Add(plain); err != nil {
		t.Fatalf("Add member: %v", err)
	}

	if g := b.GroupOf("ada"); g != GroupOwners {
		t.Errorf("ada filed under %q, want owners", g)
	}
	if g := b.GroupOf("bob"); g != GroupMembers {
		t.Errorf("bob filed under %q, want members", g)
	}

	members := b.GroupMembers(GroupOwners)
	if len(members) != 1 || members[0].Prefix != "&" {
		t.Errorf("owner roster entry = %+v, want prefix &", members)
	}
}

func TestTracker_PowerLevelChangeRefiles(t *testing.T) {
	b := display.NewBuffer(RosterGroups())
	tr := NewTracker(b)

	u := NewUser("@bob:example.org", "", 0, false)
	tr.Add(u)

	// Promotion: same nick, new power level, re-add re-files the entry and
	// refreshes the prefix decoration.
	u.PowerLevel = 50
	if err := tr.Add(u); err != nil {
		t.Fatalf("re-add: %v", err)
	}

	if g := b.GroupOf("bob"); g != GroupModerators {
		t.Errorf("bob filed under %q after promotion", g)
	}
	if b.MemberCount() != 1 {
		t.Errorf("MemberCount = %d, want 1 (no stale entry)", b.MemberCount())
	}
}

func TestTracker_RemoveUnknownIsNoError(t *testing.T) {
	b := display.NewBuffer(RosterGroups())
	tr := NewTracker(b)

	u := NewUser("@ghost:example.org", "", 0, false)
	if err := tr.Remove(u); err != nil {
		t.Errorf("Remove of unknown member = %v, want nil", err)
	}
}
