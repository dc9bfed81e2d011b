// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package display defines the surface a room projects onto.
package display

import (
	"errors"
	"testing"
	"time"
)

func testBuffer() *Buffer {
	return NewBuffer([]string{"000|owners", "001|moderators", "002|voiced", "999|members"})
}

// =============================================================================
// LINE LOG TESTS
// =============================================================================

func TestAppendAndFind_MostRecentFirst(t *testing.T) {
	b := testBuffer()
	base := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)

	for i, body := range []string{"one", "two", "three"} {
		if err := b.AppendLine("alice", body, base.Add(time.Duration(i)*time.Minute), []string{"chat_message"}); err != nil {
			t.Fatalf("AppendLine: %v", err)
		}
	}

	all := b.FindLines(func(Line) bool { return true })
	if len(all) != 3 {
		t.Fatalf("FindLines matched %d lines, want 3", len(all))
	}
	if all[0].Body() != "three" || all[2].Body() != "one" {
		t.Errorf("FindLines order = [%s %s %s], want most recent first",
			all[0].Body(), all[1].Body(), all[2].Body())
	}
}

func TestFindLines_Predicate(t *testing.T) {
	b := testBuffer()
	now := time.Now()

	b.AppendLine("a", "keep", now, []string{"chat_message", "id_evt1"})
	b.AppendLine("b", "skip", now, []string{"chat_message"})

	found := b.FindLines(func(l Line) bool {
		for _, tag := range l.Tags() {
			if tag == "id_evt1" {
				return true
			}
		}
		return false
	})
	if len(found) != 1 || found[0].Body() != "keep" {
		t.Fatalf("predicate search found %d lines", len(found))
	}
}

func TestLineHandle_MutatesInPlace(t *testing.T) {
	b := testBuffer()
	now := time.Now()
	b.AppendLine("alice", "original", now, []string{"chat_message"})

	h := b.LineAt(0)
	h.SetBody("rewritten")
	h.SetPrefix("--")
	h.SetTags([]string{"chat_message", "redacted"})
	h.SetDate(now.Add(time.Hour))

	// A fresh handle sees the mutation: handles share the underlying line.
	again := b.LineAt(0)
	if again.Body() != "rewritten" {
		t.Errorf("Body after mutation = %q", again.Body())
	}
	if again.Prefix() != "--" {
		t.Errorf("Prefix after mutation = %q", again.Prefix())
	}
	tags := again.Tags()
	if len(tags) != 2 || tags[1] != "redacted" {
		t.Errorf("Tags after mutation = %v", tags)
	}
	if !again.Date().Equal(now.Add(time.Hour)) {
		t.Errorf("Date after mutation = %v", again.Date())
	}
}

func TestTags_ReturnsCopy(t *testing.T) {
	b := testBuffer()
	b.AppendLine("alice", "hi", time.Now(), []string{"chat_message"})

	h := b.LineAt(0)
	tags := h.Tags()
	tags[0] = "clobbered"

	if b.LineAt(0).Tags()[0] != "chat_message" {
		t.Error("mutating the returned tag slice must not touch the line")
	}
}

// =============================================================================
// HIGHLIGHT TESTS
// =============================================================================

func TestHighlight(t *testing.T) {
	tests := []struct {
		name string
		body string
		tags []string
		want bool
	}{
		{"own nick in message", "hey alice, ping", []string{"chat_message"}, true},
		{"case insensitive", "Alice: hello", []string{"chat_message"}, true},
		{"no mention", "hello world", []string{"chat_message"}, false},
		{"suppressed by no_highlight", "alice", []string{"chat_message", "no_highlight"}, false},
		{"not a message line", "alice has joined", []string{"chat_join"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := testBuffer()
			b.SetHighlightWords([]string{"alice"})
			b.AppendLine("x", tc.body, time.Now(), tc.tags)
			if got := b.LineAt(0).Highlight(); got != tc.want {
				t.Errorf("Highlight() = %v, want %v", got, tc.want)
			}
		})
	}
}

// =============================================================================
// ROSTER TESTS
// =============================================================================

func TestRoster_AddMoveRemove(t *testing.T) {
	b := testBuffer()

	if err := b.AddMember("999|members", Member{Nick: "bob"}); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if !b.HasMember("bob") || b.GroupOf("bob") != "999|members" {
		t.Fatal("bob should be in the members group")
	}

	// Promotion moves the nick between groups, no duplicate entries.
	if err := b.AddMember("001|moderators", Member{Nick: "bob", Prefix: "@"}); err != nil {
		t.Fatalf("AddMember promote: %v", err)
	}
	if b.GroupOf("bob") != "001|moderators" {
		t.Errorf("GroupOf(bob) = %q after promotion", b.GroupOf("bob"))
	}
	if b.MemberCount() != 1 {
		t.Errorf("MemberCount = %d, want 1", b.MemberCount())
	}

	if err := b.RemoveMember("bob"); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
	if b.HasMember("bob") {
		t.Error("bob should be gone")
	}
}

func TestRoster_Errors(t *testing.T) {
	b := testBuffer()

	if err := b.AddMember("nope", Member{Nick: "bob"}); !errors.Is(err, ErrNoSuchGroup) {
		t.Errorf("AddMember to unknown group = %v, want ErrNoSuchGroup", err)
	}
	if err := b.RemoveMember("ghost"); !errors.Is(err, ErrNoSuchMember) {
		t.Errorf("RemoveMember of unknown nick = %v, want ErrNoSuchMember", err)
	}
}

func TestGroupMembers_Sorted(t *testing.T) {
	b := testBuffer()
	for _, nick := range []string{"zoe", "anna", "mike"} {
		b.AddMember("999|members", Member{Nick: nick})
	}

	got := b.GroupMembers("999|members")
	if len(got) != 3 || got[0].Nick != "anna" || got[2].Nick != "zoe" {
		t.Errorf("GroupMembers not sorted: %v", got)
	}
}

// =============================================================================
// METADATA TESTS
// =============================================================================

func TestMetadata(t *testing.T) {
	b := testBuffer()

	b.SetShortName("go-dev")
	if b.ShortName() != "go-dev" {
		t.Errorf("ShortName = %q", b.ShortName())
	}

	b.SetTopic("all things Go")
	if b.Topic() != "all things Go" {
		t.Errorf("Topic = %q", b.Topic())
	}
}
