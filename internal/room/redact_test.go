// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package room is the event projection and redaction engine.
package room

import (
	"errors"
	"strings"
	"testing"

	"github.com/jeranaias/roomview-tui/internal/display"
	"github.com/jeranaias/roomview-tui/internal/event"
	"github.com/jeranaias/roomview-tui/internal/format"
)

// =============================================================================
// POLICY TESTS
// =============================================================================

func TestParseRedactionPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    RedactionPolicy
		wantErr bool
	}{
		{"strikethrough", RedactStrikethrough, false},
		{"notice", RedactNotice, false},
		{"delete", RedactDelete, false},
		{" Delete ", RedactDelete, false},
		{"obliterate", RedactStrikethrough, true},
		{"", RedactStrikethrough, true},
	}

	for _, tc := range tests {
		got, err := ParseRedactionPolicy(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseRedactionPolicy(%q) err = %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseRedactionPolicy(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRedactionPolicy_StringRoundTrip(t *testing.T) {
	for _, p := range []RedactionPolicy{RedactStrikethrough, RedactNotice, RedactDelete} {
		got, err := ParseRedactionPolicy(p.String())
		if err != nil || got != p {
			t.Errorf("round trip of %v failed: %v, %v", p, got, err)
		}
	}
}

// =============================================================================
// REDACTION ENGINE TESTS
// =============================================================================

// seedMessage projects a join and a message and returns the message's handle.
func seedMessage(t *testing.T, p *Projector, b *display.Buffer, eventID, body string) display.Line {
	t.Helper()
	if err := p.Project(joinEvent("evt-seed-join", aliceID), true); err != nil {
		t.Fatalf("seed join: %v", err)
	}
	if err := p.Project(event.Message{Info: info(eventID, aliceID), Body: body}, false); err != nil {
		t.Fatalf("seed message: %v", err)
	}
	return lastLine(t, b)
}

func redactionOf(targetID, reason string) event.Redaction {
	return event.Redaction{Info: info("evt-redact", aliceID), TargetID: targetID, Reason: reason}
}

func TestRedact_DeletePolicy(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)
	line := seedMessage(t, p, b, "evt1", "secret")

	if err := p.Redact(redactionOf("evt1", "oops")); err != nil {
		t.Fatalf("Redact: %v", err)
	}

	want := `<message redacted by: alice, reason: "oops">`
	if line.Body() != want {
		t.Errorf("Body = %q, want %q", line.Body(), want)
	}
	if strings.Contains(line.Body(), "secret") {
		t.Error("delete policy must discard the original text")
	}
	if !display.HasTag(line.Tags(), display.TagRedacted) {
		t.Errorf("tags = %v, want redacted marker", line.Tags())
	}
}

func TestRedact_NoticePolicy(t *testing.T) {
	p, b := newTestRoom(t, RedactNotice)
	line := seedMessage(t, p, b, "evt1", "kept text")

	if err := p.Redact(redactionOf("evt1", "")); err != nil {
		t.Fatalf("Redact: %v", err)
	}

	want := "kept text <message redacted by: alice>"
	if line.Body() != want {
		t.Errorf("Body = %q, want %q", line.Body(), want)
	}
}

func TestRedact_StrikethroughPolicy(t *testing.T) {
	p, b := newTestRoom(t, RedactStrikethrough)
	line := seedMessage(t, p, b, "evt1", "hi")

	if err := p.Redact(redactionOf("evt1", "")); err != nil {
		t.Fatalf("Redact: %v", err)
	}

	want := format.Strikethrough("hi") + " <message redacted by: alice>"
	if line.Body() != want {
		t.Errorf("Body = %q, want %q", line.Body(), want)
	}
}

func TestRedact_NoticeWithoutReasonOmitsClause(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)
	line := seedMessage(t, p, b, "evt1", "hi")

	if err := p.Redact(redactionOf("evt1", "")); err != nil {
		t.Fatalf("Redact: %v", err)
	}
	if line.Body() != "<message redacted by: alice>" {
		t.Errorf("Body = %q", line.Body())
	}
}

func TestRedact_Idempotent(t *testing.T) {
	p, b := newTestRoom(t, RedactStrikethrough)
	line := seedMessage(t, p, b, "evt1", "hi")

	if err := p.Redact(redactionOf("evt1", "spam")); err != nil {
		t.Fatalf("first Redact: %v", err)
	}
	once := line.Body()

	// Replays of the same redaction must not stack notices or strike the
	// notice itself.
	for i := 0; i < 3; i++ {
		if err := p.Redact(redactionOf("evt1", "spam")); err != nil {
			t.Fatalf("replay Redact: %v", err)
		}
	}
	if line.Body() != once {
		t.Errorf("replay changed the line:\n once: %q\n now:  %q", once, line.Body())
	}
}

func TestRedact_UnknownTargetIsSilent(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)
	line := seedMessage(t, p, b, "evt1", "hi")

	// Out-of-order redaction for an event never rendered: dropped quietly.
	if err := p.Redact(redactionOf("evt-never-seen", "")); err != nil {
		t.Errorf("Redact of unknown target = %v, want nil", err)
	}
	if line.Body() != "hi" {
		t.Errorf("unrelated line was touched: %q", line.Body())
	}
}

func TestRedact_MissingTargetID(t *testing.T) {
	p, _ := newTestRoom(t, RedactDelete)

	err := p.Redact(redactionOf("", "oops"))
	if !errors.Is(err, ErrMalformedEvent) {
		t.Errorf("Redact = %v, want ErrMalformedEvent", err)
	}
}

func TestRedact_PicksMostRecentMatch(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)
	p.Project(joinEvent("evt-seed-join", aliceID), true)

	// Two lines sharing the correlation tag: only the newer one is rewritten.
	for _, body := range []string{"older", "newer"} {
		if err := p.Project(event.Message{Info: info("evt1", aliceID), Body: body}, false); err != nil {
			t.Fatalf("message: %v", err)
		}
	}

	if err := p.Redact(redactionOf("evt1", "")); err != nil {
		t.Fatalf("Redact: %v", err)
	}

	if got := b.LineAt(0).Body(); got != "older" {
		t.Errorf("older line rewritten: %q", got)
	}
	if got := b.LineAt(1).Body(); got != "<message redacted by: alice>" {
		t.Errorf("newer line = %q", got)
	}
}

func TestRedact_PolicyChangeAffectsOnlyNewRedactions(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)
	first := seedMessage(t, p, b, "evt1", "one")
	if err := p.Project(event.Message{Info: info("evt2", aliceID), Body: "two"}, false); err != nil {
		t.Fatalf("message: %v", err)
	}
	second := lastLine(t, b)

	if err := p.Redact(redactionOf("evt1", "")); err != nil {
		t.Fatalf("Redact: %v", err)
	}

	p.SetPolicy(RedactNotice)
	if err := p.Redact(redactionOf("evt2", "")); err != nil {
		t.Fatalf("Redact: %v", err)
	}

	if first.Body() != "<message redacted by: alice>" {
		t.Errorf("first = %q, want the delete-policy body", first.Body())
	}
	if second.Body() != "two <message redacted by: alice>" {
		t.Errorf("second = %q, want the notice-policy body", second.Body())
	}
}

// =============================================================================
// PRE-REDACTED EVENT TESTS
// =============================================================================

func TestProject_RedactedPlaceholder(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)
	p.Project(joinEvent("evt-join", aliceID), true)
	p.Project(joinEvent("evt-join-2", bobID), true)

	ev := event.Redacted{Info: info("evt1", aliceID), Censor: bobID, Reason: "spam"}
	if err := p.Project(ev, false); err != nil {
		t.Fatalf("Project: %v", err)
	}

	line := lastLine(t, b)
	want := `<message redacted by: bob, reason: "spam">`
	if line.Body() != want {
		t.Errorf("Body = %q, want %q", line.Body(), want)
	}

	tags := line.Tags()
	if !display.HasTag(tags, display.TagRedacted) || !display.HasTag(tags, display.CorrelationTag("evt1")) {
		t.Errorf("tags = %v", tags)
	}

	// Born redacted: a later redaction targeting it finds nothing to do.
	if err := p.Redact(redactionOf("evt1", "again")); err != nil {
		t.Fatalf("Redact: %v", err)
	}
	if line.Body() != want {
		t.Errorf("placeholder was rewritten: %q", line.Body())
	}
}
