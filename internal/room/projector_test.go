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
	"github.com/jeranaias/roomview-tui/internal/util"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

const (
	testRoomID = "!room:example.org"
	testSelfID = "@self:example.org"
	aliceID    = "@alice:example.org"
	bobID      = "@bob:example.org"
)

func newTestRoom(t *testing.T, policy RedactionPolicy) (*Projector, *display.Buffer) {
	t.Helper()
	b := display.NewBuffer(RosterGroups())
	p := New(Config{
		Surface:   b,
		RoomID:    testRoomID,
		OwnUserID: testSelfID,
		Policy:    policy,
	})
	return p, b
}

func info(eventID, sender string) event.Info {
	return event.Info{
		EventID:    eventID,
		Sender:     sender,
		RoomID:     testRoomID,
		ServerTime: 1704067200000,
	}
}

func joinEvent(eventID, userID string) event.Membership {
	return event.Membership{Info: info(eventID, userID), Change: event.Join, Target: userID}
}

// plainBody returns a line's body with terminal styling stripped, so
// assertions hold regardless of the test environment's color profile.
func plainBody(l display.Line) string {
	return format.StripANSI(l.Body())
}

func lastLine(t *testing.T, b *display.Buffer) display.Line {
	t.Helper()
	if b.Len() == 0 {
		t.Fatal("expected at least one line")
	}
	return b.LineAt(b.Len() - 1)
}

// =============================================================================
// MEMBERSHIP TESTS
// =============================================================================

func TestProject_JoinTimeline(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)

	if err := p.Project(joinEvent("evt-join", aliceID), false); err != nil {
		t.Fatalf("Project join: %v", err)
	}

	if !b.HasMember("alice") {
		t.Error("alice should be in the roster")
	}
	if _, ok := p.Registry().Get(aliceID); !ok {
		t.Error("alice should be in the registry")
	}

	if b.Len() != 1 {
		t.Fatalf("Len = %d, want one join line", b.Len())
	}
	line := b.LineAt(0)
	body := plainBody(line)
	if !strings.Contains(body, "alice") || !strings.Contains(body, "has joined") || !strings.Contains(body, "room") {
		t.Errorf("join line body = %q", body)
	}
	if !display.HasTag(line.Tags(), display.TagJoin) {
		t.Errorf("join line tags = %v", line.Tags())
	}
	if !line.Date().Equal(util.FromServerTime(1704067200000)) {
		t.Errorf("line date = %v", line.Date())
	}
}

func TestProject_JoinStateReplayIsSilent(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)

	if err := p.Project(joinEvent("evt-join", aliceID), true); err != nil {
		t.Fatalf("Project: %v", err)
	}

	// Same side effects as a live join, just no line.
	if b.Len() != 0 {
		t.Errorf("state replay emitted %d lines", b.Len())
	}
	if !b.HasMember("alice") {
		t.Error("alice should be in the roster")
	}
	if _, ok := p.Registry().Get(aliceID); !ok {
		t.Error("alice should be in the registry")
	}
}

func TestProject_RejoinAfterLeaveAndInvite(t *testing.T) {
	for _, prev := range []string{"leave", "invite"} {
		t.Run(prev, func(t *testing.T) {
			p, b := newTestRoom(t, RedactDelete)

			ev := joinEvent("evt-rejoin", aliceID)
			ev.PrevMembership = prev
			if err := p.Project(ev, false); err != nil {
				t.Fatalf("Project: %v", err)
			}
			if b.Len() != 1 || !b.HasMember("alice") {
				t.Errorf("prev=%q should be a genuine join (lines=%d)", prev, b.Len())
			}
		})
	}
}

func TestProject_ProfileOnlyChangeIsNoOp(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)
	p.Project(joinEvent("evt-join", aliceID), true)

	ev := joinEvent("evt-profile", aliceID)
	ev.PrevMembership = "join"
	ev.DisplayName = "alice the great"
	if err := p.Project(ev, false); err != nil {
		t.Fatalf("Project: %v", err)
	}

	if b.Len() != 0 {
		t.Error("profile-only change must not emit a line")
	}
	u, _ := p.Registry().Get(aliceID)
	if u.Nick != "alice" {
		t.Errorf("profile-only change must not alter the registry, Nick = %q", u.Nick)
	}
}

func TestProject_PartVersusKick(t *testing.T) {
	tests := []struct {
		name     string
		sender   string
		wantVerb string
		wantTag  string
	}{
		{"self leave is a part", aliceID, "has left", display.TagPart},
		{"foreign leave is a kick", bobID, "has been kicked from", display.TagKick},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, b := newTestRoom(t, RedactDelete)
			p.Project(joinEvent("evt-join", aliceID), true)

			leave := event.Membership{
				Info:   info("evt-leave", tc.sender),
				Change: event.Leave,
				Target: aliceID,
			}
			if err := p.Project(leave, false); err != nil {
				t.Fatalf("Project leave: %v", err)
			}

			line := lastLine(t, b)
			if !strings.Contains(plainBody(line), tc.wantVerb) {
				t.Errorf("leave line = %q, want %q", plainBody(line), tc.wantVerb)
			}
			if !display.HasTag(line.Tags(), tc.wantTag) {
				t.Errorf("leave tags = %v, want %s", line.Tags(), tc.wantTag)
			}

			// No stale state after a leave, in either flavor.
			if b.HasMember("alice") {
				t.Error("alice still in roster after leave")
			}
			if _, ok := p.Registry().Get(aliceID); ok {
				t.Error("alice still in registry after leave")
			}
		})
	}
}

func TestProject_LeaveStateReplay(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)
	p.Project(joinEvent("evt-join", aliceID), true)

	leave := event.Membership{Info: info("evt-leave", aliceID), Change: event.Leave, Target: aliceID}
	if err := p.Project(leave, true); err != nil {
		t.Fatalf("Project: %v", err)
	}

	if b.Len() != 0 {
		t.Error("state-replay leave must not emit a line")
	}
	if b.HasMember("alice") || p.Registry().Len() != 0 {
		t.Error("state-replay leave must still remove the user")
	}
}

func TestProject_Invite(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)

	invite := event.Membership{Info: info("evt-inv", aliceID), Change: event.Invite, Target: bobID}

	// State replay: ignored entirely.
	if err := p.Project(invite, true); err != nil {
		t.Fatalf("Project: %v", err)
	}
	if b.Len() != 0 {
		t.Error("state-replay invite must be ignored")
	}

	// Timeline: visible line, but no roster entry for the invitee.
	if err := p.Project(invite, false); err != nil {
		t.Fatalf("Project: %v", err)
	}
	line := lastLine(t, b)
	if !strings.Contains(plainBody(line), "has been invited to") {
		t.Errorf("invite line = %q", plainBody(line))
	}
	if b.HasMember("bob") {
		t.Error("an invite must not add the invitee to the roster")
	}
}

func TestProject_MembershipWithoutTarget(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)

	bad := event.Membership{Info: info("evt-bad", aliceID), Change: event.Join}
	err := p.Project(bad, false)
	if !errors.Is(err, ErrMalformedEvent) {
		t.Errorf("Project = %v, want ErrMalformedEvent", err)
	}
	if b.Len() != 0 {
		t.Error("malformed event must not emit a line")
	}

	// One bad event never stalls the stream.
	if err := p.Project(joinEvent("evt-join", aliceID), false); err != nil {
		t.Fatalf("projector wedged after malformed event: %v", err)
	}
}

// =============================================================================
// TOPIC TESTS
// =============================================================================

func TestProject_Topic(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)
	p.Project(joinEvent("evt-join", aliceID), true)

	topic := event.Topic{Info: info("evt-topic", aliceID), Text: "new topic"}

	// State replay: value updates, no line.
	if err := p.Project(topic, true); err != nil {
		t.Fatalf("Project: %v", err)
	}
	if b.Topic() != "new topic" {
		t.Errorf("Topic = %q", b.Topic())
	}
	if b.Len() != 0 {
		t.Error("state-replay topic must not emit a line")
	}
	if p.TopicAuthor() != "alice" {
		t.Errorf("TopicAuthor = %q", p.TopicAuthor())
	}

	// Timeline: same update plus a visible line quoting the topic.
	topic.Text = "newer topic"
	if err := p.Project(topic, false); err != nil {
		t.Fatalf("Project: %v", err)
	}
	if b.Topic() != "newer topic" {
		t.Errorf("Topic = %q", b.Topic())
	}
	line := lastLine(t, b)
	if !strings.Contains(plainBody(line), `"newer topic"`) {
		t.Errorf("topic line = %q", plainBody(line))
	}
	if !display.HasTag(line.Tags(), display.TagTopic) {
		t.Errorf("topic tags = %v", line.Tags())
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestProject_MessagePlainFallback(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)
	p.Project(joinEvent("evt-join", aliceID), true)

	msg := event.Message{Info: info("evt1", aliceID), Body: "hi"}
	if err := p.Project(msg, false); err != nil {
		t.Fatalf("Project: %v", err)
	}

	line := lastLine(t, b)
	// No formatted body: the plain body is used exactly.
	if line.Body() != "hi" {
		t.Errorf("Body = %q, want %q", line.Body(), "hi")
	}

	tags := line.Tags()
	if !display.HasTag(tags, display.CorrelationTag("evt1")) {
		t.Errorf("missing correlation tag: %v", tags)
	}
	if !display.HasTag(tags, display.NickTag("alice")) {
		t.Errorf("missing nick tag: %v", tags)
	}
	if !display.HasTag(tags, display.TagNotifyMessage) {
		t.Errorf("missing notify tag: %v", tags)
	}
}

func TestProject_MessageFromUnknownSender(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)

	// No join ever delivered; the sender is synthesized, not dropped.
	msg := event.Message{Info: info("evt1", "@ghost:example.org"), Body: "boo"}
	if err := p.Project(msg, false); err != nil {
		t.Fatalf("Project: %v", err)
	}

	line := lastLine(t, b)
	if !strings.Contains(format.StripANSI(line.Prefix()), "ghost") {
		t.Errorf("prefix = %q, want synthesized nick", line.Prefix())
	}
	if p.Registry().Len() != 0 {
		t.Error("synthesized sender must not enter the registry")
	}
}

func TestProject_SelfMessageQuietTags(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)
	p.Project(joinEvent("evt-join", testSelfID), true)

	msg := event.Message{Info: info("evt1", testSelfID), Body: "me talking"}
	if err := p.Project(msg, false); err != nil {
		t.Fatalf("Project: %v", err)
	}

	tags := lastLine(t, b).Tags()
	if !display.HasTag(tags, display.TagNotifyNone) || !display.HasTag(tags, display.TagNoHighlight) {
		t.Errorf("self message tags = %v, want quiet set", tags)
	}
	if display.HasTag(tags, display.TagNotifyMessage) {
		t.Error("self message must not carry notify_message")
	}
	if !display.HasTag(tags, display.TagSelfMsg) {
		t.Error("self message must carry self_msg")
	}
}

func TestProject_Emote(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)
	p.Project(joinEvent("evt-join", aliceID), true)

	msg := event.Message{Info: info("evt1", aliceID), Body: "waves", Emote: true}
	if err := p.Project(msg, false); err != nil {
		t.Fatalf("Project: %v", err)
	}

	line := lastLine(t, b)
	if format.StripANSI(line.Prefix()) != actionPrefix {
		t.Errorf("emote prefix = %q, want the action star", line.Prefix())
	}
	body := plainBody(line)
	if !strings.Contains(body, "alice") || !strings.Contains(body, "waves") {
		t.Errorf("emote body = %q", body)
	}

	tags := line.Tags()
	if !display.HasTag(tags, display.TagAction) {
		t.Errorf("emote tags = %v", tags)
	}
	// Actions carry no prefix_nick color tag; the nick is in the body.
	for _, tag := range tags {
		if strings.HasPrefix(tag, "prefix_nick_") {
			t.Errorf("emote must not carry a prefix_nick tag: %v", tags)
		}
	}
}

func TestSelfEcho(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)
	p.Project(joinEvent("evt-join", testSelfID), true)

	at := util.FromServerTime(1704067201000)
	if err := p.SelfMessage("evt-echo", "sent by me", "", at); err != nil {
		t.Fatalf("SelfMessage: %v", err)
	}

	line := lastLine(t, b)
	if line.Body() != "sent by me" {
		t.Errorf("Body = %q", line.Body())
	}
	tags := line.Tags()
	if !display.HasTag(tags, display.TagSelfMsg) || !display.HasTag(tags, display.CorrelationTag("evt-echo")) {
		t.Errorf("self echo tags = %v", tags)
	}

	if err := p.SelfEmote("", "shrugs", at); err != nil {
		t.Fatalf("SelfEmote: %v", err)
	}
	tags = lastLine(t, b).Tags()
	if !display.HasTag(tags, display.TagAction) || !display.HasTag(tags, display.TagNoHighlight) {
		t.Errorf("self emote tags = %v", tags)
	}
}

// =============================================================================
// ROOM LABEL TESTS
// =============================================================================

func TestProject_RoomLabel(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)

	// Fresh room: the short name falls back to the room ID localpart.
	if b.ShortName() != "room" {
		t.Errorf("initial ShortName = %q", b.ShortName())
	}

	if err := p.Project(event.Alias{Info: info("evt-a", aliceID), Alias: "#go-dev:example.org"}, false); err != nil {
		t.Fatalf("Project alias: %v", err)
	}
	if b.ShortName() != "go-dev" {
		t.Errorf("ShortName after alias = %q", b.ShortName())
	}

	// An explicit name wins over the alias.
	if err := p.Project(event.Name{Info: info("evt-n", aliceID), Name: "Go Developers"}, false); err != nil {
		t.Fatalf("Project name: %v", err)
	}
	if b.ShortName() != "Go Developers" {
		t.Errorf("ShortName after name = %q", b.ShortName())
	}

	// Label events never render lines.
	if b.Len() != 0 {
		t.Errorf("label events emitted %d lines", b.Len())
	}
}

// =============================================================================
// END-TO-END SCENARIO
// =============================================================================

func TestProject_JoinMessageRedactFlow(t *testing.T) {
	p, b := newTestRoom(t, RedactDelete)

	// Live join: roster has alice and exactly one visible join line.
	if err := p.Project(joinEvent("evt-j", aliceID), false); err != nil {
		t.Fatalf("join: %v", err)
	}
	if !b.HasMember("alice") || b.Len() != 1 {
		t.Fatalf("after join: member=%v lines=%d", b.HasMember("alice"), b.Len())
	}

	// Message tagged with its correlation id.
	if err := p.Project(event.Message{Info: info("evt1", aliceID), Body: "hi"}, false); err != nil {
		t.Fatalf("message: %v", err)
	}
	msgLine := lastLine(t, b)
	if msgLine.Body() != "hi" || !display.HasTag(msgLine.Tags(), "id_evt1") {
		t.Fatalf("message line body=%q tags=%v", msgLine.Body(), msgLine.Tags())
	}

	// Redaction under delete policy: the body becomes exactly the notice.
	redaction := event.Redaction{Info: info("evt2", aliceID), TargetID: "evt1", Reason: "oops"}
	if err := p.Project(redaction, false); err != nil {
		t.Fatalf("redaction: %v", err)
	}

	want := `<message redacted by: alice, reason: "oops">`
	if msgLine.Body() != want {
		t.Errorf("redacted body = %q, want %q", msgLine.Body(), want)
	}
	if !display.HasTag(msgLine.Tags(), display.TagRedacted) {
		t.Errorf("redacted tags = %v", msgLine.Tags())
	}

	// A second identical redaction is a no-op.
	before := msgLine.Body()
	if err := p.Project(redaction, false); err != nil {
		t.Fatalf("second redaction: %v", err)
	}
	if msgLine.Body() != before {
		t.Errorf("second redaction changed the line: %q", msgLine.Body())
	}
}
