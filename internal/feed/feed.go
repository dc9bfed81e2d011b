// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feed produces a scripted demo event stream.
package feed

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/roomview-tui/internal/event"
)

// =============================================================================
// SCRIPT
// =============================================================================

// Script is a prepared event stream for one room: a state snapshot to replay
// silently, then timeline events to deliver live.
type Script struct {
	State    []event.Event
	Timeline []event.Event
}

// builder assigns event IDs and advancing timestamps while the scenario is
// assembled, so redactions can reference earlier steps by key.
type builder struct {
	roomID string
	clock  int64
	ids    map[string]string
}

func (b *builder) id(key string) string {
	if existing, ok := b.ids[key]; ok {
		return existing
	}
	id := "$" + uuid.NewString()
	b.ids[key] = id
	return id
}

func (b *builder) info(key, sender string) event.Info {
	b.clock += 1500
	return event.Info{
		EventID:    b.id(key),
		Sender:     sender,
		RoomID:     b.roomID,
		ServerTime: b.clock,
	}
}

// Demo builds the canned scenario: a room with history, live chatter, a
// topic change, membership churn, and a redaction arc. selfID is cast as a
// participant so self-message handling shows up too.
func Demo(roomID, selfID string) Script {
	const (
		alice   = "@alice:example.org"
		bob     = "@bob:example.org"
		carol   = "@carol:example.org"
		mallory = "@mallory:example.org"
	)

	b := &builder{
		roomID: roomID,
		clock:  time.Now().Add(-10 * time.Minute).UnixMilli(),
		ids:    make(map[string]string),
	}

	state := []event.Event{
		event.Name{Info: b.info("name", alice), Name: "roomview demo"},
		event.Topic{Info: b.info("topic0", alice), Text: "projection engine demo"},
		event.Membership{Info: b.info("j-alice", alice), Change: event.Join, Target: alice, PowerLevel: 100},
		event.Membership{Info: b.info("j-bob", bob), Change: event.Join, Target: bob, PowerLevel: 50},
		event.Membership{Info: b.info("j-self", selfID), Change: event.Join, Target: selfID},
	}

	timeline := []event.Event{
		event.Message{Info: b.info("m1", alice), Body: "welcome to the demo room"},
		event.Membership{Info: b.info("j-carol", carol), Change: event.Join, Target: carol, PowerLevel: 1},
		event.Message{Info: b.info("m2", carol), Body: "hi everyone"},
		event.Message{Info: b.info("m3", bob), Body: "markdown works: **bold**, `code`",
			Formatted: "markdown works: **bold**, `code`"},
		event.Message{Info: b.info("m4", carol), Body: "waves enthusiastically", Emote: true},
		event.Topic{Info: b.info("topic1", alice), Text: "projection, redaction and rosters"},
		event.Message{Info: b.info("m5", selfID), Body: "looks right from here"},
		event.Message{Info: b.info("m6", carol), Body: "oops, wrong room, please ignore"},
		event.Redaction{Info: b.info("r1", alice), TargetID: b.id("m6"), Reason: "off topic"},
		event.Redacted{Info: b.info("m7", bob), Censor: alice, Reason: "spam"},
		event.Membership{Info: b.info("j-mallory", mallory), Change: event.Join, Target: mallory},
		event.Message{Info: b.info("m-spam", mallory), Body: "BUY CHEAP FOLLOWERS NOW"},
		event.Membership{Info: b.info("k-mallory", alice), Change: event.Leave, Target: mallory, Reason: "spam"},
		event.Membership{Info: b.info("l-carol", carol), Change: event.Leave, Target: carol},
		event.Message{Info: b.info("m8", alice), Body: "and that is the whole tour"},
	}

	return Script{State: state, Timeline: timeline}
}

// =============================================================================
// REPLAY
// =============================================================================

// Player paces a script's timeline onto a channel.
type Player struct {
	script   Script
	interval time.Duration
}

// NewPlayer creates a player that emits one timeline event per interval.
func NewPlayer(script Script, interval time.Duration) *Player {
	return &Player{script: script, interval: interval}
}

// State returns the script's state snapshot for silent replay.
func (p *Player) State() []event.Event {
	return p.script.State
}

// Run streams the timeline. The channel closes when the script ends or the
// context is canceled.
func (p *Player) Run(ctx context.Context) <-chan event.Event {
	out := make(chan event.Event)

	go func() {
		defer close(out)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for _, ev := range p.script.Timeline {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			select {
			case <-ctx.Done():
				return
			case out <- ev:
			}
		}
	}()

	return out
}
