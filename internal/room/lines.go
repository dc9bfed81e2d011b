// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package room is the event projection and redaction engine.
package room

import (
	"fmt"
	"time"

	"github.com/jeranaias/roomview-tui/internal/ui/styles"
)

// Prefix column markers, in the IRC client tradition.
const (
	joinPrefix    = "-->"
	quitPrefix    = "<--"
	networkPrefix = "--"
	actionPrefix  = "*"
)

// membershipVerbs are the visible verbs of membership lines.
var membershipVerbs = map[messageClass]string{
	classJoin:   "has joined",
	classPart:   "has left",
	classKick:   "has been kicked from",
	classInvite: "has been invited to",
}

// =============================================================================
// LINE COMPOSITION
// =============================================================================

// appendMessage writes a message line: rank prefix and colored nick in the
// prefix column, rendered body in the body column.
func (p *Projector) appendMessage(u *User, body string, date time.Time, tags []string) error {
	prefix := styles.RenderRankPrefix(u.RankPrefix()) + styles.RenderNick(u.Nick, u.Color)
	if err := p.surface.AppendLine(prefix, body, date, tags); err != nil {
		return fmt.Errorf("append message line: %w", err)
	}
	return nil
}

// appendAction writes an emote line: the nick moves into the body, the
// prefix column holds the action star.
func (p *Projector) appendAction(u *User, body string, date time.Time, tags []string) error {
	full := styles.RenderRankPrefix(u.RankPrefix()) + styles.RenderNick(u.Nick, u.Color) + " " + body
	if err := p.surface.AppendLine(actionPrefix, full, date, tags); err != nil {
		return fmt.Errorf("append action line: %w", err)
	}
	return nil
}

// appendMembershipLine writes a join/part/kick/invite line.
func (p *Projector) appendMembershipLine(u *User, class messageClass, date time.Time, tags []string) error {
	prefix := quitPrefix
	verbStyle := styles.PartLine
	if class == classJoin || class == classInvite {
		prefix = joinPrefix
		verbStyle = styles.JoinLine
	}

	body := membershipBody(u, verbStyle.Render(membershipVerbs[class]), p.displayLabel())
	if err := p.surface.AppendLine(verbStyle.Render(prefix), body, date, tags); err != nil {
		return fmt.Errorf("append membership line: %w", err)
	}
	return nil
}

// membershipBody composes "nick (host) verb room". The host part is dropped
// for bare nicks that carry none.
func membershipBody(u *User, styledVerb, roomLabel string) string {
	nick := styles.RenderNick(u.Nick, u.Color)
	room := styles.RoomName.Render(roomLabel)
	if u.Host == "" {
		return fmt.Sprintf("%s %s %s", nick, styledVerb, room)
	}
	host := styles.Host.Render("(" + u.Host + ")")
	return fmt.Sprintf("%s %s %s %s", nick, host, styledVerb, room)
}

// topicBody composes the visible topic change line.
func topicBody(u *User, roomLabel, topic string) string {
	return fmt.Sprintf("%s has changed the topic for %s to %q",
		styles.RenderNick(u.Nick, u.Color), styles.RoomName.Render(roomLabel), topic)
}
