// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package room is the event projection and redaction engine.
package room

import (
	"errors"
	"fmt"
	"time"

	"github.com/jeranaias/roomview-tui/internal/display"
	"github.com/jeranaias/roomview-tui/internal/event"
	"github.com/jeranaias/roomview-tui/internal/format"
	"github.com/jeranaias/roomview-tui/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrMalformedEvent marks an event missing a required field. The event's
// visible effect is dropped; processing of later events continues. Callers
// may log it and move on.
var ErrMalformedEvent = errors.New("malformed event")

// =============================================================================
// PROJECTOR
// =============================================================================

// Config assembles a projector's collaborators. Everything is injected;
// there is no ambient room state.
type Config struct {
	// Surface receives lines, roster changes and metadata.
	Surface display.Surface

	// RoomID is the identifier of the room this projector serves.
	RoomID string

	// OwnUserID is the identifier the client runs as; its messages get the
	// quiet self tag set and the reserved self color.
	OwnUserID string

	// Policy governs how redactions rewrite lines.
	Policy RedactionPolicy

	// Renderer renders formatted message bodies. Nil renders plain only.
	Renderer *format.Renderer
}

// Projector turns one room's event stream into surface mutations. It is
// single-threaded: the caller delivers events one at a time, state replay
// first, timeline in origin order.
type Projector struct {
	surface  display.Surface
	registry *Registry
	roster   *Tracker
	renderer *format.Renderer
	policy   RedactionPolicy

	roomID string
	name   string
	alias  string

	topicAuthor string
	topicSetAt  time.Time
}

// New creates a projector for one room and initializes the surface label.
func New(cfg Config) *Projector {
	p := &Projector{
		surface:  cfg.Surface,
		registry: NewRegistry(cfg.OwnUserID),
		roster:   NewTracker(cfg.Surface),
		renderer: cfg.Renderer,
		policy:   cfg.Policy,
		roomID:   cfg.RoomID,
	}
	p.refreshShortName()
	return p
}

// Registry exposes the user registry, e.g. for roster rendering.
func (p *Projector) Registry() *Registry {
	return p.registry
}

// Policy returns the active redaction policy.
func (p *Projector) Policy() RedactionPolicy {
	return p.policy
}

// SetPolicy changes the redaction policy for subsequent redactions. Already
// redacted lines are not revisited.
func (p *Projector) SetPolicy(policy RedactionPolicy) {
	p.policy = policy
}

// TopicAuthor returns the nick that last changed the topic.
func (p *Projector) TopicAuthor() string {
	return p.topicAuthor
}

// TopicSetAt returns when the topic was last changed.
func (p *Projector) TopicSetAt() time.Time {
	return p.topicSetAt
}

// =============================================================================
// DISPATCH
// =============================================================================

// Project applies one event. isState distinguishes state replay (delivered
// as part of the initial room snapshot, no visible lines for membership and
// topic events) from live timeline events. All non-visible side effects are
// identical in both modes.
//
// One bad event never stalls the stream: malformed events return
// ErrMalformedEvent with their effect dropped, and the projector stays
// consistent. Surface failures propagate.
func (p *Projector) Project(ev event.Event, isState bool) error {
	switch e := ev.(type) {
	case event.Membership:
		return p.projectMembership(e, isState)
	case event.Topic:
		return p.projectTopic(e, isState)
	case event.Message:
		return p.projectMessage(e)
	case event.Redaction:
		return p.Redact(e)
	case event.Redacted:
		return p.projectRedacted(e)
	case event.Name:
		p.name = e.Name
		p.refreshShortName()
		return nil
	case event.Alias:
		p.alias = e.Alias
		p.refreshShortName()
		return nil
	default:
		// The union is closed; a new variant must be added to this switch.
		return fmt.Errorf("%w: unhandled event type %T", ErrMalformedEvent, ev)
	}
}

// =============================================================================
// MEMBERSHIP
// =============================================================================

func (p *Projector) projectMembership(e event.Membership, isState bool) error {
	if e.Target == "" {
		return fmt.Errorf("%w: membership event without target", ErrMalformedEvent)
	}

	date := util.FromServerTime(e.ServerTime)

	switch e.Change {
	case event.Join:
		// A join with previous membership "join" is a profile-only change
		// (display name or avatar); those are not rendered.
		switch e.PrevMembership {
		case "", "leave", "invite":
			if err := p.join(e, date, isState); err != nil {
				return err
			}
		default:
			return nil
		}

	case event.Leave:
		if err := p.leave(e, date, isState); err != nil {
			return err
		}

	case event.Invite:
		// Invites only render live; a historical invite for a user who since
		// joined or declined carries no information.
		if isState {
			return nil
		}
		target := p.registry.GetOrSynthesize(e.Target)
		tags := messageTags(classInvite, target, display.CorrelationTag(e.EventID))
		if err := p.appendMembershipLine(target, classInvite, date, tags); err != nil {
			return err
		}
	}

	p.refreshShortName()
	return nil
}

func (p *Projector) join(e event.Membership, date time.Time, isState bool) error {
	u := NewUser(e.Target, e.DisplayName, e.PowerLevel, p.registry.IsSelf(e.Target))
	p.registry.Upsert(u)
	if err := p.roster.Add(u); err != nil {
		return fmt.Errorf("roster add: %w", err)
	}

	if isState {
		return nil
	}

	tags := messageTags(classJoin, u, display.CorrelationTag(e.EventID))
	return p.appendMembershipLine(u, classJoin, date, tags)
}

func (p *Projector) leave(e event.Membership, date time.Time, isState bool) error {
	u := p.registry.GetOrSynthesize(e.Target)

	if err := p.roster.Remove(u); err != nil {
		return fmt.Errorf("roster remove: %w", err)
	}

	if !isState {
		// Leaving yourself is a part; being removed by someone else is a kick.
		class := classPart
		if e.Sender != e.Target {
			class = classKick
		}
		tags := messageTags(class, u, display.CorrelationTag(e.EventID))
		if err := p.appendMembershipLine(u, class, date, tags); err != nil {
			return err
		}
	}

	// Registry entry goes last so the line above still formats from the
	// registered nick and color.
	p.registry.Remove(e.Target)
	return nil
}

// =============================================================================
// TOPIC
// =============================================================================

func (p *Projector) projectTopic(e event.Topic, isState bool) error {
	u := p.registry.GetOrSynthesize(e.Sender)
	date := util.FromServerTime(e.ServerTime)

	// The stored topic updates in both modes; only the line is gated.
	p.surface.SetTopic(e.Text)
	p.topicAuthor = u.Nick
	p.topicSetAt = date

	if isState {
		return nil
	}

	body := topicBody(u, p.displayLabel(), e.Text)
	tags := messageTags(classTopic, u, display.CorrelationTag(e.EventID))
	if err := p.surface.AppendLine(networkPrefix, body, date, tags); err != nil {
		return fmt.Errorf("append topic line: %w", err)
	}
	return nil
}

// =============================================================================
// MESSAGES
// =============================================================================

func (p *Projector) projectMessage(e event.Message) error {
	u := p.registry.GetOrSynthesize(e.Sender)
	date := util.FromServerTime(e.ServerTime)
	body := p.renderer.Render(e.Formatted, e.Body)

	var extra []string
	if e.EventID != "" {
		extra = append(extra, display.CorrelationTag(e.EventID))
	}

	if e.Emote {
		tags := messageTags(classAction, u, extra...)
		return p.appendAction(u, body, date, tags)
	}

	class := classMessage
	if p.registry.IsSelf(e.Sender) {
		class = classSelfMessage
	}
	tags := messageTags(class, u, extra...)
	return p.appendMessage(u, body, date, tags)
}

func (p *Projector) projectRedacted(e event.Redacted) error {
	u := p.registry.GetOrSynthesize(e.Sender)
	censor := p.registry.GetOrSynthesize(e.Censor)
	date := util.FromServerTime(e.ServerTime)

	// The original content never existed client-side; the line is born
	// redacted and the marker keeps the redaction engine away from it.
	extra := []string{display.TagRedacted}
	if e.EventID != "" {
		extra = append([]string{display.CorrelationTag(e.EventID)}, extra...)
	}

	tags := messageTags(classMessage, u, extra...)
	return p.appendMessage(u, redactionNotice(censor.Nick, e.Reason), date, tags)
}

// SelfMessage echoes an outbound message of the own user into the
// transcript with the quiet tag set. eventID may be empty when the server
// has not acknowledged the send yet.
func (p *Projector) SelfMessage(eventID, body, formatted string, at time.Time) error {
	u := p.registry.GetOrSynthesize(p.registry.OwnID())
	rendered := p.renderer.Render(formatted, body)

	var extra []string
	if eventID != "" {
		extra = append(extra, display.CorrelationTag(eventID))
	}
	tags := messageTags(classSelfMessage, u, extra...)
	return p.appendMessage(u, rendered, at, tags)
}

// SelfEmote echoes an outbound emote of the own user.
func (p *Projector) SelfEmote(eventID, body string, at time.Time) error {
	u := p.registry.GetOrSynthesize(p.registry.OwnID())

	extra := []string{display.TagAction}
	if eventID != "" {
		extra = append(extra, display.CorrelationTag(eventID))
	}
	tags := messageTags(classSelfMessage, u, extra...)
	return p.appendAction(u, body, at, tags)
}

// =============================================================================
// ROOM LABEL
// =============================================================================

// displayLabel computes the room's short display label: explicit name,
// else alias localpart, else room ID localpart.
func (p *Projector) displayLabel() string {
	if p.name != "" {
		return p.name
	}
	if p.alias != "" {
		return util.ShortenRoomID(p.alias)
	}
	return util.ShortenRoomID(p.roomID)
}

func (p *Projector) refreshShortName() {
	p.surface.SetShortName(p.displayLabel())
}
