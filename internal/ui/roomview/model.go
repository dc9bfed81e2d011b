// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package roomview provides the room view component for the TUI.
package roomview

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/roomview-tui/internal/display"
	"github.com/jeranaias/roomview-tui/internal/event"
	"github.com/jeranaias/roomview-tui/internal/room"
)

// =============================================================================
// MESSAGES
// =============================================================================

// EventMsg delivers one protocol event into the update loop.
type EventMsg struct {
	Event event.Event
}

// FeedClosedMsg signals that the event stream ended.
type FeedClosedMsg struct{}

// PolicyChangedMsg applies a redaction policy edit from a config reload.
// Only events projected after it arrives use the new policy.
type PolicyChangedMsg struct {
	Policy room.RedactionPolicy
}

// =============================================================================
// ROOM MODEL
// =============================================================================

// Config assembles a room view.
type Config struct {
	// Buffer is the in-memory surface the projector writes to; the view
	// renders from it. When the projector writes through a recording
	// decorator, Buffer must be the decorator's inner buffer.
	Buffer *display.Buffer

	// Projector applies incoming events.
	Projector *room.Projector

	// Events is the live event stream. Nil means a static view.
	Events <-chan event.Event

	// RosterWidth is the width of the member sidebar in columns.
	RosterWidth int

	// ShowTimestamps displays a time column in the transcript.
	ShowTimestamps bool
}

// Model is the Bubble Tea model for the room view.
type Model struct {
	buffer    *display.Buffer
	projector *room.Projector
	events    <-chan event.Event

	// Dimensions
	width  int
	height int

	// UI components
	viewport viewport.Model
	input    textinput.Model

	// Key bindings
	keyMap KeyMap

	// View options
	rosterWidth    int
	showTimestamps bool
	showRoster     bool
	showHelp       bool

	// Feed state
	feedDone bool

	// err is the last projection error, shown in the status bar. Projection
	// continues past it.
	err error
}

// New creates a room view model.
func New(cfg Config) Model {
	input := textinput.New()
	input.Placeholder = "message (use /me for emotes)"
	input.CharLimit = 1024
	input.Focus()

	if cfg.RosterWidth <= 0 {
		cfg.RosterWidth = 20
	}

	return Model{
		buffer:         cfg.Buffer,
		projector:      cfg.Projector,
		events:         cfg.Events,
		viewport:       viewport.New(0, 0),
		input:          input,
		keyMap:         DefaultKeyMap(),
		rosterWidth:    cfg.RosterWidth,
		showTimestamps: cfg.ShowTimestamps,
		showRoster:     true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent())
}

// waitForEvent blocks on the feed until the next event arrives.
func (m Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	ch := m.events
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return FeedClosedMsg{}
		}
		return EventMsg{Event: ev}
	}
}

// sendSelf echoes the typed message through the projector. A "/me " prefix
// turns it into an emote.
func (m *Model) sendSelf(text string) {
	now := time.Now()
	eventID := "$" + uuid.NewString()

	var err error
	if body, ok := cutEmote(text); ok {
		err = m.projector.SelfEmote(eventID, body, now)
	} else {
		err = m.projector.SelfMessage(eventID, text, "", now)
	}
	if err != nil {
		m.err = err
	}
}

func cutEmote(text string) (string, bool) {
	const prefix = "/me "
	if len(text) > len(prefix) && text[:len(prefix)] == prefix {
		return text[len(prefix):], true
	}
	return text, false
}
