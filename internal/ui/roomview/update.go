// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package roomview provides the room view component for the TUI.
package roomview

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)
		return m, nil

	case EventMsg:
		// Everything arriving over the live feed is timeline.
		if err := m.projector.Project(msg.Event, false); err != nil {
			m.err = err
		}
		m.refreshTranscript()
		return m, m.waitForEvent()

	case FeedClosedMsg:
		m.feedDone = true
		return m, nil

	case PolicyChangedMsg:
		m.projector.SetPolicy(msg.Policy)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keyMap.Roster):
		m.showRoster = !m.showRoster
		m.handleResize(m.width, m.height)
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		text := strings.TrimSpace(m.input.Value())
		if text != "" {
			m.sendSelf(text)
			m.input.Reset()
			m.refreshTranscript()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Home):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keyMap.End):
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleResize recomputes component dimensions. Layout: header (2 lines),
// transcript+roster (rest), input (1 line), status bar (1 line).
func (m *Model) handleResize(width, height int) {
	m.width = width
	m.height = height

	transcriptWidth := width
	if m.showRoster {
		transcriptWidth -= m.rosterWidth + 1
	}
	if transcriptWidth < 1 {
		transcriptWidth = 1
	}

	viewportHeight := height - headerHeight - inputHeight - statusHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	m.viewport.Width = transcriptWidth
	m.viewport.Height = viewportHeight
	m.input.Width = width - 3

	m.refreshTranscript()
}

// refreshTranscript re-renders the line log into the viewport, keeping the
// view pinned to the newest line when it was already at the bottom.
func (m *Model) refreshTranscript() {
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderTranscript())
	if atBottom {
		m.viewport.GotoBottom()
	}
}
