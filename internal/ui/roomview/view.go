// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package roomview provides the room view component for the TUI.
//
// This file contains all rendering logic for the room interface: the topic
// header, the transcript viewport, the roster sidebar, the input line and
// the status bar.
package roomview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/roomview-tui/internal/display"
	"github.com/jeranaias/roomview-tui/internal/ui/styles"
	"github.com/jeranaias/roomview-tui/internal/util"
)

// Fixed component heights; handleResize derives the viewport height from
// these, so a change here must be mirrored there.
const (
	headerHeight = 2
	inputHeight  = 1
	statusHeight = 1
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	header := m.renderHeader()

	body := m.viewport.View()
	if m.showRoster {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderRoster())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		body,
		m.renderInput(),
		m.renderStatusBar(),
	)
}

// =============================================================================
// HEADER
// =============================================================================

// renderHeader renders the room name and topic with a separator rule.
func (m Model) renderHeader() string {
	name := styles.RoomName.Bold(true).Render(m.buffer.ShortName())

	topic := m.buffer.Topic()
	if topic == "" {
		topic = "(no topic)"
	}
	line := name + "  " + styles.TopicLine.Render(util.TruncateWidth(topic, m.width-util.StringWidth(m.buffer.ShortName())-4))

	rule := lipgloss.NewStyle().Foreground(styles.Overlay).Render(strings.Repeat("─", max(m.width, 1)))
	return line + "\n" + rule
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// renderTranscript renders the buffer's line log for the viewport.
func (m Model) renderTranscript() string {
	lines := m.buffer.Lines()
	if len(lines) == 0 {
		return styles.TopicLine.Render("(no messages yet)")
	}

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(m.renderLine(l))
	}
	return b.String()
}

// renderLine renders one transcript line: optional time column, padded
// prefix column, body.
func (m Model) renderLine(l display.Line) string {
	var b strings.Builder

	if m.showTimestamps {
		b.WriteString(styles.Timestamp.Render(l.Date().Format("15:04")))
		b.WriteByte(' ')
	}

	prefix := l.Prefix()
	b.WriteString(util.PadRight(prefix, prefixColumnWidth(prefix)))
	b.WriteByte(' ')

	body := l.Body()
	if display.HasTag(l.Tags(), display.TagRedacted) {
		body = styles.RedactionNotice.Render(body)
	}
	if l.Highlight() {
		body = lipgloss.NewStyle().Foreground(styles.Amber).Bold(true).Render(body)
	}
	b.WriteString(body)

	return b.String()
}

// prefixColumnWidth keeps the prefix column visually aligned. Styled nicks
// carry escape sequences, so width is measured, not counted.
func prefixColumnWidth(prefix string) int {
	const minWidth = 12
	w := util.StringWidth(prefix)
	if w < minWidth {
		return minWidth
	}
	return w
}

// =============================================================================
// ROSTER SIDEBAR
// =============================================================================

// renderRoster renders the grouped member sidebar.
func (m Model) renderRoster() string {
	var b strings.Builder

	for _, group := range m.buffer.Groups() {
		members := m.buffer.GroupMembers(group)
		if len(members) == 0 {
			continue
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(styles.TopicLine.Render(groupLabel(group)))
		b.WriteByte('\n')

		for _, member := range members {
			entry := member.Prefix + member.Nick
			b.WriteString(" " + util.TruncateWidth(entry, m.rosterWidth-1))
			b.WriteByte('\n')
		}
	}

	if b.Len() == 0 {
		b.WriteString(styles.TopicLine.Render("(empty)"))
	}

	return lipgloss.NewStyle().
		Width(m.rosterWidth).
		Height(m.viewport.Height).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(styles.Overlay).
		Render(strings.TrimRight(b.String(), "\n"))
}

// groupLabel strips the ordering prefix from a roster group name:
// "001|moderators" displays as "moderators".
func groupLabel(group string) string {
	if i := strings.IndexByte(group, '|'); i >= 0 {
		return group[i+1:]
	}
	return group
}

// =============================================================================
// INPUT AND STATUS
// =============================================================================

func (m Model) renderInput() string {
	return "> " + m.input.View()
}

// renderStatusBar renders member count, feed state and the last error.
func (m Model) renderStatusBar() string {
	parts := []string{
		fmt.Sprintf("%d members", m.buffer.MemberCount()),
		fmt.Sprintf("%d lines", m.buffer.Len()),
	}
	if m.feedDone {
		parts = append(parts, "feed ended")
	}
	if m.err != nil {
		parts = append(parts, styles.PartLine.Render(util.TruncateRunes(m.err.Error(), 60)))
	}

	bar := strings.Join(parts, "  ·  ")
	return styles.Timestamp.Render(util.TruncateWidth(bar, m.width))
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

func (m Model) renderHelpOverlay() string {
	var b strings.Builder
	b.WriteString(styles.RoomName.Bold(true).Render("roomview keys"))
	b.WriteString("\n\n")

	for _, group := range m.keyMap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteByte('\n')
	}
	b.WriteString(styles.TopicLine.Render("press C-g to close"))

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(1, 2).
		Render(b.String())
}
