// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for roomview.
package styles

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Emerald - joins, invites, owner/moderator rank prefixes
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - parts, kicks, errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - voiced rank prefix, warnings
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Cyan - room names, the user's own nick
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// TextMuted - timestamps, hosts, redaction notices, backlog
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextPrimary - message bodies
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// Overlay - delimiters, separators, borders
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#45475A"}

// =============================================================================
// NICK PALETTE
// =============================================================================

// NickColor pairs a stable name (used in prefix_nick_<name> tags) with its
// adaptive color.
type NickColor struct {
	Name  string
	Color lipgloss.AdaptiveColor
}

// SelfNick is the fixed color for the user's own messages. It is not part of
// the hashed palette so the local user always stands out.
var SelfNick = NickColor{Name: "self", Color: Cyan}

// NickPalette is the set of colors assigned to other members. Order matters:
// the hash of a nick indexes into this slice, so reordering entries would
// recolor every room.
var NickPalette = []NickColor{
	{Name: "sky", Color: lipgloss.AdaptiveColor{Light: "#0284C7", Dark: "#7DD3FC"}},
	{Name: "violet", Color: lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}},
	{Name: "green", Color: lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#86EFAC"}},
	{Name: "salmon", Color: lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FCA5A5"}},
	{Name: "gold", Color: lipgloss.AdaptiveColor{Light: "#CA8A04", Dark: "#FDE047"}},
	{Name: "teal", Color: lipgloss.AdaptiveColor{Light: "#0D9488", Dark: "#5EEAD4"}},
	{Name: "pink", Color: lipgloss.AdaptiveColor{Light: "#DB2777", Dark: "#F9A8D4"}},
	{Name: "indigo", Color: lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#A5B4FC"}},
	{Name: "olive", Color: lipgloss.AdaptiveColor{Light: "#65A30D", Dark: "#BEF264"}},
	{Name: "peach", Color: lipgloss.AdaptiveColor{Light: "#EA580C", Dark: "#FDBA74"}},
}

// ForNick returns the palette color for a nick. The same nick always maps to
// the same color; different nicks may collide, which is fine for display.
func ForNick(nick string) NickColor {
	h := fnv.New32a()
	h.Write([]byte(nick))
	return NickPalette[h.Sum32()%uint32(len(NickPalette))]
}

// =============================================================================
// RANK PREFIX COLORS
// =============================================================================

// ForRankPrefix returns the color for a rank prefix character.
// Owners and moderators share a color, like most clients render them.
func ForRankPrefix(prefix string) lipgloss.AdaptiveColor {
	switch prefix {
	case "&", "@":
		return Emerald
	case "+":
		return Amber
	default:
		return TextMuted
	}
}

// =============================================================================
// LINE STYLES
// =============================================================================

var (
	// JoinLine styles "has joined" / "has been invited to" lines.
	JoinLine = lipgloss.NewStyle().Foreground(Emerald)

	// PartLine styles "has left" / "has been kicked from" lines.
	PartLine = lipgloss.NewStyle().Foreground(Rose)

	// TopicLine styles topic change lines.
	TopicLine = lipgloss.NewStyle().Foreground(TextMuted)

	// RedactionNotice styles the bracketed "message redacted by" suffix.
	RedactionNotice = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

	// RoomName styles room labels inside membership and topic lines.
	RoomName = lipgloss.NewStyle().Foreground(Cyan)

	// Host styles the parenthesised host part of membership lines.
	Host = lipgloss.NewStyle().Foreground(TextMuted)

	// Timestamp styles the time column of the transcript.
	Timestamp = lipgloss.NewStyle().Foreground(TextMuted)
)

// RenderNick renders a nick in its palette color.
func RenderNick(nick string, color NickColor) string {
	return lipgloss.NewStyle().Foreground(color.Color).Render(nick)
}

// RenderRankPrefix renders a rank prefix character in its color.
// The empty prefix renders as empty, not as a styled blank.
func RenderRankPrefix(prefix string) string {
	if prefix == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(ForRankPrefix(prefix)).Render(prefix)
}
