// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format renders message bodies for the transcript.
package format

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// =============================================================================
// RENDERER
// =============================================================================

// Renderer turns a message's formatted body into styled terminal text.
// The zero value is usable and always falls back to the plain body.
type Renderer struct {
	tr *glamour.TermRenderer
}

// NewRenderer creates a renderer wrapping markdown at the given width.
// The glamour style follows the terminal background.
func NewRenderer(width int) (*Renderer, error) {
	style := "light"
	if termenv.HasDarkBackground() {
		style = "dark"
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{tr: tr}, nil
}

// Render returns the display body for a message. An empty formatted body
// falls back exactly to the plain body; so does any render failure, because
// a message must never be dropped over styling.
func (r *Renderer) Render(formatted, plain string) string {
	if formatted == "" || r == nil || r.tr == nil {
		return plain
	}

	out, err := r.tr.Render(formatted)
	if err != nil {
		return plain
	}

	// Glamour pads with blank lines and trailing indentation; a transcript
	// line wants neither.
	out = strings.Trim(out, "\n")
	if out == "" {
		return plain
	}
	return out
}

// =============================================================================
// REDACTION TRANSFORMS
// =============================================================================

// ansiPattern matches CSI escape sequences (colors, styles).
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes terminal styling from a string, leaving plain text.
// Redaction applies transforms to the plain text, not the styled bytes.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// strikeChar is the Unicode combining long stroke overlay.
const strikeChar = '̶'

// Strikethrough overlays every rune with a combining long stroke, producing
// text that renders struck through in any terminal font, independent of ANSI
// attribute support.
func Strikethrough(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s) * 3)
	for _, r := range s {
		b.WriteRune(r)
		b.WriteRune(strikeChar)
	}
	return b.String()
}
