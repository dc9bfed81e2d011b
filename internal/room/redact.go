// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package room is the event projection and redaction engine.
package room

import (
	"fmt"
	"strings"

	"github.com/jeranaias/roomview-tui/internal/display"
	"github.com/jeranaias/roomview-tui/internal/event"
	"github.com/jeranaias/roomview-tui/internal/format"
)

// =============================================================================
// REDACTION POLICY
// =============================================================================

// RedactionPolicy governs what happens to a line's content when the event
// behind it is redacted.
type RedactionPolicy int

const (
	// RedactStrikethrough strips styling from the original text, strikes it
	// through and appends the redaction notice.
	RedactStrikethrough RedactionPolicy = iota

	// RedactNotice leaves the original text and appends the notice.
	RedactNotice

	// RedactDelete discards the original text, leaving only the notice.
	RedactDelete
)

// String returns the policy's configuration name.
func (p RedactionPolicy) String() string {
	switch p {
	case RedactStrikethrough:
		return "strikethrough"
	case RedactNotice:
		return "notice"
	case RedactDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// ParseRedactionPolicy parses a configuration value into a policy.
func ParseRedactionPolicy(s string) (RedactionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strikethrough":
		return RedactStrikethrough, nil
	case "notice":
		return RedactNotice, nil
	case "delete":
		return RedactDelete, nil
	default:
		return RedactStrikethrough, fmt.Errorf("unknown redaction policy %q", s)
	}
}

// =============================================================================
// REDACTION ENGINE
// =============================================================================

// Redact locates the line rendered for the redaction's target event and
// rewrites it in place under the active policy.
//
// The search runs most recent first and takes the single best match; when no
// line matches (the target was never rendered, or arrived out of order) the
// redaction is silently dropped. A line already carrying the redacted marker
// is never touched again, so replays are no-ops.
func (p *Projector) Redact(e event.Redaction) error {
	if e.TargetID == "" {
		return fmt.Errorf("%w: redaction without target event id", ErrMalformedEvent)
	}

	correlation := display.CorrelationTag(e.TargetID)
	lines := p.surface.FindLines(func(l display.Line) bool {
		tags := l.Tags()
		return display.HasTag(tags, correlation) && !display.HasTag(tags, display.TagRedacted)
	})
	if len(lines) == 0 {
		return nil
	}

	// Multiple lines can in principle share a correlation tag (a multi-line
	// paste); only the most recent one is rewritten. Known limitation.
	line := lines[0]

	censor := p.registry.GetOrSynthesize(e.Sender)
	notice := redactionNotice(censor.Nick, e.Reason)

	var kept string
	switch p.policy {
	case RedactStrikethrough:
		kept = format.Strikethrough(format.StripANSI(line.Body()))
	case RedactNotice:
		kept = line.Body()
	case RedactDelete:
		kept = ""
	}

	body := notice
	if kept != "" {
		body = kept + " " + notice
	}

	line.SetBody(body)
	line.SetTags(append(line.Tags(), display.TagRedacted))
	return nil
}

// redactionNotice composes the bracketed redaction suffix. Kept plain; the
// UI styles redacted lines by tag.
func redactionNotice(censor, reason string) string {
	if reason == "" {
		return fmt.Sprintf("<message redacted by: %s>", censor)
	}
	return fmt.Sprintf("<message redacted by: %s, reason: %q>", censor, reason)
}
