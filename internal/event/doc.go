// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package event defines the decoded protocol events a room can receive.
//
// The event set is a closed union: every variant embeds Info and implements
// the unexported marker method, so a switch over event.Event is exhaustive
// and new variants are added here, never by open-ended subtype checks
// elsewhere.
//
// # Variants
//
//   - Membership: join, leave/kick, invite
//   - Topic: topic change
//   - Message: text or emote, optionally with a formatted body
//   - Redaction: moderation event targeting a previous event
//   - Redacted: a message already known to be redacted at receipt time
//   - Name, Alias: room display-label changes
//
// Events carry origin timestamps as server milliseconds; conversion to
// time.Time happens at the display boundary.
package event
