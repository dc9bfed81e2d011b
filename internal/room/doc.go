// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package room is the event projection and redaction engine.
//
// A Projector consumes the decoded event stream of one room, in delivery
// order, and projects it onto a display.Surface: membership events mutate
// the user registry and the roster, messages and membership/topic changes
// append transcript lines, and redactions rewrite previously appended lines
// in place.
//
// The projector is single-threaded by contract. It performs no locking; the
// caller delivers events for a room one at a time, all state-replay events
// before the first timeline event, timeline events in origin-timestamp
// order.
//
// # Pieces
//
//   - Registry: user identifier -> display attributes (nick, host, color,
//     power level), authoritative for currently joined users only
//   - Rank / roster groups: pure functions of power level
//   - Projector.Project: the exhaustive dispatch over the event union
//   - Projector.Redact: correlation-tag search plus policy-governed rewrite
package room
