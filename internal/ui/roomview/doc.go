// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package roomview provides the room view component for the TUI.
//
// The view renders one room's projected state: the transcript viewport on
// the left, the grouped member roster on the right, the room name and topic
// in the header, and an input line that echoes outbound messages through
// the projector.
//
// The model consumes protocol events from a channel; each event is applied
// via the projector and the transcript re-rendered. The view never mutates
// room state directly, it only reads the buffer the projector writes to.
package roomview
