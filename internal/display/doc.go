// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package display defines the surface a room projects onto.
//
// The projection core never touches the terminal directly; it talks to a
// Surface: append a line, search lines most-recent-first, mutate a line in
// place through its handle, and keep a roster of members grouped by rank.
// The boundary is treated like an RPC even though the in-memory Buffer
// implementation is colocated; the core never assumes shared internals.
//
// Buffer is the shipped implementation: an append-mostly slice of lines with
// reverse search, used by the TUI and by every test. Any host with
// equivalent primitives can substitute its own Surface.
package display
