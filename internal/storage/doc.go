// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides transcript persistence for roomview.
//
// The transcript lives in a SQLite database, one row per line, with the
// line's tags stored alongside so redactions can find and rewrite stored
// rows the same way they rewrite visible ones.
//
// # Key Types
//
//   - TranscriptStore: The SQLite-backed line store
//   - Recorder: A display.Surface decorator that mirrors lines into a store
//   - StoredLine: One persisted line
//
// # Usage
//
// Wrap the visible buffer so projection persists as a side effect:
//
//	store, err := storage.Open(path)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	surface := storage.NewRecorder(buffer, store, roomID, storage.RecorderOptions{
//	    LogMembership: true,
//	    LogTopics:     true,
//	})
package storage
