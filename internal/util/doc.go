// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the roomview application.
//
// This package contains small helpers shared across the projection core and
// the UI:
//
//   - Sender and room identifier shortening (@alice:example.org -> alice)
//   - Server timestamp conversion (millisecond origin timestamps -> time.Time)
//   - Rune- and width-aware string truncation
//   - Atomic file writes for persisted state
package util
