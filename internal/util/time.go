// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the roomview application.
package util

import "time"

// Protocol servers stamp events with milliseconds since the Unix epoch.
// Display code works in time.Time; these convert at the boundary.

// FromServerTime converts a server origin timestamp in milliseconds to a
// time.Time in the local zone.
func FromServerTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// ToServerTime converts a time.Time to a server timestamp in milliseconds.
func ToServerTime(t time.Time) int64 {
	return t.UnixMilli()
}
