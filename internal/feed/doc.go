// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feed produces a scripted demo event stream.
//
// roomview has no network layer; the feed stands in for a homeserver by
// generating a deterministic scenario (joins, messages, a topic change,
// redactions, a leave) with fresh event identifiers each run. The Player
// paces the timeline so the projection can be watched live.
package feed
