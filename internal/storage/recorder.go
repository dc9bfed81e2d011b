// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"time"

	"github.com/jeranaias/roomview-tui/internal/display"
)

// =============================================================================
// RECORDING SURFACE
// =============================================================================

// RecorderOptions selects which line classes are persisted. Message-class
// lines are always persisted; lines tagged no_log never are.
type RecorderOptions struct {
	LogMembership bool
	LogTopics     bool
}

// Recorder is a display.Surface decorator that mirrors appended lines into a
// TranscriptStore. The projection core stays oblivious to persistence: it
// writes to a Surface, and this Surface happens to remember.
//
// Line rewrites (redaction) propagate through the handles returned by
// FindLines, keyed by the line's correlation tag. Lines without one are
// display-only history and are not rewritten in the store; nothing in the
// event stream can target them anyway.
type Recorder struct {
	inner  display.Surface
	store  *TranscriptStore
	roomID string
	opts   RecorderOptions

	// Store errors must not break the projection; the latest one is kept
	// for the host to surface.
	lastErr error
}

// NewRecorder wraps inner so appended lines are also written to store.
func NewRecorder(inner display.Surface, store *TranscriptStore, roomID string, opts RecorderOptions) *Recorder {
	return &Recorder{
		inner:  inner,
		store:  store,
		roomID: roomID,
		opts:   opts,
	}
}

// Err returns the most recent store error, if any. Projection continues
// through store failures; the transcript just goes stale.
func (r *Recorder) Err() error {
	return r.lastErr
}

// shouldPersist applies the no_log override and the log level filters.
func (r *Recorder) shouldPersist(tags []string) bool {
	level, ok := display.LogLevel(tags)
	if !ok {
		return false
	}
	switch level {
	case 3:
		return r.opts.LogTopics
	case 4:
		return r.opts.LogMembership
	default:
		return true
	}
}

// =============================================================================
// SURFACE IMPLEMENTATION
// =============================================================================

// AppendLine implements display.Surface.
func (r *Recorder) AppendLine(prefix, body string, date time.Time, tags []string) error {
	if err := r.inner.AppendLine(prefix, body, date, tags); err != nil {
		return err
	}
	if r.shouldPersist(tags) {
		if _, err := r.store.AppendLine(context.Background(), r.roomID, prefix, body, tags, date); err != nil {
			r.lastErr = err
		}
	}
	return nil
}

// FindLines implements display.Surface. Returned handles write through to
// the store on SetBody and SetTags.
func (r *Recorder) FindLines(pred func(display.Line) bool) []display.Line {
	inner := r.inner.FindLines(pred)
	out := make([]display.Line, len(inner))
	for i, l := range inner {
		out[i] = &recordedLine{Line: l, rec: r}
	}
	return out
}

// AddMember implements display.Surface.
func (r *Recorder) AddMember(group string, m display.Member) error {
	return r.inner.AddMember(group, m)
}

// RemoveMember implements display.Surface.
func (r *Recorder) RemoveMember(nick string) error {
	return r.inner.RemoveMember(nick)
}

// SetShortName implements display.Surface.
func (r *Recorder) SetShortName(name string) { r.inner.SetShortName(name) }

// ShortName implements display.Surface.
func (r *Recorder) ShortName() string { return r.inner.ShortName() }

// SetTopic implements display.Surface.
func (r *Recorder) SetTopic(topic string) { r.inner.SetTopic(topic) }

// Topic implements display.Surface.
func (r *Recorder) Topic() string { return r.inner.Topic() }

// =============================================================================
// WRITE-THROUGH LINE HANDLE
// =============================================================================

type recordedLine struct {
	display.Line
	rec *Recorder
}

func (l *recordedLine) SetBody(body string) {
	l.Line.SetBody(body)
	l.sync()
}

func (l *recordedLine) SetTags(tags []string) {
	l.Line.SetTags(tags)
	l.sync()
}

func (l *recordedLine) sync() {
	eventID, ok := display.CorrelationID(l.Tags())
	if !ok {
		return
	}
	err := l.rec.store.UpdateByEventID(context.Background(), l.rec.roomID, eventID, l.Body(), l.Tags())
	if err != nil && err != ErrNoSuchLine {
		l.rec.lastErr = err
	}
}
