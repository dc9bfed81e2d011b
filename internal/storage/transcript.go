// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides transcript persistence for roomview.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/roomview-tui/internal/display"
	"github.com/jeranaias/roomview-tui/internal/format"
	"github.com/jeranaias/roomview-tui/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrClosed       = errors.New("transcript store closed")
	ErrNoSuchLine   = errors.New("no such transcript line")
	ErrInvalidLimit = errors.New("limit must be positive")
)

// =============================================================================
// STORED LINE TYPE
// =============================================================================

// StoredLine is one persisted transcript line. Bodies are stored as plain
// text with terminal styling stripped; styling is a rendering concern and
// re-derivable, transcript text is not.
type StoredLine struct {
	ID      int64
	RoomID  string
	EventID string // correlation id, empty when the line has none
	Prefix  string
	Body    string
	Tags    []string
	Date    time.Time
}

// =============================================================================
// TRANSCRIPT STORE
// =============================================================================

// TranscriptStore persists transcript lines in a SQLite database, one row
// per line. It is safe for use from a single goroutine per store; roomview
// runs one store behind one event loop.
type TranscriptStore struct {
	db     *sql.DB
	closed bool
}

const schema = `
CREATE TABLE IF NOT EXISTS lines (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	room_id    TEXT    NOT NULL,
	event_id   TEXT    NOT NULL DEFAULT '',
	prefix     TEXT    NOT NULL,
	body       TEXT    NOT NULL,
	tags       TEXT    NOT NULL,
	line_date  INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_lines_room  ON lines(room_id, id);
CREATE INDEX IF NOT EXISTS idx_lines_event ON lines(room_id, event_id);
`

// Open opens (creating if necessary) the transcript database at path.
func Open(path string) (*TranscriptStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open transcript database: %w", err)
	}

	// One writer; sqlite serializes anyway and this avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create transcript schema: %w", err)
	}

	return &TranscriptStore{db: db}, nil
}

// Close closes the database.
func (s *TranscriptStore) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// =============================================================================
// WRITE OPERATIONS
// =============================================================================

// AppendLine persists one line and returns its row ID.
func (s *TranscriptStore) AppendLine(ctx context.Context, roomID, prefix, body string, tags []string, date time.Time) (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}

	eventID, _ := display.CorrelationID(tags)

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO lines (room_id, event_id, prefix, body, tags, line_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		roomID,
		eventID,
		format.StripANSI(prefix),
		format.StripANSI(body),
		strings.Join(tags, " "),
		util.ToServerTime(date),
		util.ToServerTime(time.Now()),
	)
	if err != nil {
		return 0, fmt.Errorf("insert transcript line: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert transcript line: %w", err)
	}
	return id, nil
}

// UpdateByEventID rewrites the body and tags of the most recent line carrying
// an event ID. This is the persistence side of redaction: the stored text
// changes the same way the visible line does.
func (s *TranscriptStore) UpdateByEventID(ctx context.Context, roomID, eventID, body string, tags []string) error {
	if s.closed {
		return ErrClosed
	}
	if eventID == "" {
		return fmt.Errorf("%w: empty event id", ErrNoSuchLine)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE lines SET body = ?, tags = ?
		 WHERE id = (
			SELECT id FROM lines WHERE room_id = ? AND event_id = ?
			ORDER BY id DESC LIMIT 1
		 )`,
		format.StripANSI(body),
		strings.Join(tags, " "),
		roomID,
		eventID,
	)
	if err != nil {
		return fmt.Errorf("update transcript line: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transcript line: %w", err)
	}
	if n == 0 {
		return ErrNoSuchLine
	}
	return nil
}

// =============================================================================
// READ OPERATIONS
// =============================================================================

// Recent returns up to limit of the newest lines for a room, oldest first,
// ready to replay into a fresh buffer.
func (s *TranscriptStore) Recent(ctx context.Context, roomID string, limit int) ([]StoredLine, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, room_id, event_id, prefix, body, tags, line_date
		 FROM (
			SELECT * FROM lines WHERE room_id = ? ORDER BY id DESC LIMIT ?
		 ) ORDER BY id ASC`,
		roomID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query transcript: %w", err)
	}
	defer rows.Close()

	return scanLines(rows)
}

// ByEventID returns the lines carrying an event ID, oldest first.
func (s *TranscriptStore) ByEventID(ctx context.Context, roomID, eventID string) ([]StoredLine, error) {
	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, room_id, event_id, prefix, body, tags, line_date
		 FROM lines WHERE room_id = ? AND event_id = ? ORDER BY id ASC`,
		roomID, eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("query transcript: %w", err)
	}
	defer rows.Close()

	return scanLines(rows)
}

// Count returns the number of stored lines for a room.
func (s *TranscriptStore) Count(ctx context.Context, roomID string) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}

	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lines WHERE room_id = ?`, roomID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transcript lines: %w", err)
	}
	return n, nil
}

func scanLines(rows *sql.Rows) ([]StoredLine, error) {
	var out []StoredLine
	for rows.Next() {
		var (
			l      StoredLine
			tags   string
			dateMS int64
		)
		if err := rows.Scan(&l.ID, &l.RoomID, &l.EventID, &l.Prefix, &l.Body, &tags, &dateMS); err != nil {
			return nil, fmt.Errorf("scan transcript line: %w", err)
		}
		if tags != "" {
			l.Tags = strings.Split(tags, " ")
		}
		l.Date = util.FromServerTime(dateMS)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan transcript lines: %w", err)
	}
	return out, nil
}
