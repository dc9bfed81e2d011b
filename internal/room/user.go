// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package room is the event projection and redaction engine.
package room

import (
	"strings"

	"github.com/jeranaias/roomview-tui/internal/ui/styles"
	"github.com/jeranaias/roomview-tui/internal/util"
)

// =============================================================================
// RANK
// =============================================================================

// Rank is a user's display rank, derived from their power level.
type Rank int

const (
	RankNone Rank = iota
	RankVoiced
	RankModerator
	RankOwner
)

// RankForPowerLevel derives a rank from a numeric power level.
// Thresholds are exact: >=100 owner, >=50 moderator, >0 voiced, else none.
func RankForPowerLevel(powerLevel int) Rank {
	switch {
	case powerLevel >= 100:
		return RankOwner
	case powerLevel >= 50:
		return RankModerator
	case powerLevel > 0:
		return RankVoiced
	default:
		return RankNone
	}
}

// Prefix returns the rank's nick prefix character.
func (r Rank) Prefix() string {
	switch r {
	case RankOwner:
		return "&"
	case RankModerator:
		return "@"
	case RankVoiced:
		return "+"
	default:
		return ""
	}
}

// String returns the rank name.
func (r Rank) String() string {
	switch r {
	case RankOwner:
		return "owner"
	case RankModerator:
		return "moderator"
	case RankVoiced:
		return "voiced"
	default:
		return "none"
	}
}

// =============================================================================
// USER
// =============================================================================

// User is one room member's display attributes. The color is derived from
// the nick once at creation and only replaced wholesale (self users get the
// reserved self color), so transcript and roster always agree.
type User struct {
	// ID is the stable protocol identifier ("@alice:example.org").
	ID string

	// Nick is the display name. Mutable, may collide across users.
	Nick string

	// Host is the server part of the identifier, shown in membership lines.
	Host string

	// Color is the deterministic display color for the nick.
	Color styles.NickColor

	// PowerLevel drives the rank prefix and roster group.
	PowerLevel int
}

// NewUser creates a user from an identifier. An empty nick falls back to the
// shortened identifier. self marks the room's own user, who gets the
// reserved self color instead of a palette color.
func NewUser(id, nick string, powerLevel int, self bool) *User {
	if nick == "" {
		nick = util.ShortenSender(id)
	}

	color := styles.ForNick(nick)
	if self {
		color = styles.SelfNick
	}

	return &User{
		ID:         id,
		Nick:       nick,
		Host:       hostPart(id),
		Color:      color,
		PowerLevel: powerLevel,
	}
}

// Rank returns the user's rank.
func (u *User) Rank() Rank {
	return RankForPowerLevel(u.PowerLevel)
}

// RankPrefix returns the user's rank prefix character.
func (u *User) RankPrefix() string {
	return u.Rank().Prefix()
}

// hostPart extracts the server part of a user identifier, or "" when the
// identifier has none.
func hostPart(id string) string {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		return id[i+1:]
	}
	return ""
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry maps user identifiers to display attributes for the currently
// joined members of one room.
type Registry struct {
	users map[string]*User
	ownID string
}

// NewRegistry creates an empty registry. ownID is the identifier of the
// user this client runs as.
func NewRegistry(ownID string) *Registry {
	return &Registry{
		users: make(map[string]*User),
		ownID: ownID,
	}
}

// OwnID returns the identifier of the room's own user.
func (r *Registry) OwnID() string {
	return r.ownID
}

// IsSelf reports whether an identifier is the room's own user.
func (r *Registry) IsSelf(id string) bool {
	return id == r.ownID
}

// Upsert adds or replaces a user.
func (r *Registry) Upsert(u *User) {
	r.users[u.ID] = u
}

// Remove drops a user. Removing an absent user is a no-op.
func (r *Registry) Remove(id string) {
	delete(r.users, id)
}

// Get returns a registered user.
func (r *Registry) Get(id string) (*User, bool) {
	u, ok := r.users[id]
	return u, ok
}

// GetOrSynthesize returns the registered user, or a minimal user built from
// the identifier alone. Messages from non-joined users still render; the
// synthesized user is not stored.
func (r *Registry) GetOrSynthesize(id string) *User {
	if u, ok := r.users[id]; ok {
		return u
	}
	return NewUser(id, "", 0, r.IsSelf(id))
}

// Len returns the number of registered users.
func (r *Registry) Len() int {
	return len(r.users)
}
