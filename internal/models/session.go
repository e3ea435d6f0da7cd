package models

import (
	"time"
)

// SessionStatus represents the lifecycle state of a pooling session
type SessionStatus string

const (
	// SessionStatusActive indicates the session accepts joins, buy-ins and votes
	SessionStatusActive SessionStatus = "active"

	// SessionStatusEnded indicates the session is closed and its totals are frozen
	SessionStatusEnded SessionStatus = "ended"
)

// IsActive returns true if the session is active
func (s SessionStatus) IsActive() bool {
	return s == SessionStatusActive
}

// IsEnded returns true if the session has ended
func (s SessionStatus) IsEnded() bool {
	return s == SessionStatusEnded
}

// Session is one pooling round scoped to a chat
type Session struct {
	// ID is the unique identifier for the session
	ID string

	// ChatID is the chat (Discord channel) the session belongs to
	ChatID string

	// Status is the current state of the session
	Status SessionStatus

	// DefaultAmount is the buy-in used when a request names no amount, in minor units
	DefaultAmount int64

	// StatusMessageID references the single live status message, empty until one is published
	StatusMessageID string

	// CreatedAt is when the session was started
	CreatedAt time.Time

	// EndedAt is when the session was ended, nil while active
	EndedAt *time.Time
}
