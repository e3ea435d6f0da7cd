package models

import (
	"time"
)

// Participant is an identity on a session's roster
type Participant struct {
	// SessionID is the session the participant joined
	SessionID string

	// UserID is the chat identity of the participant
	UserID string

	// Handle is the username captured at join time, may be empty
	Handle string

	// GivenName is the display name captured at join time, may be empty
	GivenName string

	// JoinedAt is when the participant joined
	JoinedAt time.Time
}
