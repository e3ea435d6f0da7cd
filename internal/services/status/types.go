package status

import (
	"log/slog"
	"time"

	"github.com/KirkDiggler/poolbot/internal/models"
	"github.com/KirkDiggler/poolbot/internal/repositories/lock"
	sessionRepo "github.com/KirkDiggler/poolbot/internal/repositories/session"
	"github.com/KirkDiggler/poolbot/internal/services/projector"
)

// Config holds configuration for the status synchronizer
type Config struct {
	SessionRepo sessionRepo.Repository
	Projector   projector.Projector
	Messenger   Messenger

	// Locker serializes message creation across processes, optional
	Locker lock.Locker

	// LeaseTTL bounds how long a creation lease is held, defaults to 10s
	LeaseTTL time.Duration

	// LeasePoll is how often a publisher that lost the lease checks for the
	// winner's message, defaults to 200ms
	LeasePoll time.Duration

	Logger *slog.Logger
}

type PublishInput struct {
	SessionID string

	// AllowCreate permits posting a new message when there is none to edit
	AllowCreate bool
}

type PublishOutput struct {
	// Exists is true when a live status message is known after the call
	Exists bool

	// Created is true when this call posted a new message
	Created bool

	Session *models.Session
	Message *Message
}

// ButtonStyle is the visual weight of a control
type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota
	ButtonSecondary
	ButtonSuccess
	ButtonDanger
)

// Button is one clickable control carrying an action ID
type Button struct {
	Label    string
	ActionID string
	Style    ButtonStyle
	Emoji    string
}

// Field is a titled block of the message body
type Field struct {
	Name  string
	Value string
}

// Message is the transport-neutral rendering of a session
type Message struct {
	Title       string
	Description string
	Color       int
	Fields      []Field

	// Rows of controls, empty once the session has ended
	Rows [][]Button
}
