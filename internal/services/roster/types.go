package roster

import (
	"log/slog"

	"github.com/KirkDiggler/poolbot/internal/common/clock"
	"github.com/KirkDiggler/poolbot/internal/models"
	rosterRepo "github.com/KirkDiggler/poolbot/internal/repositories/roster"
	sessionRepo "github.com/KirkDiggler/poolbot/internal/repositories/session"
	"github.com/KirkDiggler/poolbot/internal/services/status"
)

// Config holds configuration for the roster service
type Config struct {
	SessionRepo sessionRepo.Repository
	RosterRepo  rosterRepo.Repository
	Notifier    status.Notifier

	Clock  clock.Clock
	Logger *slog.Logger
}

type JoinInput struct {
	ChatID    string
	UserID    string
	Handle    string
	GivenName string
}

type JoinOutput struct {
	Session     *models.Session
	Participant *models.Participant
}

type IsMemberInput struct {
	SessionID string
	UserID    string
}
