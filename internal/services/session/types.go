package session

import (
	"log/slog"

	"github.com/KirkDiggler/poolbot/internal/common/clock"
	"github.com/KirkDiggler/poolbot/internal/common/uuid"
	"github.com/KirkDiggler/poolbot/internal/models"
	buyinRepo "github.com/KirkDiggler/poolbot/internal/repositories/buyin"
	sessionRepo "github.com/KirkDiggler/poolbot/internal/repositories/session"
	"github.com/KirkDiggler/poolbot/internal/services/status"
)

// Config holds configuration for the session service
type Config struct {
	SessionRepo sessionRepo.Repository
	BuyInRepo   buyinRepo.Repository
	Notifier    status.Notifier

	Clock  clock.Clock
	UUID   uuid.UUID
	Logger *slog.Logger
}

type StartInput struct {
	ChatID     string
	AmountText string
}

type StartOutput struct {
	Session *models.Session
}

type EndInput struct {
	ChatID string
}

type EndOutput struct {
	Session *models.Session

	// Totals are the frozen sums of the ended session
	Totals *buyinRepo.SumByStatusOutput
}

type CurrentInput struct {
	ChatID string
}

type CurrentOutput struct {
	// Session is nil when the chat has no active session
	Session *models.Session
}

type LatestInput struct {
	ChatID string
}

type LatestOutput struct {
	// Session is nil when the chat never had a session
	Session *models.Session
}
