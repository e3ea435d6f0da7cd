package approval

import (
	"log/slog"

	"github.com/KirkDiggler/poolbot/internal/common/clock"
	"github.com/KirkDiggler/poolbot/internal/models"
	buyinRepo "github.com/KirkDiggler/poolbot/internal/repositories/buyin"
	sessionRepo "github.com/KirkDiggler/poolbot/internal/repositories/session"
	"github.com/KirkDiggler/poolbot/internal/services/roster"
	"github.com/KirkDiggler/poolbot/internal/services/status"
)

// DefaultThreshold is the number of matching votes that settles a request
const DefaultThreshold = 1

// Config holds configuration for the approval service
type Config struct {
	SessionRepo sessionRepo.Repository
	BuyInRepo   buyinRepo.Repository
	Roster      roster.Service
	Notifier    status.Notifier

	// Threshold is how many approvals (or rejections) settle a request, at least 1
	Threshold int

	Clock  clock.Clock
	Logger *slog.Logger
}

type RequestBuyInInput struct {
	ChatID string
	UserID string

	// AmountText is optional; the session default applies when blank
	AmountText string
}

type RequestBuyInOutput struct {
	Session *models.Session
	Request *models.BuyInRequest
}

type VoteInput struct {
	RequestID int64
	VoterID   string
	Decision  models.Decision
}

type VoteOutput struct {
	Request *models.BuyInRequest
	Tally   models.Tally

	// Recorded is false when the voter had already voted on the request
	Recorded bool

	// Transitioned is true only for the call that moved the request off pending
	Transitioned bool

	// Status is the request status after the call
	Status models.RequestStatus
}
