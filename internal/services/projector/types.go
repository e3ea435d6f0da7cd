package projector

import (
	"github.com/KirkDiggler/poolbot/internal/models"
	buyinRepo "github.com/KirkDiggler/poolbot/internal/repositories/buyin"
	rosterRepo "github.com/KirkDiggler/poolbot/internal/repositories/roster"
)

// Config holds configuration for the projector
type Config struct {
	RosterRepo rosterRepo.Repository
	BuyInRepo  buyinRepo.Repository
}

type ProjectInput struct {
	Session *models.Session
}

// View is the aggregate state of one session as shown in chat
type View struct {
	Session *models.Session

	// Players has one row per roster identity, highest approved total first
	Players []PlayerRow

	// Pending has one row per pending request in request order
	Pending []PendingRow

	Totals Totals
}

// PlayerRow summarizes one participant
type PlayerRow struct {
	UserID       string
	Label        string
	Approved     int64
	PendingCount int
}

// PendingRow is one request still open for votes
type PendingRow struct {
	RequestID      int64
	RequesterID    string
	RequesterLabel string
	Amount         int64
	Tally          models.Tally
}

// Totals are the session-wide sums
type Totals struct {
	Approved     int64
	Pending      int64
	PendingCount int
}
