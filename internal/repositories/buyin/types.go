package buyin

import (
	"time"

	"github.com/KirkDiggler/poolbot/internal/models"
)

type CreateRequestInput struct {
	SessionID   string
	RequesterID string
	Amount      int64
	CreatedAt   time.Time
}

type GetRequestInput struct {
	RequestID int64
}

type ListRequestsInput struct {
	SessionID string

	// Status filters the list when set
	Status models.RequestStatus
}

type ResolveInput struct {
	RequestID int64
	Status    models.RequestStatus
}

type AddVoteInput struct {
	Vote *models.Vote
}

type CountVotesInput struct {
	RequestID int64
}

type TallySessionInput struct {
	SessionID string
}

type SumByStatusInput struct {
	SessionID string
}

type SumByStatusOutput struct {
	Approved int64
	Pending  int64
	Rejected int64
}
