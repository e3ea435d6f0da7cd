package buyin

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/poolbot/internal/repositories/buyin Repository

import (
	"context"

	"github.com/KirkDiggler/poolbot/internal/models"
)

// Repository defines the interface for buy-in request and vote persistence
type Repository interface {
	// CreateRequest inserts a pending request and returns it with its assigned ID
	CreateRequest(ctx context.Context, input *CreateRequestInput) (*models.BuyInRequest, error)

	// GetRequest retrieves a request by ID
	GetRequest(ctx context.Context, input *GetRequestInput) (*models.BuyInRequest, error)

	// ListRequests retrieves the requests of a session ordered by ID
	ListRequests(ctx context.Context, input *ListRequestsInput) ([]*models.BuyInRequest, error)

	// Resolve moves a pending request to a terminal status. It reports false
	// when the request was no longer pending.
	Resolve(ctx context.Context, input *ResolveInput) (bool, error)

	// AddVote records a vote unless the voter already voted on the request.
	// It reports false for a duplicate.
	AddVote(ctx context.Context, input *AddVoteInput) (bool, error)

	// CountVotes tallies the votes on one request
	CountVotes(ctx context.Context, input *CountVotesInput) (*models.Tally, error)

	// TallySession tallies the votes on every pending request of a session
	TallySession(ctx context.Context, input *TallySessionInput) (map[int64]models.Tally, error)

	// SumByStatus adds up request amounts of a session per status
	SumByStatus(ctx context.Context, input *SumByStatusInput) (*SumByStatusOutput, error)
}
