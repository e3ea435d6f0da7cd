package approval

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/poolbot/internal/services/approval Service

import (
	"context"
)

// Service records buy-in requests and settles them by peer vote
type Service interface {
	// RequestBuyIn files a pending request for the caller in the active session of a chat
	RequestBuyIn(ctx context.Context, input *RequestBuyInInput) (*RequestBuyInOutput, error)

	// Vote records a decision on a pending request and settles it once a side reaches the threshold
	Vote(ctx context.Context, input *VoteInput) (*VoteOutput, error)
}
