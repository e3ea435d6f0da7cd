package roster

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/poolbot/internal/services/roster Service

import (
	"context"
)

// Service manages who takes part in a session
type Service interface {
	// Join adds the caller to the active session of a chat
	Join(ctx context.Context, input *JoinInput) (*JoinOutput, error)

	// IsMember reports whether an identity is on a session's roster
	IsMember(ctx context.Context, input *IsMemberInput) (bool, error)
}
