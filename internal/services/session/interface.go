package session

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/poolbot/internal/services/session Service

import (
	"context"
)

// Service manages the one-active-session-per-chat lifecycle
type Service interface {
	// Start opens a session in a chat with a default buy-in parsed from text
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)

	// End closes the active session of a chat
	End(ctx context.Context, input *EndInput) (*EndOutput, error)

	// Current returns the active session of a chat, if any
	Current(ctx context.Context, input *CurrentInput) (*CurrentOutput, error)

	// Latest returns the newest session of a chat, ended or not
	Latest(ctx context.Context, input *LatestInput) (*LatestOutput, error)
}
