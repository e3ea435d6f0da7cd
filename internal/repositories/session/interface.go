package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/poolbot/internal/repositories/session Repository

import (
	"context"

	"github.com/KirkDiggler/poolbot/internal/models"
)

// Repository defines the interface for session persistence
type Repository interface {
	// Create inserts an active session unless the chat already has one.
	// It reports false when the one-active-session guard rejected the insert.
	Create(ctx context.Context, input *CreateInput) (bool, error)

	// Get retrieves a session by ID
	Get(ctx context.Context, input *GetInput) (*models.Session, error)

	// GetActiveByChat retrieves the most recently created active session of a chat
	GetActiveByChat(ctx context.Context, input *GetActiveByChatInput) (*models.Session, error)

	// GetLatestByChat retrieves the most recently created session of a chat, active or ended
	GetLatestByChat(ctx context.Context, input *GetLatestByChatInput) (*models.Session, error)

	// End transitions an active session to ended. It reports false when the
	// session was not active anymore.
	End(ctx context.Context, input *EndInput) (bool, error)

	// SetStatusMessage records the live status message of a session
	SetStatusMessage(ctx context.Context, input *SetStatusMessageInput) error
}
