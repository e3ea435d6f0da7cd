package roster

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/poolbot/internal/repositories/roster Repository

import (
	"context"

	"github.com/KirkDiggler/poolbot/internal/models"
)

// Repository defines the interface for session roster persistence
type Repository interface {
	// Add inserts a participant unless the identity is already on the roster.
	// It reports false for an existing member.
	Add(ctx context.Context, input *AddInput) (bool, error)

	// Exists reports whether an identity is on the roster of a session
	Exists(ctx context.Context, input *ExistsInput) (bool, error)

	// List retrieves every participant of a session in join order
	List(ctx context.Context, input *ListInput) ([]*models.Participant, error)
}
