package projector

//go:generate mockgen -package=mocks -destination=mocks/mock_projector.go github.com/KirkDiggler/poolbot/internal/services/projector Projector

import (
	"context"
)

// Projector builds the read-only view of a session from ledger rows
type Projector interface {
	// Project recomputes the view of a session. It never caches.
	Project(ctx context.Context, input *ProjectInput) (*View, error)
}
