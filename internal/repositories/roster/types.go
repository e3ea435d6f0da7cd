package roster

import "github.com/KirkDiggler/poolbot/internal/models"

type AddInput struct {
	Participant *models.Participant
}

type ExistsInput struct {
	SessionID string
	UserID    string
}

type ListInput struct {
	SessionID string
}
