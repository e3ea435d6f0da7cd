package session

import (
	"time"

	"github.com/KirkDiggler/poolbot/internal/models"
)

type CreateInput struct {
	Session *models.Session
}

type GetInput struct {
	SessionID string
}

type GetActiveByChatInput struct {
	ChatID string
}

type GetLatestByChatInput struct {
	ChatID string
}

type EndInput struct {
	SessionID string
	EndedAt   time.Time
}

type SetStatusMessageInput struct {
	SessionID string
	MessageID string
}
