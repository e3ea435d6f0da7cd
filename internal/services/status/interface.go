package status

//go:generate mockgen -package=mocks -destination=mocks/mock_messenger.go github.com/KirkDiggler/poolbot/internal/services/status Messenger
//go:generate mockgen -package=mocks -destination=mocks/mock_notifier.go github.com/KirkDiggler/poolbot/internal/services/status Notifier
//go:generate mockgen -package=mocks -destination=mocks/mock_synchronizer.go github.com/KirkDiggler/poolbot/internal/services/status Synchronizer

import (
	"context"
)

// Messenger sends and edits the status message in a chat
type Messenger interface {
	// SendStatus posts a new message and returns its ID
	SendStatus(ctx context.Context, chatID string, msg *Message) (string, error)

	// EditStatus replaces the content of an existing message
	EditStatus(ctx context.Context, chatID, messageID string, msg *Message) error
}

// Notifier is told after every ledger mutation of a session
type Notifier interface {
	SessionChanged(ctx context.Context, sessionID string)
}

// Synchronizer keeps one live status message per session consistent with the ledger
type Synchronizer interface {
	Notifier

	// Publish re-renders the session and edits its message in place, falling
	// back to creating a new one when allowed
	Publish(ctx context.Context, input *PublishInput) (*PublishOutput, error)
}
