package intent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/poolbot/internal/models"
)

func TestParseAction(t *testing.T) {
	actor := Actor{ID: "user-1", Handle: "ann"}

	tests := []struct {
		actionID string
		want     Intent
	}{
		{"pool:join", Join{ChatID: "chat-1", Actor: actor}},
		{"pool:buyin", RequestBuyIn{ChatID: "chat-1", Actor: actor}},
		{"pool:refresh", Refresh{ChatID: "chat-1", Actor: actor, AllowCreate: true}},
		{"pool:end", EndSession{ChatID: "chat-1", Actor: actor}},
		{"pool:vote:approve:12", CastVote{RequestID: 12, Actor: actor, Decision: models.DecisionApprove}},
		{"pool:vote:reject:3", CastVote{RequestID: 3, Actor: actor, Decision: models.DecisionReject}},
	}

	for _, tt := range tests {
		t.Run(tt.actionID, func(t *testing.T) {
			got, err := ParseAction(tt.actionID, "chat-1", actor)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseActionRejectsUnknown(t *testing.T) {
	for _, actionID := range []string{
		"",
		"pool:unknown",
		"pool:vote:",
		"pool:vote:approve",
		"pool:vote:maybe:1",
		"pool:vote:approve:abc",
		"pool:vote:reject:0",
		"pool:vote:reject:-4",
	} {
		_, err := ParseAction(actionID, "chat-1", Actor{ID: "user-1"})
		assert.True(t, errors.Is(err, ErrUnknownAction), actionID)
	}
}

func TestIntentNames(t *testing.T) {
	names := map[string]bool{}
	for _, in := range []Intent{StartSession{}, Join{}, RequestBuyIn{}, CastVote{}, Refresh{}, EndSession{}} {
		names[in.Name()] = true
	}
	assert.Len(t, names, 6)
}
