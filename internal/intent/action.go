package intent

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/poolbot/internal/models"
	"github.com/KirkDiggler/poolbot/internal/services/status"
)

// ErrUnknownAction is returned for action IDs this bot did not issue
var ErrUnknownAction = errors.New("unknown action")

// ParseAction turns the action ID of a clicked control into an intent
func ParseAction(actionID, chatID string, actor Actor) (Intent, error) {
	switch actionID {
	case status.ActionJoin:
		return Join{ChatID: chatID, Actor: actor}, nil
	case status.ActionBuyIn:
		return RequestBuyIn{ChatID: chatID, Actor: actor}, nil
	case status.ActionRefresh:
		return Refresh{ChatID: chatID, Actor: actor, AllowCreate: true}, nil
	case status.ActionEnd:
		return EndSession{ChatID: chatID, Actor: actor}, nil
	}

	rest, ok := strings.CutPrefix(actionID, status.ActionVotePrefix)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, actionID)
	}

	decisionText, idText, ok := strings.Cut(rest, ":")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, actionID)
	}

	decision := models.Decision(decisionText)
	if !decision.Valid() {
		return nil, fmt.Errorf("%w: unknown decision in %q", ErrUnknownAction, actionID)
	}

	requestID, err := strconv.ParseInt(idText, 10, 64)
	if err != nil || requestID <= 0 {
		return nil, fmt.Errorf("%w: bad request id in %q", ErrUnknownAction, actionID)
	}

	return CastVote{RequestID: requestID, Actor: actor, Decision: decision}, nil
}
