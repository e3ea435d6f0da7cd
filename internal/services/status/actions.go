package status

import (
	"fmt"

	"github.com/KirkDiggler/poolbot/internal/models"
)

// Action IDs carried by status message controls
const (
	ActionJoin    = "pool:join"
	ActionBuyIn   = "pool:buyin"
	ActionRefresh = "pool:refresh"
	ActionEnd     = "pool:end"

	// ActionVotePrefix starts pool:vote:<decision>:<request id>
	ActionVotePrefix = "pool:vote:"
)

// VoteAction builds the action ID of an approve or reject control
func VoteAction(decision models.Decision, requestID int64) string {
	return fmt.Sprintf("%s%s:%d", ActionVotePrefix, decision, requestID)
}
