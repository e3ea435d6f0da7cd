// Package intent holds the closed set of user intents and the dispatcher that
// routes them to the pool services.
package intent

import (
	"github.com/KirkDiggler/poolbot/internal/models"
)

// Intent is one of the variants declared in this package
type Intent interface {
	// Name is a stable identifier used in logs and metrics
	Name() string

	sealed()
}

// Actor is the chat identity behind an intent
type Actor struct {
	ID        string
	Handle    string
	GivenName string
}

// StartSession opens a session with a default buy-in
type StartSession struct {
	ChatID     string
	Actor      Actor
	AmountText string
}

// Join adds the actor to the active session
type Join struct {
	ChatID string
	Actor  Actor
}

// RequestBuyIn files a buy-in for the actor; AmountText may be blank
type RequestBuyIn struct {
	ChatID     string
	Actor      Actor
	AmountText string
}

// CastVote records the actor's decision on a request
type CastVote struct {
	RequestID int64
	Actor     Actor
	Decision  models.Decision
}

// Refresh republishes the status message of the active session
type Refresh struct {
	ChatID string
	Actor  Actor

	// AllowCreate permits posting a new message when none can be edited
	AllowCreate bool
}

// EndSession closes the active session
type EndSession struct {
	ChatID string
	Actor  Actor
}

func (StartSession) Name() string { return "start_session" }
func (Join) Name() string         { return "join" }
func (RequestBuyIn) Name() string { return "request_buy_in" }
func (CastVote) Name() string     { return "cast_vote" }
func (Refresh) Name() string      { return "refresh" }
func (EndSession) Name() string   { return "end_session" }

func (StartSession) sealed() {}
func (Join) sealed()         {}
func (RequestBuyIn) sealed() {}
func (CastVote) sealed()     {}
func (Refresh) sealed()      {}
func (EndSession) sealed()   {}
