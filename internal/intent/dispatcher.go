package intent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/poolbot/internal/common/apperr"
	"github.com/KirkDiggler/poolbot/internal/metrics"
	"github.com/KirkDiggler/poolbot/internal/models"
	"github.com/KirkDiggler/poolbot/internal/money"
	"github.com/KirkDiggler/poolbot/internal/services/approval"
	"github.com/KirkDiggler/poolbot/internal/services/roster"
	"github.com/KirkDiggler/poolbot/internal/services/session"
	"github.com/KirkDiggler/poolbot/internal/services/status"
)

// Reply is the answer shown to the user who sent an intent
type Reply struct {
	Text string

	// Ephemeral replies are only visible to the invoking user
	Ephemeral bool
}

// Config holds the services the dispatcher routes to
type Config struct {
	Sessions session.Service
	Roster   roster.Service
	Approval approval.Service
	Status   status.Synchronizer
	Logger   *slog.Logger
}

// Dispatcher routes intents to services and turns their errors into replies
type Dispatcher struct {
	sessions session.Service
	roster   roster.Service
	approval approval.Service
	status   status.Synchronizer
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher
func NewDispatcher(cfg *Config) (*Dispatcher, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Sessions == nil {
		return nil, errors.New("session service cannot be nil")
	}

	if cfg.Roster == nil {
		return nil, errors.New("roster service cannot be nil")
	}

	if cfg.Approval == nil {
		return nil, errors.New("approval service cannot be nil")
	}

	if cfg.Status == nil {
		return nil, errors.New("status synchronizer cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		sessions: cfg.Sessions,
		roster:   cfg.Roster,
		approval: cfg.Approval,
		status:   cfg.Status,
		logger:   logger,
	}, nil
}

// Dispatch runs one intent. The reply is always set; the error is non-nil only
// for failures that are not the user's doing and should be logged.
func (d *Dispatcher) Dispatch(ctx context.Context, in Intent) (*Reply, error) {
	if in == nil {
		return &Reply{Text: ErrorMessage(nil, ErrUnknownAction), Ephemeral: true}, ErrUnknownAction
	}

	text, err := d.dispatch(ctx, in)
	if err != nil {
		metrics.RecordIntent(in.Name(), outcome(err))
		reply := &Reply{Text: ErrorMessage(in, err), Ephemeral: true}
		if apperr.IsDomain(err) {
			d.logger.Debug("intent refused", "intent", in.Name(), "reason", err)
			return reply, nil
		}
		return reply, fmt.Errorf("%s: %w", in.Name(), err)
	}

	metrics.RecordIntent(in.Name(), "ok")
	return &Reply{Text: text, Ephemeral: true}, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, in Intent) (string, error) {
	switch in := in.(type) {
	case StartSession:
		out, err := d.sessions.Start(ctx, &session.StartInput{ChatID: in.ChatID, AmountText: in.AmountText})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Session started with a default buy-in of %s.", money.Format(out.Session.DefaultAmount)), nil

	case Join:
		if _, err := d.roster.Join(ctx, &roster.JoinInput{
			ChatID:    in.ChatID,
			UserID:    in.Actor.ID,
			Handle:    in.Actor.Handle,
			GivenName: in.Actor.GivenName,
		}); err != nil {
			return "", err
		}
		return "You joined the pool.", nil

	case RequestBuyIn:
		out, err := d.approval.RequestBuyIn(ctx, &approval.RequestBuyInInput{
			ChatID:     in.ChatID,
			UserID:     in.Actor.ID,
			AmountText: in.AmountText,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Buy-in #%d for %s requested. Waiting for votes.", out.Request.ID, money.Format(out.Request.Amount)), nil

	case CastVote:
		out, err := d.approval.Vote(ctx, &approval.VoteInput{
			RequestID: in.RequestID,
			VoterID:   in.Actor.ID,
			Decision:  in.Decision,
		})
		if err != nil {
			return "", err
		}
		return voteText(in.RequestID, out), nil

	case Refresh:
		target, err := d.refreshTarget(ctx, in.ChatID)
		if err != nil {
			return "", err
		}
		out, err := d.status.Publish(ctx, &status.PublishInput{SessionID: target.ID, AllowCreate: in.AllowCreate})
		if err != nil {
			return "", err
		}
		if out.Exists {
			return "Status message refreshed.", nil
		}
		return out.Message.Text(), nil

	case EndSession:
		out, err := d.sessions.End(ctx, &session.EndInput{ChatID: in.ChatID})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Session ended. Approved total: %s.", money.Format(out.Totals.Approved)), nil
	}

	return "", fmt.Errorf("%w: %T", ErrUnknownAction, in)
}

func voteText(requestID int64, out *approval.VoteOutput) string {
	switch {
	case !out.Recorded:
		return fmt.Sprintf("You already voted on #%d. Your first vote stands.", requestID)
	case out.Transitioned:
		return fmt.Sprintf("Vote recorded. Request #%d is now %s.", requestID, out.Status)
	case out.Status != models.RequestStatusPending:
		return fmt.Sprintf("Vote recorded. Request #%d was already %s.", requestID, out.Status)
	default:
		return fmt.Sprintf("Vote recorded for #%d (✅ %d / ❌ %d).", requestID, out.Tally.Approvals, out.Tally.Rejections)
	}
}

// refreshTarget picks the active session, or the newest ended one whose final
// render may never have reached the chat
func (d *Dispatcher) refreshTarget(ctx context.Context, chatID string) (*models.Session, error) {
	current, err := d.sessions.Current(ctx, &session.CurrentInput{ChatID: chatID})
	if err != nil {
		return nil, err
	}
	if current.Session != nil {
		return current.Session, nil
	}

	latest, err := d.sessions.Latest(ctx, &session.LatestInput{ChatID: chatID})
	if err != nil {
		return nil, err
	}
	if latest.Session == nil {
		return nil, fmt.Errorf("%w: no session in this chat", apperr.ErrNotFound)
	}
	return latest.Session, nil
}

// ErrorMessage is the user-facing text for a failed intent
func ErrorMessage(in Intent, err error) string {
	_, voting := in.(CastVote)

	switch {
	case errors.Is(err, apperr.ErrConflict):
		return "A session is already running in this channel. End it first with /pool end."
	case errors.Is(err, apperr.ErrNotFound) && voting:
		return "That request is no longer open for voting."
	case errors.Is(err, apperr.ErrNotFound):
		return "There is no active session in this channel. Start one with /pool start."
	case errors.Is(err, apperr.ErrNotMember):
		return "You need to join the session first."
	case errors.Is(err, apperr.ErrAlreadyMember):
		return "You are already in this session."
	case errors.Is(err, apperr.ErrAlreadyResolved):
		return "That request has already been settled."
	case errors.Is(err, apperr.ErrSelfVote):
		return "You can't vote on your own buy-in."
	case errors.Is(err, apperr.ErrValidation):
		return "That amount doesn't work. Use a positive number such as 20 or 12.50."
	case errors.Is(err, ErrUnknownAction):
		return "That button is no longer supported."
	default:
		return "Something went wrong, please try again."
	}
}

// outcome labels an error kind for metrics
func outcome(err error) string {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return "validation"
	case errors.Is(err, apperr.ErrConflict):
		return "conflict"
	case errors.Is(err, apperr.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperr.ErrNotMember):
		return "not_member"
	case errors.Is(err, apperr.ErrAlreadyMember):
		return "already_member"
	case errors.Is(err, apperr.ErrAlreadyResolved):
		return "already_resolved"
	case errors.Is(err, apperr.ErrSelfVote):
		return "self_vote"
	default:
		return "error"
	}
}
