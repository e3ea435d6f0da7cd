package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/poolbot/internal/common/apperr"
	"github.com/KirkDiggler/poolbot/internal/common/clock"
	"github.com/KirkDiggler/poolbot/internal/metrics"
	"github.com/KirkDiggler/poolbot/internal/models"
	"github.com/KirkDiggler/poolbot/internal/money"
	buyinRepo "github.com/KirkDiggler/poolbot/internal/repositories/buyin"
	sessionRepo "github.com/KirkDiggler/poolbot/internal/repositories/session"
	"github.com/KirkDiggler/poolbot/internal/services/roster"
	"github.com/KirkDiggler/poolbot/internal/services/status"
)

type service struct {
	sessionRepo sessionRepo.Repository
	buyInRepo   buyinRepo.Repository
	roster      roster.Service
	notifier    status.Notifier
	threshold   int
	clock       clock.Clock
	logger      *slog.Logger
}

// New creates a new approval service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.SessionRepo == nil {
		return nil, errors.New("session repository cannot be nil")
	}

	if cfg.BuyInRepo == nil {
		return nil, errors.New("buy-in repository cannot be nil")
	}

	if cfg.Roster == nil {
		return nil, errors.New("roster service cannot be nil")
	}

	if cfg.Notifier == nil {
		return nil, errors.New("notifier cannot be nil")
	}

	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if threshold < 1 {
		return nil, fmt.Errorf("threshold must be at least 1, got %d", cfg.Threshold)
	}

	svc := &service{
		sessionRepo: cfg.SessionRepo,
		buyInRepo:   cfg.BuyInRepo,
		roster:      cfg.Roster,
		notifier:    cfg.Notifier,
		threshold:   threshold,
		clock:       cfg.Clock,
		logger:      cfg.Logger,
	}
	if svc.clock == nil {
		svc.clock = &clock.DefaultClock{}
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	return svc, nil
}

func (s *service) RequestBuyIn(ctx context.Context, input *RequestBuyInInput) (*RequestBuyInOutput, error) {
	if input == nil || input.ChatID == "" || input.UserID == "" {
		return nil, errors.New("chat ID and user ID cannot be empty")
	}

	session, err := s.sessionRepo.GetActiveByChat(ctx, &sessionRepo.GetActiveByChatInput{ChatID: input.ChatID})
	if errors.Is(err, sessionRepo.ErrSessionNotFound) {
		return nil, fmt.Errorf("%w: no active session in this chat", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, apperr.Transport("get active session", err)
	}

	member, err := s.roster.IsMember(ctx, &roster.IsMemberInput{SessionID: session.ID, UserID: input.UserID})
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperr.ErrNotMember
	}

	amount := session.DefaultAmount
	if strings.TrimSpace(input.AmountText) != "" {
		amount, err = money.Parse(input.AmountText)
		if err != nil {
			return nil, err
		}
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: this session has no default buy-in, name an amount", apperr.ErrValidation)
	}

	request, err := s.buyInRepo.CreateRequest(ctx, &buyinRepo.CreateRequestInput{
		SessionID:   session.ID,
		RequesterID: input.UserID,
		Amount:      amount,
		CreatedAt:   s.clock.Now(),
	})
	if err != nil {
		return nil, apperr.Transport("create buy-in request", err)
	}

	s.logger.Info("buy-in requested",
		"session_id", session.ID,
		"request_id", request.ID,
		"user_id", input.UserID,
		"amount", amount,
	)

	s.notifier.SessionChanged(ctx, session.ID)

	return &RequestBuyInOutput{
		Session: session,
		Request: request,
	}, nil
}

func (s *service) Vote(ctx context.Context, input *VoteInput) (*VoteOutput, error) {
	if input == nil || input.VoterID == "" {
		return nil, errors.New("voter ID cannot be empty")
	}
	if !input.Decision.Valid() {
		return nil, fmt.Errorf("%w: unknown decision %q", apperr.ErrValidation, input.Decision)
	}

	request, err := s.buyInRepo.GetRequest(ctx, &buyinRepo.GetRequestInput{RequestID: input.RequestID})
	if err != nil {
		return nil, apperr.Transport("get buy-in request", err)
	}

	if !request.Status.IsPending() {
		return nil, apperr.ErrAlreadyResolved
	}

	session, err := s.sessionRepo.Get(ctx, &sessionRepo.GetInput{SessionID: request.SessionID})
	if err != nil {
		return nil, apperr.Transport("get session", err)
	}
	if session.Status.IsEnded() {
		return nil, fmt.Errorf("%w: session has ended", apperr.ErrNotFound)
	}

	if request.RequesterID == input.VoterID {
		return nil, apperr.ErrSelfVote
	}

	member, err := s.roster.IsMember(ctx, &roster.IsMemberInput{SessionID: request.SessionID, UserID: input.VoterID})
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperr.ErrNotMember
	}

	recorded, err := s.buyInRepo.AddVote(ctx, &buyinRepo.AddVoteInput{Vote: &models.Vote{
		RequestID: request.ID,
		VoterID:   input.VoterID,
		Decision:  input.Decision,
		CreatedAt: s.clock.Now(),
	}})
	if err != nil {
		return nil, apperr.Transport("add vote", err)
	}
	if recorded {
		metrics.RecordVote(string(input.Decision))
	}

	tally, err := s.buyInRepo.CountVotes(ctx, &buyinRepo.CountVotesInput{RequestID: request.ID})
	if err != nil {
		return nil, apperr.Transport("count votes", err)
	}

	out := &VoteOutput{
		Request:  request,
		Tally:    *tally,
		Recorded: recorded,
		Status:   models.RequestStatusPending,
	}

	if outcome, settled := s.outcome(*tally); settled {
		applied, err := s.buyInRepo.Resolve(ctx, &buyinRepo.ResolveInput{RequestID: request.ID, Status: outcome})
		if err != nil {
			return nil, apperr.Transport("resolve buy-in request", err)
		}

		if applied {
			request.Status = outcome
			out.Transitioned = true
			metrics.RecordResolved(string(outcome))
			s.logger.Info("buy-in request resolved",
				"session_id", request.SessionID,
				"request_id", request.ID,
				"status", outcome,
				"approvals", tally.Approvals,
				"rejections", tally.Rejections,
			)
		} else {
			// Another voter settled it first; report what the store holds
			current, err := s.buyInRepo.GetRequest(ctx, &buyinRepo.GetRequestInput{RequestID: request.ID})
			if err != nil {
				return nil, apperr.Transport("get buy-in request", err)
			}
			request = current
			out.Request = current
		}
		out.Status = request.Status
	}

	s.notifier.SessionChanged(ctx, request.SessionID)

	return out, nil
}

// outcome applies the threshold; approval wins when both sides qualify
func (s *service) outcome(t models.Tally) (models.RequestStatus, bool) {
	switch {
	case t.Approvals >= s.threshold:
		return models.RequestStatusApproved, true
	case t.Rejections >= s.threshold:
		return models.RequestStatusRejected, true
	default:
		return models.RequestStatusPending, false
	}
}
