package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/poolbot/internal/common/apperr"
	"github.com/KirkDiggler/poolbot/internal/common/clock"
	"github.com/KirkDiggler/poolbot/internal/models"
	rosterRepo "github.com/KirkDiggler/poolbot/internal/repositories/roster"
	sessionRepo "github.com/KirkDiggler/poolbot/internal/repositories/session"
	"github.com/KirkDiggler/poolbot/internal/services/status"
)

type service struct {
	sessionRepo sessionRepo.Repository
	rosterRepo  rosterRepo.Repository
	notifier    status.Notifier
	clock       clock.Clock
	logger      *slog.Logger
}

// New creates a new roster service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.SessionRepo == nil {
		return nil, errors.New("session repository cannot be nil")
	}

	if cfg.RosterRepo == nil {
		return nil, errors.New("roster repository cannot be nil")
	}

	if cfg.Notifier == nil {
		return nil, errors.New("notifier cannot be nil")
	}

	svc := &service{
		sessionRepo: cfg.SessionRepo,
		rosterRepo:  cfg.RosterRepo,
		notifier:    cfg.Notifier,
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

func (s *service) Join(ctx context.Context, input *JoinInput) (*JoinOutput, error) {
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

	participant := &models.Participant{
		SessionID: session.ID,
		UserID:    input.UserID,
		Handle:    input.Handle,
		GivenName: input.GivenName,
		JoinedAt:  s.clock.Now(),
	}

	added, err := s.rosterRepo.Add(ctx, &rosterRepo.AddInput{Participant: participant})
	if err != nil {
		return nil, apperr.Transport("add participant", err)
	}
	if !added {
		return nil, apperr.ErrAlreadyMember
	}

	s.logger.Info("participant joined",
		"session_id", session.ID,
		"user_id", input.UserID,
	)

	s.notifier.SessionChanged(ctx, session.ID)

	return &JoinOutput{
		Session:     session,
		Participant: participant,
	}, nil
}

func (s *service) IsMember(ctx context.Context, input *IsMemberInput) (bool, error) {
	if input == nil || input.SessionID == "" || input.UserID == "" {
		return false, errors.New("session ID and user ID cannot be empty")
	}

	ok, err := s.rosterRepo.Exists(ctx, &rosterRepo.ExistsInput{
		SessionID: input.SessionID,
		UserID:    input.UserID,
	})
	if err != nil {
		return false, apperr.Transport("check membership", err)
	}

	return ok, nil
}
