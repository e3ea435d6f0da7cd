package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/poolbot/internal/common/apperr"
	"github.com/KirkDiggler/poolbot/internal/common/clock"
	"github.com/KirkDiggler/poolbot/internal/common/uuid"
	"github.com/KirkDiggler/poolbot/internal/metrics"
	"github.com/KirkDiggler/poolbot/internal/models"
	"github.com/KirkDiggler/poolbot/internal/money"
	buyinRepo "github.com/KirkDiggler/poolbot/internal/repositories/buyin"
	sessionRepo "github.com/KirkDiggler/poolbot/internal/repositories/session"
	"github.com/KirkDiggler/poolbot/internal/services/status"
)

type service struct {
	sessionRepo sessionRepo.Repository
	buyInRepo   buyinRepo.Repository
	notifier    status.Notifier
	clock       clock.Clock
	uuid        uuid.UUID
	logger      *slog.Logger
}

// New creates a new session service
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

	if cfg.Notifier == nil {
		return nil, errors.New("notifier cannot be nil")
	}

	svc := &service{
		sessionRepo: cfg.SessionRepo,
		buyInRepo:   cfg.BuyInRepo,
		notifier:    cfg.Notifier,
		clock:       cfg.Clock,
		uuid:        cfg.UUID,
		logger:      cfg.Logger,
	}

	if svc.clock == nil {
		svc.clock = &clock.DefaultClock{}
	}
	if svc.uuid == nil {
		svc.uuid = uuid.New()
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	return svc, nil
}

func (s *service) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("chat ID cannot be empty")
	}

	// Fast path; the partial unique index is the real guard
	existing, err := s.active(ctx, input.ChatID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.ErrConflict
	}

	amount, err := money.Parse(input.AmountText)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:            s.uuid.NewUUID(),
		ChatID:        input.ChatID,
		Status:        models.SessionStatusActive,
		DefaultAmount: amount,
		CreatedAt:     s.clock.Now(),
	}

	created, err := s.sessionRepo.Create(ctx, &sessionRepo.CreateInput{Session: session})
	if err != nil {
		return nil, apperr.Transport("create session", err)
	}
	if !created {
		return nil, apperr.ErrConflict
	}

	metrics.RecordSessionStarted()
	s.logger.Info("session started",
		"session_id", session.ID,
		"chat_id", session.ChatID,
		"default_amount", session.DefaultAmount,
	)

	s.notifier.SessionChanged(ctx, session.ID)

	return &StartOutput{Session: session}, nil
}

func (s *service) End(ctx context.Context, input *EndInput) (*EndOutput, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("chat ID cannot be empty")
	}

	session, err := s.active(ctx, input.ChatID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("%w: no active session in this chat", apperr.ErrNotFound)
	}

	endedAt := s.clock.Now()
	ended, err := s.sessionRepo.End(ctx, &sessionRepo.EndInput{
		SessionID: session.ID,
		EndedAt:   endedAt,
	})
	if err != nil {
		return nil, apperr.Transport("end session", err)
	}
	if !ended {
		// Lost the race against a concurrent end
		return nil, fmt.Errorf("%w: no active session in this chat", apperr.ErrNotFound)
	}

	session.Status = models.SessionStatusEnded
	session.EndedAt = &endedAt

	totals, err := s.buyInRepo.SumByStatus(ctx, &buyinRepo.SumByStatusInput{SessionID: session.ID})
	if err != nil {
		return nil, apperr.Transport("sum buy-ins", err)
	}

	metrics.RecordSessionEnded()
	s.logger.Info("session ended",
		"session_id", session.ID,
		"chat_id", session.ChatID,
		"approved_total", totals.Approved,
	)

	s.notifier.SessionChanged(ctx, session.ID)

	return &EndOutput{Session: session, Totals: totals}, nil
}

func (s *service) Current(ctx context.Context, input *CurrentInput) (*CurrentOutput, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("chat ID cannot be empty")
	}

	session, err := s.active(ctx, input.ChatID)
	if err != nil {
		return nil, err
	}

	return &CurrentOutput{Session: session}, nil
}

func (s *service) Latest(ctx context.Context, input *LatestInput) (*LatestOutput, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("chat ID cannot be empty")
	}

	session, err := s.sessionRepo.GetLatestByChat(ctx, &sessionRepo.GetLatestByChatInput{ChatID: input.ChatID})
	if errors.Is(err, sessionRepo.ErrSessionNotFound) {
		return &LatestOutput{}, nil
	}
	if err != nil {
		return nil, apperr.Transport("get latest session", err)
	}

	return &LatestOutput{Session: session}, nil
}

// active returns nil without error when the chat has no active session
func (s *service) active(ctx context.Context, chatID string) (*models.Session, error) {
	session, err := s.sessionRepo.GetActiveByChat(ctx, &sessionRepo.GetActiveByChatInput{ChatID: chatID})
	if errors.Is(err, sessionRepo.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Transport("get active session", err)
	}
	return session, nil
}
