package status

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/KirkDiggler/poolbot/internal/common/apperr"
	"github.com/KirkDiggler/poolbot/internal/metrics"
	"github.com/KirkDiggler/poolbot/internal/repositories/lock"
	sessionRepo "github.com/KirkDiggler/poolbot/internal/repositories/session"
	"github.com/KirkDiggler/poolbot/internal/services/projector"
)

const (
	defaultLeaseTTL  = 10 * time.Second
	defaultLeasePoll = 200 * time.Millisecond
)

type service struct {
	sessionRepo sessionRepo.Repository
	projector   projector.Projector
	messenger   Messenger
	locker      lock.Locker
	leaseTTL    time.Duration
	leasePoll   time.Duration
	logger      *slog.Logger
}

// New creates a status synchronizer
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.SessionRepo == nil {
		return nil, errors.New("session repository cannot be nil")
	}

	if cfg.Projector == nil {
		return nil, errors.New("projector cannot be nil")
	}

	if cfg.Messenger == nil {
		return nil, errors.New("messenger cannot be nil")
	}

	ttl := cfg.LeaseTTL
	if ttl <= 0 {
		ttl = defaultLeaseTTL
	}

	poll := cfg.LeasePoll
	if poll <= 0 {
		poll = defaultLeasePoll
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		sessionRepo: cfg.SessionRepo,
		projector:   cfg.Projector,
		messenger:   cfg.Messenger,
		locker:      cfg.Locker,
		leaseTTL:    ttl,
		leasePoll:   poll,
		logger:      logger,
	}, nil
}

// SessionChanged republishes after a mutation. Failures are logged only.
func (s *service) SessionChanged(ctx context.Context, sessionID string) {
	if _, err := s.Publish(ctx, &PublishInput{SessionID: sessionID, AllowCreate: true}); err != nil {
		s.logger.Warn("failed to publish status message",
			"session_id", sessionID,
			"error", err,
		)
	}
}

func (s *service) Publish(ctx context.Context, input *PublishInput) (*PublishOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	session, err := s.sessionRepo.Get(ctx, &sessionRepo.GetInput{SessionID: input.SessionID})
	if err != nil {
		return nil, apperr.Transport("get session", err)
	}

	view, err := s.projector.Project(ctx, &projector.ProjectInput{Session: session})
	if err != nil {
		return nil, err
	}

	out := &PublishOutput{
		Session: session,
		Message: Render(session, view),
	}

	if session.StatusMessageID != "" {
		if s.edit(ctx, session.ChatID, session.StatusMessageID, out.Message) {
			out.Exists = true
			return out, nil
		}
	}

	if !input.AllowCreate {
		metrics.RecordPublish(metrics.PublishSkipped)
		return out, nil
	}

	return s.create(ctx, out)
}

// edit reports whether the message was updated in place
func (s *service) edit(ctx context.Context, chatID, messageID string, msg *Message) bool {
	if err := s.messenger.EditStatus(ctx, chatID, messageID, msg); err != nil {
		s.logger.Warn("failed to edit status message",
			"chat_id", chatID,
			"message_id", messageID,
			"error", err,
		)
		return false
	}

	metrics.RecordPublish(metrics.PublishEdited)
	return true
}

func (s *service) create(ctx context.Context, out *PublishOutput) (*PublishOutput, error) {
	session := out.Session

	if s.locker != nil {
		lease, err := s.locker.Acquire(ctx, &lock.AcquireInput{
			Key: "publish:" + session.ID,
			TTL: s.leaseTTL,
		})
		switch {
		case err != nil:
			s.logger.Warn("failed to acquire publish lease, creating without it",
				"session_id", session.ID,
				"error", err,
			)
		case lease == nil:
			s.logger.Debug("another publisher holds the lease", "session_id", session.ID)
			return s.awaitPeer(ctx, out)
		default:
			defer func() {
				if err := s.locker.Release(ctx, lease); err != nil {
					s.logger.Warn("failed to release publish lease", "session_id", session.ID, "error", err)
				}
			}()

			// A concurrent publisher may have posted while we waited
			fresh, err := s.sessionRepo.Get(ctx, &sessionRepo.GetInput{SessionID: session.ID})
			if err != nil {
				return nil, apperr.Transport("get session", err)
			}
			if fresh.StatusMessageID != "" && fresh.StatusMessageID != session.StatusMessageID {
				out.Session = fresh
				if s.edit(ctx, fresh.ChatID, fresh.StatusMessageID, out.Message) {
					out.Exists = true
					return out, nil
				}
			}
		}
	}

	messageID, err := s.messenger.SendStatus(ctx, session.ChatID, out.Message)
	if err != nil {
		metrics.RecordPublish(metrics.PublishFailed)
		return nil, apperr.Transport("send status message", err)
	}

	if err := s.sessionRepo.SetStatusMessage(ctx, &sessionRepo.SetStatusMessageInput{
		SessionID: session.ID,
		MessageID: messageID,
	}); err != nil {
		metrics.RecordPublish(metrics.PublishFailed)
		return nil, apperr.Transport("record status message", err)
	}

	metrics.RecordPublish(metrics.PublishCreated)
	session.StatusMessageID = messageID
	out.Exists = true
	out.Created = true
	return out, nil
}

// awaitPeer waits up to one lease TTL for the lease holder to post, then
// edits that message with this caller's render
func (s *service) awaitPeer(ctx context.Context, out *PublishOutput) (*PublishOutput, error) {
	session := out.Session

	deadline := time.NewTimer(s.leaseTTL)
	defer deadline.Stop()
	ticker := time.NewTicker(s.leasePoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			metrics.RecordPublish(metrics.PublishSkipped)
			return out, nil
		case <-deadline.C:
			s.logger.Warn("lease holder never posted a status message", "session_id", session.ID)
			metrics.RecordPublish(metrics.PublishSkipped)
			return out, nil
		case <-ticker.C:
		}

		fresh, err := s.sessionRepo.Get(ctx, &sessionRepo.GetInput{SessionID: session.ID})
		if err != nil {
			return nil, apperr.Transport("get session", err)
		}
		if fresh.StatusMessageID == "" || fresh.StatusMessageID == session.StatusMessageID {
			continue
		}

		out.Session = fresh
		if s.edit(ctx, fresh.ChatID, fresh.StatusMessageID, out.Message) {
			out.Exists = true
		} else {
			metrics.RecordPublish(metrics.PublishSkipped)
		}
		return out, nil
	}
}
