package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/poolbot/internal/common/apperr"
	"github.com/KirkDiggler/poolbot/internal/models"
	"github.com/KirkDiggler/poolbot/internal/repositories/store/storetest"
)

type SQLRepositoryTestSuite struct {
	suite.Suite
	repo    Repository
	testNow time.Time
}

func (s *SQLRepositoryTestSuite) SetupTest() {
	repo, err := NewSQL(&Config{
		DB: storetest.Open(s.T()),
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func TestSQLRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(SQLRepositoryTestSuite))
}

func (s *SQLRepositoryTestSuite) newSession(id, chatID string, createdAt time.Time) *models.Session {
	return &models.Session{
		ID:            id,
		ChatID:        chatID,
		Status:        models.SessionStatusActive,
		DefaultAmount: 2000,
		CreatedAt:     createdAt,
	}
}

func (s *SQLRepositoryTestSuite) TestCreateAndGet() {
	ctx := context.Background()

	created, err := s.repo.Create(ctx, &CreateInput{
		Session: s.newSession("session-1", "chat-1", s.testNow),
	})
	s.Require().NoError(err)
	s.True(created)

	got, err := s.repo.Get(ctx, &GetInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal("chat-1", got.ChatID)
	s.Equal(models.SessionStatusActive, got.Status)
	s.Equal(int64(2000), got.DefaultAmount)
	s.Empty(got.StatusMessageID)
	s.Nil(got.EndedAt)
	s.True(s.testNow.Equal(got.CreatedAt))
}

func (s *SQLRepositoryTestSuite) TestCreateRejectsSecondActiveSession() {
	ctx := context.Background()

	created, err := s.repo.Create(ctx, &CreateInput{Session: s.newSession("session-1", "chat-1", s.testNow)})
	s.Require().NoError(err)
	s.True(created)

	created, err = s.repo.Create(ctx, &CreateInput{Session: s.newSession("session-2", "chat-1", s.testNow.Add(time.Minute))})
	s.Require().NoError(err)
	s.False(created)

	// other chats are unaffected
	created, err = s.repo.Create(ctx, &CreateInput{Session: s.newSession("session-3", "chat-2", s.testNow)})
	s.Require().NoError(err)
	s.True(created)
}

func (s *SQLRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(context.Background(), &GetInput{SessionID: "missing"})
	s.ErrorIs(err, ErrSessionNotFound)
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *SQLRepositoryTestSuite) TestGetActiveByChat() {
	ctx := context.Background()

	_, err := s.repo.GetActiveByChat(ctx, &GetActiveByChatInput{ChatID: "chat-1"})
	s.ErrorIs(err, ErrSessionNotFound)

	_, err = s.repo.Create(ctx, &CreateInput{Session: s.newSession("session-1", "chat-1", s.testNow)})
	s.Require().NoError(err)

	got, err := s.repo.GetActiveByChat(ctx, &GetActiveByChatInput{ChatID: "chat-1"})
	s.Require().NoError(err)
	s.Equal("session-1", got.ID)
}

func (s *SQLRepositoryTestSuite) TestEndThenStartAgain() {
	ctx := context.Background()

	_, err := s.repo.Create(ctx, &CreateInput{Session: s.newSession("session-1", "chat-1", s.testNow)})
	s.Require().NoError(err)

	ended, err := s.repo.End(ctx, &EndInput{SessionID: "session-1", EndedAt: s.testNow.Add(time.Hour)})
	s.Require().NoError(err)
	s.True(ended)

	// second end is a no-op
	ended, err = s.repo.End(ctx, &EndInput{SessionID: "session-1", EndedAt: s.testNow.Add(2 * time.Hour)})
	s.Require().NoError(err)
	s.False(ended)

	got, err := s.repo.Get(ctx, &GetInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal(models.SessionStatusEnded, got.Status)
	s.Require().NotNil(got.EndedAt)
	s.True(s.testNow.Add(time.Hour).Equal(*got.EndedAt))

	_, err = s.repo.GetActiveByChat(ctx, &GetActiveByChatInput{ChatID: "chat-1"})
	s.ErrorIs(err, ErrSessionNotFound)

	created, err := s.repo.Create(ctx, &CreateInput{Session: s.newSession("session-2", "chat-1", s.testNow.Add(3*time.Hour))})
	s.Require().NoError(err)
	s.True(created)
}

func (s *SQLRepositoryTestSuite) TestGetLatestByChatIncludesEnded() {
	ctx := context.Background()

	_, err := s.repo.GetLatestByChat(ctx, &GetLatestByChatInput{ChatID: "chat-1"})
	s.ErrorIs(err, ErrSessionNotFound)

	_, err = s.repo.Create(ctx, &CreateInput{Session: s.newSession("session-1", "chat-1", s.testNow)})
	s.Require().NoError(err)
	_, err = s.repo.End(ctx, &EndInput{SessionID: "session-1", EndedAt: s.testNow.Add(time.Hour)})
	s.Require().NoError(err)

	got, err := s.repo.GetLatestByChat(ctx, &GetLatestByChatInput{ChatID: "chat-1"})
	s.Require().NoError(err)
	s.Equal("session-1", got.ID)
	s.Equal(models.SessionStatusEnded, got.Status)

	_, err = s.repo.Create(ctx, &CreateInput{Session: s.newSession("session-2", "chat-1", s.testNow.Add(2*time.Hour))})
	s.Require().NoError(err)

	got, err = s.repo.GetLatestByChat(ctx, &GetLatestByChatInput{ChatID: "chat-1"})
	s.Require().NoError(err)
	s.Equal("session-2", got.ID)
	s.Equal(models.SessionStatusActive, got.Status)

	_, err = s.repo.GetLatestByChat(ctx, &GetLatestByChatInput{ChatID: "chat-2"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *SQLRepositoryTestSuite) TestSetStatusMessage() {
	ctx := context.Background()

	_, err := s.repo.Create(ctx, &CreateInput{Session: s.newSession("session-1", "chat-1", s.testNow)})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.SetStatusMessage(ctx, &SetStatusMessageInput{
		SessionID: "session-1",
		MessageID: "message-1",
	}))

	got, err := s.repo.Get(ctx, &GetInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal("message-1", got.StatusMessageID)

	err = s.repo.SetStatusMessage(ctx, &SetStatusMessageInput{SessionID: "missing", MessageID: "message-2"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *SQLRepositoryTestSuite) TestInputValidation() {
	ctx := context.Background()

	_, err := s.repo.Create(ctx, nil)
	s.Error(err)

	_, err = s.repo.Get(ctx, &GetInput{})
	s.Error(err)

	_, err = s.repo.GetActiveByChat(ctx, &GetActiveByChatInput{})
	s.Error(err)

	_, err = s.repo.End(ctx, nil)
	s.Error(err)

	s.Error(s.repo.SetStatusMessage(ctx, &SetStatusMessageInput{}))
}

func TestNewSQLValidatesConfig(t *testing.T) {
	_, err := NewSQL(nil)
	if err == nil {
		t.Fatal("expected error for nil config")
	}

	_, err = NewSQL(&Config{})
	if err == nil {
		t.Fatal("expected error for nil db")
	}
}

func TestDriverFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo, err := NewSQL(&Config{DB: db})
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	boom := errors.New("connection reset")
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO sessions").WillReturnError(boom)
	_, err = repo.Create(ctx, &CreateInput{Session: &models.Session{ID: "s", ChatID: "c", Status: models.SessionStatusActive}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected driver error, got %v", err)
	}

	mock.ExpectExec("UPDATE sessions SET status").WillReturnResult(sqlmock.NewErrorResult(boom))
	_, err = repo.End(ctx, &EndInput{SessionID: "s", EndedAt: time.Now()})
	if !errors.Is(err, boom) {
		t.Fatalf("expected rows affected error, got %v", err)
	}

	mock.ExpectQuery("SELECT (.+) FROM sessions").WillReturnError(boom)
	_, err = repo.Get(ctx, &GetInput{SessionID: "s"})
	if !errors.Is(err, boom) || errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected wrapped driver error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
