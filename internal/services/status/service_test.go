package status_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/poolbot/internal/common/apperr"
	"github.com/KirkDiggler/poolbot/internal/models"
	"github.com/KirkDiggler/poolbot/internal/repositories/lock"
	lockMocks "github.com/KirkDiggler/poolbot/internal/repositories/lock/mocks"
	sessionRepo "github.com/KirkDiggler/poolbot/internal/repositories/session"
	sessionMocks "github.com/KirkDiggler/poolbot/internal/repositories/session/mocks"
	"github.com/KirkDiggler/poolbot/internal/services/projector"
	projectorMocks "github.com/KirkDiggler/poolbot/internal/services/projector/mocks"
	"github.com/KirkDiggler/poolbot/internal/services/status"
	"github.com/KirkDiggler/poolbot/internal/services/status/mocks"
)

type SynchronizerTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockSessionRepo *sessionMocks.MockRepository
	mockProjector   *projectorMocks.MockProjector
	mockMessenger   *mocks.MockMessenger
	mockLocker      *lockMocks.MockLocker
	sync            status.Synchronizer
	ctx             context.Context

	testSession *models.Session
	testView    *projector.View
}

func (s *SynchronizerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessionRepo = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockProjector = projectorMocks.NewMockProjector(s.mockCtrl)
	s.mockMessenger = mocks.NewMockMessenger(s.mockCtrl)
	s.mockLocker = lockMocks.NewMockLocker(s.mockCtrl)
	s.ctx = context.Background()

	s.testSession = &models.Session{
		ID:            "test-session-id",
		ChatID:        "test-chat-id",
		Status:        models.SessionStatusActive,
		DefaultAmount: 2000,
		CreatedAt:     time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC),
	}
	s.testView = &projector.View{Session: s.testSession}

	svc, err := status.New(&status.Config{
		SessionRepo: s.mockSessionRepo,
		Projector:   s.mockProjector,
		Messenger:   s.mockMessenger,
	})
	s.Require().NoError(err)
	s.sync = svc
}

func (s *SynchronizerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSynchronizerSuite(t *testing.T) {
	suite.Run(t, new(SynchronizerTestSuite))
}

func (s *SynchronizerTestSuite) withLocker() {
	svc, err := status.New(&status.Config{
		SessionRepo: s.mockSessionRepo,
		Projector:   s.mockProjector,
		Messenger:   s.mockMessenger,
		Locker:      s.mockLocker,
		LeaseTTL:    5 * time.Second,
	})
	s.Require().NoError(err)
	s.sync = svc
}

// withShortLease uses a lease short enough to wait out in a test
func (s *SynchronizerTestSuite) withShortLease() {
	svc, err := status.New(&status.Config{
		SessionRepo: s.mockSessionRepo,
		Projector:   s.mockProjector,
		Messenger:   s.mockMessenger,
		Locker:      s.mockLocker,
		LeaseTTL:    50 * time.Millisecond,
		LeasePoll:   5 * time.Millisecond,
	})
	s.Require().NoError(err)
	s.sync = svc
}

func (s *SynchronizerTestSuite) expectLoad(session *models.Session) {
	s.mockSessionRepo.EXPECT().
		Get(s.ctx, &sessionRepo.GetInput{SessionID: session.ID}).
		Return(session, nil)
	s.mockProjector.EXPECT().
		Project(s.ctx, &projector.ProjectInput{Session: session}).
		Return(s.testView, nil)
}

func (s *SynchronizerTestSuite) TestPublishEditsExistingMessage() {
	s.testSession.StatusMessageID = "message-1"
	s.expectLoad(s.testSession)

	s.mockMessenger.EXPECT().
		EditStatus(s.ctx, "test-chat-id", "message-1", gomock.Any()).
		Return(nil)

	out, err := s.sync.Publish(s.ctx, &status.PublishInput{SessionID: s.testSession.ID, AllowCreate: true})
	s.Require().NoError(err)
	s.True(out.Exists)
	s.False(out.Created)
	s.Equal("💰 Buy-in pool", out.Message.Title)
}

func (s *SynchronizerTestSuite) TestPublishCreatesWhenNoMessage() {
	s.expectLoad(s.testSession)

	s.mockMessenger.EXPECT().
		SendStatus(s.ctx, "test-chat-id", gomock.Any()).
		Return("message-2", nil)
	s.mockSessionRepo.EXPECT().
		SetStatusMessage(s.ctx, &sessionRepo.SetStatusMessageInput{SessionID: s.testSession.ID, MessageID: "message-2"}).
		Return(nil)

	out, err := s.sync.Publish(s.ctx, &status.PublishInput{SessionID: s.testSession.ID, AllowCreate: true})
	s.Require().NoError(err)
	s.True(out.Exists)
	s.True(out.Created)
	s.Equal("message-2", out.Session.StatusMessageID)
}

func (s *SynchronizerTestSuite) TestPublishFallsBackWhenEditFails() {
	s.testSession.StatusMessageID = "deleted-message"
	s.expectLoad(s.testSession)

	gomock.InOrder(
		s.mockMessenger.EXPECT().
			EditStatus(s.ctx, "test-chat-id", "deleted-message", gomock.Any()).
			Return(errors.New("unknown message")),
		s.mockMessenger.EXPECT().
			SendStatus(s.ctx, "test-chat-id", gomock.Any()).
			Return("message-3", nil),
	)
	s.mockSessionRepo.EXPECT().
		SetStatusMessage(s.ctx, &sessionRepo.SetStatusMessageInput{SessionID: s.testSession.ID, MessageID: "message-3"}).
		Return(nil)

	out, err := s.sync.Publish(s.ctx, &status.PublishInput{SessionID: s.testSession.ID, AllowCreate: true})
	s.Require().NoError(err)
	s.True(out.Created)
}

func (s *SynchronizerTestSuite) TestPublishWithoutCreateReportsMissing() {
	s.expectLoad(s.testSession)

	out, err := s.sync.Publish(s.ctx, &status.PublishInput{SessionID: s.testSession.ID, AllowCreate: false})
	s.Require().NoError(err)
	s.False(out.Exists)
	s.False(out.Created)
	s.NotNil(out.Message)
}

func (s *SynchronizerTestSuite) TestPublishWithoutCreateAfterFailedEdit() {
	s.testSession.StatusMessageID = "deleted-message"
	s.expectLoad(s.testSession)

	s.mockMessenger.EXPECT().
		EditStatus(s.ctx, "test-chat-id", "deleted-message", gomock.Any()).
		Return(errors.New("unknown message"))

	out, err := s.sync.Publish(s.ctx, &status.PublishInput{SessionID: s.testSession.ID, AllowCreate: false})
	s.Require().NoError(err)
	s.False(out.Exists)
}

func (s *SynchronizerTestSuite) TestPublishSendFailureIsTransport() {
	s.expectLoad(s.testSession)

	s.mockMessenger.EXPECT().
		SendStatus(s.ctx, "test-chat-id", gomock.Any()).
		Return("", errors.New("missing permissions"))

	_, err := s.sync.Publish(s.ctx, &status.PublishInput{SessionID: s.testSession.ID, AllowCreate: true})
	s.ErrorIs(err, apperr.ErrTransport)
}

func (s *SynchronizerTestSuite) TestPublishUnknownSession() {
	s.mockSessionRepo.EXPECT().
		Get(s.ctx, &sessionRepo.GetInput{SessionID: "missing"}).
		Return(nil, sessionRepo.ErrSessionNotFound)

	_, err := s.sync.Publish(s.ctx, &status.PublishInput{SessionID: "missing"})
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *SynchronizerTestSuite) TestPublishSkipsCreateWhenLeaseHeld() {
	s.withShortLease()
	s.expectLoad(s.testSession)

	s.mockLocker.EXPECT().
		Acquire(s.ctx, &lock.AcquireInput{Key: "publish:test-session-id", TTL: 50 * time.Millisecond}).
		Return(nil, nil)
	s.mockSessionRepo.EXPECT().
		Get(s.ctx, &sessionRepo.GetInput{SessionID: s.testSession.ID}).
		Return(s.testSession, nil).
		AnyTimes()

	out, err := s.sync.Publish(s.ctx, &status.PublishInput{SessionID: s.testSession.ID, AllowCreate: true})
	s.Require().NoError(err)
	s.False(out.Exists)
	s.False(out.Created)
}

func (s *SynchronizerTestSuite) TestPublishEditsLeaseHoldersMessage() {
	s.withShortLease()
	s.expectLoad(s.testSession)

	posted := *s.testSession
	posted.StatusMessageID = "message-from-peer"

	s.mockLocker.EXPECT().Acquire(s.ctx, gomock.Any()).Return(nil, nil)
	gomock.InOrder(
		s.mockSessionRepo.EXPECT().
			Get(s.ctx, &sessionRepo.GetInput{SessionID: s.testSession.ID}).
			Return(s.testSession, nil),
		s.mockSessionRepo.EXPECT().
			Get(s.ctx, &sessionRepo.GetInput{SessionID: s.testSession.ID}).
			Return(&posted, nil),
	)
	s.mockMessenger.EXPECT().
		EditStatus(s.ctx, "test-chat-id", "message-from-peer", gomock.Any()).
		Return(nil)

	out, err := s.sync.Publish(s.ctx, &status.PublishInput{SessionID: s.testSession.ID, AllowCreate: true})
	s.Require().NoError(err)
	s.True(out.Exists)
	s.False(out.Created)
	s.Equal("message-from-peer", out.Session.StatusMessageID)
}

func (s *SynchronizerTestSuite) TestPublishUnderLeaseEditsConcurrentMessage() {
	s.withLocker()
	s.expectLoad(s.testSession)

	lease := &lock.Lease{Key: "poolbot:lease:publish:test-session-id", Token: "token"}
	fresh := *s.testSession
	fresh.StatusMessageID = "message-from-peer"

	s.mockLocker.EXPECT().Acquire(s.ctx, gomock.Any()).Return(lease, nil)
	s.mockSessionRepo.EXPECT().
		Get(s.ctx, &sessionRepo.GetInput{SessionID: s.testSession.ID}).
		Return(&fresh, nil)
	s.mockMessenger.EXPECT().
		EditStatus(s.ctx, "test-chat-id", "message-from-peer", gomock.Any()).
		Return(nil)
	s.mockLocker.EXPECT().Release(s.ctx, lease).Return(nil)

	out, err := s.sync.Publish(s.ctx, &status.PublishInput{SessionID: s.testSession.ID, AllowCreate: true})
	s.Require().NoError(err)
	s.True(out.Exists)
	s.False(out.Created)
}

func (s *SynchronizerTestSuite) TestPublishUnderLeaseCreates() {
	s.withLocker()
	s.expectLoad(s.testSession)

	lease := &lock.Lease{Key: "poolbot:lease:publish:test-session-id", Token: "token"}
	fresh := *s.testSession

	s.mockLocker.EXPECT().Acquire(s.ctx, gomock.Any()).Return(lease, nil)
	s.mockSessionRepo.EXPECT().
		Get(s.ctx, &sessionRepo.GetInput{SessionID: s.testSession.ID}).
		Return(&fresh, nil)
	s.mockMessenger.EXPECT().SendStatus(s.ctx, "test-chat-id", gomock.Any()).Return("message-4", nil)
	s.mockSessionRepo.EXPECT().SetStatusMessage(s.ctx, gomock.Any()).Return(nil)
	s.mockLocker.EXPECT().Release(s.ctx, lease).Return(nil)

	out, err := s.sync.Publish(s.ctx, &status.PublishInput{SessionID: s.testSession.ID, AllowCreate: true})
	s.Require().NoError(err)
	s.True(out.Created)
}

func (s *SynchronizerTestSuite) TestPublishLeaseErrorStillCreates() {
	s.withLocker()
	s.expectLoad(s.testSession)

	s.mockLocker.EXPECT().Acquire(s.ctx, gomock.Any()).Return(nil, errors.New("redis down"))
	s.mockMessenger.EXPECT().SendStatus(s.ctx, "test-chat-id", gomock.Any()).Return("message-5", nil)
	s.mockSessionRepo.EXPECT().SetStatusMessage(s.ctx, gomock.Any()).Return(nil)

	out, err := s.sync.Publish(s.ctx, &status.PublishInput{SessionID: s.testSession.ID, AllowCreate: true})
	s.Require().NoError(err)
	s.True(out.Created)
}

func (s *SynchronizerTestSuite) TestSessionChangedSwallowsErrors() {
	s.mockSessionRepo.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(nil, errors.New("connection reset"))

	s.NotPanics(func() {
		s.sync.SessionChanged(s.ctx, s.testSession.ID)
	})
}

func (s *SynchronizerTestSuite) TestSessionChangedAllowsCreate() {
	s.expectLoad(s.testSession)
	s.mockMessenger.EXPECT().SendStatus(s.ctx, "test-chat-id", gomock.Any()).Return("message-6", nil)
	s.mockSessionRepo.EXPECT().SetStatusMessage(s.ctx, gomock.Any()).Return(nil)

	s.sync.SessionChanged(s.ctx, s.testSession.ID)
}

func (s *SynchronizerTestSuite) TestNewValidatesConfig() {
	_, err := status.New(nil)
	s.Error(err)

	_, err = status.New(&status.Config{SessionRepo: s.mockSessionRepo, Projector: s.mockProjector})
	s.Error(err)
}
