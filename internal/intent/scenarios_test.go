package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/poolbot/internal/models"
	buyinRepo "github.com/KirkDiggler/poolbot/internal/repositories/buyin"
	rosterRepo "github.com/KirkDiggler/poolbot/internal/repositories/roster"
	sessionRepo "github.com/KirkDiggler/poolbot/internal/repositories/session"
	"github.com/KirkDiggler/poolbot/internal/repositories/store/storetest"
	"github.com/KirkDiggler/poolbot/internal/services/approval"
	"github.com/KirkDiggler/poolbot/internal/services/projector"
	"github.com/KirkDiggler/poolbot/internal/services/roster"
	"github.com/KirkDiggler/poolbot/internal/services/session"
	"github.com/KirkDiggler/poolbot/internal/services/status"
	statusMocks "github.com/KirkDiggler/poolbot/internal/services/status/mocks"
)

// ScenarioTestSuite drives the dispatcher against a real SQLite ledger
type ScenarioTestSuite struct {
	suite.Suite
	ctx       context.Context
	ctrl      *gomock.Controller
	sessions  sessionRepo.Repository
	buyins    buyinRepo.Repository
	projector projector.Projector

	dispatcher *Dispatcher

	mu      sync.Mutex
	sent    int
	lastMsg *status.Message
	down    bool

	alice Actor
	bob   Actor
	carol Actor
}

func TestScenarioSuite(t *testing.T) {
	suite.Run(t, new(ScenarioTestSuite))
}

func (s *ScenarioTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.sent = 0
	s.lastMsg = nil
	s.down = false

	s.alice = Actor{ID: "user-a", Handle: "alice", GivenName: "Alice"}
	s.bob = Actor{ID: "user-b", Handle: "bob"}
	s.carol = Actor{ID: "user-c", GivenName: "Carol"}

	s.wire(1)
}

func (s *ScenarioTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// wire builds the whole stack over a fresh database
func (s *ScenarioTestSuite) wire(threshold int) {
	db := storetest.Open(s.T())

	var err error
	s.sessions, err = sessionRepo.NewSQL(&sessionRepo.Config{DB: db})
	s.Require().NoError(err)
	participants, err := rosterRepo.NewSQL(&rosterRepo.Config{DB: db})
	s.Require().NoError(err)
	s.buyins, err = buyinRepo.NewSQL(&buyinRepo.Config{DB: db})
	s.Require().NoError(err)

	s.projector, err = projector.New(&projector.Config{RosterRepo: participants, BuyInRepo: s.buyins})
	s.Require().NoError(err)

	messenger := statusMocks.NewMockMessenger(s.ctrl)
	messenger.EXPECT().SendStatus(gomock.Any(), "chat-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, msg *status.Message) (string, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.down {
				return "", errors.New("discord unavailable")
			}
			s.sent++
			s.lastMsg = msg
			return fmt.Sprintf("message-%d", s.sent), nil
		}).AnyTimes()
	messenger.EXPECT().EditStatus(gomock.Any(), "chat-1", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, msg *status.Message) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.down {
				return errors.New("discord unavailable")
			}
			s.lastMsg = msg
			return nil
		}).AnyTimes()

	publisher, err := status.New(&status.Config{
		SessionRepo: s.sessions,
		Projector:   s.projector,
		Messenger:   messenger,
	})
	s.Require().NoError(err)

	sessionSvc, err := session.New(&session.Config{
		SessionRepo: s.sessions,
		BuyInRepo:   s.buyins,
		Notifier:    publisher,
	})
	s.Require().NoError(err)

	rosterSvc, err := roster.New(&roster.Config{
		SessionRepo: s.sessions,
		RosterRepo:  participants,
		Notifier:    publisher,
	})
	s.Require().NoError(err)

	approvalSvc, err := approval.New(&approval.Config{
		SessionRepo: s.sessions,
		BuyInRepo:   s.buyins,
		Roster:      rosterSvc,
		Notifier:    publisher,
		Threshold:   threshold,
	})
	s.Require().NoError(err)

	s.dispatcher, err = NewDispatcher(&Config{
		Sessions: sessionSvc,
		Roster:   rosterSvc,
		Approval: approvalSvc,
		Status:   publisher,
	})
	s.Require().NoError(err)
}

func (s *ScenarioTestSuite) dispatch(in Intent) string {
	reply, err := s.dispatcher.Dispatch(s.ctx, in)
	s.Require().NoError(err)
	s.Require().NotNil(reply)
	return reply.Text
}

func (s *ScenarioTestSuite) active() *models.Session {
	sess, err := s.sessions.GetActiveByChat(s.ctx, &sessionRepo.GetActiveByChatInput{ChatID: "chat-1"})
	s.Require().NoError(err)
	return sess
}

func (s *ScenarioTestSuite) view() *projector.View {
	sess, err := s.sessions.Get(s.ctx, &sessionRepo.GetInput{SessionID: s.active().ID})
	s.Require().NoError(err)
	v, err := s.projector.Project(s.ctx, &projector.ProjectInput{Session: sess})
	s.Require().NoError(err)
	return v
}

func (s *ScenarioTestSuite) last() *status.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMsg
}

func (s *ScenarioTestSuite) TestStartIsExclusivePerChat() {
	s.Equal("Session started with a default buy-in of 50.00.",
		s.dispatch(StartSession{ChatID: "chat-1", Actor: s.alice, AmountText: "50"}))
	s.Equal(int64(5000), s.active().DefaultAmount)
	s.Equal(1, s.sent)

	s.Equal("A session is already running in this channel. End it first with /pool end.",
		s.dispatch(StartSession{ChatID: "chat-1", Actor: s.bob, AmountText: "20"}))
	s.Equal(int64(5000), s.active().DefaultAmount)
}

func (s *ScenarioTestSuite) TestStartRejectsBadAmount() {
	s.Contains(s.dispatch(StartSession{ChatID: "chat-1", Actor: s.alice, AmountText: "lots"}), "amount doesn't work")
	s.Equal(0, s.sent)
}

func (s *ScenarioTestSuite) TestNonMemberCannotVote() {
	s.dispatch(StartSession{ChatID: "chat-1", Actor: s.alice, AmountText: "50"})
	s.Equal("You joined the pool.", s.dispatch(Join{ChatID: "chat-1", Actor: s.alice}))
	s.Equal("You are already in this session.", s.dispatch(Join{ChatID: "chat-1", Actor: s.alice}))

	s.Equal("Buy-in #1 for 50.00 requested. Waiting for votes.",
		s.dispatch(RequestBuyIn{ChatID: "chat-1", Actor: s.alice}))

	s.Equal("You need to join the session first.",
		s.dispatch(CastVote{RequestID: 1, Actor: s.bob, Decision: models.DecisionApprove}))

	v := s.view()
	s.Equal(int64(5000), v.Totals.Pending)
	s.Equal(1, v.Totals.PendingCount)
	s.Equal(int64(0), v.Totals.Approved)
}

func (s *ScenarioTestSuite) TestRequesterCannotApproveOwnBuyIn() {
	s.dispatch(StartSession{ChatID: "chat-1", Actor: s.alice, AmountText: "50"})
	s.dispatch(Join{ChatID: "chat-1", Actor: s.alice})
	s.dispatch(RequestBuyIn{ChatID: "chat-1", Actor: s.alice, AmountText: "12.5"})

	s.Equal("You can't vote on your own buy-in.",
		s.dispatch(CastVote{RequestID: 1, Actor: s.alice, Decision: models.DecisionApprove}))
	s.Equal(int64(1250), s.view().Totals.Pending)
}

func (s *ScenarioTestSuite) TestApprovalMovesAmountToPlayer() {
	s.dispatch(StartSession{ChatID: "chat-1", Actor: s.alice, AmountText: "50"})
	s.dispatch(Join{ChatID: "chat-1", Actor: s.alice})
	s.dispatch(Join{ChatID: "chat-1", Actor: s.bob})
	s.dispatch(RequestBuyIn{ChatID: "chat-1", Actor: s.alice})

	s.Equal("Vote recorded. Request #1 is now approved.",
		s.dispatch(CastVote{RequestID: 1, Actor: s.bob, Decision: models.DecisionApprove}))
	s.Equal("That request has already been settled.",
		s.dispatch(CastVote{RequestID: 1, Actor: s.bob, Decision: models.DecisionReject}))

	v := s.view()
	s.Equal(int64(5000), v.Totals.Approved)
	s.Equal(int64(0), v.Totals.Pending)
	s.Empty(v.Pending)
	s.Require().Len(v.Players, 2)
	s.Equal("user-a", v.Players[0].UserID)
	s.Equal(int64(5000), v.Players[0].Approved)

	msg := s.last()
	s.Require().NotNil(msg)
	s.Contains(msg.Text(), "Approved: **50.00**")
	s.Equal(1, s.sent)
}

func (s *ScenarioTestSuite) TestConcurrentDuplicateVotesCountOnce() {
	s.wire(2)

	s.dispatch(StartSession{ChatID: "chat-1", Actor: s.alice, AmountText: "50"})
	s.dispatch(Join{ChatID: "chat-1", Actor: s.alice})
	s.dispatch(Join{ChatID: "chat-1", Actor: s.bob})
	s.dispatch(Join{ChatID: "chat-1", Actor: s.carol})
	s.dispatch(RequestBuyIn{ChatID: "chat-1", Actor: s.alice})

	var wg sync.WaitGroup
	replies := make([]string, 2)
	for i := range replies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reply, err := s.dispatcher.Dispatch(s.ctx, CastVote{RequestID: 1, Actor: s.bob, Decision: models.DecisionApprove})
			if err == nil {
				replies[i] = reply.Text
			}
		}(i)
	}
	wg.Wait()

	s.ElementsMatch([]string{
		"Vote recorded for #1 (✅ 1 / ❌ 0).",
		"You already voted on #1. Your first vote stands.",
	}, replies)

	tally, err := s.buyins.CountVotes(s.ctx, &buyinRepo.CountVotesInput{RequestID: 1})
	s.Require().NoError(err)
	s.Equal(1, tally.Approvals)

	s.Equal("Vote recorded. Request #1 is now approved.",
		s.dispatch(CastVote{RequestID: 1, Actor: s.carol, Decision: models.DecisionApprove}))
}

func (s *ScenarioTestSuite) TestEndedSessionRefusesEverything() {
	s.dispatch(StartSession{ChatID: "chat-1", Actor: s.alice, AmountText: "50"})
	s.dispatch(Join{ChatID: "chat-1", Actor: s.alice})
	s.dispatch(Join{ChatID: "chat-1", Actor: s.bob})
	s.dispatch(RequestBuyIn{ChatID: "chat-1", Actor: s.alice})
	s.dispatch(CastVote{RequestID: 1, Actor: s.bob, Decision: models.DecisionApprove})
	s.dispatch(RequestBuyIn{ChatID: "chat-1", Actor: s.bob, AmountText: "20"})

	s.Equal("Session ended. Approved total: 50.00.", s.dispatch(EndSession{ChatID: "chat-1", Actor: s.alice}))

	noSession := "There is no active session in this channel. Start one with /pool start."
	s.Equal(noSession, s.dispatch(Join{ChatID: "chat-1", Actor: s.carol}))
	s.Equal(noSession, s.dispatch(RequestBuyIn{ChatID: "chat-1", Actor: s.alice}))
	s.Equal(noSession, s.dispatch(EndSession{ChatID: "chat-1", Actor: s.alice}))
	s.Equal("Status message refreshed.", s.dispatch(Refresh{ChatID: "chat-1", Actor: s.alice}))
	s.Equal("That request is no longer open for voting.",
		s.dispatch(CastVote{RequestID: 2, Actor: s.alice, Decision: models.DecisionApprove}))
	s.Equal("That request has already been settled.",
		s.dispatch(CastVote{RequestID: 1, Actor: s.carol, Decision: models.DecisionReject}))

	msg := s.last()
	s.Require().NotNil(msg)
	s.True(strings.Contains(msg.Title, "ended"))
	s.Empty(msg.Rows)

	s.Equal("Session started with a default buy-in of 10.00.",
		s.dispatch(StartSession{ChatID: "chat-1", Actor: s.alice, AmountText: "10"}))
}

func (s *ScenarioTestSuite) TestRefreshRepairsMissedEndRender() {
	s.dispatch(StartSession{ChatID: "chat-1", Actor: s.alice, AmountText: "50"})
	s.dispatch(Join{ChatID: "chat-1", Actor: s.alice})

	s.setDown(true)
	s.Equal("Session ended. Approved total: 0.00.", s.dispatch(EndSession{ChatID: "chat-1", Actor: s.alice}))
	s.False(strings.Contains(s.last().Title, "ended"))

	s.setDown(false)
	s.Equal("Status message refreshed.",
		s.dispatch(Refresh{ChatID: "chat-1", Actor: s.alice, AllowCreate: true}))

	msg := s.last()
	s.True(strings.Contains(msg.Title, "ended"))
	s.Empty(msg.Rows)
	s.Equal(1, s.sent)
}

func (s *ScenarioTestSuite) TestRefreshWithoutAnySession() {
	s.Equal("There is no active session in this channel. Start one with /pool start.",
		s.dispatch(Refresh{ChatID: "chat-1", Actor: s.alice, AllowCreate: true}))
	s.Nil(s.last())
}

func (s *ScenarioTestSuite) setDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = down
}

func (s *ScenarioTestSuite) TestRefreshEditsExistingMessage() {
	s.dispatch(StartSession{ChatID: "chat-1", Actor: s.alice, AmountText: "50"})

	s.Equal("Status message refreshed.", s.dispatch(Refresh{ChatID: "chat-1", Actor: s.alice}))
	s.Equal(1, s.sent)
}
