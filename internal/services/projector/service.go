package projector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/KirkDiggler/poolbot/internal/common/apperr"
	"github.com/KirkDiggler/poolbot/internal/models"
	buyinRepo "github.com/KirkDiggler/poolbot/internal/repositories/buyin"
	rosterRepo "github.com/KirkDiggler/poolbot/internal/repositories/roster"
)

type service struct {
	rosterRepo rosterRepo.Repository
	buyInRepo  buyinRepo.Repository
}

// New creates a projector reading from the roster and buy-in repositories
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RosterRepo == nil {
		return nil, errors.New("roster repository cannot be nil")
	}

	if cfg.BuyInRepo == nil {
		return nil, errors.New("buy-in repository cannot be nil")
	}

	return &service{
		rosterRepo: cfg.RosterRepo,
		buyInRepo:  cfg.BuyInRepo,
	}, nil
}

func (s *service) Project(ctx context.Context, input *ProjectInput) (*View, error) {
	if input == nil || input.Session == nil {
		return nil, errors.New("session cannot be nil")
	}
	session := input.Session

	participants, err := s.rosterRepo.List(ctx, &rosterRepo.ListInput{SessionID: session.ID})
	if err != nil {
		return nil, apperr.Transport("list participants", err)
	}

	requests, err := s.buyInRepo.ListRequests(ctx, &buyinRepo.ListRequestsInput{SessionID: session.ID})
	if err != nil {
		return nil, apperr.Transport("list buy-in requests", err)
	}

	tallies, err := s.buyInRepo.TallySession(ctx, &buyinRepo.TallySessionInput{SessionID: session.ID})
	if err != nil {
		return nil, apperr.Transport("tally votes", err)
	}

	return Build(session, participants, requests, tallies), nil
}

// Build derives a view from raw rows. Requests must belong to session.
func Build(session *models.Session, participants []*models.Participant, requests []*models.BuyInRequest, tallies map[int64]models.Tally) *View {
	view := &View{Session: session}

	rows := make(map[string]*PlayerRow, len(participants))
	labels := make(map[string]string, len(participants))
	for _, p := range participants {
		label := Label(p)
		labels[p.UserID] = label
		rows[p.UserID] = &PlayerRow{UserID: p.UserID, Label: label}
	}

	labelOf := func(userID string) string {
		if label, ok := labels[userID]; ok {
			return label
		}
		return MaskIdentity(userID)
	}

	sorted := make([]*models.BuyInRequest, len(requests))
	copy(sorted, requests)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, req := range sorted {
		row := rows[req.RequesterID]

		switch req.Status {
		case models.RequestStatusApproved:
			view.Totals.Approved += req.Amount
			if row != nil {
				row.Approved += req.Amount
			}
		case models.RequestStatusPending:
			view.Totals.Pending += req.Amount
			view.Totals.PendingCount++
			if row != nil {
				row.PendingCount++
			}
			view.Pending = append(view.Pending, PendingRow{
				RequestID:      req.ID,
				RequesterID:    req.RequesterID,
				RequesterLabel: labelOf(req.RequesterID),
				Amount:         req.Amount,
				Tally:          tallies[req.ID],
			})
		}
	}

	view.Players = make([]PlayerRow, 0, len(rows))
	for _, row := range rows {
		view.Players = append(view.Players, *row)
	}
	sort.Slice(view.Players, func(i, j int) bool {
		a, b := view.Players[i], view.Players[j]
		if a.Approved != b.Approved {
			return a.Approved > b.Approved
		}
		if a.Label != b.Label {
			return a.Label < b.Label
		}
		return a.UserID < b.UserID
	})

	return view
}

// Label picks the display name of a participant: handle, then given name,
// then a masked identity
func Label(p *models.Participant) string {
	if h := strings.TrimSpace(p.Handle); h != "" {
		return h
	}
	if n := strings.TrimSpace(p.GivenName); n != "" {
		return n
	}
	return MaskIdentity(p.UserID)
}

// MaskIdentity hides the middle of an identity, keeping two characters at each end
func MaskIdentity(id string) string {
	n := utf8.RuneCountInString(id)
	if n <= 4 {
		return strings.Repeat("*", n)
	}
	r := []rune(id)
	return fmt.Sprintf("%s…%s", string(r[:2]), string(r[n-2:]))
}
