package buyin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KirkDiggler/poolbot/internal/common/apperr"
	"github.com/KirkDiggler/poolbot/internal/models"
)

// ErrRequestNotFound is returned when no buy-in request has the given ID
var ErrRequestNotFound = fmt.Errorf("buy-in request %w", apperr.ErrNotFound)

const requestColumns = `id, session_id, requester_id, amount, status, created_at`

// Config holds configuration for the SQL buy-in repository
type Config struct {
	DB *sql.DB
}

type sqlRepository struct {
	db *sql.DB
}

// NewSQL creates a new SQL-backed buy-in repository
func NewSQL(cfg *Config) (*sqlRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DB == nil {
		return nil, errors.New("db cannot be nil")
	}

	return &sqlRepository{
		db: cfg.DB,
	}, nil
}

func (r *sqlRepository) CreateRequest(ctx context.Context, input *CreateRequestInput) (*models.BuyInRequest, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.SessionID == "" || input.RequesterID == "" {
		return nil, errors.New("session ID and requester ID cannot be empty")
	}
	if input.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}

	req := &models.BuyInRequest{
		SessionID:   input.SessionID,
		RequesterID: input.RequesterID,
		Amount:      input.Amount,
		Status:      models.RequestStatusPending,
		CreatedAt:   input.CreatedAt.UTC(),
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO buyin_requests (session_id, requester_id, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		req.SessionID, req.RequesterID, req.Amount, string(req.Status), req.CreatedAt,
	).Scan(&req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert buy-in request: %w", err)
	}

	return req, nil
}

func (r *sqlRepository) GetRequest(ctx context.Context, input *GetRequestInput) (*models.BuyInRequest, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM buyin_requests WHERE id = $1`,
		input.RequestID,
	)

	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}

	return req, nil
}

func (r *sqlRepository) ListRequests(ctx context.Context, input *ListRequestsInput) ([]*models.BuyInRequest, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	query := `SELECT ` + requestColumns + ` FROM buyin_requests WHERE session_id = $1`
	args := []any{input.SessionID}
	if input.Status != "" {
		query += ` AND status = $2`
		args = append(args, string(input.Status))
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list buy-in requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.BuyInRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate buy-in requests: %w", err)
	}

	return requests, nil
}

// Resolve is the compare-and-set on request status; only one caller can move a request off pending
func (r *sqlRepository) Resolve(ctx context.Context, input *ResolveInput) (bool, error) {
	if input == nil {
		return false, errors.New("input cannot be nil")
	}
	if input.Status != models.RequestStatusApproved && input.Status != models.RequestStatusRejected {
		return false, fmt.Errorf("invalid terminal status %q", input.Status)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE buyin_requests SET status = $2
		WHERE id = $1 AND status = $3`,
		input.RequestID, string(input.Status), string(models.RequestStatusPending),
	)
	if err != nil {
		return false, fmt.Errorf("failed to resolve buy-in request: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return n == 1, nil
}

func (r *sqlRepository) AddVote(ctx context.Context, input *AddVoteInput) (bool, error) {
	if input == nil || input.Vote == nil {
		return false, errors.New("input and vote cannot be nil")
	}
	v := input.Vote
	if v.VoterID == "" {
		return false, errors.New("voter ID cannot be empty")
	}
	if !v.Decision.Valid() {
		return false, fmt.Errorf("invalid decision %q", v.Decision)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO buyin_votes (request_id, voter_id, decision, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING`,
		v.RequestID, v.VoterID, string(v.Decision), v.CreatedAt.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert vote: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return n == 1, nil
}

func (r *sqlRepository) CountVotes(ctx context.Context, input *CountVotesInput) (*models.Tally, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var approvals, rejections int64
	err := r.db.QueryRowContext(ctx, `
		SELECT
			CAST(COALESCE(SUM(CASE WHEN decision = $2 THEN 1 ELSE 0 END), 0) AS BIGINT),
			CAST(COALESCE(SUM(CASE WHEN decision = $3 THEN 1 ELSE 0 END), 0) AS BIGINT)
		FROM buyin_votes
		WHERE request_id = $1`,
		input.RequestID, string(models.DecisionApprove), string(models.DecisionReject),
	).Scan(&approvals, &rejections)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	return &models.Tally{
		Approvals:  int(approvals),
		Rejections: int(rejections),
	}, nil
}

func (r *sqlRepository) TallySession(ctx context.Context, input *TallySessionInput) (map[int64]models.Tally, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT v.request_id, v.decision, COUNT(*)
		FROM buyin_votes v
		JOIN buyin_requests r ON r.id = v.request_id
		WHERE r.session_id = $1 AND r.status = $2
		GROUP BY v.request_id, v.decision`,
		input.SessionID, string(models.RequestStatusPending),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to tally session votes: %w", err)
	}
	defer rows.Close()

	tallies := make(map[int64]models.Tally)
	for rows.Next() {
		var (
			requestID int64
			decision  string
			count     int64
		)
		if err := rows.Scan(&requestID, &decision, &count); err != nil {
			return nil, fmt.Errorf("failed to scan tally: %w", err)
		}

		t := tallies[requestID]
		switch models.Decision(decision) {
		case models.DecisionApprove:
			t.Approvals = int(count)
		case models.DecisionReject:
			t.Rejections = int(count)
		}
		tallies[requestID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tallies: %w", err)
	}

	return tallies, nil
}

func (r *sqlRepository) SumByStatus(ctx context.Context, input *SumByStatusInput) (*SumByStatusOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT status, CAST(COALESCE(SUM(amount), 0) AS BIGINT)
		FROM buyin_requests
		WHERE session_id = $1
		GROUP BY status`,
		input.SessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to sum buy-in requests: %w", err)
	}
	defer rows.Close()

	out := &SumByStatusOutput{}
	for rows.Next() {
		var (
			status string
			sum    int64
		)
		if err := rows.Scan(&status, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan sum: %w", err)
		}

		switch models.RequestStatus(status) {
		case models.RequestStatusApproved:
			out.Approved = sum
		case models.RequestStatusPending:
			out.Pending = sum
		case models.RequestStatusRejected:
			out.Rejected = sum
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sums: %w", err)
	}

	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*models.BuyInRequest, error) {
	var (
		req    models.BuyInRequest
		status string
	)
	if err := row.Scan(&req.ID, &req.SessionID, &req.RequesterID, &req.Amount, &status, &req.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan buy-in request: %w", err)
	}
	req.Status = models.RequestStatus(status)
	req.CreatedAt = req.CreatedAt.UTC()
	return &req, nil
}
