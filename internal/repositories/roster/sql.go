package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KirkDiggler/poolbot/internal/models"
)

// Config holds configuration for the SQL roster repository
type Config struct {
	DB *sql.DB
}

type sqlRepository struct {
	db *sql.DB
}

// NewSQL creates a new SQL-backed roster repository
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

func (r *sqlRepository) Add(ctx context.Context, input *AddInput) (bool, error) {
	if input == nil || input.Participant == nil {
		return false, errors.New("input and participant cannot be nil")
	}
	p := input.Participant
	if p.SessionID == "" || p.UserID == "" {
		return false, errors.New("session ID and user ID cannot be empty")
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO participants (session_id, user_id, handle, given_name, joined_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING`,
		p.SessionID, p.UserID, p.Handle, p.GivenName, p.JoinedAt.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert participant: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return n == 1, nil
}

func (r *sqlRepository) Exists(ctx context.Context, input *ExistsInput) (bool, error) {
	if input == nil || input.SessionID == "" || input.UserID == "" {
		return false, errors.New("session ID and user ID cannot be empty")
	}

	var found int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM participants WHERE session_id = $1 AND user_id = $2`,
		input.SessionID, input.UserID,
	).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	return true, nil
}

func (r *sqlRepository) List(ctx context.Context, input *ListInput) ([]*models.Participant, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT session_id, user_id, handle, given_name, joined_at
		FROM participants
		WHERE session_id = $1
		ORDER BY joined_at, user_id`,
		input.SessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanParticipant(row rowScanner) (*models.Participant, error) {
	var p models.Participant
	if err := row.Scan(&p.SessionID, &p.UserID, &p.Handle, &p.GivenName, &p.JoinedAt); err != nil {
		return nil, fmt.Errorf("failed to scan participant: %w", err)
	}
	p.JoinedAt = p.JoinedAt.UTC()
	return &p, nil
}
