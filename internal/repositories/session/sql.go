package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KirkDiggler/poolbot/internal/common/apperr"
	"github.com/KirkDiggler/poolbot/internal/models"
)

// ErrSessionNotFound is returned when no session matches the lookup
var ErrSessionNotFound = fmt.Errorf("session %w", apperr.ErrNotFound)

const sessionColumns = `id, chat_id, status, default_amount, status_message_id, created_at, ended_at`

// Config holds configuration for the SQL session repository
type Config struct {
	// DB is an open handle on a migrated ledger database
	DB *sql.DB
}

// sqlRepository implements the Repository interface on database/sql
type sqlRepository struct {
	db *sql.DB
}

// NewSQL creates a new SQL-backed session repository
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

// Create inserts the session, relying on the partial unique index over active sessions
func (r *sqlRepository) Create(ctx context.Context, input *CreateInput) (bool, error) {
	if input == nil || input.Session == nil {
		return false, errors.New("input and session cannot be nil")
	}
	s := input.Session

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, chat_id, status, default_amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING`,
		s.ID, s.ChatID, string(s.Status), s.DefaultAmount, s.CreatedAt.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert session: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return n == 1, nil
}

// Get retrieves a session by ID
func (r *sqlRepository) Get(ctx context.Context, input *GetInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`,
		input.SessionID,
	)
	return scanSession(row)
}

// GetActiveByChat retrieves the newest active session of a chat
func (r *sqlRepository) GetActiveByChat(ctx context.Context, input *GetActiveByChatInput) (*models.Session, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("chat ID cannot be empty")
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions
		WHERE chat_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 1`,
		input.ChatID, string(models.SessionStatusActive),
	)
	return scanSession(row)
}

// GetLatestByChat retrieves the newest session of a chat regardless of status
func (r *sqlRepository) GetLatestByChat(ctx context.Context, input *GetLatestByChatInput) (*models.Session, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("chat ID cannot be empty")
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions
		WHERE chat_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`,
		input.ChatID,
	)
	return scanSession(row)
}

// End flips the session to ended only while it is still active
func (r *sqlRepository) End(ctx context.Context, input *EndInput) (bool, error) {
	if input == nil || input.SessionID == "" {
		return false, errors.New("session ID cannot be empty")
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE sessions SET status = $2, ended_at = $3
		WHERE id = $1 AND status = $4`,
		input.SessionID,
		string(models.SessionStatusEnded),
		input.EndedAt.UTC(),
		string(models.SessionStatusActive),
	)
	if err != nil {
		return false, fmt.Errorf("failed to end session: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return n == 1, nil
}

// SetStatusMessage overwrites the status message reference
func (r *sqlRepository) SetStatusMessage(ctx context.Context, input *SetStatusMessageInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("session ID cannot be empty")
	}

	var messageID sql.NullString
	if input.MessageID != "" {
		messageID = sql.NullString{String: input.MessageID, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET status_message_id = $2 WHERE id = $1`,
		input.SessionID, messageID,
	)
	if err != nil {
		return fmt.Errorf("failed to set status message: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*models.Session, error) {
	var (
		s         models.Session
		status    string
		messageID sql.NullString
		endedAt   sql.NullTime
	)

	err := row.Scan(&s.ID, &s.ChatID, &status, &s.DefaultAmount, &messageID, &s.CreatedAt, &endedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}

	s.Status = models.SessionStatus(status)
	s.StatusMessageID = messageID.String
	s.CreatedAt = s.CreatedAt.UTC()
	if endedAt.Valid {
		t := endedAt.Time.UTC()
		s.EndedAt = &t
	}

	return &s, nil
}
