package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arnav/gradlink/internal/pkg/apperrors"
)

// VerificationToken is a stored email verification token row
type VerificationToken struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// VerificationTokenRepository handles email verification token persistence
type VerificationTokenRepository struct {
	db *pgxpool.Pool
}

// NewVerificationTokenRepository creates a new VerificationTokenRepository
func NewVerificationTokenRepository(db *pgxpool.Pool) *VerificationTokenRepository {
	return &VerificationTokenRepository{db: db}
}

// Create stores a verification token for a user
func (r *VerificationTokenRepository) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO verification_tokens (user_id, token, expires_at) VALUES ($1, $2, $3)",
		userID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("error storing verification token: %w", err)
	}
	return nil
}

// GetValid retrieves an unused, unexpired verification token by its value
func (r *VerificationTokenRepository) GetValid(ctx context.Context, token string) (*VerificationToken, error) {
	vt := &VerificationToken{}
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, token, expires_at, used, created_at
		 FROM verification_tokens
		 WHERE token = $1 AND NOT used AND expires_at > NOW()`, token).
		Scan(&vt.ID, &vt.UserID, &vt.Token, &vt.ExpiresAt, &vt.Used, &vt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidEmailToken
		}
		return nil, fmt.Errorf("error getting verification token: %w", err)
	}
	return vt, nil
}

// MarkUsed consumes a verification token
func (r *VerificationTokenRepository) MarkUsed(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		"UPDATE verification_tokens SET used = TRUE WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error marking verification token used: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidEmailToken
	}
	return nil
}

// DeleteExpired removes verification tokens past their expiry
func (r *VerificationTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, "DELETE FROM verification_tokens WHERE expires_at < NOW()")
	if err != nil {
		return 0, fmt.Errorf("error deleting expired verification tokens: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
