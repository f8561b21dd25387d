package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/Risingdell/Placement-mangement/internal/models"
)

type TokenRepository interface {
	Issue(ctx context.Context, token *models.PasswordResetToken) error
	Consume(ctx context.Context, tokenHash, newPasswordHash string) (bool, error)
}

type tokenRepository struct {
	*PostgresRepository
}

func NewTokenRepository(db *sql.DB, logger zerolog.Logger) TokenRepository {
	return &tokenRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

// Issue invalidates any outstanding tokens for the user and stores the
// new one in a single transaction, so at most one reset token is live
// per user.
func (r *tokenRepository) Issue(ctx context.Context, token *models.PasswordResetToken) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE password_reset_tokens SET used = TRUE WHERE user_id = $1 AND used = FALSE
	`, token.UserID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO password_reset_tokens (id, user_id, token, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
	`,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Consume looks up an unused, unexpired token by hash, rewrites the
// user's password and marks the token used, all atomically. Returns
// false when no valid token matched.
func (r *tokenRepository) Consume(ctx context.Context, tokenHash, newPasswordHash string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var tokenID, userID string
	err = tx.QueryRowContext(ctx, `
		SELECT id, user_id
		FROM password_reset_tokens
		WHERE token = $1 AND used = FALSE AND expires_at > NOW()
	`, tokenHash).Scan(&tokenID, &userID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3
	`, newPasswordHash, time.Now(), userID)
	if err != nil {
		return false, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE password_reset_tokens SET used = TRUE WHERE id = $1
	`, tokenID)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	return true, nil
}
