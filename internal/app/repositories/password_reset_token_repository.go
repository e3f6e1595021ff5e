package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/tcasystem/internal/app/models"
	"github.com/yigit/tcasystem/internal/db"
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
)

// PasswordResetTokenRepository manages password reset tokens in the database
type PasswordResetTokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository(db *pgxpool.Pool) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores a new token, discarding any token previously issued to the same teacher
func (r *PasswordResetTokenRepository) Create(ctx context.Context, token *models.PasswordResetToken) error {
	return db.RunInTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query, args, err := r.sb.Delete("password_reset_tokens").
			Where(squirrel.Eq{"teacher_email": token.TeacherEmail}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete previous tokens query: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("error deleting previous password reset tokens: %w", err)
		}

		query, args, err = r.sb.Insert("password_reset_tokens").
			Columns("token", "teacher_email", "expires_at", "used").
			Values(token.Token, token.TeacherEmail, token.ExpiresAt, token.Used).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create token query: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("error creating password reset token: %w", err)
		}
		return nil
	})
}

// Get retrieves a token by value
func (r *PasswordResetTokenRepository) Get(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	query, args, err := r.sb.Select("token", "teacher_email", "expires_at", "used").
		From("password_reset_tokens").
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get token query: %w", err)
	}

	var t models.PasswordResetToken
	err = r.db.QueryRow(ctx, query, args...).Scan(&t.Token, &t.TeacherEmail, &t.ExpiresAt, &t.Used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidResetToken
		}
		return nil, fmt.Errorf("error retrieving password reset token: %w", err)
	}

	return &t, nil
}

// MarkUsed flags a token as consumed. Only an unused token can be marked.
func (r *PasswordResetTokenRepository) MarkUsed(ctx context.Context, token string) error {
	query, args, err := r.sb.Update("password_reset_tokens").
		Set("used", true).
		Where(squirrel.Eq{"token": token, "used": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark token query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error marking token as used: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrResetTokenAlreadyUsed
	}

	return nil
}

// DeleteExpired removes tokens that expired before now
func (r *PasswordResetTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := r.sb.Delete("password_reset_tokens").
		Where(squirrel.Lt{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete expired tokens query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired password reset tokens: %w", err)
	}

	return result.RowsAffected(), nil
}
