package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yigit/tcasystem/internal/app/models"
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ResetTokenRepository stores password reset tokens
type ResetTokenRepository struct {
	coll *mongo.Collection
}

// NewResetTokenRepository creates a new ResetTokenRepository
func NewResetTokenRepository(db *mongo.Database) *ResetTokenRepository {
	return &ResetTokenRepository{coll: db.Collection(ResetTokensCollection)}
}

// Create stores a new token, discarding any token previously issued to the same teacher
func (r *ResetTokenRepository) Create(ctx context.Context, token *models.PasswordResetToken) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"teacher_email": token.TeacherEmail}); err != nil {
		return fmt.Errorf("error deleting previous password reset tokens: %w", err)
	}
	if _, err := r.coll.InsertOne(ctx, token); err != nil {
		return fmt.Errorf("error creating password reset token: %w", err)
	}
	return nil
}

// Get retrieves a token by value
func (r *ResetTokenRepository) Get(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	if err := r.coll.FindOne(ctx, bson.M{"token": token}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrInvalidResetToken
		}
		return nil, fmt.Errorf("error retrieving password reset token: %w", err)
	}
	return &t, nil
}

// MarkUsed flags an unused token as consumed
func (r *ResetTokenRepository) MarkUsed(ctx context.Context, token string) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"token": token, "used": false},
		bson.M{"$set": bson.M{"used": true}},
	)
	if err != nil {
		return fmt.Errorf("error marking token as used: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrResetTokenAlreadyUsed
	}
	return nil
}

// DeleteExpired removes tokens that expired before now
func (r *ResetTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": now}})
	if err != nil {
		return 0, fmt.Errorf("error deleting expired password reset tokens: %w", err)
	}
	return result.DeletedCount, nil
}
