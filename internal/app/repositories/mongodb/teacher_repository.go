package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yigit/tcasystem/internal/app/models"
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
	"github.com/yigit/tcasystem/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TeacherRepository stores teachers in the "teachers" collection
type TeacherRepository struct {
	coll *mongo.Collection
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(db *mongo.Database) *TeacherRepository {
	return &TeacherRepository{coll: db.Collection(TeachersCollection)}
}

// Create inserts a teacher with the next sequential id
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	if teacher.CreatedAt.IsZero() {
		teacher.CreatedAt = time.Now().UTC()
	}

	id, err := insertWithNextID(ctx, r.coll, models.FirstTeacherID,
		func(id int64) interface{} {
			doc := *teacher
			doc.ID = id
			return doc
		},
		func(ctx context.Context) (bool, error) {
			n, err := r.coll.CountDocuments(ctx, bson.M{"email": teacher.Email})
			return n > 0, err
		},
	)
	if err != nil {
		if errors.Is(err, errDuplicateNaturalKey) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", teacher.Email).Msg("Error creating teacher")
		return fmt.Errorf("error creating teacher: %w", err)
	}

	teacher.ID = id
	return nil
}

// GetByEmail retrieves a teacher by email
func (r *TeacherRepository) GetByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&teacher)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}
	return &teacher, nil
}

// GetAll retrieves every teacher ordered by id
func (r *TeacherRepository) GetAll(ctx context.Context) ([]*models.Teacher, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}
	defer cursor.Close(ctx)

	teachers := make([]*models.Teacher, 0)
	if err := cursor.All(ctx, &teachers); err != nil {
		return nil, fmt.Errorf("error decoding teachers: %w", err)
	}
	return teachers, nil
}

// DeleteByEmail removes a teacher
func (r *TeacherRepository) DeleteByEmail(ctx context.Context, email string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("error deleting teacher: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}

// UpdatePassword replaces a teacher's password hash
func (r *TeacherRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"password_hash": passwordHash}},
	)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}
