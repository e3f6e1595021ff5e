package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/tcasystem/internal/app/models"
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
	"github.com/yigit/tcasystem/internal/pkg/dberrors"
	"github.com/yigit/tcasystem/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AllotmentRepository stores allotments in the "allotments" collection
type AllotmentRepository struct {
	coll *mongo.Collection
}

// NewAllotmentRepository creates a new AllotmentRepository
func NewAllotmentRepository(db *mongo.Database) *AllotmentRepository {
	return &AllotmentRepository{coll: db.Collection(AllotmentsCollection)}
}

// GetByTeacherEmail retrieves the allotment of one teacher
func (r *AllotmentRepository) GetByTeacherEmail(ctx context.Context, email string) (*models.Allotment, error) {
	var allotment models.Allotment
	if err := r.coll.FindOne(ctx, bson.M{"teacher_email": email}).Decode(&allotment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrAllotmentNotFound
		}
		return nil, fmt.Errorf("error retrieving allotment: %w", err)
	}
	if allotment.CourseIDs == nil {
		allotment.CourseIDs = []int64{}
	}
	return &allotment, nil
}

// GetAll retrieves every allotment in creation order
func (r *AllotmentRepository) GetAll(ctx context.Context) ([]*models.Allotment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "teacher_email", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing allotments: %w", err)
	}
	defer cursor.Close(ctx)

	allotments := make([]*models.Allotment, 0)
	if err := cursor.All(ctx, &allotments); err != nil {
		return nil, fmt.Errorf("error decoding allotments: %w", err)
	}
	return allotments, nil
}

// allotmentDocument is an allotment as stored, with the token written by the
// upsert that created it.
type allotmentDocument struct {
	models.Allotment `bson:",inline"`
	InsertToken      string `bson:"insert_token,omitempty"`
}

// ApplyAllotment upserts the teacher's allotment with a single FindOneAndUpdate.
// Merge uses $addToSet so the server combines the sets. The stored document is
// returned as it is after the update; it was created by this call when it
// carries this call's insert token.
func (r *AllotmentRepository) ApplyAllotment(ctx context.Context, teacher *models.Teacher, courseIDs []int64, policy models.AllotmentPolicy) (*models.Allotment, bool, error) {
	requested := models.UniqueCourseIDs(courseIDs)
	now := time.Now().UTC()
	insertToken := uuid.NewString()

	set := bson.M{
		"teacher_id":   teacher.ID,
		"teacher_name": teacher.Name,
		"updated_at":   now,
	}
	update := bson.M{
		"$setOnInsert": bson.M{"created_at": now, "insert_token": insertToken},
		"$set":         set,
	}
	if policy == models.MergePolicy {
		update["$addToSet"] = bson.M{"course_ids": bson.M{"$each": requested}}
	} else {
		set["course_ids"] = requested
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	filter := bson.M{"teacher_email": teacher.Email}

	var stored allotmentDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored)
	if dberrors.IsMongoDuplicateKey(err) {
		// Two upserts raced on the unique index; the retry updates the winner's document.
		stored = allotmentDocument{}
		err = r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored)
	}
	if err != nil {
		logger.Error().Err(err).Str("teacherEmail", teacher.Email).Str("policy", policy.String()).Msg("Error applying allotment")
		return nil, false, fmt.Errorf("error applying allotment: %w", err)
	}

	allotment := stored.Allotment
	if allotment.CourseIDs == nil {
		allotment.CourseIDs = []int64{}
	}
	return &allotment, stored.InsertToken == insertToken, nil
}

// DeleteByTeacherEmail removes a teacher's allotment
func (r *AllotmentRepository) DeleteByTeacherEmail(ctx context.Context, email string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"teacher_email": email})
	if err != nil {
		return fmt.Errorf("error deleting allotment: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrAllotmentNotFound
	}
	return nil
}
