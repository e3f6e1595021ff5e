package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/tcasystem/internal/app/models"
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
	"github.com/yigit/tcasystem/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CourseRepository stores the catalog in the "courses" collection
type CourseRepository struct {
	coll *mongo.Collection
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{coll: db.Collection(CoursesCollection)}
}

// Create inserts a course with the next sequential id
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	id, err := insertWithNextID(ctx, r.coll, models.FirstCourseID,
		func(id int64) interface{} {
			doc := *course
			doc.ID = id
			return doc
		},
		func(ctx context.Context) (bool, error) {
			n, err := r.coll.CountDocuments(ctx, bson.M{"course_code": course.Code})
			return n > 0, err
		},
	)
	if err != nil {
		if errors.Is(err, errDuplicateNaturalKey) {
			return apperrors.ErrCourseAlreadyExists
		}
		logger.Error().Err(err).Str("courseCode", course.Code).Msg("Error creating course")
		return fmt.Errorf("error creating course: %w", err)
	}

	course.ID = id
	return nil
}

// GetByID retrieves a course by id
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&course); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return &course, nil
}

// GetAll retrieves the whole catalog ordered by id
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer cursor.Close(ctx)

	courses := make([]*models.Course, 0)
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("error decoding courses: %w", err)
	}
	return courses, nil
}

// Delete removes a course
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}
