// Package mongodb implements the repositories on MongoDB collections.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/tcasystem/internal/app/repositories"
	"github.com/yigit/tcasystem/internal/pkg/dberrors"
	"github.com/yigit/tcasystem/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	TeachersCollection    = "teachers"
	CoursesCollection     = "courses"
	AllotmentsCollection  = "allotments"
	ResetTokensCollection = "password_reset_tokens"
)

// maxIDAttempts bounds the retries when two writers pick the same next id
const maxIDAttempts = 5

// NewRepositories returns repositories backed by the given database
func NewRepositories(db *mongo.Database) *repositories.Repositories {
	return &repositories.Repositories{
		Teachers:    NewTeacherRepository(db),
		Courses:     NewCourseRepository(db),
		Allotments:  NewAllotmentRepository(db),
		ResetTokens: NewResetTokenRepository(db),
	}
}

// EnsureIndexes creates the unique indexes the repositories rely on
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		TeachersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CoursesCollection: {
			{Keys: bson.D{{Key: "course_code", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		AllotmentsCollection: {
			{Keys: bson.D{{Key: "teacher_email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ResetTokensCollection: {
			{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "teacher_email", Value: 1}}},
		},
	}

	for name, idx := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
		logger.Debug().Str("collection", name).Int("indexes", len(idx)).Msg("Ensured mongo indexes")
	}

	return nil
}

// nextID returns the highest "id" in coll plus one, or first when coll is empty
func nextID(ctx context.Context, coll *mongo.Collection, first int64) (int64, error) {
	var last struct {
		ID int64 `bson:"id"`
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}}).SetProjection(bson.M{"id": 1})
	err := coll.FindOne(ctx, bson.M{}, opts).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return first, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read last id of %s: %w", coll.Name(), err)
	}
	return last.ID + 1, nil
}

// insertWithNextID assigns the next id and inserts the document built by doc. A
// duplicate key on the natural key is reported through isConflict; a duplicate on
// "id" means another writer won the race, so the id is recomputed.
func insertWithNextID(ctx context.Context, coll *mongo.Collection, first int64, doc func(id int64) interface{}, isConflict func(ctx context.Context) (bool, error)) (int64, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := nextID(ctx, coll, first)
		if err != nil {
			return 0, err
		}

		_, err = coll.InsertOne(ctx, doc(id))
		if err == nil {
			return id, nil
		}
		if !dberrors.IsMongoDuplicateKey(err) {
			return 0, err
		}

		conflict, cerr := isConflict(ctx)
		if cerr != nil {
			return 0, cerr
		}
		if conflict {
			return 0, errDuplicateNaturalKey
		}
	}
	return 0, fmt.Errorf("failed to assign id in %s after %d attempts", coll.Name(), maxIDAttempts)
}

var errDuplicateNaturalKey = errors.New("duplicate natural key")
