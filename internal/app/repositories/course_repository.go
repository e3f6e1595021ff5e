package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/tcasystem/internal/app/models"
	"github.com/yigit/tcasystem/internal/db"
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
	"github.com/yigit/tcasystem/internal/pkg/dberrors"
	"github.com/yigit/tcasystem/internal/pkg/logger"
)

var courseColumns = []string{"id", "course_code", "course_name", "hours"}

// CourseRepository handles course catalog database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a course with the next sequential id
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	err := db.RunInTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		id, err := nextID(ctx, tx, r.sb, "courses", courseIDLockKey, models.FirstCourseID)
		if err != nil {
			return err
		}

		query, args, err := r.sb.Insert("courses").
			Columns(courseColumns...).
			Values(id, course.Code, course.Name, course.Hours).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create course query: %w", err)
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return err
		}
		course.ID = id
		return nil
	})
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_course_code_key") {
			return apperrors.ErrCourseAlreadyExists
		}
		logger.Error().Err(err).Str("courseCode", course.Code).Msg("Error creating course")
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by id
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	var course models.Course
	err = r.db.QueryRow(ctx, query, args...).Scan(&course.ID, &course.Code, &course.Name, &course.Hours)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetAll retrieves the whole catalog ordered by id
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	query, args, err := r.sb.Select(courseColumns...).
		From("courses").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Code, &course.Name, &course.Hours); err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}

	return courses, nil
}

// Delete removes a course. Allotments referencing it are left untouched.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
