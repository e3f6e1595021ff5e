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
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
	"github.com/yigit/tcasystem/internal/pkg/logger"
)

var allotmentColumns = []string{"teacher_email", "teacher_id", "teacher_name", "course_ids", "updated_at"}

// upsertAllotmentSuffix merges in SQL so the read and the write happen in one
// statement. Merge keeps the first position of every id across old||new.
const upsertAllotmentSuffix = `ON CONFLICT (teacher_email) DO UPDATE SET
	teacher_id = EXCLUDED.teacher_id,
	teacher_name = EXCLUDED.teacher_name,
	course_ids = CASE WHEN ?::boolean THEN ARRAY(
		SELECT c.id
		FROM unnest(allotments.course_ids || EXCLUDED.course_ids) WITH ORDINALITY AS c(id, pos)
		GROUP BY c.id
		ORDER BY MIN(c.pos)
	) ELSE EXCLUDED.course_ids END,
	updated_at = EXCLUDED.updated_at
RETURNING course_ids, updated_at, (xmax = 0) AS inserted`

// AllotmentRepository handles allotment database operations
type AllotmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAllotmentRepository creates a new AllotmentRepository
func NewAllotmentRepository(db *pgxpool.Pool) *AllotmentRepository {
	return &AllotmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByTeacherEmail retrieves the allotment of one teacher
func (r *AllotmentRepository) GetByTeacherEmail(ctx context.Context, email string) (*models.Allotment, error) {
	query, args, err := r.sb.Select(allotmentColumns...).
		From("allotments").
		Where(squirrel.Eq{"teacher_email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get allotment query: %w", err)
	}

	allotment, err := scanAllotment(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAllotmentNotFound
		}
		return nil, fmt.Errorf("error retrieving allotment: %w", err)
	}

	return allotment, nil
}

// GetAll retrieves every allotment in creation order
func (r *AllotmentRepository) GetAll(ctx context.Context) ([]*models.Allotment, error) {
	query, args, err := r.sb.Select(allotmentColumns...).
		From("allotments").
		OrderBy("created_at ASC", "teacher_email ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list allotments query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing allotments: %w", err)
	}
	defer rows.Close()

	allotments := make([]*models.Allotment, 0)
	for rows.Next() {
		allotment, err := scanAllotment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning allotment: %w", err)
		}
		allotments = append(allotments, allotment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allotments: %w", err)
	}

	return allotments, nil
}

// ApplyAllotment upserts the teacher's allotment in a single statement
func (r *AllotmentRepository) ApplyAllotment(ctx context.Context, teacher *models.Teacher, courseIDs []int64, policy models.AllotmentPolicy) (*models.Allotment, bool, error) {
	requested := models.UniqueCourseIDs(courseIDs)
	now := time.Now().UTC()

	query, args, err := r.sb.Insert("allotments").
		Columns("teacher_email", "teacher_id", "teacher_name", "course_ids", "created_at", "updated_at").
		Values(teacher.Email, teacher.ID, teacher.Name, requested, now, now).
		Suffix(upsertAllotmentSuffix, policy == models.MergePolicy).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build upsert allotment query: %w", err)
	}

	allotment := &models.Allotment{
		TeacherEmail: teacher.Email,
		TeacherID:    teacher.ID,
		TeacherName:  teacher.Name,
	}
	var created bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&allotment.CourseIDs, &allotment.UpdatedAt, &created); err != nil {
		logger.Error().Err(err).Str("teacherEmail", teacher.Email).Str("policy", policy.String()).Msg("Error applying allotment")
		return nil, false, fmt.Errorf("error applying allotment: %w", err)
	}
	if allotment.CourseIDs == nil {
		allotment.CourseIDs = []int64{}
	}

	return allotment, created, nil
}

// DeleteByTeacherEmail removes a teacher's allotment
func (r *AllotmentRepository) DeleteByTeacherEmail(ctx context.Context, email string) error {
	query, args, err := r.sb.Delete("allotments").Where(squirrel.Eq{"teacher_email": email}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete allotment query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error deleting allotment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrAllotmentNotFound
	}

	return nil
}

func scanAllotment(row pgx.Row) (*models.Allotment, error) {
	var allotment models.Allotment
	if err := row.Scan(
		&allotment.TeacherEmail,
		&allotment.TeacherID,
		&allotment.TeacherName,
		&allotment.CourseIDs,
		&allotment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if allotment.CourseIDs == nil {
		allotment.CourseIDs = []int64{}
	}
	return &allotment, nil
}
