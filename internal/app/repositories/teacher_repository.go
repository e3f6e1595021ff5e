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
	"github.com/yigit/tcasystem/internal/pkg/dberrors"
	"github.com/yigit/tcasystem/internal/pkg/logger"
)

var teacherColumns = []string{"id", "email", "name", "dept", "password_hash", "created_at"}

// TeacherRepository handles teacher database operations
type TeacherRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a teacher with the next sequential id
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	if teacher.CreatedAt.IsZero() {
		teacher.CreatedAt = time.Now().UTC()
	}

	err := db.RunInTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		id, err := nextID(ctx, tx, r.sb, "teachers", teacherIDLockKey, models.FirstTeacherID)
		if err != nil {
			return err
		}

		query, args, err := r.sb.Insert("teachers").
			Columns(teacherColumns...).
			Values(id, teacher.Email, teacher.Name, string(teacher.Dept), teacher.PasswordHash, teacher.CreatedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create teacher query: %w", err)
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return err
		}
		teacher.ID = id
		return nil
	})
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "teachers_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", teacher.Email).Msg("Error creating teacher")
		return fmt.Errorf("error creating teacher: %w", err)
	}

	return nil
}

// GetByEmail retrieves a teacher by email
func (r *TeacherRepository) GetByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	query, args, err := r.sb.Select(teacherColumns...).
		From("teachers").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get teacher query: %w", err)
	}

	teacher, err := scanTeacher(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	return teacher, nil
}

// GetAll retrieves every teacher ordered by id
func (r *TeacherRepository) GetAll(ctx context.Context) ([]*models.Teacher, error) {
	query, args, err := r.sb.Select(teacherColumns...).
		From("teachers").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list teachers query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}
	defer rows.Close()

	teachers := make([]*models.Teacher, 0)
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning teacher: %w", err)
		}
		teachers = append(teachers, teacher)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teachers: %w", err)
	}

	return teachers, nil
}

// DeleteByEmail removes a teacher
func (r *TeacherRepository) DeleteByEmail(ctx context.Context, email string) error {
	query, args, err := r.sb.Delete("teachers").Where(squirrel.Eq{"email": email}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete teacher query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error deleting teacher: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}

	return nil
}

// UpdatePassword replaces a teacher's password hash
func (r *TeacherRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	query, args, err := r.sb.Update("teachers").
		Set("password_hash", passwordHash).
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}

	return nil
}

func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	var teacher models.Teacher
	var dept string
	if err := row.Scan(
		&teacher.ID,
		&teacher.Email,
		&teacher.Name,
		&dept,
		&teacher.PasswordHash,
		&teacher.CreatedAt,
	); err != nil {
		return nil, err
	}
	teacher.Dept = models.Department(dept)
	return &teacher, nil
}
