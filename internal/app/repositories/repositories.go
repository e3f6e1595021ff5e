package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/tcasystem/internal/app/models"
)

// TeacherStore persists teacher accounts keyed by email
type TeacherStore interface {
	// Create assigns the next teacher id and stores the record.
	// Returns apperrors.ErrEmailAlreadyExists when the email is taken.
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByEmail(ctx context.Context, email string) (*models.Teacher, error)
	GetAll(ctx context.Context) ([]*models.Teacher, error)
	DeleteByEmail(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// CourseStore persists the course catalog
type CourseStore interface {
	// Create assigns the next course id and stores the record.
	// Returns apperrors.ErrCourseAlreadyExists when the code is taken.
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	Delete(ctx context.Context, id int64) error
}

// AllotmentStore persists one allotment per teacher
type AllotmentStore interface {
	GetByTeacherEmail(ctx context.Context, email string) (*models.Allotment, error)
	GetAll(ctx context.Context) ([]*models.Allotment, error)
	// ApplyAllotment creates the teacher's allotment or combines courseIDs with the
	// stored set according to policy, as one atomic step. It reports whether the
	// allotment was created.
	ApplyAllotment(ctx context.Context, teacher *models.Teacher, courseIDs []int64, policy models.AllotmentPolicy) (*models.Allotment, bool, error)
	DeleteByTeacherEmail(ctx context.Context, email string) error
}

// ResetTokenStore persists password reset tokens
type ResetTokenStore interface {
	Create(ctx context.Context, token *models.PasswordResetToken) error
	Get(ctx context.Context, token string) (*models.PasswordResetToken, error)
	MarkUsed(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	Teachers    TeacherStore
	Courses     CourseStore
	Allotments  AllotmentStore
	ResetTokens ResetTokenStore
}

// NewRepositories initializes the PostgreSQL repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Teachers:    NewTeacherRepository(db),
		Courses:     NewCourseRepository(db),
		Allotments:  NewAllotmentRepository(db),
		ResetTokens: NewPasswordResetTokenRepository(db),
	}
}
