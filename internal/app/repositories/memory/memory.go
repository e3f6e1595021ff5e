// Package memory implements the repositories on mutex-guarded maps. It backs the
// service tests and the "memory" storage driver.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yigit/tcasystem/internal/app/models"
	"github.com/yigit/tcasystem/internal/app/repositories"
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
)

// Store holds every collection behind a single lock
type Store struct {
	mu sync.Mutex

	teachers       map[string]*models.Teacher
	courses        map[int64]*models.Course
	allotments     map[string]*models.Allotment
	allotmentOrder []string
	resetTokens    map[string]*models.PasswordResetToken
	now            func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		teachers:    make(map[string]*models.Teacher),
		courses:     make(map[int64]*models.Course),
		allotments:  make(map[string]*models.Allotment),
		resetTokens: make(map[string]*models.PasswordResetToken),
		now:         time.Now,
	}
}

// NewRepositories returns repositories backed by a fresh in-memory store
func NewRepositories() *repositories.Repositories {
	return NewStore().Repositories()
}

// Repositories exposes the store through the repository interfaces
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Teachers:    &TeacherRepository{s},
		Courses:     &CourseRepository{s},
		Allotments:  &AllotmentRepository{s},
		ResetTokens: &ResetTokenRepository{s},
	}
}

// TeacherRepository is the in-memory TeacherStore
type TeacherRepository struct{ s *Store }

// CourseRepository is the in-memory CourseStore
type CourseRepository struct{ s *Store }

// AllotmentRepository is the in-memory AllotmentStore
type AllotmentRepository struct{ s *Store }

// ResetTokenRepository is the in-memory ResetTokenStore
type ResetTokenRepository struct{ s *Store }

var (
	_ repositories.TeacherStore    = (*TeacherRepository)(nil)
	_ repositories.CourseStore     = (*CourseRepository)(nil)
	_ repositories.AllotmentStore  = (*AllotmentRepository)(nil)
	_ repositories.ResetTokenStore = (*ResetTokenRepository)(nil)
)

func (r *TeacherRepository) Create(_ context.Context, teacher *models.Teacher) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.teachers[teacher.Email]; ok {
		return apperrors.ErrEmailAlreadyExists
	}

	id := models.FirstTeacherID
	for _, t := range r.s.teachers {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	teacher.ID = id
	if teacher.CreatedAt.IsZero() {
		teacher.CreatedAt = r.s.now().UTC()
	}

	stored := *teacher
	r.s.teachers[teacher.Email] = &stored
	return nil
}

func (r *TeacherRepository) GetByEmail(_ context.Context, email string) (*models.Teacher, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.teachers[email]
	if !ok {
		return nil, apperrors.ErrTeacherNotFound
	}
	out := *t
	return &out, nil
}

func (r *TeacherRepository) GetAll(_ context.Context) ([]*models.Teacher, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	teachers := make([]*models.Teacher, 0, len(r.s.teachers))
	for _, t := range r.s.teachers {
		out := *t
		teachers = append(teachers, &out)
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].ID < teachers[j].ID })
	return teachers, nil
}

func (r *TeacherRepository) DeleteByEmail(_ context.Context, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.teachers[email]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	delete(r.s.teachers, email)
	return nil
}

func (r *TeacherRepository) UpdatePassword(_ context.Context, email, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.teachers[email]
	if !ok {
		return apperrors.ErrTeacherNotFound
	}
	t.PasswordHash = passwordHash
	return nil
}

func (r *CourseRepository) Create(_ context.Context, course *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id := models.FirstCourseID
	for _, c := range r.s.courses {
		if c.Code == course.Code {
			return apperrors.ErrCourseAlreadyExists
		}
		if c.ID >= id {
			id = c.ID + 1
		}
	}
	course.ID = id

	stored := *course
	r.s.courses[id] = &stored
	return nil
}

func (r *CourseRepository) GetByID(_ context.Context, id int64) (*models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	out := *c
	return &out, nil
}

func (r *CourseRepository) GetAll(_ context.Context) ([]*models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	courses := make([]*models.Course, 0, len(r.s.courses))
	for _, c := range r.s.courses {
		out := *c
		courses = append(courses, &out)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (r *CourseRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(r.s.courses, id)
	return nil
}

func (r *AllotmentRepository) GetByTeacherEmail(_ context.Context, email string) (*models.Allotment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.allotments[email]
	if !ok {
		return nil, apperrors.ErrAllotmentNotFound
	}
	return copyAllotment(a), nil
}

func (r *AllotmentRepository) GetAll(_ context.Context) ([]*models.Allotment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	allotments := make([]*models.Allotment, 0, len(r.s.allotmentOrder))
	for _, email := range r.s.allotmentOrder {
		allotments = append(allotments, copyAllotment(r.s.allotments[email]))
	}
	return allotments, nil
}

func (r *AllotmentRepository) ApplyAllotment(_ context.Context, teacher *models.Teacher, courseIDs []int64, policy models.AllotmentPolicy) (*models.Allotment, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, found := r.s.allotments[teacher.Email]
	var current []int64
	if found {
		current = existing.CourseIDs
	}

	a := &models.Allotment{
		TeacherEmail: teacher.Email,
		TeacherID:    teacher.ID,
		TeacherName:  teacher.Name,
		CourseIDs:    policy.Apply(current, courseIDs),
		UpdatedAt:    r.s.now().UTC(),
	}
	r.s.allotments[teacher.Email] = a
	if !found {
		r.s.allotmentOrder = append(r.s.allotmentOrder, teacher.Email)
	}

	return copyAllotment(a), !found, nil
}

func (r *AllotmentRepository) DeleteByTeacherEmail(_ context.Context, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.allotments[email]; !ok {
		return apperrors.ErrAllotmentNotFound
	}
	delete(r.s.allotments, email)
	for i, e := range r.s.allotmentOrder {
		if e == email {
			r.s.allotmentOrder = append(r.s.allotmentOrder[:i], r.s.allotmentOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (r *ResetTokenRepository) Create(_ context.Context, token *models.PasswordResetToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for value, t := range r.s.resetTokens {
		if t.TeacherEmail == token.TeacherEmail {
			delete(r.s.resetTokens, value)
		}
	}
	stored := *token
	r.s.resetTokens[token.Token] = &stored
	return nil
}

func (r *ResetTokenRepository) Get(_ context.Context, token string) (*models.PasswordResetToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.resetTokens[token]
	if !ok {
		return nil, apperrors.ErrInvalidResetToken
	}
	out := *t
	return &out, nil
}

func (r *ResetTokenRepository) MarkUsed(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.resetTokens[token]
	if !ok || t.Used {
		return apperrors.ErrResetTokenAlreadyUsed
	}
	t.Used = true
	return nil
}

func (r *ResetTokenRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var removed int64
	for value, t := range r.s.resetTokens {
		if t.ExpiresAt.Before(now) {
			delete(r.s.resetTokens, value)
			removed++
		}
	}
	return removed, nil
}

func copyAllotment(a *models.Allotment) *models.Allotment {
	out := *a
	out.CourseIDs = append([]int64{}, a.CourseIDs...)
	return &out
}
