package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/tcasystem/internal/app/models"
	"github.com/yigit/tcasystem/internal/app/repositories"
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
)

// AllotmentResult describes the allotment after an Assign or Edit
type AllotmentResult struct {
	TeacherName  string
	TeacherEmail string
	CourseIDs    []int64
	Created      bool
}

// AllotmentService assigns courses to teachers
type AllotmentService interface {
	// Assign merges courseIDs into the teacher's allotment, creating it if needed.
	Assign(ctx context.Context, teacherEmail string, courseIDs []int64) (*AllotmentResult, error)
	// Edit replaces the teacher's course set, creating the allotment if needed.
	Edit(ctx context.Context, teacherEmail string, courseIDs []int64) (*AllotmentResult, error)
	Delete(ctx context.Context, teacherEmail string) error
}

type allotmentServiceImpl struct {
	teachers   repositories.TeacherStore
	courses    repositories.CourseStore
	allotments repositories.AllotmentStore
	logger     zerolog.Logger
}

// NewAllotmentService creates a new allotment service instance
func NewAllotmentService(repos *repositories.Repositories, logger zerolog.Logger) AllotmentService {
	return &allotmentServiceImpl{
		teachers:   repos.Teachers,
		courses:    repos.Courses,
		allotments: repos.Allotments,
		logger:     logger,
	}
}

// Assign merges courseIDs into the stored set
func (s *allotmentServiceImpl) Assign(ctx context.Context, teacherEmail string, courseIDs []int64) (*AllotmentResult, error) {
	return s.apply(ctx, teacherEmail, courseIDs, models.MergePolicy)
}

// Edit replaces the stored set with courseIDs
func (s *allotmentServiceImpl) Edit(ctx context.Context, teacherEmail string, courseIDs []int64) (*AllotmentResult, error) {
	return s.apply(ctx, teacherEmail, courseIDs, models.ReplacePolicy)
}

func (s *allotmentServiceImpl) apply(ctx context.Context, teacherEmail string, courseIDs []int64, policy models.AllotmentPolicy) (*AllotmentResult, error) {
	teacher, err := s.validateAllotmentRequest(ctx, teacherEmail, courseIDs)
	if err != nil {
		return nil, err
	}

	allotment, created, err := s.allotments.ApplyAllotment(ctx, teacher, courseIDs, policy)
	if err != nil {
		return nil, fmt.Errorf("error saving allotment: %w", err)
	}

	s.logger.Info().
		Str("teacherEmail", teacher.Email).
		Str("policy", policy.String()).
		Bool("created", created).
		Int("courses", len(allotment.CourseIDs)).
		Msg("Allotment saved")

	return &AllotmentResult{
		TeacherName:  teacher.Name,
		TeacherEmail: teacher.Email,
		CourseIDs:    allotment.CourseIDs,
		Created:      created,
	}, nil
}

// validateAllotmentRequest checks that the teacher exists and then that every
// course exists, in request order, stopping at the first missing course.
func (s *allotmentServiceImpl) validateAllotmentRequest(ctx context.Context, teacherEmail string, courseIDs []int64) (*models.Teacher, error) {
	teacher, err := s.teachers.GetByEmail(ctx, teacherEmail)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	for _, id := range courseIDs {
		if _, err := s.courses.GetByID(ctx, id); err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Course ID %d not found", id))
			}
			return nil, fmt.Errorf("error retrieving course %d: %w", id, err)
		}
	}

	return teacher, nil
}

// Delete removes the teacher's allotment
func (s *allotmentServiceImpl) Delete(ctx context.Context, teacherEmail string) error {
	if err := s.allotments.DeleteByTeacherEmail(ctx, teacherEmail); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.ErrAllotmentNotFound
		}
		return fmt.Errorf("error deleting allotment: %w", err)
	}

	s.logger.Info().Str("teacherEmail", teacherEmail).Msg("Allotment deleted")
	return nil
}

// AssignMessage returns the confirmation shown after Assign
func AssignMessage(r *AllotmentResult) string {
	if r.Created {
		return fmt.Sprintf("Courses assigned to teacher %s successfully", r.TeacherName)
	}
	return fmt.Sprintf("Courses updated for teacher %s", r.TeacherName)
}

// EditMessage returns the confirmation shown after Edit
func EditMessage(r *AllotmentResult) string {
	if r.Created {
		return fmt.Sprintf("New allotment created for %s", r.TeacherName)
	}
	return fmt.Sprintf("Allotment updated for %s", r.TeacherName)
}

// DeleteMessage returns the confirmation shown after Delete
func DeleteMessage(teacherEmail string) string {
	return fmt.Sprintf("Allotments for teacher %s deleted successfully", teacherEmail)
}
