package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/tcasystem/internal/app/models"
	"github.com/yigit/tcasystem/internal/app/models/dto"
	"github.com/yigit/tcasystem/internal/app/repositories"
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
)

// CourseService manages the course catalog
type CourseService struct {
	courses repositories.CourseStore
	logger  zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(repos *repositories.Repositories, logger zerolog.Logger) *CourseService {
	return &CourseService{
		courses: repos.Courses,
		logger:  logger,
	}
}

// Add stores a new course and returns it with its assigned id
func (s *CourseService) Add(ctx context.Context, req *dto.AddCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Code:  strings.TrimSpace(req.CourseCode),
		Name:  strings.TrimSpace(req.CourseName),
		Hours: req.Hours,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.ErrCourseAlreadyExists
		}
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	s.logger.Info().Int64("courseID", course.ID).Str("code", course.Code).Msg("Course added")
	return course, nil
}

// List returns the catalog ordered by id
func (s *CourseService) List(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courses.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	return courses, nil
}

// Delete removes a course. Allotments that reference it keep the id, which
// reports then skip.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if err := s.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error deleting course: %w", err)
	}

	s.logger.Info().Int64("courseID", id).Msg("Course deleted")
	return nil
}
