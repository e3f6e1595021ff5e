package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/tcasystem/internal/app/models"
	"github.com/yigit/tcasystem/internal/app/repositories"
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
	"github.com/yigit/tcasystem/internal/pkg/pdf"
)

// TeacherReport is one teacher with the courses of their allotment
type TeacherReport struct {
	TeacherName  string
	TeacherEmail string
	Courses      []*models.Course
}

// ReportService composes allotment views and printable reports
type ReportService struct {
	teachers   repositories.TeacherStore
	courses    repositories.CourseStore
	allotments repositories.AllotmentStore
	logger     zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(repos *repositories.Repositories, logger zerolog.Logger) *ReportService {
	return &ReportService{
		teachers:   repos.Teachers,
		courses:    repos.Courses,
		allotments: repos.Allotments,
		logger:     logger,
	}
}

// ViewTeacher returns a teacher's allotment with resolved courses
func (s *ReportService) ViewTeacher(ctx context.Context, teacherEmail string) (*TeacherReport, error) {
	teacher, err := s.teachers.GetByEmail(ctx, teacherEmail)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	allotment, err := s.allotments.GetByTeacherEmail(ctx, teacherEmail)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrNoCoursesAssigned
		}
		return nil, fmt.Errorf("error retrieving allotment: %w", err)
	}

	courses, err := s.ResolveCourses(ctx, allotment.CourseIDs)
	if err != nil {
		return nil, err
	}

	return &TeacherReport{
		TeacherName:  teacher.Name,
		TeacherEmail: teacher.Email,
		Courses:      courses,
	}, nil
}

// ViewAllAllotments returns every allotment whose teacher still exists, in
// allotment order. Allotments of deleted teachers are skipped.
func (s *ReportService) ViewAllAllotments(ctx context.Context) ([]*TeacherReport, error) {
	allotments, err := s.allotments.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing allotments: %w", err)
	}

	reports := make([]*TeacherReport, 0, len(allotments))
	for _, allotment := range allotments {
		teacher, err := s.teachers.GetByEmail(ctx, allotment.TeacherEmail)
		if err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				s.logger.Debug().Str("teacherEmail", allotment.TeacherEmail).Msg("Skipping allotment of missing teacher")
				continue
			}
			return nil, fmt.Errorf("error retrieving teacher: %w", err)
		}

		courses, err := s.ResolveCourses(ctx, allotment.CourseIDs)
		if err != nil {
			return nil, err
		}

		reports = append(reports, &TeacherReport{
			TeacherName:  teacher.Name,
			TeacherEmail: teacher.Email,
			Courses:      courses,
		})
	}

	return reports, nil
}

// ResolveCourses looks up ids in order under the SkipUnresolvable policy: an id
// whose course no longer exists is dropped and logged, never reported as an error.
func (s *ReportService) ResolveCourses(ctx context.Context, ids []int64) ([]*models.Course, error) {
	courses := make([]*models.Course, 0, len(ids))
	for _, id := range ids {
		course, err := s.courses.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				s.logger.Debug().Int64("courseID", id).Msg("Skipping unresolvable course")
				continue
			}
			return nil, fmt.Errorf("error retrieving course %d: %w", id, err)
		}
		courses = append(courses, course)
	}
	return courses, nil
}

// RenderTeacherReport renders the single-teacher PDF report
func (s *ReportService) RenderTeacherReport(ctx context.Context, teacherEmail string) ([]byte, error) {
	report, err := s.ViewTeacher(ctx, teacherEmail)
	if err != nil {
		return nil, err
	}
	return pdf.TeacherReport(toSection(report))
}

// RenderAllReport renders the PDF report of every allotment
func (s *ReportService) RenderAllReport(ctx context.Context) ([]byte, error) {
	reports, err := s.ViewAllAllotments(ctx)
	if err != nil {
		return nil, err
	}

	sections := make([]pdf.TeacherSection, len(reports))
	for i, r := range reports {
		sections[i] = toSection(r)
	}
	return pdf.AllReport(sections)
}

func toSection(r *TeacherReport) pdf.TeacherSection {
	lines := make([]pdf.CourseLine, len(r.Courses))
	for i, c := range r.Courses {
		lines[i] = pdf.CourseLine{Name: c.Name, Code: c.Code, Hours: c.Hours}
	}
	return pdf.TeacherSection{Name: r.TeacherName, Email: r.TeacherEmail, Courses: lines}
}
