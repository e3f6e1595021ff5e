package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
)

func courseCodes(r *TeacherReport) []string {
	codes := make([]string, len(r.Courses))
	for i, c := range r.Courses {
		codes[i] = c.Code
	}
	return codes
}

func TestReportService_ViewTeacher(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	allotments := NewAllotmentService(f.repos, zerolog.Nop())
	reports := NewReportService(f.repos, zerolog.Nop())

	_, err := reports.ViewTeacher(ctx, "ghost@college.edu")
	assert.ErrorIs(t, err, apperrors.ErrTeacherNotFound)

	_, err = reports.ViewTeacher(ctx, "ada@college.edu")
	assert.ErrorIs(t, err, apperrors.ErrNoCoursesAssigned)

	_, err = allotments.Assign(ctx, "ada@college.edu", []int64{3, 1})
	require.NoError(t, err)

	report, err := reports.ViewTeacher(ctx, "ada@college.edu")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", report.TeacherName)
	assert.Equal(t, []string{"CS301", "CS101"}, courseCodes(report))
}

func TestReportService_SkipsUnresolvableCourses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	allotments := NewAllotmentService(f.repos, zerolog.Nop())
	reports := NewReportService(f.repos, zerolog.Nop())

	_, err := allotments.Assign(ctx, "ada@college.edu", []int64{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, f.repos.Courses.Delete(ctx, 2))

	report, err := reports.ViewTeacher(ctx, "ada@college.edu")
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101", "CS301"}, courseCodes(report))

	resolved, err := reports.ResolveCourses(ctx, []int64{99, 3})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, int64(3), resolved[0].ID)
}

func TestReportService_ViewAllSkipsOrphans(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	allotments := NewAllotmentService(f.repos, zerolog.Nop())
	reports := NewReportService(f.repos, zerolog.Nop())

	empty, err := reports.ViewAllAllotments(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = allotments.Assign(ctx, "alan@college.edu", []int64{2})
	require.NoError(t, err)
	_, err = allotments.Assign(ctx, "ada@college.edu", []int64{1})
	require.NoError(t, err)
	require.NoError(t, f.repos.Teachers.DeleteByEmail(ctx, "alan@college.edu"))

	all, err := reports.ViewAllAllotments(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "ada@college.edu", all[0].TeacherEmail)
	assert.Equal(t, []string{"CS101"}, courseCodes(all[0]))
}

func TestReportService_RenderReports(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	allotments := NewAllotmentService(f.repos, zerolog.Nop())
	reports := NewReportService(f.repos, zerolog.Nop())

	_, err := reports.RenderTeacherReport(ctx, "ada@college.edu")
	assert.ErrorIs(t, err, apperrors.ErrNoCoursesAssigned)

	_, err = allotments.Assign(ctx, "ada@college.edu", []int64{1, 2})
	require.NoError(t, err)

	single, err := reports.RenderTeacherReport(ctx, "ada@college.edu")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(single, []byte("%PDF-")))

	all, err := reports.RenderAllReport(ctx)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(all, []byte("%PDF-")))
}
