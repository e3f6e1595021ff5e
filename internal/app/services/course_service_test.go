package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/tcasystem/internal/app/models"
	"github.com/yigit/tcasystem/internal/app/models/dto"
	"github.com/yigit/tcasystem/internal/app/repositories/memory"
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
)

func TestCourseService(t *testing.T) {
	svc := NewCourseService(memory.NewRepositories(), zerolog.Nop())
	ctx := context.Background()

	first, err := svc.Add(ctx, &dto.AddCourseRequest{CourseName: "Compilers", CourseCode: "CS401", Hours: 3})
	require.NoError(t, err)
	assert.Equal(t, models.FirstCourseID, first.ID)

	second, err := svc.Add(ctx, &dto.AddCourseRequest{CourseName: "Networks", CourseCode: "CS302", Hours: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)

	_, err = svc.Add(ctx, &dto.AddCourseRequest{CourseName: "Other", CourseCode: "CS401", Hours: 1})
	assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)
	assert.Equal(t, "Course code already exists", apperrors.Message(err, ""))

	courses, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "CS401", courses[0].Code)

	require.NoError(t, svc.Delete(ctx, first.ID))
	assert.ErrorIs(t, svc.Delete(ctx, first.ID), apperrors.ErrCourseNotFound)

	third, err := svc.Add(ctx, &dto.AddCourseRequest{CourseName: "Graphics", CourseCode: "CS403", Hours: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(3), third.ID)
}
