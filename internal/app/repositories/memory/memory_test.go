package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/tcasystem/internal/app/models"
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
)

func TestTeacherRepository_SequentialIDs(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	a := &models.Teacher{Email: "a@x.com", Name: "A", Dept: models.DeptCSE}
	b := &models.Teacher{Email: "b@x.com", Name: "B", Dept: models.DeptIT}
	require.NoError(t, repos.Teachers.Create(ctx, a))
	require.NoError(t, repos.Teachers.Create(ctx, b))

	assert.Equal(t, int64(2501), a.ID)
	assert.Equal(t, int64(2502), b.ID)

	err := repos.Teachers.Create(ctx, &models.Teacher{Email: "a@x.com"})
	assert.True(t, errors.Is(err, apperrors.ErrConflict))

	// max+1, not count+1: deleting the first teacher does not reuse 2502
	require.NoError(t, repos.Teachers.DeleteByEmail(ctx, "a@x.com"))
	c := &models.Teacher{Email: "c@x.com"}
	require.NoError(t, repos.Teachers.Create(ctx, c))
	assert.Equal(t, int64(2503), c.ID)

	all, err := repos.Teachers.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b@x.com", all[0].Email)
}

func TestTeacherRepository_DeleteAndUpdate(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	require.NoError(t, repos.Teachers.Create(ctx, &models.Teacher{Email: "a@x.com", PasswordHash: "old"}))

	require.NoError(t, repos.Teachers.UpdatePassword(ctx, "a@x.com", "new"))
	got, err := repos.Teachers.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "new", got.PasswordHash)

	require.NoError(t, repos.Teachers.DeleteByEmail(ctx, "a@x.com"))
	assert.ErrorIs(t, repos.Teachers.DeleteByEmail(ctx, "a@x.com"), apperrors.ErrTeacherNotFound)
	assert.ErrorIs(t, repos.Teachers.UpdatePassword(ctx, "a@x.com", "x"), apperrors.ErrTeacherNotFound)
	_, err = repos.Teachers.GetByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCourseRepository(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	c1 := &models.Course{Code: "CS101", Name: "Intro", Hours: 3}
	require.NoError(t, repos.Courses.Create(ctx, c1))
	assert.Equal(t, int64(1), c1.ID)

	err := repos.Courses.Create(ctx, &models.Course{Code: "CS101", Name: "Dup"})
	assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)

	c2 := &models.Course{Code: "CS102", Name: "Data", Hours: 4}
	require.NoError(t, repos.Courses.Create(ctx, c2))
	assert.Equal(t, int64(2), c2.ID)

	require.NoError(t, repos.Courses.Delete(ctx, 1))
	assert.ErrorIs(t, repos.Courses.Delete(ctx, 1), apperrors.ErrCourseNotFound)
	_, err = repos.Courses.GetByID(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	all, err := repos.Courses.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "CS102", all[0].Code)
}

func TestAllotmentRepository_ApplyAllotment(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	teacher := &models.Teacher{ID: 2501, Email: "a@x.com", Name: "Ada"}

	a, created, err := repos.Allotments.ApplyAllotment(ctx, teacher, []int64{1, 2, 2}, models.MergePolicy)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, []int64{1, 2}, a.CourseIDs)

	a, created, err = repos.Allotments.ApplyAllotment(ctx, teacher, []int64{3, 1}, models.MergePolicy)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, []int64{1, 2, 3}, a.CourseIDs)

	a, created, err = repos.Allotments.ApplyAllotment(ctx, teacher, []int64{5}, models.ReplacePolicy)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, []int64{5}, a.CourseIDs)

	stored, err := repos.Allotments.GetByTeacherEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, stored.CourseIDs)
	assert.Equal(t, "Ada", stored.TeacherName)
}

func TestAllotmentRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	teacher := &models.Teacher{ID: 2501, Email: "a@x.com"}

	a, _, err := repos.Allotments.ApplyAllotment(ctx, teacher, []int64{1, 2}, models.ReplacePolicy)
	require.NoError(t, err)
	a.CourseIDs[0] = 99

	stored, err := repos.Allotments.GetByTeacherEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, stored.CourseIDs)
}

func TestAllotmentRepository_OrderAndDelete(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	for _, email := range []string{"c@x.com", "a@x.com", "b@x.com"} {
		_, _, err := repos.Allotments.ApplyAllotment(ctx, &models.Teacher{Email: email}, []int64{1}, models.MergePolicy)
		require.NoError(t, err)
	}

	require.NoError(t, repos.Allotments.DeleteByTeacherEmail(ctx, "a@x.com"))
	assert.ErrorIs(t, repos.Allotments.DeleteByTeacherEmail(ctx, "a@x.com"), apperrors.ErrAllotmentNotFound)

	all, err := repos.Allotments.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "c@x.com", all[0].TeacherEmail)
	assert.Equal(t, "b@x.com", all[1].TeacherEmail)
}

func TestAllotmentRepository_ConcurrentMergeKeepsEveryCourse(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	teacher := &models.Teacher{ID: 2501, Email: "a@x.com"}

	var wg sync.WaitGroup
	var createdCount int
	var mu sync.Mutex
	for i := int64(1); i <= 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, created, err := repos.Allotments.ApplyAllotment(ctx, teacher, []int64{id}, models.MergePolicy)
			assert.NoError(t, err)
			if created {
				mu.Lock()
				createdCount++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, createdCount)
	stored, err := repos.Allotments.GetByTeacherEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Len(t, stored.CourseIDs, 20)

	all, err := repos.Allotments.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestResetTokenRepository(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	now := time.Now()

	require.NoError(t, repos.ResetTokens.Create(ctx, &models.PasswordResetToken{Token: "first", TeacherEmail: "a@x.com", ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, repos.ResetTokens.Create(ctx, &models.PasswordResetToken{Token: "second", TeacherEmail: "a@x.com", ExpiresAt: now.Add(time.Minute)}))

	_, err := repos.ResetTokens.Get(ctx, "first")
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken, "a new token replaces the previous one")

	tok, err := repos.ResetTokens.Get(ctx, "second")
	require.NoError(t, err)
	assert.True(t, tok.IsUsable(now))

	require.NoError(t, repos.ResetTokens.MarkUsed(ctx, "second"))
	assert.ErrorIs(t, repos.ResetTokens.MarkUsed(ctx, "second"), apperrors.ErrResetTokenAlreadyUsed)

	for i := 0; i < 3; i++ {
		require.NoError(t, repos.ResetTokens.Create(ctx, &models.PasswordResetToken{
			Token:        fmt.Sprintf("old-%d", i),
			TeacherEmail: fmt.Sprintf("t%d@x.com", i),
			ExpiresAt:    now.Add(-time.Minute),
		}))
	}
	removed, err := repos.ResetTokens.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}
