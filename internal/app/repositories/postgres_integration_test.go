package repositories

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/tcasystem/internal/app/migrations"
	"github.com/yigit/tcasystem/internal/app/models"
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
)

// openTestPool connects to TEST_DATABASE_URL, applies the migrations and empties
// every table. Tests are skipped when the variable is unset.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.NewMigrator(pool).MigrateFromDirectory(ctx, filepath.Join("..", "..", "..", "migrations")))
	_, err = pool.Exec(ctx, `TRUNCATE teachers, courses, allotments, password_reset_tokens`)
	require.NoError(t, err)
	return pool
}

func TestPostgres_TeacherAndCourseIDs(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	repos := NewRepositories(pool)

	a := &models.Teacher{Email: "a@x.com", Name: "A", Dept: models.DeptCSE, PasswordHash: "h"}
	require.NoError(t, repos.Teachers.Create(ctx, a))
	assert.Equal(t, int64(2501), a.ID)

	err := repos.Teachers.Create(ctx, &models.Teacher{Email: "a@x.com", Name: "A2", Dept: models.DeptIT, PasswordHash: "h"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	c := &models.Course{Code: "CS101", Name: "Intro", Hours: 3}
	require.NoError(t, repos.Courses.Create(ctx, c))
	assert.Equal(t, int64(1), c.ID)
	assert.ErrorIs(t, repos.Courses.Create(ctx, &models.Course{Code: "CS101", Name: "x", Hours: 1}), apperrors.ErrCourseAlreadyExists)
}

func TestPostgres_ConcurrentTeacherCreateGetsDistinctIDs(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	repos := NewRepositories(pool)

	var wg sync.WaitGroup
	ids := make([]int64, 10)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			teacher := &models.Teacher{Email: string(rune('a'+i)) + "@x.com", Name: "T", Dept: models.DeptME, PasswordHash: "h"}
			assert.NoError(t, repos.Teachers.Create(ctx, teacher))
			ids[i] = teacher.ID
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
}

func TestPostgres_ApplyAllotment(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	repos := NewRepositories(pool)
	teacher := &models.Teacher{ID: 2501, Email: "a@x.com", Name: "Ada"}

	a, created, err := repos.Allotments.ApplyAllotment(ctx, teacher, []int64{2, 1, 2}, models.MergePolicy)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, []int64{2, 1}, a.CourseIDs)

	a, created, err = repos.Allotments.ApplyAllotment(ctx, teacher, []int64{3, 2}, models.MergePolicy)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, []int64{2, 1, 3}, a.CourseIDs)

	a, _, err = repos.Allotments.ApplyAllotment(ctx, teacher, []int64{}, models.ReplacePolicy)
	require.NoError(t, err)
	assert.Equal(t, []int64{}, a.CourseIDs)

	require.NoError(t, repos.Allotments.DeleteByTeacherEmail(ctx, "a@x.com"))
	assert.ErrorIs(t, repos.Allotments.DeleteByTeacherEmail(ctx, "a@x.com"), apperrors.ErrAllotmentNotFound)
}
