package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yigit/tcasystem/internal/app/models"
	"github.com/yigit/tcasystem/internal/app/repositories"
	"github.com/yigit/tcasystem/internal/app/repositories/memory"
	"github.com/yigit/tcasystem/internal/pkg/auth"
)

func init() {
	auth.BcryptCost = 4
}

// fixture is a memory-backed directory with a few teachers and courses
type fixture struct {
	repos   *repositories.Repositories
	courses []*models.Course
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewRepositories()

	for _, teacher := range []*models.Teacher{
		{Email: "ada@college.edu", Name: "Ada Lovelace", Dept: models.DeptCSE},
		{Email: "alan@college.edu", Name: "Alan Turing", Dept: models.DeptIT},
	} {
		require.NoError(t, repos.Teachers.Create(ctx, teacher))
	}

	f := &fixture{repos: repos}
	for _, course := range []*models.Course{
		{Code: "CS101", Name: "Programming", Hours: 4},
		{Code: "CS201", Name: "Data Structures", Hours: 3},
		{Code: "CS301", Name: "Operating Systems", Hours: 3},
	} {
		require.NoError(t, repos.Courses.Create(ctx, course))
		f.courses = append(f.courses, course)
	}
	return f
}
