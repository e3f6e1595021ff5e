package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appModels "github.com/yigit/tcasystem/internal/app/models"
	"github.com/yigit/tcasystem/internal/app/repositories/memory"
)

func TestCreateDefaultData_Idempotent(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	require.NoError(t, repos.Courses.Create(ctx, &appModels.Course{Code: "CS201", Name: "Custom DS", Hours: 5}))

	require.NoError(t, CreateDefaultData(ctx, repos.Courses, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(ctx, repos.Courses, zerolog.Nop()))

	all, err := repos.Courses.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(DefaultCourses))

	for _, c := range all {
		if c.Code == "CS201" {
			assert.Equal(t, "Custom DS", c.Name)
		}
	}
}
