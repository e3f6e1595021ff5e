package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/tcasystem/internal/app/models"
	appRepos "github.com/yigit/tcasystem/internal/app/repositories"
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
)

// DefaultCourses is the starter catalog offered to a fresh installation
var DefaultCourses = []appModels.Course{
	{Code: "CS101", Name: "Introduction to Programming", Hours: 4},
	{Code: "CS201", Name: "Data Structures", Hours: 4},
	{Code: "CS202", Name: "Database Management Systems", Hours: 3},
	{Code: "CS301", Name: "Operating Systems", Hours: 3},
	{Code: "CS302", Name: "Computer Networks", Hours: 3},
	{Code: "MA101", Name: "Engineering Mathematics", Hours: 4},
}

// CreateDefaultData adds every default course whose code is not in the catalog
// yet. Existing courses are left untouched, so it is safe on every start.
func CreateDefaultData(ctx context.Context, courses appRepos.CourseStore, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default course catalog...")

	var finalErr error
	added := 0
	for _, def := range DefaultCourses {
		course := def
		err := courses.Create(ctx, &course)
		switch {
		case err == nil:
			added++
		case errors.Is(err, apperrors.ErrConflict):
			lgr.Debug().Str("code", def.Code).Msg("Default course already present")
		default:
			lgr.Error().Err(err).Str("code", def.Code).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Int("added", added).Msg("Default course catalog ready")
	return finalErr
}
