package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	err := fmt.Errorf("insert teacher: %w", &pgconn.PgError{Code: "23505", ConstraintName: "teachers_email_key"})

	assert.True(t, IsDuplicateConstraintError(err, "teachers_email_key"))
	assert.False(t, IsDuplicateConstraintError(err, "courses_course_code_key"))
	assert.True(t, IsUniqueViolation(err))
}

func TestIsUniqueViolation_OtherErrors(t *testing.T) {
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsMongoDuplicateKey(errors.New("boom")))
}
