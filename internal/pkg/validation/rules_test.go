package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Dept  string `json:"dept" validate:"required,department"`
	Email string `json:"email_address" validate:"required,email"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, Register(v))
	return v
}

func TestDepartmentRule(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(sample{Dept: "ECE", Email: "a@b.com"}))

	err := v.Struct(sample{Dept: "EEE", Email: "a@b.com"})
	var fieldErrors validator.ValidationErrors
	require.True(t, errors.As(err, &fieldErrors))
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, DepartmentTag, fieldErrors[0].Tag())
	assert.Equal(t, "dept", fieldErrors[0].Field())
}

func TestJSONFieldNames(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(sample{Dept: "CSE", Email: "nope"})
	var fieldErrors validator.ValidationErrors
	require.True(t, errors.As(err, &fieldErrors))
	assert.Equal(t, "email_address", fieldErrors[0].Field())
	assert.Equal(t, "Email", fieldErrors[0].StructField())
}
