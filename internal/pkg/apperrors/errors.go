package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Teacher errors
var (
	ErrTeacherNotFound    = NewResourceNotFoundError("Teacher not found")
	ErrEmailNotRegistered = NewResourceNotFoundError("Email not registered")
	ErrEmailAlreadyExists = NewConflictError("Email already registered")
	ErrInvalidPassword    = NewUnauthorizedError("Invalid password")
	ErrResetUserNotFound  = NewResourceNotFoundError("User with this email not found")
	ErrInvalidDepartment  = NewCustomError(ErrValidationFailed, "Department must be one of CSE, IT, ME, CE, ECE")
)

// Course errors
var (
	ErrCourseNotFound      = NewResourceNotFoundError("Course not found")
	ErrCourseAlreadyExists = NewConflictError("Course code already exists")
)

// Allotment errors
var (
	ErrAllotmentNotFound = NewResourceNotFoundError("Allotment not found for this teacher")
	ErrNoCoursesAssigned = NewResourceNotFoundError("No courses assigned to this teacher")
)

// Admin errors
var (
	ErrInvalidAdminLogin = NewUnauthorizedError("Invalid admin credentials")
)

// Password reset errors
var (
	ErrInvalidResetToken     = NewCustomError(ErrBadRequest, "Invalid or expired password reset token")
	ErrResetTokenAlreadyUsed = NewCustomError(ErrBadRequest, "Password reset token has already been used")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewUnauthorizedError creates a new custom error for rejected credentials with a message
func NewUnauthorizedError(message string) error {
	return &CustomError{
		Err:     ErrInvalidCredentials,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Message returns the human-readable message carried by a CustomError in the
// chain, or fallback when there is none.
func Message(err error, fallback string) string {
	var custom *CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
