package dto

import "github.com/yigit/tcasystem/internal/app/models"

// RegisterTeacherRequest represents a teacher registration
type RegisterTeacherRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Dept     string `json:"dept" binding:"required,department"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest represents teacher or admin login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents an issued access token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
	Email       string `json:"email"`
	ExpiresIn   int64  `json:"expires_in"`
}

// RegisterResponse confirms a registration with the assigned teacher id
type RegisterResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// TeacherResponse is a teacher as listed, without credentials
type TeacherResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Dept  string `json:"dept"`
}

// ForgotPasswordRequest starts the password reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest redeems a reset token
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// NewTeacherResponse converts a teacher model
func NewTeacherResponse(t *models.Teacher) TeacherResponse {
	return TeacherResponse{
		ID:    t.ID,
		Name:  t.Name,
		Email: t.Email,
		Dept:  string(t.Dept),
	}
}

// NewTeacherListResponse converts a list of teachers
func NewTeacherListResponse(teachers []*models.Teacher) []TeacherResponse {
	out := make([]TeacherResponse, len(teachers))
	for i, t := range teachers {
		out[i] = NewTeacherResponse(t)
	}
	return out
}
