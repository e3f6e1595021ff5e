// Package controllers handles HTTP request handling
package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/tcasystem/internal/app/models/dto"
	"github.com/yigit/tcasystem/internal/app/services"
	"github.com/yigit/tcasystem/internal/middleware"
)

// TeacherController handles teacher accounts under /auth
type TeacherController struct {
	teacherService *services.TeacherService
	logger         zerolog.Logger
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(teacherService *services.TeacherService, logger zerolog.Logger) *TeacherController {
	return &TeacherController{
		teacherService: teacherService,
		logger:         logger,
	}
}

// Register handles teacher registration
// @Summary Register a new teacher
// @Description Creates a teacher account and sends a welcome email. The password is never emailed.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterTeacherRequest true "Teacher registration information"
// @Success 200 {object} dto.RegisterResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request or email already registered"
// @Router /auth/register [post]
func (c *TeacherController) Register(ctx *gin.Context) {
	var req dto.RegisterTeacherRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	teacher, err := c.teacherService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RegisterResponse{
		Message: "Teacher registered successfully",
		ID:      teacher.ID,
	})
}

// Login handles teacher login
// @Summary Teacher login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid password"
// @Failure 404 {object} dto.ErrorResponse "Email not registered"
// @Router /auth/login [post]
func (c *TeacherController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	token, err := c.teacherService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, token)
}

// List returns every teacher without credentials
// @Summary List teachers
// @Tags auth
// @Produce json
// @Success 200 {array} dto.TeacherResponse
// @Router /auth/list [get]
func (c *TeacherController) List(ctx *gin.Context) {
	teachers, err := c.teacherService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewTeacherListResponse(teachers))
}

// Delete removes a teacher by email
// @Summary Delete a teacher
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Param email path string true "Teacher email"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /auth/delete/{email} [delete]
func (c *TeacherController) Delete(ctx *gin.Context) {
	email := ctx.Param("email")
	if err := c.teacherService.Delete(ctx.Request.Context(), email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("Teacher with email %s deleted successfully", email),
	})
}

// ForgotPassword emails a password reset link
// @Summary Request a password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "User with this email not found"
// @Router /auth/forgot-password [post]
func (c *TeacherController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.teacherService.ForgotPassword(ctx.Request.Context(), req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset link sent to your email"})
}

// ResetPassword redeems a reset token
// @Summary Reset a password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Email, reset token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid, expired or used token"
// @Router /auth/reset-password [post]
func (c *TeacherController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.teacherService.ResetPassword(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset successfully"})
}
