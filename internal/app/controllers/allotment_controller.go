package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/tcasystem/internal/app/models/dto"
	"github.com/yigit/tcasystem/internal/app/services"
	"github.com/yigit/tcasystem/internal/middleware"
)

// AllotmentController handles course assignment under /allotments
type AllotmentController struct {
	allotmentService services.AllotmentService
	logger           zerolog.Logger
}

// NewAllotmentController creates a new AllotmentController
func NewAllotmentController(allotmentService services.AllotmentService, logger zerolog.Logger) *AllotmentController {
	return &AllotmentController{
		allotmentService: allotmentService,
		logger:           logger,
	}
}

// Assign merges the requested courses into the teacher's allotment
// @Summary Assign courses to a teacher
// @Tags allotments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AllotmentRequest true "Teacher email and course ids"
// @Success 200 {object} dto.AllotmentResponse
// @Failure 404 {object} dto.ErrorResponse "Teacher or course not found"
// @Router /allotments/assign [post]
func (c *AllotmentController) Assign(ctx *gin.Context) {
	var req dto.AllotmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.allotmentService.Assign(ctx.Request.Context(), req.TeacherEmail, req.CourseIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AllotmentResponse{
		Message:      services.AssignMessage(result),
		TeacherEmail: result.TeacherEmail,
		Courses:      result.CourseIDs,
	})
}

// Edit replaces the teacher's course set
// @Summary Replace a teacher's courses
// @Tags allotments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AllotmentRequest true "Teacher email and course ids"
// @Success 200 {object} dto.AllotmentResponse
// @Failure 404 {object} dto.ErrorResponse "Teacher or course not found"
// @Router /allotments/edit [put]
func (c *AllotmentController) Edit(ctx *gin.Context) {
	var req dto.AllotmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.allotmentService.Edit(ctx.Request.Context(), req.TeacherEmail, req.CourseIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AllotmentResponse{
		Message:      services.EditMessage(result),
		TeacherEmail: result.TeacherEmail,
		Courses:      result.CourseIDs,
	})
}

// Delete removes the teacher's allotment
// @Summary Delete a teacher's allotment
// @Tags allotments
// @Produce json
// @Security BearerAuth
// @Param teacher_email path string true "Teacher email"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Allotment not found"
// @Router /allotments/delete/{teacher_email} [delete]
func (c *AllotmentController) Delete(ctx *gin.Context) {
	email := ctx.Param("teacher_email")
	if err := c.allotmentService.Delete(ctx.Request.Context(), email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: services.DeleteMessage(email)})
}
