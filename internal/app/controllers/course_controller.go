package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/tcasystem/internal/app/models/dto"
	"github.com/yigit/tcasystem/internal/app/services"
	"github.com/yigit/tcasystem/internal/middleware"
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
)

// CourseController handles the course catalog under /add
type CourseController struct {
	courseService *services.CourseService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		logger:        logger,
	}
}

// Add handles course creation
// @Summary Add a course
// @Tags course
// @Accept json
// @Produce json
// @Param request body dto.AddCourseRequest true "Course"
// @Success 200 {object} dto.AddCourseResponse
// @Failure 400 {object} dto.ErrorResponse "Course code already exists"
// @Router /add/courses [post]
func (c *CourseController) Add(ctx *gin.Context) {
	var req dto.AddCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.Add(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AddCourseResponse{
		Message:  "Course added successfully",
		CourseID: course.ID,
	})
}

// List returns the catalog
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {object} dto.CourseListResponse
// @Router /add/courses/all [get]
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.courseService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewCourseListResponse(courses))
}

// Delete removes a course by id
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course id"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid course id"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /add/courses/delete/{course_id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("course_id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("course_id must be an integer"))
		return
	}

	if err := c.courseService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("Course with ID %d deleted successfully", id),
	})
}
