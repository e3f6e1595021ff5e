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

const pdfContentType = "application/pdf"

// ReportController serves allotment views and PDF downloads
type ReportController struct {
	reportService *services.ReportService
	logger        zerolog.Logger
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService, logger zerolog.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger,
	}
}

// ViewTeacher returns one teacher's resolved allotment
// @Summary View a teacher's courses
// @Tags view
// @Produce json
// @Security BearerAuth
// @Param teacher_email path string true "Teacher email"
// @Success 200 {object} dto.TeacherViewResponse
// @Failure 404 {object} dto.ErrorResponse "Teacher not found or no courses assigned"
// @Router /teacher/view/{teacher_email} [get]
func (c *ReportController) ViewTeacher(ctx *gin.Context) {
	report, err := c.reportService.ViewTeacher(ctx.Request.Context(), ctx.Param("teacher_email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TeacherViewResponse{
		Teacher: dto.TeacherSummary{Name: report.TeacherName, Email: report.TeacherEmail},
		Courses: dto.NewCourseSummaries(report.Courses),
	})
}

// DownloadTeacher streams the single-teacher PDF report
// @Summary Download a teacher's report
// @Tags view
// @Produce application/pdf
// @Security BearerAuth
// @Param teacher_email path string true "Teacher email"
// @Success 200 {file} file "PDF report"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found or no courses assigned"
// @Router /teacher/download/{teacher_email} [get]
func (c *ReportController) DownloadTeacher(ctx *gin.Context) {
	email := ctx.Param("teacher_email")
	data, err := c.reportService.RenderTeacherReport(ctx.Request.Context(), email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Debug().Str("teacherEmail", email).Int("bytes", len(data)).Msg("Teacher report rendered")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=teacher_%s_report.pdf", email))
	ctx.Data(http.StatusOK, pdfContentType, data)
}

// ViewAll returns every allotment whose teacher still exists
// @Summary View all allotments
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AllAllotmentsResponse
// @Router /admin/view-all [get]
func (c *ReportController) ViewAll(ctx *gin.Context) {
	reports, err := c.reportService.ViewAllAllotments(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	allotments := make([]dto.TeacherAllotment, len(reports))
	for i, r := range reports {
		allotments[i] = dto.TeacherAllotment{
			TeacherName:  r.TeacherName,
			TeacherEmail: r.TeacherEmail,
			Courses:      dto.NewCourseSummaries(r.Courses),
		}
	}

	ctx.JSON(http.StatusOK, dto.AllAllotmentsResponse{Allotments: allotments})
}

// DownloadAll streams the all-teachers PDF report
// @Summary Download the report of all allotments
// @Tags admin
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} file "PDF report"
// @Router /admin/download-all [get]
func (c *ReportController) DownloadAll(ctx *gin.Context) {
	data, err := c.reportService.RenderAllReport(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename=all_teachers_report.pdf")
	ctx.Data(http.StatusOK, pdfContentType, data)
}
