package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/tcasystem/internal/app/controllers"
	"github.com/yigit/tcasystem/internal/app/models"
	"github.com/yigit/tcasystem/internal/app/models/dto"
	"github.com/yigit/tcasystem/internal/middleware"
)

// Controllers bundles the handlers mounted by SetupRouter
type Controllers struct {
	Index     *controllers.IndexController
	Teacher   *controllers.TeacherController
	Course    *controllers.CourseController
	Admin     *controllers.AdminController
	Allotment *controllers.AllotmentController
	Report    *controllers.ReportController
}

// SetupRouter configures all application routes. Paths carry no version
// prefix so existing frontends keep working.
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/", c.Index.Index)
	router.GET("/health", c.Index.Health)

	authenticated := []gin.HandlerFunc{authMiddleware.JWTAuth()}
	adminOnly := []gin.HandlerFunc{authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin)}

	// --- Teacher accounts ---
	auth := router.Group("/auth")
	{
		auth.POST("/register", c.Teacher.Register)
		auth.POST("/login", c.Teacher.Login)
		auth.GET("/list", c.Teacher.List)
		auth.POST("/forgot-password", c.Teacher.ForgotPassword)
		auth.POST("/reset-password", c.Teacher.ResetPassword)
		auth.Group("", adminOnly...).DELETE("/delete/:email", c.Teacher.Delete)
	}

	// --- Course catalog ---
	courses := router.Group("/add/courses")
	{
		courses.GET("/all", c.Course.List)

		manage := courses.Group("", adminOnly...)
		manage.POST("", c.Course.Add)
		manage.DELETE("/delete/:course_id", c.Course.Delete)
	}

	// --- Admin ---
	admin := router.Group("/admin")
	{
		admin.POST("/login", c.Admin.Login)

		reports := admin.Group("", adminOnly...)
		reports.GET("/view-all", c.Report.ViewAll)
		reports.GET("/download-all", c.Report.DownloadAll)
	}

	// --- Allotments ---
	allotments := router.Group("/allotments", adminOnly...)
	{
		allotments.POST("/assign", c.Allotment.Assign)
		allotments.PUT("/edit", c.Allotment.Edit)
		allotments.DELETE("/delete/:teacher_email", c.Allotment.Delete)
	}

	// --- Teacher views ---
	teacher := router.Group("/teacher", authenticated...)
	{
		teacher.GET("/view/:teacher_email", c.Report.ViewTeacher)
		teacher.GET("/download/:teacher_email", c.Report.DownloadTeacher)
	}

	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found").WithDetails(ctx.Request.URL.Path),
		))
	})
}
