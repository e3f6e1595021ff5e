package dto

import "github.com/yigit/tcasystem/internal/app/models"

// AddCourseRequest represents a new catalog entry
type AddCourseRequest struct {
	CourseName string `json:"course_name" binding:"required,max=200"`
	CourseCode string `json:"course_code" binding:"required,max=20"`
	Hours      int    `json:"hours" binding:"required,gt=0"`
}

// AddCourseResponse confirms a course with its assigned id
type AddCourseResponse struct {
	Message  string `json:"message"`
	CourseID int64  `json:"course_id"`
}

// CourseResponse is a catalog entry
type CourseResponse struct {
	ID         int64  `json:"id"`
	CourseName string `json:"course_name"`
	CourseCode string `json:"course_code"`
	Hours      int    `json:"hours"`
}

// CourseListResponse wraps the catalog
type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
}

// CourseSummary is a course as printed in allotment views
type CourseSummary struct {
	CourseName string `json:"course_name"`
	CourseCode string `json:"course_code"`
	Hours      int    `json:"hours"`
}

// NewCourseListResponse converts the catalog
func NewCourseListResponse(courses []*models.Course) CourseListResponse {
	out := make([]CourseResponse, len(courses))
	for i, c := range courses {
		out[i] = CourseResponse{ID: c.ID, CourseName: c.Name, CourseCode: c.Code, Hours: c.Hours}
	}
	return CourseListResponse{Courses: out}
}

// NewCourseSummaries converts resolved courses
func NewCourseSummaries(courses []*models.Course) []CourseSummary {
	out := make([]CourseSummary, len(courses))
	for i, c := range courses {
		out[i] = CourseSummary{CourseName: c.Name, CourseCode: c.Code, Hours: c.Hours}
	}
	return out
}
