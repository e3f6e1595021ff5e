package dto

// AllotmentRequest names a teacher and the course ids to assign
type AllotmentRequest struct {
	TeacherEmail string  `json:"teacher_email" binding:"required,email"`
	CourseIDs    []int64 `json:"course_ids" binding:"required"`
}

// AllotmentResponse confirms an assign or edit
type AllotmentResponse struct {
	Message      string  `json:"message"`
	TeacherEmail string  `json:"teacher_email"`
	Courses      []int64 `json:"courses"`
}

// TeacherSummary identifies a teacher in allotment views
type TeacherSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TeacherViewResponse is one teacher's resolved allotment
type TeacherViewResponse struct {
	Teacher TeacherSummary  `json:"teacher"`
	Courses []CourseSummary `json:"courses"`
}

// TeacherAllotment is one entry of the all-teachers view
type TeacherAllotment struct {
	TeacherName  string          `json:"teacher_name"`
	TeacherEmail string          `json:"teacher_email"`
	Courses      []CourseSummary `json:"courses"`
}

// AllAllotmentsResponse wraps the all-teachers view
type AllAllotmentsResponse struct {
	Allotments []TeacherAllotment `json:"allotments"`
}
