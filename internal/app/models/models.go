package models

// RoleType defines the role carried in an access token
type RoleType string

const (
	RoleAdmin   RoleType = "admin"
	RoleTeacher RoleType = "teacher"
)

// Identifier seeds used when a collection is still empty.
const (
	FirstTeacherID int64 = 2501
	FirstCourseID  int64 = 1
)
