// Package services holds the business rules of the allotment system.
//
// Services defined in this package:
// - TeacherService: teacher accounts, login and password reset
// - CourseService: the course catalog
// - AdminService: shared admin credential login
// - AllotmentService: assigning courses to teachers
// - ReportService: allotment views and PDF reports
package services
