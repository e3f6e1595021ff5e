package models

// Department is the academic department a teacher belongs to
type Department string

const (
	DeptCSE Department = "CSE"
	DeptIT  Department = "IT"
	DeptME  Department = "ME"
	DeptCE  Department = "CE"
	DeptECE Department = "ECE"
)

// Departments lists every accepted department in display order
var Departments = []Department{DeptCSE, DeptIT, DeptME, DeptCE, DeptECE}

// IsValid reports whether d is one of the known departments
func (d Department) IsValid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}
