package models

// Course represents an entry of the course catalog.
type Course struct {
	ID    int64  `json:"id" db:"id" bson:"id"`
	Code  string `json:"course_code" db:"course_code" bson:"course_code"`
	Name  string `json:"course_name" db:"course_name" bson:"course_name"`
	Hours int    `json:"hours" db:"hours" bson:"hours"`
}
