package models

import "time"

// Allotment is the set of courses assigned to one teacher. The teacher email
// is the natural key; at most one allotment exists per teacher.
type Allotment struct {
	TeacherEmail string    `json:"teacher_email" db:"teacher_email" bson:"teacher_email"`
	TeacherID    int64     `json:"teacher_id" db:"teacher_id" bson:"teacher_id"`
	TeacherName  string    `json:"teacher_name" db:"teacher_name" bson:"teacher_name"`
	CourseIDs    []int64   `json:"course_ids" db:"course_ids" bson:"course_ids"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at" bson:"updated_at"`
}

// AllotmentPolicy decides how a requested course list is combined with the
// course set already stored for a teacher.
type AllotmentPolicy int

const (
	// MergePolicy keeps every stored course and adds the requested ones.
	MergePolicy AllotmentPolicy = iota
	// ReplacePolicy discards the stored set in favour of the requested one.
	ReplacePolicy
)

// String returns the policy name used in logs
func (p AllotmentPolicy) String() string {
	switch p {
	case MergePolicy:
		return "merge"
	case ReplacePolicy:
		return "replace"
	default:
		return "unknown"
	}
}

// Apply computes the course set that results from applying the policy to the
// stored ids. The result never contains duplicates. Merge keeps the stored
// order and appends unseen requested ids; Replace keeps the requested order.
func (p AllotmentPolicy) Apply(existing, requested []int64) []int64 {
	if p == ReplacePolicy {
		return UniqueCourseIDs(requested)
	}

	merged := make([]int64, 0, len(existing)+len(requested))
	merged = append(merged, existing...)
	merged = append(merged, requested...)
	return UniqueCourseIDs(merged)
}

// UniqueCourseIDs drops repeated ids, keeping the first occurrence of each.
func UniqueCourseIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
