package models

import "time"

// PasswordResetToken is a single-use token issued by the forgot-password flow
type PasswordResetToken struct {
	Token        string    `json:"-" db:"token" bson:"token"`
	TeacherEmail string    `json:"teacher_email" db:"teacher_email" bson:"teacher_email"`
	ExpiresAt    time.Time `json:"expires_at" db:"expires_at" bson:"expires_at"`
	Used         bool      `json:"used" db:"used" bson:"used"`
}

// IsUsable reports whether the token can still be redeemed at the given time
func (t *PasswordResetToken) IsUsable(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
