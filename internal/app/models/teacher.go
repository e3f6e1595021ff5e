package models

import (
	"time"
)

// Teacher defines the teacher model based on the 'teachers' table
type Teacher struct {
	ID           int64      `json:"id" db:"id" bson:"id"`                      // Sequential identifier, starts at 2501
	Email        string     `json:"email" db:"email" bson:"email"`             // Natural key, unique
	Name         string     `json:"name" db:"name" bson:"name"`                // Display name
	Dept         Department `json:"dept" db:"dept" bson:"dept"`                // One of CSE, IT, ME, CE, ECE
	PasswordHash string     `json:"-" db:"password_hash" bson:"password_hash"` // bcrypt hash, never serialized
	CreatedAt    time.Time  `json:"created_at" db:"created_at" bson:"created_at"`
}
