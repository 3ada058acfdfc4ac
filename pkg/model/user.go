package model

import "time"

// User is an account record in the identity collection. Role is empty until
// the user picks student or tutor after signup.
type User struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email        string    `json:"email" bson:"email" validate:"required,email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role,omitempty" bson:"role,omitempty" validate:"omitempty,oneof=student tutor"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Session is the authenticated caller's identity, resolved once from the
// bearer token and passed explicitly to stores and projections.
type Session struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role,omitempty"`
}
