package models

import "time"

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleDirector  UserRole = "director"
	RoleCounselor UserRole = "counselor"
)

// User is a staff member who records events. Authentication here is
// deliberately thin; the scoring core only cares about the actor id.
type User struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
