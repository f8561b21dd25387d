package models

import (
	"time"
)

type User struct {
	ID           string    `json:"id" db:"id"`
	USN          string    `json:"usn" db:"usn"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	Role         string    `json:"role" db:"role"` // student, admin
	IsActive     bool      `json:"is_active" db:"is_active"`
	IsPlaced     bool      `json:"is_placed" db:"is_placed"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) String() string {
	return string(r)
}

// CurrentUser is the authenticated identity attached to every request
// by the auth middleware.
type CurrentUser struct {
	ID       string
	Role     string
	IsPlaced bool
}

func (u CurrentUser) IsAdmin() bool {
	return u.Role == RoleAdmin.String()
}

type PasswordResetToken struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	TokenHash string    `json:"-" db:"token"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	Used      bool      `json:"used" db:"used"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
