package models

import "time"

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleEditor UserRole = "editor"
)

// ValidUserRole reports whether r is a member of the closed role set.
func ValidUserRole(r UserRole) bool {
	return r == UserRoleAdmin || r == UserRoleEditor
}

// User is an editing principal. Users are provisioned out of band (see
// cmd/usertool); the public API only authenticates them and lets them update
// their own username and email.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
