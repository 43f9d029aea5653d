package domain

import (
	"fmt"
	"time"
)

// Role of a user
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole converts a raw value into a known role
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// User represents an account of the booking system
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// IsAdmin returns true for administrators
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Actor is the identity on whose behalf an operation runs.
// It is passed explicitly into every use case instead of being read from request state.
type Actor struct {
	UserID int64
	Role   Role
}

// IsAdmin returns true if the actor holds the administrator role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAccess returns true if the actor owns the resource or is an administrator
func (a Actor) CanAccess(ownerID int64) bool {
	return a.IsAdmin() || a.UserID == ownerID
}
