package entity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleGuest UserRole = "guest"
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// ParseRole accepts only the three known roles. Unknown values are an error,
// never a silent default.
func ParseRole(s string) (UserRole, error) {
	role := UserRole(strings.ToLower(strings.TrimSpace(s)))
	if !role.Valid() {
		return "", fmt.Errorf("invalid role %q", s)
	}
	return role, nil
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleGuest, RoleUser, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
}

// Actor is the identity performing a request. Guests carry uuid.Nil.
type Actor struct {
	ID   uuid.UUID
	Role UserRole
}

func GuestActor() Actor {
	return Actor{ID: uuid.Nil, Role: RoleGuest}
}

func (a Actor) IsGuest() bool {
	return a.Role == RoleGuest || a.ID == uuid.Nil
}
