package model

import (
	"strings"
	"time"

	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

// User is a profile record. The authentication secret lives on the
// matching Credential, never here.
type User struct {
	ID           types.UserID
	Name         string
	Email        string
	Role         types.UserRole
	DepartmentID types.DepartmentID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user may manage reference data and other
// users.
func (u *User) IsAdmin() bool {
	return u.Role == types.RoleAdmin
}

// NormalizeEmail canonicalizes an email address for storage and lookup.
// All new records must be stored normalized; legacy dirty data is fixed
// by the normalize-emails migration command, not at request time.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
