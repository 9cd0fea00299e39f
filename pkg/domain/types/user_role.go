package types

import "fmt"

// UserRole represents a user's access level
type UserRole string

const (
	RoleEmployee  UserRole = "Employee"
	RoleManager   UserRole = "Manager"
	RoleExecutive UserRole = "Executive"
	RoleAdmin     UserRole = "Admin"
)

// AllUserRoles returns all valid user roles
func AllUserRoles() []UserRole {
	return []UserRole{
		RoleEmployee,
		RoleManager,
		RoleExecutive,
		RoleAdmin,
	}
}

// IsValid checks if the user role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleEmployee,
		RoleManager,
		RoleExecutive,
		RoleAdmin:
		return true
	default:
		return false
	}
}

// String returns the string representation of the user role
func (r UserRole) String() string {
	return string(r)
}

// ParseUserRole parses a string into a UserRole
func ParseUserRole(s string) (UserRole, error) {
	role := UserRole(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid user role: %s", s)
	}
	return role, nil
}
