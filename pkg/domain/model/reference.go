package model

import (
	"time"

	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

// Department is a named organizational unit (e.g. Engineering, Sales).
type Department struct {
	ID        types.DepartmentID
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// JobRole is a billable role for rate configuration (e.g. Engineer, PM).
// Distinct from types.UserRole, which is the access level.
type JobRole struct {
	ID        types.JobRoleID
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
