package model

import (
	"time"

	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

// HourlyRate is the price of one role-hour in cents. A row without a
// DepartmentID is the organization-wide default for the role; a row with
// one is a department override taking precedence over the default.
// At most one row exists per (RoleID, DepartmentID) pair.
type HourlyRate struct {
	ID           types.RateID
	RoleID       types.JobRoleID
	RateCents    int64
	DepartmentID types.DepartmentID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsDefault reports whether this row is the organization-wide default
// for its role. Defaults must not be removed through the override
// removal path.
func (r *HourlyRate) IsDefault() bool {
	return r.DepartmentID == ""
}
