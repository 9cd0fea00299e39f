package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// UserID identifies a user record
type UserID string

// CredentialID identifies a credential record
type CredentialID string

// ResetTokenID identifies a password reset token record
type ResetTokenID string

// DepartmentID identifies a department
type DepartmentID string

// JobRoleID identifies a job role (rate configuration), distinct from
// the user's access role
type JobRoleID string

// RateID identifies an hourly rate row
type RateID string

// MeetingID identifies a meeting
type MeetingID string

func NewUserID() UserID             { return UserID(uuid.NewString()) }
func NewCredentialID() CredentialID { return CredentialID(uuid.NewString()) }
func NewResetTokenID() ResetTokenID { return ResetTokenID(uuid.NewString()) }
func NewDepartmentID() DepartmentID { return DepartmentID(uuid.NewString()) }
func NewJobRoleID() JobRoleID       { return JobRoleID(uuid.NewString()) }
func NewRateID() RateID             { return RateID(uuid.NewString()) }
func NewMeetingID() MeetingID       { return MeetingID(uuid.NewString()) }

func (id UserID) String() string       { return string(id) }
func (id CredentialID) String() string { return string(id) }
func (id ResetTokenID) String() string { return string(id) }
func (id DepartmentID) String() string { return string(id) }
func (id JobRoleID) String() string    { return string(id) }
func (id RateID) String() string       { return string(id) }
func (id MeetingID) String() string    { return string(id) }

func validateID(kind, v string) error {
	if v == "" {
		return goerr.New(kind + " ID is empty")
	}
	return nil
}

func (id UserID) Validate() error       { return validateID("user", string(id)) }
func (id CredentialID) Validate() error { return validateID("credential", string(id)) }
func (id ResetTokenID) Validate() error { return validateID("reset token", string(id)) }
func (id DepartmentID) Validate() error { return validateID("department", string(id)) }
func (id JobRoleID) Validate() error    { return validateID("job role", string(id)) }
func (id RateID) Validate() error       { return validateID("rate", string(id)) }
func (id MeetingID) Validate() error    { return validateID("meeting", string(id)) }
