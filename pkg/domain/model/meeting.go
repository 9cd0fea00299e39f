package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

// Attendee is a group of people with the same role and department
// attending a meeting.
type Attendee struct {
	RoleID       types.JobRoleID
	DepartmentID types.DepartmentID
	Count        int64
}

// Recurrence describes how a meeting repeats. EndDate is epoch
// milliseconds; zero means no end.
type Recurrence struct {
	Frequency types.Frequency
	EndDate   int64
}

// Meeting is a recorded meeting with its attendee composition.
// StartTime is epoch milliseconds, matching the client contract.
type Meeting struct {
	ID              types.MeetingID
	Name            string
	Description     string
	DurationMinutes int64
	StartTime       int64
	CreatedBy       types.UserID
	Attendees       []Attendee
	Recurring       *Recurrence
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks structural validity of the meeting record.
func (m *Meeting) Validate() error {
	if m.Name == "" {
		return goerr.New("meeting name is required")
	}
	if m.DurationMinutes <= 0 {
		return goerr.New("meeting duration must be positive", goerr.V("durationMinutes", m.DurationMinutes))
	}
	if m.StartTime <= 0 {
		return goerr.New("meeting start time is required")
	}
	if len(m.Attendees) == 0 {
		return goerr.New("meeting needs at least one attendee group")
	}
	for i, a := range m.Attendees {
		if err := a.RoleID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid attendee role", goerr.V("index", i))
		}
		if err := a.DepartmentID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid attendee department", goerr.V("index", i))
		}
		if a.Count <= 0 {
			return goerr.New("attendee count must be positive", goerr.V("index", i), goerr.V("count", a.Count))
		}
	}
	if m.Recurring != nil && !m.Recurring.Frequency.IsValid() {
		return goerr.New("invalid recurrence frequency", goerr.V("frequency", m.Recurring.Frequency))
	}
	return nil
}

// Started reports whether the meeting's start time is at or before now.
func (m *Meeting) Started(now time.Time) bool {
	return m.StartTime <= now.UnixMilli()
}

// HasDepartment reports whether any attendee group belongs to the given
// department.
func (m *Meeting) HasDepartment(deptID types.DepartmentID) bool {
	for _, a := range m.Attendees {
		if a.DepartmentID == deptID {
			return true
		}
	}
	return false
}
