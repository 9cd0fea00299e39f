package model

import (
	"time"

	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

// VisibleMeetings filters meetings down to those the user may see.
//
//	Employee:  only meetings they created
//	Manager:   meetings with at least one attendee group in their
//	           department; none if they have no department
//	Executive: all
//	Admin:     all
func VisibleMeetings(user *User, meetings []*Meeting) []*Meeting {
	switch user.Role {
	case types.RoleExecutive, types.RoleAdmin:
		return meetings

	case types.RoleManager:
		if user.DepartmentID == "" {
			return []*Meeting{}
		}
		visible := make([]*Meeting, 0, len(meetings))
		for _, m := range meetings {
			if m.HasDepartment(user.DepartmentID) {
				visible = append(visible, m)
			}
		}
		return visible

	default:
		visible := make([]*Meeting, 0, len(meetings))
		for _, m := range meetings {
			if m.CreatedBy == user.ID {
				visible = append(visible, m)
			}
		}
		return visible
	}
}

// CanViewMeeting reports whether the user may see a single meeting,
// consistent with VisibleMeetings.
func CanViewMeeting(user *User, meeting *Meeting) bool {
	switch user.Role {
	case types.RoleExecutive, types.RoleAdmin:
		return true
	case types.RoleManager:
		return user.DepartmentID != "" && meeting.HasDepartment(user.DepartmentID)
	default:
		return meeting.CreatedBy == user.ID
	}
}

// CanModifyMeeting reports whether the user may update or delete the
// meeting: its creator or any Admin.
func CanModifyMeeting(user *User, meeting *Meeting) bool {
	return user.IsAdmin() || meeting.CreatedBy == user.ID
}

// CanCancelMeeting reports whether the meeting can still be cancelled:
// modification rights plus a start time in the future.
func CanCancelMeeting(user *User, meeting *Meeting, now time.Time) bool {
	return CanModifyMeeting(user, meeting) && !meeting.Started(now)
}
