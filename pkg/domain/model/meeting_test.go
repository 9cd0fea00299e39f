package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

func validMeeting() *model.Meeting {
	return &model.Meeting{
		ID:              types.NewMeetingID(),
		Name:            "Sprint planning",
		DurationMinutes: 60,
		StartTime:       time.Now().Add(time.Hour).UnixMilli(),
		CreatedBy:       types.NewUserID(),
		Attendees: []model.Attendee{
			{RoleID: types.NewJobRoleID(), DepartmentID: types.NewDepartmentID(), Count: 3},
		},
	}
}

func TestMeetingValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		gt.NoError(t, validMeeting().Validate())
	})

	t.Run("recurring valid", func(t *testing.T) {
		m := validMeeting()
		m.Recurring = &model.Recurrence{Frequency: types.FrequencyWeekly}
		gt.NoError(t, m.Validate())
	})

	cases := map[string]func(m *model.Meeting){
		"empty name":         func(m *model.Meeting) { m.Name = "" },
		"zero duration":      func(m *model.Meeting) { m.DurationMinutes = 0 },
		"negative duration":  func(m *model.Meeting) { m.DurationMinutes = -30 },
		"missing start time": func(m *model.Meeting) { m.StartTime = 0 },
		"no attendees":       func(m *model.Meeting) { m.Attendees = nil },
		"zero count":         func(m *model.Meeting) { m.Attendees[0].Count = 0 },
		"missing role":       func(m *model.Meeting) { m.Attendees[0].RoleID = "" },
		"missing department": func(m *model.Meeting) { m.Attendees[0].DepartmentID = "" },
		"bad frequency": func(m *model.Meeting) {
			m.Recurring = &model.Recurrence{Frequency: types.Frequency("hourly")}
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			m := validMeeting()
			mutate(m)
			gt.Error(t, m.Validate())
		})
	}
}

func TestMeetingStarted(t *testing.T) {
	now := time.Now()

	future := &model.Meeting{StartTime: now.Add(time.Minute).UnixMilli()}
	gt.Bool(t, future.Started(now)).False()

	past := &model.Meeting{StartTime: now.Add(-time.Minute).UnixMilli()}
	gt.Bool(t, past.Started(now)).True()

	exact := &model.Meeting{StartTime: now.UnixMilli()}
	gt.Bool(t, exact.Started(now)).True()
}

func TestMeetingHasDepartment(t *testing.T) {
	dept := types.NewDepartmentID()
	m := &model.Meeting{
		Attendees: []model.Attendee{
			{RoleID: types.NewJobRoleID(), DepartmentID: dept, Count: 1},
			{RoleID: types.NewJobRoleID(), DepartmentID: types.NewDepartmentID(), Count: 2},
		},
	}

	gt.Bool(t, m.HasDepartment(dept)).True()
	gt.Bool(t, m.HasDepartment(types.NewDepartmentID())).False()
}
