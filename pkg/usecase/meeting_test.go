package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
	"github.com/meetingtax/meetingtax/pkg/usecase"
)

func newMeetingInput(f *fixture) *model.Meeting {
	return &model.Meeting{
		Name:            "Design review",
		DurationMinutes: 90,
		StartTime:       time.Now().Add(time.Hour).UnixMilli(),
		Attendees: []model.Attendee{
			{RoleID: f.engineer.ID, DepartmentID: f.engineering.ID, Count: 2},
			{RoleID: f.engineer.ID, DepartmentID: f.sales.ID, Count: 1},
		},
	}
}

func TestMeetingCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("annotates cost and creator", func(t *testing.T) {
		view, err := f.uc.Meeting.Create(ctx, f.employee, newMeetingInput(f))
		gt.NoError(t, err).Required()
		gt.Value(t, view.Meeting.CreatedBy).Equal(f.employee.ID)
		// 17500*1.5*2 + 15000*1.5*1
		gt.Value(t, view.CostCents).Equal(75000)
		gt.Bool(t, view.OverThreshold).False()
	})

	t.Run("flags costly meetings", func(t *testing.T) {
		input := newMeetingInput(f)
		input.Attendees = []model.Attendee{
			{RoleID: f.engineer.ID, DepartmentID: f.engineering.ID, Count: 20},
		}
		view, err := f.uc.Meeting.Create(ctx, f.employee, input)
		gt.NoError(t, err).Required()
		// 17500*1.5*20 = 525000, over the 200000 default
		gt.Bool(t, view.OverThreshold).True()
	})

	t.Run("unknown role", func(t *testing.T) {
		input := newMeetingInput(f)
		input.Attendees[0].RoleID = types.NewJobRoleID()
		_, err := f.uc.Meeting.Create(ctx, f.employee, input)
		gt.Bool(t, errors.Is(err, usecase.ErrValidation)).True()
	})

	t.Run("unknown department", func(t *testing.T) {
		input := newMeetingInput(f)
		input.Attendees[0].DepartmentID = types.NewDepartmentID()
		_, err := f.uc.Meeting.Create(ctx, f.employee, input)
		gt.Bool(t, errors.Is(err, usecase.ErrValidation)).True()
	})

	t.Run("unresolvable rate", func(t *testing.T) {
		role, err := f.repo.JobRole().Create(ctx, &model.JobRole{
			ID: types.NewJobRoleID(), Name: "Unpriced", Slug: "unpriced",
		})
		gt.NoError(t, err).Required()

		input := newMeetingInput(f)
		input.Attendees[0].RoleID = role.ID
		_, err = f.uc.Meeting.Create(ctx, f.employee, input)
		gt.Bool(t, errors.Is(err, usecase.ErrValidation)).True()
	})

	t.Run("structural validation", func(t *testing.T) {
		input := newMeetingInput(f)
		input.DurationMinutes = 0
		_, err := f.uc.Meeting.Create(ctx, f.employee, input)
		gt.Bool(t, errors.Is(err, usecase.ErrValidation)).True()
	})
}

func TestMeetingVisibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	mine := f.createMeeting(t, f.employee, "mine", time.Hour)
	theirs := f.createMeeting(t, f.admin, "theirs", 2*time.Hour)

	t.Run("employee lists only own", func(t *testing.T) {
		views, err := f.uc.Meeting.List(ctx, f.employee, usecase.MeetingFilter{})
		gt.NoError(t, err).Required()
		gt.Array(t, views).Length(1)
		gt.Value(t, views[0].Meeting.ID).Equal(mine.ID)
	})

	t.Run("manager lists department meetings", func(t *testing.T) {
		views, err := f.uc.Meeting.List(ctx, f.manager, usecase.MeetingFilter{})
		gt.NoError(t, err).Required()
		gt.Array(t, views).Length(2)
	})

	t.Run("admin lists all", func(t *testing.T) {
		views, err := f.uc.Meeting.List(ctx, f.admin, usecase.MeetingFilter{})
		gt.NoError(t, err).Required()
		gt.Array(t, views).Length(2)
	})

	t.Run("time bounds narrow the listing", func(t *testing.T) {
		views, err := f.uc.Meeting.List(ctx, f.admin, usecase.MeetingFilter{
			FromMillis: time.Now().Add(90 * time.Minute).UnixMilli(),
		})
		gt.NoError(t, err).Required()
		gt.Array(t, views).Length(1)
		gt.Value(t, views[0].Meeting.ID).Equal(theirs.ID)
	})

	t.Run("department filter", func(t *testing.T) {
		views, err := f.uc.Meeting.List(ctx, f.admin, usecase.MeetingFilter{DepartmentID: f.sales.ID})
		gt.NoError(t, err).Required()
		gt.Array(t, views).Length(0)
	})

	t.Run("get hides invisible meetings", func(t *testing.T) {
		_, err := f.uc.Meeting.Get(ctx, f.employee, theirs.ID)
		gt.Bool(t, errors.Is(err, usecase.ErrNotFound)).True()
	})

	t.Run("get own meeting", func(t *testing.T) {
		view, err := f.uc.Meeting.Get(ctx, f.employee, mine.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, view.Meeting.Name).Equal("mine")
	})
}

func TestMeetingUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	meeting := f.createMeeting(t, f.employee, "standup", time.Hour)

	t.Run("creator may update", func(t *testing.T) {
		update := newMeetingInput(f)
		update.Name = "standup renamed"
		view, err := f.uc.Meeting.Update(ctx, f.employee, meeting.ID, update)
		gt.NoError(t, err).Required()
		gt.Value(t, view.Meeting.Name).Equal("standup renamed")
		gt.Value(t, view.Meeting.CreatedBy).Equal(f.employee.ID)
	})

	t.Run("others may not", func(t *testing.T) {
		_, err := f.uc.Meeting.Update(ctx, f.manager, meeting.ID, newMeetingInput(f))
		gt.Bool(t, errors.Is(err, usecase.ErrNotAuthorized)).True()
	})

	t.Run("admin may", func(t *testing.T) {
		_, err := f.uc.Meeting.Update(ctx, f.admin, meeting.ID, newMeetingInput(f))
		gt.NoError(t, err)
	})

	t.Run("unknown meeting", func(t *testing.T) {
		_, err := f.uc.Meeting.Update(ctx, f.admin, types.NewMeetingID(), newMeetingInput(f))
		gt.Bool(t, errors.Is(err, usecase.ErrNotFound)).True()
	})
}

func TestMeetingRemove(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("cancel future meeting returns savings", func(t *testing.T) {
		meeting := f.createMeeting(t, f.employee, "cancel me", time.Hour)
		saved, err := f.uc.Meeting.Remove(ctx, f.employee, meeting.ID, true)
		gt.NoError(t, err).Required()
		// 17500 * 1 * 3
		gt.Value(t, saved).Equal(52500)

		_, err = f.uc.Meeting.Get(ctx, f.employee, meeting.ID)
		gt.Bool(t, errors.Is(err, usecase.ErrNotFound)).True()
	})

	t.Run("cancel past meeting refused", func(t *testing.T) {
		meeting := f.createMeeting(t, f.employee, "already held", -time.Hour)
		_, err := f.uc.Meeting.Remove(ctx, f.employee, meeting.ID, true)
		gt.Bool(t, errors.Is(err, usecase.ErrCannotCancelPast)).True()

		// A plain delete still works for the record keeper
		saved, err := f.uc.Meeting.Remove(ctx, f.employee, meeting.ID, false)
		gt.NoError(t, err).Required()
		gt.Value(t, saved).Equal(52500)
	})

	t.Run("not the creator", func(t *testing.T) {
		meeting := f.createMeeting(t, f.employee, "not yours", time.Hour)
		_, err := f.uc.Meeting.Remove(ctx, f.manager, meeting.ID, true)
		gt.Bool(t, errors.Is(err, usecase.ErrNotAuthorized)).True()
	})

	t.Run("clock controls the cutoff", func(t *testing.T) {
		meeting := f.createMeeting(t, f.employee, "soon", time.Minute)
		usecase.SetMeetingClock(f.uc.Meeting, func() time.Time {
			return time.Now().Add(5 * time.Minute)
		})
		defer usecase.SetMeetingClock(f.uc.Meeting, time.Now)

		_, err := f.uc.Meeting.Remove(ctx, f.employee, meeting.ID, true)
		gt.Bool(t, errors.Is(err, usecase.ErrCannotCancelPast)).True()
	})
}
