package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/meetingtax/meetingtax/pkg/domain/interfaces"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
	"github.com/meetingtax/meetingtax/pkg/repository/memory"
	"github.com/meetingtax/meetingtax/pkg/usecase"
)

// fixture seeds a memory store with an org small enough to reason
// about: two departments, one role priced at $150/h by default with a
// $175/h engineering override, and one user per role tier.
type fixture struct {
	repo interfaces.Repository
	uc   *usecase.UseCases

	engineering *model.Department
	sales       *model.Department
	engineer    *model.JobRole

	admin    *model.User
	employee *model.User
	manager  *model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repo := memory.New()
	f := &fixture{repo: repo, uc: usecase.New(repo)}

	var err error
	f.engineering, err = repo.Department().Create(ctx, &model.Department{
		ID: types.NewDepartmentID(), Name: "Engineering", Slug: "engineering",
	})
	gt.NoError(t, err).Required()
	f.sales, err = repo.Department().Create(ctx, &model.Department{
		ID: types.NewDepartmentID(), Name: "Sales", Slug: "sales",
	})
	gt.NoError(t, err).Required()
	f.engineer, err = repo.JobRole().Create(ctx, &model.JobRole{
		ID: types.NewJobRoleID(), Name: "Engineer", Slug: "engineer",
	})
	gt.NoError(t, err).Required()

	_, err = repo.Rate().Create(ctx, &model.HourlyRate{
		ID: types.NewRateID(), RoleID: f.engineer.ID, RateCents: 15000,
	})
	gt.NoError(t, err).Required()
	_, err = repo.Rate().Create(ctx, &model.HourlyRate{
		ID: types.NewRateID(), RoleID: f.engineer.ID, DepartmentID: f.engineering.ID, RateCents: 17500,
	})
	gt.NoError(t, err).Required()

	f.admin = f.createUser(t, "Admin", types.RoleAdmin, "")
	f.employee = f.createUser(t, "Employee", types.RoleEmployee, "")
	f.manager = f.createUser(t, "Manager", types.RoleManager, f.engineering.ID)

	return f
}

func (f *fixture) createUser(t *testing.T, name string, role types.UserRole, deptID types.DepartmentID) *model.User {
	t.Helper()
	user, err := f.repo.User().Create(context.Background(), &model.User{
		ID:           types.NewUserID(),
		Name:         name,
		Email:        model.NormalizeEmail(name + "@example.com"),
		Role:         role,
		DepartmentID: deptID,
	})
	gt.NoError(t, err).Required()
	return user
}

// createMeeting stores a one hour meeting of three engineering
// engineers starting at the given offset from now.
func (f *fixture) createMeeting(t *testing.T, creator *model.User, name string, startIn time.Duration) *model.Meeting {
	t.Helper()
	meeting, err := f.repo.Meeting().Create(context.Background(), &model.Meeting{
		ID:              types.NewMeetingID(),
		Name:            name,
		DurationMinutes: 60,
		StartTime:       time.Now().Add(startIn).UnixMilli(),
		CreatedBy:       creator.ID,
		Attendees: []model.Attendee{
			{RoleID: f.engineer.ID, DepartmentID: f.engineering.ID, Count: 3},
		},
	})
	gt.NoError(t, err).Required()
	return meeting
}
