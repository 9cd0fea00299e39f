package interfaces

import (
	"context"

	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

// RateRepository persists hourly rates, with indexed lookup by the
// composite (roleID, departmentID) key. An empty departmentID addresses
// the organization default row for the role.
type RateRepository interface {
	Create(ctx context.Context, rate *model.HourlyRate) (*model.HourlyRate, error)
	Get(ctx context.Context, id types.RateID) (*model.HourlyRate, error)
	GetByKey(ctx context.Context, roleID types.JobRoleID, departmentID types.DepartmentID) (*model.HourlyRate, error)
	List(ctx context.Context) ([]*model.HourlyRate, error)
	ListByRole(ctx context.Context, roleID types.JobRoleID) ([]*model.HourlyRate, error)
	Update(ctx context.Context, rate *model.HourlyRate) (*model.HourlyRate, error)
	Delete(ctx context.Context, id types.RateID) error
}

// MeetingRepository persists meetings
type MeetingRepository interface {
	Create(ctx context.Context, meeting *model.Meeting) (*model.Meeting, error)
	Get(ctx context.Context, id types.MeetingID) (*model.Meeting, error)
	List(ctx context.Context) ([]*model.Meeting, error)
	Update(ctx context.Context, meeting *model.Meeting) (*model.Meeting, error)
	Delete(ctx context.Context, id types.MeetingID) error
}
