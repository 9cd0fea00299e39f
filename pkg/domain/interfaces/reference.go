package interfaces

import (
	"context"

	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

// DepartmentRepository persists departments, indexed by unique slug
type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) (*model.Department, error)
	Get(ctx context.Context, id types.DepartmentID) (*model.Department, error)
	GetBySlug(ctx context.Context, slug string) (*model.Department, error)
	List(ctx context.Context) ([]*model.Department, error)
	Update(ctx context.Context, dept *model.Department) (*model.Department, error)
	Delete(ctx context.Context, id types.DepartmentID) error
}

// JobRoleRepository persists job roles, indexed by unique slug
type JobRoleRepository interface {
	Create(ctx context.Context, role *model.JobRole) (*model.JobRole, error)
	Get(ctx context.Context, id types.JobRoleID) (*model.JobRole, error)
	GetBySlug(ctx context.Context, slug string) (*model.JobRole, error)
	List(ctx context.Context) ([]*model.JobRole, error)
	Update(ctx context.Context, role *model.JobRole) (*model.JobRole, error)
	Delete(ctx context.Context, id types.JobRoleID) error
}

// SettingRepository persists generic key/value settings
type SettingRepository interface {
	Get(ctx context.Context, key string) (*model.Setting, error)
	Put(ctx context.Context, setting *model.Setting) (*model.Setting, error)
}
