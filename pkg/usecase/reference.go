package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/interfaces"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

// ReferenceUseCase manages the department and job role catalogs that
// meetings and rates refer to.
type ReferenceUseCase struct {
	repo interfaces.Repository
}

func NewReferenceUseCase(repo interfaces.Repository) *ReferenceUseCase {
	return &ReferenceUseCase{repo: repo}
}

// Slugify lowercases a display name and replaces runs of
// non-alphanumeric characters with single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func (uc *ReferenceUseCase) ListDepartments(ctx context.Context) ([]*model.Department, error) {
	depts, err := uc.repo.Department().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list departments")
	}
	return depts, nil
}

func (uc *ReferenceUseCase) CreateDepartment(ctx context.Context, actor *model.User, name string) (*model.Department, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, goerr.Wrap(ErrValidation, "department name is required")
	}
	slug := Slugify(name)
	if slug == "" {
		return nil, goerr.Wrap(ErrValidation, "department name must contain letters or digits")
	}

	if _, err := uc.repo.Department().GetBySlug(ctx, slug); err == nil {
		return nil, goerr.Wrap(ErrConflict, "department already exists", goerr.V("slug", slug))
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, goerr.Wrap(err, "failed to check department slug")
	}

	dept, err := uc.repo.Department().Create(ctx, &model.Department{
		ID:   types.NewDepartmentID(),
		Name: name,
		Slug: slug,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create department")
	}
	return dept, nil
}

func (uc *ReferenceUseCase) UpdateDepartment(ctx context.Context, actor *model.User, id types.DepartmentID, name string) (*model.Department, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, goerr.Wrap(ErrValidation, "department name is required")
	}
	slug := Slugify(name)

	dept, err := uc.repo.Department().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrNotFound, "department not found", goerr.V("departmentID", id))
		}
		return nil, goerr.Wrap(err, "failed to get department")
	}

	if slug != dept.Slug {
		if existing, err := uc.repo.Department().GetBySlug(ctx, slug); err == nil && existing.ID != id {
			return nil, goerr.Wrap(ErrConflict, "department already exists", goerr.V("slug", slug))
		} else if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(err, "failed to check department slug")
		}
	}

	dept.Name = name
	dept.Slug = slug

	updated, err := uc.repo.Department().Update(ctx, dept)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update department")
	}
	return updated, nil
}

// DeleteDepartment refuses to remove a department still referenced by
// users, rate overrides or meeting attendee groups.
func (uc *ReferenceUseCase) DeleteDepartment(ctx context.Context, actor *model.User, id types.DepartmentID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	if _, err := uc.repo.Department().Get(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrNotFound, "department not found", goerr.V("departmentID", id))
		}
		return goerr.Wrap(err, "failed to get department")
	}

	users, err := uc.repo.User().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list users")
	}
	for _, u := range users {
		if u.DepartmentID == id {
			return goerr.Wrap(ErrConflict, "department has assigned users", goerr.V("departmentID", id))
		}
	}

	rates, err := uc.repo.Rate().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list rates")
	}
	for _, r := range rates {
		if r.DepartmentID == id {
			return goerr.Wrap(ErrConflict, "department has rate overrides", goerr.V("departmentID", id))
		}
	}

	meetings, err := uc.repo.Meeting().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list meetings")
	}
	for _, m := range meetings {
		if m.HasDepartment(id) {
			return goerr.Wrap(ErrConflict, "department is referenced by meetings", goerr.V("departmentID", id))
		}
	}

	if err := uc.repo.Department().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete department")
	}
	return nil
}

func (uc *ReferenceUseCase) ListJobRoles(ctx context.Context) ([]*model.JobRole, error) {
	roles, err := uc.repo.JobRole().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list job roles")
	}
	return roles, nil
}

func (uc *ReferenceUseCase) CreateJobRole(ctx context.Context, actor *model.User, name string) (*model.JobRole, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, goerr.Wrap(ErrValidation, "job role name is required")
	}
	slug := Slugify(name)
	if slug == "" {
		return nil, goerr.Wrap(ErrValidation, "job role name must contain letters or digits")
	}

	if _, err := uc.repo.JobRole().GetBySlug(ctx, slug); err == nil {
		return nil, goerr.Wrap(ErrConflict, "job role already exists", goerr.V("slug", slug))
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, goerr.Wrap(err, "failed to check job role slug")
	}

	role, err := uc.repo.JobRole().Create(ctx, &model.JobRole{
		ID:   types.NewJobRoleID(),
		Name: name,
		Slug: slug,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create job role")
	}
	return role, nil
}

func (uc *ReferenceUseCase) UpdateJobRole(ctx context.Context, actor *model.User, id types.JobRoleID, name string) (*model.JobRole, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, goerr.Wrap(ErrValidation, "job role name is required")
	}
	slug := Slugify(name)

	role, err := uc.repo.JobRole().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrNotFound, "job role not found", goerr.V("roleID", id))
		}
		return nil, goerr.Wrap(err, "failed to get job role")
	}

	if slug != role.Slug {
		if existing, err := uc.repo.JobRole().GetBySlug(ctx, slug); err == nil && existing.ID != id {
			return nil, goerr.Wrap(ErrConflict, "job role already exists", goerr.V("slug", slug))
		} else if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(err, "failed to check job role slug")
		}
	}

	role.Name = name
	role.Slug = slug

	updated, err := uc.repo.JobRole().Update(ctx, role)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update job role")
	}
	return updated, nil
}

// DeleteJobRole refuses to remove a role still referenced by rates or
// meeting attendee groups.
func (uc *ReferenceUseCase) DeleteJobRole(ctx context.Context, actor *model.User, id types.JobRoleID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	if _, err := uc.repo.JobRole().Get(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrNotFound, "job role not found", goerr.V("roleID", id))
		}
		return goerr.Wrap(err, "failed to get job role")
	}

	rates, err := uc.repo.Rate().ListByRole(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to list rates")
	}
	if len(rates) > 0 {
		return goerr.Wrap(ErrConflict, "job role has configured rates", goerr.V("roleID", id))
	}

	meetings, err := uc.repo.Meeting().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list meetings")
	}
	for _, m := range meetings {
		for _, a := range m.Attendees {
			if a.RoleID == id {
				return goerr.Wrap(ErrConflict, "job role is referenced by meetings", goerr.V("roleID", id))
			}
		}
	}

	if err := uc.repo.JobRole().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete job role")
	}
	return nil
}

func requireAdmin(actor *model.User) error {
	if actor == nil {
		return goerr.Wrap(ErrUnauthenticated, "sign in required")
	}
	if !actor.IsAdmin() {
		return goerr.Wrap(ErrNotAuthorized, "admin role required")
	}
	return nil
}
