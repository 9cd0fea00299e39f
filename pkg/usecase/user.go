package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/interfaces"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
	"github.com/meetingtax/meetingtax/pkg/utils/logging"
)

// UserUseCase covers profile and admin user management operations.
type UserUseCase struct {
	repo     interfaces.Repository
	sessions *authCache
}

func NewUserUseCase(repo interfaces.Repository, sessions *authCache) *UserUseCase {
	return &UserUseCase{repo: repo, sessions: sessions}
}

func (uc *UserUseCase) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	user, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("userID", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("userID", id))
	}
	return user, nil
}

// UserEntry is a user joined with their department name for display.
type UserEntry struct {
	User           *model.User
	DepartmentName string
}

// List returns all users with department names resolved. Admin only.
func (uc *UserUseCase) List(ctx context.Context, actor *model.User) ([]*UserEntry, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	users, err := uc.repo.User().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list users")
	}

	depts, err := uc.repo.Department().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list departments")
	}
	deptNames := make(map[types.DepartmentID]string, len(depts))
	for _, d := range depts {
		deptNames[d.ID] = d.Name
	}

	entries := make([]*UserEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, &UserEntry{
			User:           u,
			DepartmentName: deptNames[u.DepartmentID],
		})
	}
	return entries, nil
}

// UpdateProfile lets a user change their own name and department.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, actor *model.User, name string, departmentID types.DepartmentID) (*model.User, error) {
	if actor == nil {
		return nil, goerr.Wrap(ErrUnauthenticated, "sign in required")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, goerr.Wrap(ErrValidation, "name is required")
	}

	if departmentID != "" {
		if _, err := uc.repo.Department().Get(ctx, departmentID); err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, goerr.Wrap(ErrValidation, "unknown department", goerr.V("departmentID", departmentID))
			}
			return nil, goerr.Wrap(err, "failed to get department")
		}
	}

	user, err := uc.repo.User().Get(ctx, actor.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("userID", actor.ID))
	}

	user.Name = name
	user.DepartmentID = departmentID

	updated, err := uc.repo.User().Update(ctx, user)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update user", goerr.V("userID", actor.ID))
	}

	uc.sessions.removeUser(actor.ID)
	return updated, nil
}

// UpdateRole changes another user's role. Admin only. An admin cannot
// demote themselves, so the system always keeps at least one admin.
func (uc *UserUseCase) UpdateRole(ctx context.Context, actor *model.User, id types.UserID, role types.UserRole) (*model.User, error) {
	if actor == nil {
		return nil, goerr.Wrap(ErrUnauthenticated, "sign in required")
	}
	if !actor.IsAdmin() {
		return nil, goerr.Wrap(ErrNotAuthorized, "admin role required")
	}
	if !role.IsValid() {
		return nil, goerr.Wrap(ErrValidation, "invalid role", goerr.V("role", role))
	}
	if actor.ID == id && role != types.RoleAdmin {
		return nil, goerr.Wrap(ErrValidation, "cannot change own admin role")
	}

	user, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("userID", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("userID", id))
	}

	user.Role = role

	updated, err := uc.repo.User().Update(ctx, user)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update user", goerr.V("userID", id))
	}

	// The new role must apply on the next request, not after the
	// validation cache TTL.
	uc.sessions.removeUser(id)

	logging.From(ctx).Info("user role updated",
		"actorID", actor.ID, "userID", id, "role", role)
	return updated, nil
}

// UpdateDepartment assigns a user to a department. Admin only.
func (uc *UserUseCase) UpdateDepartment(ctx context.Context, actor *model.User, id types.UserID, departmentID types.DepartmentID) (*model.User, error) {
	if actor == nil {
		return nil, goerr.Wrap(ErrUnauthenticated, "sign in required")
	}
	if !actor.IsAdmin() {
		return nil, goerr.Wrap(ErrNotAuthorized, "admin role required")
	}

	if departmentID != "" {
		if _, err := uc.repo.Department().Get(ctx, departmentID); err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, goerr.Wrap(ErrValidation, "unknown department", goerr.V("departmentID", departmentID))
			}
			return nil, goerr.Wrap(err, "failed to get department")
		}
	}

	user, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("userID", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("userID", id))
	}

	user.DepartmentID = departmentID

	updated, err := uc.repo.User().Update(ctx, user)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update user", goerr.V("userID", id))
	}

	uc.sessions.removeUser(id)
	return updated, nil
}
