package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/interfaces"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
	"github.com/meetingtax/meetingtax/pkg/utils/logging"
)

// RateUseCase manages hourly rates: one default per job role plus
// optional per-department overrides.
type RateUseCase struct {
	repo interfaces.Repository
}

func NewRateUseCase(repo interfaces.Repository) *RateUseCase {
	return &RateUseCase{repo: repo}
}

// RateEntry is a rate joined with its role and department names for
// display.
type RateEntry struct {
	Rate           *model.HourlyRate
	RoleName       string
	DepartmentName string
}

// List returns all configured rates with their reference names
// resolved. Dangling references keep an empty name rather than
// failing the listing.
func (uc *RateUseCase) List(ctx context.Context, actor *model.User) ([]*RateEntry, error) {
	if actor == nil {
		return nil, goerr.Wrap(ErrUnauthenticated, "sign in required")
	}

	rates, err := uc.repo.Rate().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list rates")
	}

	roles, err := uc.repo.JobRole().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list job roles")
	}
	roleNames := make(map[types.JobRoleID]string, len(roles))
	for _, r := range roles {
		roleNames[r.ID] = r.Name
	}

	depts, err := uc.repo.Department().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list departments")
	}
	deptNames := make(map[types.DepartmentID]string, len(depts))
	for _, d := range depts {
		deptNames[d.ID] = d.Name
	}

	entries := make([]*RateEntry, 0, len(rates))
	for _, rate := range rates {
		entries = append(entries, &RateEntry{
			Rate:           rate,
			RoleName:       roleNames[rate.RoleID],
			DepartmentName: deptNames[rate.DepartmentID],
		})
	}
	return entries, nil
}

// Set upserts the rate for a (role, department) pair. An empty
// department ID sets the role's default rate. Admin only.
func (uc *RateUseCase) Set(ctx context.Context, actor *model.User, roleID types.JobRoleID, departmentID types.DepartmentID, rateCents int64) (*model.HourlyRate, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	if rateCents <= 0 {
		return nil, goerr.Wrap(ErrValidation, "rate must be positive", goerr.V("rateCents", rateCents))
	}

	if _, err := uc.repo.JobRole().Get(ctx, roleID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrValidation, "unknown job role", goerr.V("roleID", roleID))
		}
		return nil, goerr.Wrap(err, "failed to get job role")
	}

	if departmentID != "" {
		if _, err := uc.repo.Department().Get(ctx, departmentID); err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, goerr.Wrap(ErrValidation, "unknown department", goerr.V("departmentID", departmentID))
			}
			return nil, goerr.Wrap(err, "failed to get department")
		}
	}

	existing, err := uc.repo.Rate().GetByKey(ctx, roleID, departmentID)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return nil, goerr.Wrap(err, "failed to get rate")
	}

	if existing != nil {
		existing.RateCents = rateCents
		updated, err := uc.repo.Rate().Update(ctx, existing)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to update rate")
		}
		logging.From(ctx).Info("rate updated",
			"actorID", actor.ID, "roleID", roleID, "departmentID", departmentID, "rateCents", rateCents)
		return updated, nil
	}

	created, err := uc.repo.Rate().Create(ctx, &model.HourlyRate{
		ID:           types.NewRateID(),
		RoleID:       roleID,
		DepartmentID: departmentID,
		RateCents:    rateCents,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create rate")
	}
	logging.From(ctx).Info("rate created",
		"actorID", actor.ID, "roleID", roleID, "departmentID", departmentID, "rateCents", rateCents)
	return created, nil
}

// RemoveOverride deletes a department override. Default rates cannot
// be removed once set, so every role with rates keeps a fallback.
func (uc *RateUseCase) RemoveOverride(ctx context.Context, actor *model.User, id types.RateID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	rate, err := uc.repo.Rate().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrNotFound, "rate not found", goerr.V("rateID", id))
		}
		return goerr.Wrap(err, "failed to get rate")
	}

	if rate.IsDefault() {
		return goerr.Wrap(ErrCannotDeleteDefault, "cannot delete a role default rate", goerr.V("rateID", id))
	}

	if err := uc.repo.Rate().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete rate")
	}
	return nil
}
