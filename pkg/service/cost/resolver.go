package cost

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/interfaces"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

// Resolver resolves the hourly rate for a (role, department) pair.
// A department-specific override takes precedence over the role's
// organization default; when neither exists there is no rate.
type Resolver struct {
	rates interfaces.RateRepository
}

func NewResolver(rates interfaces.RateRepository) *Resolver {
	return &Resolver{rates: rates}
}

// Resolve returns the applicable rate row, or ok=false when the role has
// no override for the department and no organization default.
func (r *Resolver) Resolve(ctx context.Context, roleID types.JobRoleID, departmentID types.DepartmentID) (*model.HourlyRate, bool, error) {
	if departmentID != "" {
		rate, err := r.rates.GetByKey(ctx, roleID, departmentID)
		if err == nil {
			return rate, true, nil
		}
		if !errors.Is(err, interfaces.ErrNotFound) {
			return nil, false, goerr.Wrap(err, "failed to look up rate override",
				goerr.V("roleID", roleID), goerr.V("departmentID", departmentID))
		}
	}

	rate, err := r.rates.GetByKey(ctx, roleID, "")
	if err == nil {
		return rate, true, nil
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, false, goerr.Wrap(err, "failed to look up default rate", goerr.V("roleID", roleID))
	}

	return nil, false, nil
}
