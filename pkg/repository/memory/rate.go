package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

type rateRepository struct {
	mu    sync.RWMutex
	rates map[types.RateID]*model.HourlyRate
}

func newRateRepository() *rateRepository {
	return &rateRepository{
		rates: make(map[types.RateID]*model.HourlyRate),
	}
}

func copyRate(rate *model.HourlyRate) *model.HourlyRate {
	copied := *rate
	return &copied
}

func (r *rateRepository) Create(ctx context.Context, rate *model.HourlyRate) (*model.HourlyRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyRate(rate)
	if created.ID == "" {
		created.ID = types.NewRateID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.rates[created.ID] = created
	return copyRate(created), nil
}

func (r *rateRepository) Get(ctx context.Context, id types.RateID) (*model.HourlyRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rate, exists := r.rates[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "rate not found", goerr.V("id", id))
	}
	return copyRate(rate), nil
}

func (r *rateRepository) GetByKey(ctx context.Context, roleID types.JobRoleID, departmentID types.DepartmentID) (*model.HourlyRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rate := range r.rates {
		if rate.RoleID == roleID && rate.DepartmentID == departmentID {
			return copyRate(rate), nil
		}
	}
	return nil, goerr.Wrap(ErrNotFound, "rate not found",
		goerr.V("roleID", roleID), goerr.V("departmentID", departmentID))
}

func (r *rateRepository) List(ctx context.Context) ([]*model.HourlyRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rates := make([]*model.HourlyRate, 0, len(r.rates))
	for _, rate := range r.rates {
		rates = append(rates, copyRate(rate))
	}
	return rates, nil
}

func (r *rateRepository) ListByRole(ctx context.Context, roleID types.JobRoleID) ([]*model.HourlyRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rates []*model.HourlyRate
	for _, rate := range r.rates {
		if rate.RoleID == roleID {
			rates = append(rates, copyRate(rate))
		}
	}
	return rates, nil
}

func (r *rateRepository) Update(ctx context.Context, rate *model.HourlyRate) (*model.HourlyRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.rates[rate.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "rate not found", goerr.V("id", rate.ID))
	}

	updated := copyRate(rate)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.rates[updated.ID] = updated
	return copyRate(updated), nil
}

func (r *rateRepository) Delete(ctx context.Context, id types.RateID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rates[id]; !exists {
		return goerr.Wrap(ErrNotFound, "rate not found", goerr.V("id", id))
	}
	delete(r.rates, id)
	return nil
}
