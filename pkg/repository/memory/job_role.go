package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

type jobRoleRepository struct {
	mu    sync.RWMutex
	roles map[types.JobRoleID]*model.JobRole
}

func newJobRoleRepository() *jobRoleRepository {
	return &jobRoleRepository{
		roles: make(map[types.JobRoleID]*model.JobRole),
	}
}

func copyJobRole(jr *model.JobRole) *model.JobRole {
	copied := *jr
	return &copied
}

func (r *jobRoleRepository) Create(ctx context.Context, role *model.JobRole) (*model.JobRole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyJobRole(role)
	if created.ID == "" {
		created.ID = types.NewJobRoleID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.roles[created.ID] = created
	return copyJobRole(created), nil
}

func (r *jobRoleRepository) Get(ctx context.Context, id types.JobRoleID) (*model.JobRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, exists := r.roles[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "job role not found", goerr.V("id", id))
	}
	return copyJobRole(role), nil
}

func (r *jobRoleRepository) GetBySlug(ctx context.Context, slug string) (*model.JobRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, jr := range r.roles {
		if jr.Slug == slug {
			return copyJobRole(jr), nil
		}
	}
	return nil, goerr.Wrap(ErrNotFound, "job role not found", goerr.V("slug", slug))
}

func (r *jobRoleRepository) List(ctx context.Context) ([]*model.JobRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roles := make([]*model.JobRole, 0, len(r.roles))
	for _, jr := range r.roles {
		roles = append(roles, copyJobRole(jr))
	}
	sort.Slice(roles, func(i, j int) bool {
		return roles[i].Name < roles[j].Name
	})
	return roles, nil
}

func (r *jobRoleRepository) Update(ctx context.Context, role *model.JobRole) (*model.JobRole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.roles[role.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "job role not found", goerr.V("id", role.ID))
	}

	updated := copyJobRole(role)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.roles[updated.ID] = updated
	return copyJobRole(updated), nil
}

func (r *jobRoleRepository) Delete(ctx context.Context, id types.JobRoleID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.roles[id]; !exists {
		return goerr.Wrap(ErrNotFound, "job role not found", goerr.V("id", id))
	}
	delete(r.roles, id)
	return nil
}
