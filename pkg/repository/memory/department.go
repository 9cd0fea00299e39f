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

type departmentRepository struct {
	mu    sync.RWMutex
	depts map[types.DepartmentID]*model.Department
}

func newDepartmentRepository() *departmentRepository {
	return &departmentRepository{
		depts: make(map[types.DepartmentID]*model.Department),
	}
}

func copyDepartment(d *model.Department) *model.Department {
	copied := *d
	return &copied
}

func (r *departmentRepository) Create(ctx context.Context, dept *model.Department) (*model.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyDepartment(dept)
	if created.ID == "" {
		created.ID = types.NewDepartmentID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.depts[created.ID] = created
	return copyDepartment(created), nil
}

func (r *departmentRepository) Get(ctx context.Context, id types.DepartmentID) (*model.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dept, exists := r.depts[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "department not found", goerr.V("id", id))
	}
	return copyDepartment(dept), nil
}

func (r *departmentRepository) GetBySlug(ctx context.Context, slug string) (*model.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.depts {
		if d.Slug == slug {
			return copyDepartment(d), nil
		}
	}
	return nil, goerr.Wrap(ErrNotFound, "department not found", goerr.V("slug", slug))
}

func (r *departmentRepository) List(ctx context.Context) ([]*model.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	depts := make([]*model.Department, 0, len(r.depts))
	for _, d := range r.depts {
		depts = append(depts, copyDepartment(d))
	}
	sort.Slice(depts, func(i, j int) bool {
		return depts[i].Name < depts[j].Name
	})
	return depts, nil
}

func (r *departmentRepository) Update(ctx context.Context, dept *model.Department) (*model.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.depts[dept.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "department not found", goerr.V("id", dept.ID))
	}

	updated := copyDepartment(dept)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.depts[updated.ID] = updated
	return copyDepartment(updated), nil
}

func (r *departmentRepository) Delete(ctx context.Context, id types.DepartmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.depts[id]; !exists {
		return goerr.Wrap(ErrNotFound, "department not found", goerr.V("id", id))
	}
	delete(r.depts, id)
	return nil
}
