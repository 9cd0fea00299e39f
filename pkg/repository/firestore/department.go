package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type departmentDocument struct {
	ID        string    `firestore:"id"`
	Name      string    `firestore:"name"`
	Slug      string    `firestore:"slug"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func toDepartmentDocument(d *model.Department) *departmentDocument {
	return &departmentDocument{
		ID:        d.ID.String(),
		Name:      d.Name,
		Slug:      d.Slug,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (d *departmentDocument) toModel() *model.Department {
	return &model.Department{
		ID:        types.DepartmentID(d.ID),
		Name:      d.Name,
		Slug:      d.Slug,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type departmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newDepartmentRepository(client *firestore.Client) *departmentRepository {
	return &departmentRepository{client: client}
}

func (r *departmentRepository) collection() string {
	return collectionName(r.collectionPrefix, "departments")
}

func (r *departmentRepository) Create(ctx context.Context, dept *model.Department) (*model.Department, error) {
	now := time.Now().UTC()
	created := *dept
	if created.ID == "" {
		created.ID = types.NewDepartmentID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toDepartmentDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create department", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *departmentRepository) Get(ctx context.Context, id types.DepartmentID) (*model.Department, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "department not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get department", goerr.V("id", id))
	}

	var d departmentDocument
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal department")
	}
	return d.toModel(), nil
}

func (r *departmentRepository) GetBySlug(ctx context.Context, slug string) (*model.Department, error) {
	iter := r.client.Collection(r.collection()).Where("slug", "==", slug).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "department not found", goerr.V("slug", slug))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query department", goerr.V("slug", slug))
	}

	var d departmentDocument
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal department")
	}
	return d.toModel(), nil
}

func (r *departmentRepository) List(ctx context.Context) ([]*model.Department, error) {
	iter := r.client.Collection(r.collection()).OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var depts []*model.Department
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list departments")
		}

		var d departmentDocument
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal department")
		}
		depts = append(depts, d.toModel())
	}
	return depts, nil
}

func (r *departmentRepository) Update(ctx context.Context, dept *model.Department) (*model.Department, error) {
	docRef := r.client.Collection(r.collection()).Doc(dept.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "department not found", goerr.V("id", dept.ID))
		}
		return nil, goerr.Wrap(err, "failed to get department", goerr.V("id", dept.ID))
	}

	var existing departmentDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal department")
	}

	updated := *dept
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toDepartmentDocument(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update department", goerr.V("id", dept.ID))
	}
	return &updated, nil
}

func (r *departmentRepository) Delete(ctx context.Context, id types.DepartmentID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "department not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get department", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete department", goerr.V("id", id))
	}
	return nil
}
