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

type jobRoleDocument struct {
	ID        string    `firestore:"id"`
	Name      string    `firestore:"name"`
	Slug      string    `firestore:"slug"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func toJobRoleDocument(r *model.JobRole) *jobRoleDocument {
	return &jobRoleDocument{
		ID:        r.ID.String(),
		Name:      r.Name,
		Slug:      r.Slug,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (d *jobRoleDocument) toModel() *model.JobRole {
	return &model.JobRole{
		ID:        types.JobRoleID(d.ID),
		Name:      d.Name,
		Slug:      d.Slug,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type jobRoleRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newJobRoleRepository(client *firestore.Client) *jobRoleRepository {
	return &jobRoleRepository{client: client}
}

func (r *jobRoleRepository) collection() string {
	return collectionName(r.collectionPrefix, "job_roles")
}

func (r *jobRoleRepository) Create(ctx context.Context, role *model.JobRole) (*model.JobRole, error) {
	now := time.Now().UTC()
	created := *role
	if created.ID == "" {
		created.ID = types.NewJobRoleID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toJobRoleDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create job role", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *jobRoleRepository) Get(ctx context.Context, id types.JobRoleID) (*model.JobRole, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "job role not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get job role", goerr.V("id", id))
	}

	var d jobRoleDocument
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal job role")
	}
	return d.toModel(), nil
}

func (r *jobRoleRepository) GetBySlug(ctx context.Context, slug string) (*model.JobRole, error) {
	iter := r.client.Collection(r.collection()).Where("slug", "==", slug).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "job role not found", goerr.V("slug", slug))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query job role", goerr.V("slug", slug))
	}

	var d jobRoleDocument
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal job role")
	}
	return d.toModel(), nil
}

func (r *jobRoleRepository) List(ctx context.Context) ([]*model.JobRole, error) {
	iter := r.client.Collection(r.collection()).OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var roles []*model.JobRole
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list job roles")
		}

		var d jobRoleDocument
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal job role")
		}
		roles = append(roles, d.toModel())
	}
	return roles, nil
}

func (r *jobRoleRepository) Update(ctx context.Context, role *model.JobRole) (*model.JobRole, error) {
	docRef := r.client.Collection(r.collection()).Doc(role.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "job role not found", goerr.V("id", role.ID))
		}
		return nil, goerr.Wrap(err, "failed to get job role", goerr.V("id", role.ID))
	}

	var existing jobRoleDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal job role")
	}

	updated := *role
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toJobRoleDocument(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update job role", goerr.V("id", role.ID))
	}
	return &updated, nil
}

func (r *jobRoleRepository) Delete(ctx context.Context, id types.JobRoleID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "job role not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get job role", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete job role", goerr.V("id", id))
	}
	return nil
}
