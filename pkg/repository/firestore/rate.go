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

type rateDocument struct {
	ID           string    `firestore:"id"`
	RoleID       string    `firestore:"role_id"`
	DepartmentID string    `firestore:"department_id"`
	RateCents    int64     `firestore:"rate_cents"`
	CreatedAt    time.Time `firestore:"created_at"`
	UpdatedAt    time.Time `firestore:"updated_at"`
}

func toRateDocument(r *model.HourlyRate) *rateDocument {
	return &rateDocument{
		ID:           r.ID.String(),
		RoleID:       r.RoleID.String(),
		DepartmentID: r.DepartmentID.String(),
		RateCents:    r.RateCents,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (d *rateDocument) toModel() *model.HourlyRate {
	return &model.HourlyRate{
		ID:           types.RateID(d.ID),
		RoleID:       types.JobRoleID(d.RoleID),
		DepartmentID: types.DepartmentID(d.DepartmentID),
		RateCents:    d.RateCents,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type rateRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRateRepository(client *firestore.Client) *rateRepository {
	return &rateRepository{client: client}
}

func (r *rateRepository) collection() string {
	return collectionName(r.collectionPrefix, "hourly_rates")
}

func (r *rateRepository) Create(ctx context.Context, rate *model.HourlyRate) (*model.HourlyRate, error) {
	now := time.Now().UTC()
	created := *rate
	if created.ID == "" {
		created.ID = types.NewRateID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toRateDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create hourly rate", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *rateRepository) Get(ctx context.Context, id types.RateID) (*model.HourlyRate, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "hourly rate not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get hourly rate", goerr.V("id", id))
	}

	var d rateDocument
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal hourly rate")
	}
	return d.toModel(), nil
}

// GetByKey looks up the rate for a (role, department) pair. A default
// rate is stored with an empty department ID. Requires the composite
// index created by `meetingtax migrate`.
func (r *rateRepository) GetByKey(ctx context.Context, roleID types.JobRoleID, departmentID types.DepartmentID) (*model.HourlyRate, error) {
	iter := r.client.Collection(r.collection()).
		Where("role_id", "==", roleID.String()).
		Where("department_id", "==", departmentID.String()).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "hourly rate not found",
			goerr.V("roleID", roleID), goerr.V("departmentID", departmentID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query hourly rate",
			goerr.V("roleID", roleID), goerr.V("departmentID", departmentID))
	}

	var d rateDocument
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal hourly rate")
	}
	return d.toModel(), nil
}

func (r *rateRepository) List(ctx context.Context) ([]*model.HourlyRate, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()
	return r.collect(iter)
}

func (r *rateRepository) ListByRole(ctx context.Context, roleID types.JobRoleID) ([]*model.HourlyRate, error) {
	iter := r.client.Collection(r.collection()).
		Where("role_id", "==", roleID.String()).
		Documents(ctx)
	defer iter.Stop()
	return r.collect(iter)
}

func (r *rateRepository) collect(iter *firestore.DocumentIterator) ([]*model.HourlyRate, error) {
	var rates []*model.HourlyRate
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list hourly rates")
		}

		var d rateDocument
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal hourly rate")
		}
		rates = append(rates, d.toModel())
	}
	return rates, nil
}

func (r *rateRepository) Update(ctx context.Context, rate *model.HourlyRate) (*model.HourlyRate, error) {
	docRef := r.client.Collection(r.collection()).Doc(rate.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "hourly rate not found", goerr.V("id", rate.ID))
		}
		return nil, goerr.Wrap(err, "failed to get hourly rate", goerr.V("id", rate.ID))
	}

	var existing rateDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal hourly rate")
	}

	updated := *rate
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toRateDocument(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update hourly rate", goerr.V("id", rate.ID))
	}
	return &updated, nil
}

func (r *rateRepository) Delete(ctx context.Context, id types.RateID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "hourly rate not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get hourly rate", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete hourly rate", goerr.V("id", id))
	}
	return nil
}
