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

type credentialDocument struct {
	ID           string    `firestore:"id"`
	Email        string    `firestore:"email"`
	PasswordHash string    `firestore:"password_hash"`
	UserID       string    `firestore:"user_id"`
	SessionToken string    `firestore:"session_token"`
	TokenExpiry  int64     `firestore:"token_expiry"`
	CreatedAt    time.Time `firestore:"created_at"`
	UpdatedAt    time.Time `firestore:"updated_at"`
}

func toCredentialDocument(c *model.Credential) *credentialDocument {
	return &credentialDocument{
		ID:           c.ID.String(),
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		UserID:       c.UserID.String(),
		SessionToken: c.SessionToken,
		TokenExpiry:  c.TokenExpiry,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (d *credentialDocument) toModel() *model.Credential {
	return &model.Credential{
		ID:           types.CredentialID(d.ID),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		UserID:       types.UserID(d.UserID),
		SessionToken: d.SessionToken,
		TokenExpiry:  d.TokenExpiry,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type credentialRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCredentialRepository(client *firestore.Client) *credentialRepository {
	return &credentialRepository{client: client}
}

func (r *credentialRepository) collection() string {
	return collectionName(r.collectionPrefix, "credentials")
}

func (r *credentialRepository) Create(ctx context.Context, cred *model.Credential) (*model.Credential, error) {
	now := time.Now().UTC()
	created := *cred
	if created.ID == "" {
		created.ID = types.NewCredentialID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toCredentialDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create credential", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *credentialRepository) queryOne(ctx context.Context, field, value string) (*model.Credential, error) {
	iter := r.client.Collection(r.collection()).Where(field, "==", value).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "credential not found")
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query credential", goerr.V("field", field))
	}

	var d credentialDocument
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal credential")
	}
	return d.toModel(), nil
}

func (r *credentialRepository) GetByEmail(ctx context.Context, email string) (*model.Credential, error) {
	return r.queryOne(ctx, "email", email)
}

func (r *credentialRepository) GetByToken(ctx context.Context, token string) (*model.Credential, error) {
	if token == "" {
		return nil, goerr.Wrap(ErrNotFound, "credential not found")
	}
	return r.queryOne(ctx, "session_token", token)
}

func (r *credentialRepository) Update(ctx context.Context, cred *model.Credential) (*model.Credential, error) {
	docRef := r.client.Collection(r.collection()).Doc(cred.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "credential not found", goerr.V("id", cred.ID))
		}
		return nil, goerr.Wrap(err, "failed to get credential", goerr.V("id", cred.ID))
	}

	var existing credentialDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal credential")
	}

	updated := *cred
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toCredentialDocument(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update credential", goerr.V("id", cred.ID))
	}
	return &updated, nil
}

func (r *credentialRepository) List(ctx context.Context) ([]*model.Credential, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var creds []*model.Credential
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list credentials")
		}

		var d credentialDocument
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal credential")
		}
		creds = append(creds, d.toModel())
	}
	return creds, nil
}
