package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

type credentialRepository struct {
	mu    sync.RWMutex
	creds map[types.CredentialID]*model.Credential
}

func newCredentialRepository() *credentialRepository {
	return &credentialRepository{
		creds: make(map[types.CredentialID]*model.Credential),
	}
}

func copyCredential(c *model.Credential) *model.Credential {
	copied := *c
	return &copied
}

func (r *credentialRepository) Create(ctx context.Context, cred *model.Credential) (*model.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyCredential(cred)
	if created.ID == "" {
		created.ID = types.NewCredentialID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.creds[created.ID] = created
	return copyCredential(created), nil
}

func (r *credentialRepository) GetByEmail(ctx context.Context, email string) (*model.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.creds {
		if c.Email == email {
			return copyCredential(c), nil
		}
	}
	return nil, goerr.Wrap(ErrNotFound, "credential not found", goerr.V("email", email))
}

func (r *credentialRepository) GetByToken(ctx context.Context, token string) (*model.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if token == "" {
		return nil, goerr.Wrap(ErrNotFound, "credential not found")
	}
	for _, c := range r.creds {
		if c.SessionToken == token {
			return copyCredential(c), nil
		}
	}
	return nil, goerr.Wrap(ErrNotFound, "credential not found")
}

func (r *credentialRepository) Update(ctx context.Context, cred *model.Credential) (*model.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.creds[cred.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "credential not found", goerr.V("id", cred.ID))
	}

	updated := copyCredential(cred)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.creds[updated.ID] = updated
	return copyCredential(updated), nil
}

func (r *credentialRepository) List(ctx context.Context) ([]*model.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	creds := make([]*model.Credential, 0, len(r.creds))
	for _, c := range r.creds {
		creds = append(creds, copyCredential(c))
	}
	return creds, nil
}
