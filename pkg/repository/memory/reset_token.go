package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

type resetTokenRepository struct {
	mu     sync.RWMutex
	tokens map[types.ResetTokenID]*model.PasswordResetToken
}

func newResetTokenRepository() *resetTokenRepository {
	return &resetTokenRepository{
		tokens: make(map[types.ResetTokenID]*model.PasswordResetToken),
	}
}

func copyResetToken(t *model.PasswordResetToken) *model.PasswordResetToken {
	copied := *t
	return &copied
}

func (r *resetTokenRepository) Put(ctx context.Context, token *model.PasswordResetToken) (*model.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyResetToken(token)
	if created.ID == "" {
		created.ID = types.NewResetTokenID()
	}
	created.CreatedAt = time.Now().UTC()

	r.tokens[created.ID] = created
	return copyResetToken(created), nil
}

func (r *resetTokenRepository) GetByToken(ctx context.Context, token string) (*model.PasswordResetToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.tokens {
		if t.Token == token {
			return copyResetToken(t), nil
		}
	}
	return nil, goerr.Wrap(ErrNotFound, "reset token not found")
}

func (r *resetTokenRepository) Delete(ctx context.Context, id types.ResetTokenID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tokens[id]; !exists {
		return goerr.Wrap(ErrNotFound, "reset token not found", goerr.V("id", id))
	}
	delete(r.tokens, id)
	return nil
}
