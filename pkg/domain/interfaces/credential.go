package interfaces

import (
	"context"

	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

// CredentialRepository persists authentication secrets, indexed by
// normalized email and by session token.
type CredentialRepository interface {
	Create(ctx context.Context, cred *model.Credential) (*model.Credential, error)
	GetByEmail(ctx context.Context, email string) (*model.Credential, error)
	GetByToken(ctx context.Context, token string) (*model.Credential, error)
	Update(ctx context.Context, cred *model.Credential) (*model.Credential, error)

	// List scans all credentials. Used only by the one-time
	// normalize-emails migration, never by request handling.
	List(ctx context.Context) ([]*model.Credential, error)
}

// ResetTokenRepository persists short-lived password reset tokens,
// indexed by token value.
type ResetTokenRepository interface {
	Put(ctx context.Context, token *model.PasswordResetToken) (*model.PasswordResetToken, error)
	GetByToken(ctx context.Context, token string) (*model.PasswordResetToken, error)
	Delete(ctx context.Context, id types.ResetTokenID) error
}
