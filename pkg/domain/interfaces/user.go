package interfaces

import (
	"context"

	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

// UserRepository persists user profile records
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	Get(ctx context.Context, id types.UserID) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, user *model.User) (*model.User, error)

	// Empty reports whether no user exists yet. The first user ever
	// created is auto-assigned Admin.
	Empty(ctx context.Context) (bool, error)
}
