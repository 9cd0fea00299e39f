package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/interfaces"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/model/auth"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
	"github.com/meetingtax/meetingtax/pkg/utils/logging"
)

// AuthUseCase handles sign up, sign in, session validation and the
// password reset flow.
type AuthUseCase struct {
	repo  interfaces.Repository
	cache *authCache
	now   func() time.Time
}

func NewAuthUseCase(repo interfaces.Repository) *AuthUseCase {
	return &AuthUseCase{
		repo:  repo,
		cache: newAuthCache(),
		now:   time.Now,
	}
}

// Session is returned to the client on successful sign up or sign in.
type Session struct {
	Token  string
	Expiry int64
	User   *model.User
}

// SignUp registers a new account. The first account in an empty system
// becomes Admin, all later accounts start as Employee.
func (uc *AuthUseCase) SignUp(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = model.NormalizeEmail(email)

	if name == "" {
		return nil, goerr.Wrap(ErrValidation, "name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, goerr.Wrap(ErrValidation, "valid email is required")
	}
	if len(password) < 8 {
		return nil, goerr.Wrap(ErrValidation, "password must be at least 8 characters")
	}

	if _, err := uc.repo.Credential().GetByEmail(ctx, email); err == nil {
		return nil, goerr.Wrap(ErrConflict, "email is already registered", goerr.V("email", email))
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, goerr.Wrap(err, "failed to check existing credential")
	}

	empty, err := uc.repo.User().Empty(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check user count")
	}
	role := types.RoleEmployee
	if empty {
		role = types.RoleAdmin
	}

	user, err := uc.repo.User().Create(ctx, &model.User{
		ID:    types.NewUserID(),
		Name:  name,
		Email: email,
		Role:  role,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create user")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to hash password")
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to issue session token")
	}
	expiry := uc.now().Add(model.SessionLifetime).UnixMilli()

	cred, err := uc.repo.Credential().Create(ctx, &model.Credential{
		ID:           types.NewCredentialID(),
		Email:        email,
		PasswordHash: hash,
		UserID:       user.ID,
		SessionToken: token,
		TokenExpiry:  expiry,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create credential")
	}

	uc.cache.set(cred.SessionToken, user)

	logging.From(ctx).Info("user signed up",
		"userID", user.ID, "role", user.Role)

	return &Session{Token: token, Expiry: expiry, User: user}, nil
}

// SignIn verifies the password and rotates the session token. The
// previous token stops working immediately.
func (uc *AuthUseCase) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = model.NormalizeEmail(email)

	cred, err := uc.repo.Credential().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrInvalidCredentials, "unknown email")
		}
		return nil, goerr.Wrap(err, "failed to get credential")
	}

	if err := auth.VerifyPassword(cred.PasswordHash, password); err != nil {
		return nil, goerr.Wrap(ErrInvalidCredentials, "password mismatch")
	}

	user, err := uc.repo.User().Get(ctx, cred.UserID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("userID", cred.UserID))
	}

	oldToken := cred.SessionToken

	token, err := auth.NewSessionToken()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to issue session token")
	}
	cred.SessionToken = token
	cred.TokenExpiry = uc.now().Add(model.SessionLifetime).UnixMilli()

	if _, err := uc.repo.Credential().Update(ctx, cred); err != nil {
		return nil, goerr.Wrap(err, "failed to rotate session token")
	}

	// The rotated-out token must fail validation right away, not
	// after the cache TTL elapses.
	uc.cache.remove(oldToken)
	uc.cache.set(token, user)

	logging.From(ctx).Info("user signed in", "userID", user.ID)

	return &Session{Token: token, Expiry: cred.TokenExpiry, User: user}, nil
}

// SignOut clears the session token so it can no longer authenticate.
func (uc *AuthUseCase) SignOut(ctx context.Context, token string) error {
	cred, err := uc.repo.Credential().GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			uc.cache.remove(token)
			return nil
		}
		return goerr.Wrap(err, "failed to get credential")
	}

	cred.SessionToken = ""
	cred.TokenExpiry = 0
	if _, err := uc.repo.Credential().Update(ctx, cred); err != nil {
		return goerr.Wrap(err, "failed to clear session token")
	}

	uc.cache.remove(token)

	logging.From(ctx).Info("user signed out", "userID", cred.UserID)
	return nil
}

// ValidateSession resolves a session token to its user, consulting the
// in-memory cache first.
func (uc *AuthUseCase) ValidateSession(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, goerr.Wrap(ErrUnauthenticated, "missing session token")
	}

	if user, ok := uc.cache.get(token); ok {
		return user, nil
	}

	cred, err := uc.repo.Credential().GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrUnauthenticated, "unknown session token")
		}
		return nil, goerr.Wrap(err, "failed to get credential")
	}

	if !cred.SessionValid(token, uc.now()) {
		return nil, goerr.Wrap(ErrUnauthenticated, "session expired")
	}

	user, err := uc.repo.User().Get(ctx, cred.UserID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("userID", cred.UserID))
	}

	uc.cache.set(token, user)
	return user, nil
}
