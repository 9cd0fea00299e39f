package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/interfaces"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/model/auth"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
	"github.com/meetingtax/meetingtax/pkg/utils/logging"
)

// RequestPasswordReset issues a one-hour reset token for the given
// email and returns a link embedding it, rooted at baseURL. Unknown
// emails succeed without a link, so the operation itself does not
// reject based on whether an address is registered.
func (uc *AuthUseCase) RequestPasswordReset(ctx context.Context, email, baseURL string) (string, error) {
	email = model.NormalizeEmail(email)

	cred, err := uc.repo.Credential().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			logging.From(ctx).Info("password reset requested for unknown email")
			return "", nil
		}
		return "", goerr.Wrap(err, "failed to get credential")
	}

	token, err := auth.NewResetToken()
	if err != nil {
		return "", goerr.Wrap(err, "failed to issue reset token")
	}

	if _, err := uc.repo.ResetToken().Put(ctx, &model.PasswordResetToken{
		ID:        types.NewResetTokenID(),
		UserID:    cred.UserID,
		Token:     token,
		ExpiresAt: uc.now().Add(model.ResetTokenLifetime).UnixMilli(),
	}); err != nil {
		return "", goerr.Wrap(err, "failed to store reset token")
	}

	logging.From(ctx).Info("password reset requested", "userID", cred.UserID)
	return strings.TrimSuffix(baseURL, "/") + "/reset-password?token=" + token, nil
}

// ResetPassword consumes a reset token and replaces the password. The
// session token is cleared so existing sessions stop working.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return goerr.Wrap(ErrValidation, "password must be at least 8 characters")
	}

	reset, err := uc.repo.ResetToken().GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrInvalidOrExpiredToken, "unknown reset token")
		}
		return goerr.Wrap(err, "failed to get reset token")
	}

	if reset.Expired(uc.now()) {
		if err := uc.repo.ResetToken().Delete(ctx, reset.ID); err != nil {
			return goerr.Wrap(err, "failed to delete expired reset token")
		}
		return goerr.Wrap(ErrInvalidOrExpiredToken, "reset token expired")
	}

	user, err := uc.repo.User().Get(ctx, reset.UserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			// Stale token pointing at a removed account
			if err := uc.repo.ResetToken().Delete(ctx, reset.ID); err != nil {
				return goerr.Wrap(err, "failed to delete stale reset token")
			}
			return goerr.Wrap(ErrInvalidOrExpiredToken, "account no longer exists")
		}
		return goerr.Wrap(err, "failed to get user", goerr.V("userID", reset.UserID))
	}

	cred, err := uc.repo.Credential().GetByEmail(ctx, user.Email)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			if err := uc.repo.ResetToken().Delete(ctx, reset.ID); err != nil {
				return goerr.Wrap(err, "failed to delete stale reset token")
			}
			return goerr.Wrap(ErrInvalidOrExpiredToken, "credential no longer exists")
		}
		return goerr.Wrap(err, "failed to get credential", goerr.V("userID", reset.UserID))
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return goerr.Wrap(err, "failed to hash password")
	}

	oldToken := cred.SessionToken
	cred.PasswordHash = hash
	cred.SessionToken = ""
	cred.TokenExpiry = 0
	if _, err := uc.repo.Credential().Update(ctx, cred); err != nil {
		return goerr.Wrap(err, "failed to update credential")
	}
	uc.cache.remove(oldToken)

	// Single use
	if err := uc.repo.ResetToken().Delete(ctx, reset.ID); err != nil {
		return goerr.Wrap(err, "failed to delete reset token")
	}

	logging.From(ctx).Info("password reset completed", "userID", user.ID)
	return nil
}
