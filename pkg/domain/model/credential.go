package model

import (
	"time"

	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

// SessionLifetime is the fixed validity window of a session token,
// counted from issuance. Sign-in rotates the token and re-stamps the
// expiry; it never extends a previous token.
const SessionLifetime = 7 * 24 * time.Hour

// Credential holds the authentication secret for one user, one-to-one
// via UserID. Email is stored normalized and is the unique sign-in key.
// TokenExpiry is epoch milliseconds, the unit the API reports expiry in.
type Credential struct {
	ID           types.CredentialID
	Email        string
	PasswordHash string
	UserID       types.UserID
	SessionToken string
	TokenExpiry  int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SessionValid reports whether the stored session token matches and is
// not expired at the given instant.
func (c *Credential) SessionValid(token string, now time.Time) bool {
	return c.SessionToken != "" && c.SessionToken == token && now.UnixMilli() < c.TokenExpiry
}

// ResetTokenLifetime is the validity window of a password reset token.
const ResetTokenLifetime = time.Hour

// PasswordResetToken is a short-lived, single-use token. It is deleted
// on consumption, or when stale data prevents account lookup.
// ExpiresAt is epoch milliseconds.
type PasswordResetToken struct {
	ID        types.ResetTokenID
	UserID    types.UserID
	Token     string
	ExpiresAt int64
	CreatedAt time.Time
}

// Expired reports whether the reset token is past its expiry.
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.UnixMilli() >= t.ExpiresAt
}
