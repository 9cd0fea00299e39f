package auth

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/m-mizutani/goerr/v2"
)

const tokenByteLength = 32

// NewSessionToken mints an opaque bearer token from a cryptographically
// secure random source.
func NewSessionToken() (string, error) {
	buf := make([]byte, tokenByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", goerr.Wrap(err, "failed to generate session token")
	}
	return hex.EncodeToString(buf), nil
}

// NewResetToken mints a password reset token. Same shape as session
// tokens; the two are stored and validated separately.
func NewResetToken() (string, error) {
	buf := make([]byte, tokenByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", goerr.Wrap(err, "failed to generate reset token")
	}
	return hex.EncodeToString(buf), nil
}
