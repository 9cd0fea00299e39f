package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
)

func TestSessionValid(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cred := &model.Credential{
		SessionToken: "token-a",
		TokenExpiry:  now.Add(model.SessionLifetime).UnixMilli(),
	}

	t.Run("matching unexpired token", func(t *testing.T) {
		gt.Bool(t, cred.SessionValid("token-a", now)).True()
	})

	t.Run("wrong token", func(t *testing.T) {
		gt.Bool(t, cred.SessionValid("token-b", now)).False()
	})

	t.Run("expiry is millisecond precise", func(t *testing.T) {
		expiry := time.UnixMilli(cred.TokenExpiry)
		gt.Bool(t, cred.SessionValid("token-a", expiry.Add(-time.Millisecond))).True()
		gt.Bool(t, cred.SessionValid("token-a", expiry)).False()
		gt.Bool(t, cred.SessionValid("token-a", expiry.Add(time.Millisecond))).False()
	})

	t.Run("cleared token never validates", func(t *testing.T) {
		signedOut := &model.Credential{SessionToken: "", TokenExpiry: 0}
		gt.Bool(t, signedOut.SessionValid("", now)).False()
	})
}

func TestResetTokenExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	token := &model.PasswordResetToken{
		Token:     "reset-1",
		ExpiresAt: now.Add(model.ResetTokenLifetime).UnixMilli(),
	}

	gt.Bool(t, token.Expired(now)).False()
	gt.Bool(t, token.Expired(time.UnixMilli(token.ExpiresAt))).True()
	gt.Bool(t, token.Expired(now.Add(2*time.Hour))).True()
}
