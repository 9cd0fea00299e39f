package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/meetingtax/meetingtax/pkg/domain/interfaces"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

func TestCredentialRepository(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
		newCredential := func(email, token string) *model.Credential {
			return &model.Credential{
				ID:           types.NewCredentialID(),
				Email:        email,
				PasswordHash: "$argon2id$dummy",
				UserID:       types.NewUserID(),
				SessionToken: token,
				TokenExpiry:  time.Now().Add(time.Hour).UnixMilli(),
			}
		}

		t.Run("Create and GetByEmail", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			cred := newCredential("alice@example.com", "token-a")
			if _, err := repo.Credential().Create(ctx, cred); err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			got, err := repo.Credential().GetByEmail(ctx, "alice@example.com")
			if err != nil {
				t.Fatalf("GetByEmail failed: %v", err)
			}
			if got.ID != cred.ID {
				t.Errorf("ID mismatch: got %v, want %v", got.ID, cred.ID)
			}
			if got.SessionToken != "token-a" {
				t.Errorf("SessionToken mismatch: got %v", got.SessionToken)
			}
		})

		t.Run("GetByToken", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			cred := newCredential("bob@example.com", "token-b")
			if _, err := repo.Credential().Create(ctx, cred); err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			got, err := repo.Credential().GetByToken(ctx, "token-b")
			if err != nil {
				t.Fatalf("GetByToken failed: %v", err)
			}
			if got.Email != "bob@example.com" {
				t.Errorf("Email mismatch: got %v", got.Email)
			}
		})

		t.Run("GetByToken rejects empty token", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			// A signed-out credential stores an empty token. An empty
			// lookup must never match it.
			cred := newCredential("carol@example.com", "")
			if _, err := repo.Credential().Create(ctx, cred); err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			_, err := repo.Credential().GetByToken(ctx, "")
			if err == nil {
				t.Fatal("Expected error for empty token, got nil")
			}
			if !errors.Is(err, interfaces.ErrNotFound) {
				t.Errorf("Expected NotFound error, got: %v", err)
			}
		})

		t.Run("Update rotates token", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			cred := newCredential("dave@example.com", "token-old")
			created, err := repo.Credential().Create(ctx, cred)
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			created.SessionToken = "token-new"
			if _, err := repo.Credential().Update(ctx, created); err != nil {
				t.Fatalf("Update failed: %v", err)
			}

			if _, err := repo.Credential().GetByToken(ctx, "token-old"); !errors.Is(err, interfaces.ErrNotFound) {
				t.Errorf("Expected NotFound for old token, got: %v", err)
			}
			got, err := repo.Credential().GetByToken(ctx, "token-new")
			if err != nil {
				t.Fatalf("GetByToken with new token failed: %v", err)
			}
			if got.ID != cred.ID {
				t.Errorf("ID mismatch after rotation: got %v", got.ID)
			}
		})
	})
}

func TestResetTokenRepository(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
		t.Run("Put, GetByToken and Delete", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			token := &model.PasswordResetToken{
				ID:        types.NewResetTokenID(),
				UserID:    types.NewUserID(),
				Token:     "reset-token-1",
				ExpiresAt: time.Now().Add(time.Hour).UnixMilli(),
			}

			if _, err := repo.ResetToken().Put(ctx, token); err != nil {
				t.Fatalf("Put failed: %v", err)
			}

			got, err := repo.ResetToken().GetByToken(ctx, "reset-token-1")
			if err != nil {
				t.Fatalf("GetByToken failed: %v", err)
			}
			if got.UserID != token.UserID {
				t.Errorf("UserID mismatch: got %v, want %v", got.UserID, token.UserID)
			}

			if err := repo.ResetToken().Delete(ctx, token.ID); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}

			if _, err := repo.ResetToken().GetByToken(ctx, "reset-token-1"); !errors.Is(err, interfaces.ErrNotFound) {
				t.Errorf("Expected NotFound after delete, got: %v", err)
			}
		})

		t.Run("Delete not found", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			err := repo.ResetToken().Delete(ctx, types.NewResetTokenID())
			if !errors.Is(err, interfaces.ErrNotFound) {
				t.Errorf("Expected NotFound error, got: %v", err)
			}
		})
	})
}
