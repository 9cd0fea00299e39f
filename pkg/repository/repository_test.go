package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/meetingtax/meetingtax/pkg/domain/interfaces"
	"github.com/meetingtax/meetingtax/pkg/repository/firestore"
	"github.com/meetingtax/meetingtax/pkg/repository/memory"
)

// runRepositoryTest executes fn against the in-memory backend and,
// when TEST_FIRESTORE_PROJECT_ID is set, against Firestore with a
// per-run collection prefix so runs do not collide.
func runRepositoryTest(t *testing.T, fn func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository)) {
	t.Run("Memory", func(t *testing.T) {
		fn(t, func(t *testing.T) interfaces.Repository {
			return memory.New()
		})
	})

	t.Run("Firestore", func(t *testing.T) {
		projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
		if projectID == "" {
			t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
		}
		databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

		fn(t, func(t *testing.T) interfaces.Repository {
			t.Helper()

			ctx := context.Background()
			prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
			repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
			if err != nil {
				t.Fatalf("failed to create firestore repository: %v", err)
			}

			t.Cleanup(func() {
				if err := repo.Close(); err != nil {
					t.Errorf("failed to close firestore repository: %v", err)
				}
			})

			return repo
		})
	})
}
