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

func TestDepartmentRepository(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
		t.Run("Create, GetBySlug and Delete", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			dept, err := repo.Department().Create(ctx, &model.Department{
				ID:   types.NewDepartmentID(),
				Name: "Engineering",
				Slug: "engineering",
			})
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			got, err := repo.Department().GetBySlug(ctx, "engineering")
			if err != nil {
				t.Fatalf("GetBySlug failed: %v", err)
			}
			if got.ID != dept.ID {
				t.Errorf("ID mismatch: got %v, want %v", got.ID, dept.ID)
			}

			if err := repo.Department().Delete(ctx, dept.ID); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if _, err := repo.Department().Get(ctx, dept.ID); !errors.Is(err, interfaces.ErrNotFound) {
				t.Errorf("Expected NotFound after delete, got: %v", err)
			}
		})

		t.Run("GetBySlug not found", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			_, err := repo.Department().GetBySlug(ctx, "no-such-slug")
			if !errors.Is(err, interfaces.ErrNotFound) {
				t.Errorf("Expected NotFound error, got: %v", err)
			}
		})

		t.Run("List sorted by name", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			for _, name := range []string{"Sales", "Engineering", "Marketing"} {
				if _, err := repo.Department().Create(ctx, &model.Department{
					ID:   types.NewDepartmentID(),
					Name: name,
					Slug: name,
				}); err != nil {
					t.Fatalf("Create failed: %v", err)
				}
			}

			depts, err := repo.Department().List(ctx)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(depts) != 3 {
				t.Fatalf("Expected 3 departments, got %d", len(depts))
			}
			want := []string{"Engineering", "Marketing", "Sales"}
			for i, d := range depts {
				if d.Name != want[i] {
					t.Errorf("Order mismatch at %d: got %v, want %v", i, d.Name, want[i])
				}
			}
		})
	})
}

func TestJobRoleRepository(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
		t.Run("Create, Update and GetBySlug", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			role, err := repo.JobRole().Create(ctx, &model.JobRole{
				ID:   types.NewJobRoleID(),
				Name: "Engineer",
				Slug: "engineer",
			})
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			role.Name = "Senior Engineer"
			role.Slug = "senior-engineer"
			if _, err := repo.JobRole().Update(ctx, role); err != nil {
				t.Fatalf("Update failed: %v", err)
			}

			got, err := repo.JobRole().GetBySlug(ctx, "senior-engineer")
			if err != nil {
				t.Fatalf("GetBySlug failed: %v", err)
			}
			if got.ID != role.ID {
				t.Errorf("ID mismatch: got %v, want %v", got.ID, role.ID)
			}
			if _, err := repo.JobRole().GetBySlug(ctx, "engineer"); !errors.Is(err, interfaces.ErrNotFound) {
				t.Errorf("Expected NotFound for old slug, got: %v", err)
			}
		})

		t.Run("Delete not found", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			err := repo.JobRole().Delete(ctx, types.NewJobRoleID())
			if !errors.Is(err, interfaces.ErrNotFound) {
				t.Errorf("Expected NotFound error, got: %v", err)
			}
		})
	})
}

func TestSettingRepository(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
		t.Run("Put upserts by key", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			first, err := repo.Setting().Put(ctx, &model.Setting{
				Key:   model.SettingCostThreshold,
				Value: "100000",
			})
			if err != nil {
				t.Fatalf("Put failed: %v", err)
			}

			second, err := repo.Setting().Put(ctx, &model.Setting{
				Key:   model.SettingCostThreshold,
				Value: "250000",
			})
			if err != nil {
				t.Fatalf("second Put failed: %v", err)
			}
			// Tolerance for Firestore timestamp precision
			if diff := second.CreatedAt.Sub(first.CreatedAt); diff > time.Second || diff < -time.Second {
				t.Errorf("CreatedAt changed on upsert: got %v, want %v", second.CreatedAt, first.CreatedAt)
			}

			got, err := repo.Setting().Get(ctx, model.SettingCostThreshold)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got.Value != "250000" {
				t.Errorf("Value mismatch: got %v, want 250000", got.Value)
			}
		})

		t.Run("Get not found", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			_, err := repo.Setting().Get(ctx, "unknown_key")
			if !errors.Is(err, interfaces.ErrNotFound) {
				t.Errorf("Expected NotFound error, got: %v", err)
			}
		})
	})
}
