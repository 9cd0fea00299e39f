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

func TestMeetingRepository(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
		newMeeting := func(name string, start time.Time) *model.Meeting {
			return &model.Meeting{
				ID:              types.NewMeetingID(),
				Name:            name,
				StartTime:       start.UnixMilli(),
				DurationMinutes: 60,
				CreatedBy:       types.NewUserID(),
				Attendees: []model.Attendee{
					{RoleID: types.NewJobRoleID(), DepartmentID: types.NewDepartmentID(), Count: 3},
				},
			}
		}

		t.Run("Create and Get with nested fields", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			meeting := newMeeting("Sprint planning", time.Now().Add(time.Hour))
			meeting.Recurring = &model.Recurrence{
				Frequency: types.FrequencyWeekly,
				EndDate:   time.Now().Add(90 * 24 * time.Hour).UnixMilli(),
			}

			if _, err := repo.Meeting().Create(ctx, meeting); err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			got, err := repo.Meeting().Get(ctx, meeting.ID)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got.Name != "Sprint planning" {
				t.Errorf("Name mismatch: got %v", got.Name)
			}
			if len(got.Attendees) != 1 {
				t.Fatalf("Expected 1 attendee group, got %d", len(got.Attendees))
			}
			if got.Attendees[0].Count != 3 {
				t.Errorf("Attendee count mismatch: got %d", got.Attendees[0].Count)
			}
			if got.Recurring == nil {
				t.Fatal("Recurring lost on round trip")
			}
			if got.Recurring.Frequency != types.FrequencyWeekly {
				t.Errorf("Frequency mismatch: got %v", got.Recurring.Frequency)
			}
		})

		t.Run("List newest first", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			base := time.Now()
			for i, name := range []string{"oldest", "middle", "newest"} {
				m := newMeeting(name, base.Add(time.Duration(i)*time.Hour))
				if _, err := repo.Meeting().Create(ctx, m); err != nil {
					t.Fatalf("Create failed: %v", err)
				}
			}

			meetings, err := repo.Meeting().List(ctx)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(meetings) != 3 {
				t.Fatalf("Expected 3 meetings, got %d", len(meetings))
			}
			want := []string{"newest", "middle", "oldest"}
			for i, m := range meetings {
				if m.Name != want[i] {
					t.Errorf("Order mismatch at %d: got %v, want %v", i, m.Name, want[i])
				}
			}
		})

		t.Run("Returned meeting is a copy", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			meeting := newMeeting("mutation check", time.Now())
			if _, err := repo.Meeting().Create(ctx, meeting); err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			got, err := repo.Meeting().Get(ctx, meeting.ID)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			got.Attendees[0].Count = 999

			again, err := repo.Meeting().Get(ctx, meeting.ID)
			if err != nil {
				t.Fatalf("second Get failed: %v", err)
			}
			if again.Attendees[0].Count != 3 {
				t.Errorf("Stored meeting mutated through returned copy: got %d", again.Attendees[0].Count)
			}
		})

		t.Run("Delete", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			meeting := newMeeting("to delete", time.Now())
			if _, err := repo.Meeting().Create(ctx, meeting); err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			if err := repo.Meeting().Delete(ctx, meeting.ID); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if _, err := repo.Meeting().Get(ctx, meeting.ID); !errors.Is(err, interfaces.ErrNotFound) {
				t.Errorf("Expected NotFound after delete, got: %v", err)
			}
		})
	})
}
