package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

type meetingRepository struct {
	mu       sync.RWMutex
	meetings map[types.MeetingID]*model.Meeting
}

func newMeetingRepository() *meetingRepository {
	return &meetingRepository{
		meetings: make(map[types.MeetingID]*model.Meeting),
	}
}

func copyMeeting(m *model.Meeting) *model.Meeting {
	copied := *m
	copied.Attendees = make([]model.Attendee, len(m.Attendees))
	copy(copied.Attendees, m.Attendees)
	if m.Recurring != nil {
		rec := *m.Recurring
		copied.Recurring = &rec
	}
	return &copied
}

func (r *meetingRepository) Create(ctx context.Context, meeting *model.Meeting) (*model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyMeeting(meeting)
	if created.ID == "" {
		created.ID = types.NewMeetingID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.meetings[created.ID] = created
	return copyMeeting(created), nil
}

func (r *meetingRepository) Get(ctx context.Context, id types.MeetingID) (*model.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meeting, exists := r.meetings[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "meeting not found", goerr.V("id", id))
	}
	return copyMeeting(meeting), nil
}

func (r *meetingRepository) List(ctx context.Context) ([]*model.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meetings := make([]*model.Meeting, 0, len(r.meetings))
	for _, m := range r.meetings {
		meetings = append(meetings, copyMeeting(m))
	}
	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].StartTime > meetings[j].StartTime
	})
	return meetings, nil
}

func (r *meetingRepository) Update(ctx context.Context, meeting *model.Meeting) (*model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.meetings[meeting.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "meeting not found", goerr.V("id", meeting.ID))
	}

	updated := copyMeeting(meeting)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.meetings[updated.ID] = updated
	return copyMeeting(updated), nil
}

func (r *meetingRepository) Delete(ctx context.Context, id types.MeetingID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.meetings[id]; !exists {
		return goerr.Wrap(ErrNotFound, "meeting not found", goerr.V("id", id))
	}
	delete(r.meetings, id)
	return nil
}
