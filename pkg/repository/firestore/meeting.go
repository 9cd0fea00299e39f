package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type attendeeDocument struct {
	RoleID       string `firestore:"role_id"`
	DepartmentID string `firestore:"department_id"`
	Count        int64  `firestore:"count"`
}

type recurrenceDocument struct {
	Frequency string `firestore:"frequency"`
	EndDate   int64  `firestore:"end_date"`
}

type meetingDocument struct {
	ID              string              `firestore:"id"`
	Name            string              `firestore:"name"`
	Description     string              `firestore:"description"`
	StartTime       int64               `firestore:"start_time"`
	DurationMinutes int64               `firestore:"duration_minutes"`
	CreatedBy       string              `firestore:"created_by"`
	Attendees       []attendeeDocument  `firestore:"attendees"`
	Recurring       *recurrenceDocument `firestore:"recurring"`
	CreatedAt       time.Time           `firestore:"created_at"`
	UpdatedAt       time.Time           `firestore:"updated_at"`
}

func toMeetingDocument(m *model.Meeting) *meetingDocument {
	doc := &meetingDocument{
		ID:              m.ID.String(),
		Name:            m.Name,
		Description:     m.Description,
		StartTime:       m.StartTime,
		DurationMinutes: m.DurationMinutes,
		CreatedBy:       m.CreatedBy.String(),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	doc.Attendees = make([]attendeeDocument, 0, len(m.Attendees))
	for _, a := range m.Attendees {
		doc.Attendees = append(doc.Attendees, attendeeDocument{
			RoleID:       a.RoleID.String(),
			DepartmentID: a.DepartmentID.String(),
			Count:        a.Count,
		})
	}
	if m.Recurring != nil {
		doc.Recurring = &recurrenceDocument{
			Frequency: m.Recurring.Frequency.String(),
			EndDate:   m.Recurring.EndDate,
		}
	}
	return doc
}

func (d *meetingDocument) toModel() *model.Meeting {
	m := &model.Meeting{
		ID:              types.MeetingID(d.ID),
		Name:            d.Name,
		Description:     d.Description,
		StartTime:       d.StartTime,
		DurationMinutes: d.DurationMinutes,
		CreatedBy:       types.UserID(d.CreatedBy),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	m.Attendees = make([]model.Attendee, 0, len(d.Attendees))
	for _, a := range d.Attendees {
		m.Attendees = append(m.Attendees, model.Attendee{
			RoleID:       types.JobRoleID(a.RoleID),
			DepartmentID: types.DepartmentID(a.DepartmentID),
			Count:        a.Count,
		})
	}
	if d.Recurring != nil {
		m.Recurring = &model.Recurrence{
			Frequency: types.Frequency(d.Recurring.Frequency),
			EndDate:   d.Recurring.EndDate,
		}
	}
	return m
}

type meetingRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newMeetingRepository(client *firestore.Client) *meetingRepository {
	return &meetingRepository{client: client}
}

func (r *meetingRepository) collection() string {
	return collectionName(r.collectionPrefix, "meetings")
}

func (r *meetingRepository) Create(ctx context.Context, meeting *model.Meeting) (*model.Meeting, error) {
	now := time.Now().UTC()
	created := *meeting
	if created.ID == "" {
		created.ID = types.NewMeetingID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toMeetingDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create meeting", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *meetingRepository) Get(ctx context.Context, id types.MeetingID) (*model.Meeting, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "meeting not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get meeting", goerr.V("id", id))
	}

	var d meetingDocument
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal meeting")
	}
	return d.toModel(), nil
}

func (r *meetingRepository) List(ctx context.Context) ([]*model.Meeting, error) {
	iter := r.client.Collection(r.collection()).OrderBy("start_time", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var meetings []*model.Meeting
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list meetings")
		}

		var d meetingDocument
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal meeting")
		}
		meetings = append(meetings, d.toModel())
	}
	return meetings, nil
}

func (r *meetingRepository) Update(ctx context.Context, meeting *model.Meeting) (*model.Meeting, error) {
	docRef := r.client.Collection(r.collection()).Doc(meeting.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "meeting not found", goerr.V("id", meeting.ID))
		}
		return nil, goerr.Wrap(err, "failed to get meeting", goerr.V("id", meeting.ID))
	}

	var existing meetingDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal meeting")
	}

	updated := *meeting
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toMeetingDocument(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update meeting", goerr.V("id", meeting.ID))
	}
	return &updated, nil
}

func (r *meetingRepository) Delete(ctx context.Context, id types.MeetingID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "meeting not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get meeting", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete meeting", goerr.V("id", id))
	}
	return nil
}
