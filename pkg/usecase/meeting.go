package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/interfaces"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
	"github.com/meetingtax/meetingtax/pkg/service/cost"
	"github.com/meetingtax/meetingtax/pkg/utils/logging"
)

// MeetingUseCase covers meeting CRUD with role-based visibility and
// cost annotation.
type MeetingUseCase struct {
	repo     interfaces.Repository
	engine   *cost.Engine
	settings *SettingUseCase
	now      func() time.Time
}

func NewMeetingUseCase(repo interfaces.Repository, engine *cost.Engine, settings *SettingUseCase) *MeetingUseCase {
	return &MeetingUseCase{
		repo:     repo,
		engine:   engine,
		settings: settings,
		now:      time.Now,
	}
}

// MeetingView is a meeting annotated with its computed cost and
// whether it crosses the configured threshold.
type MeetingView struct {
	Meeting       *model.Meeting
	CostCents     int64
	OverThreshold bool
}

func (uc *MeetingUseCase) view(ctx context.Context, meeting *model.Meeting, threshold int64) (*MeetingView, error) {
	costCents, err := uc.engine.MeetingCost(ctx, meeting.DurationMinutes, meeting.Attendees)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compute meeting cost", goerr.V("meetingID", meeting.ID))
	}
	return &MeetingView{
		Meeting:       meeting,
		CostCents:     costCents,
		OverThreshold: costCents > threshold,
	}, nil
}

// MeetingFilter narrows a listing. Zero time bounds mean unbounded,
// an empty department ID means all departments.
type MeetingFilter struct {
	FromMillis   int64
	ToMillis     int64
	DepartmentID types.DepartmentID
}

func (f MeetingFilter) match(m *model.Meeting) bool {
	if f.FromMillis > 0 && m.StartTime < f.FromMillis {
		return false
	}
	if f.ToMillis > 0 && m.StartTime > f.ToMillis {
		return false
	}
	if f.DepartmentID != "" && !m.HasDepartment(f.DepartmentID) {
		return false
	}
	return true
}

// List returns the meetings visible to the actor and matching the
// filter, newest first, each annotated with cost.
func (uc *MeetingUseCase) List(ctx context.Context, actor *model.User, filter MeetingFilter) ([]*MeetingView, error) {
	if actor == nil {
		return nil, goerr.Wrap(ErrUnauthenticated, "sign in required")
	}

	meetings, err := uc.repo.Meeting().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list meetings")
	}

	visible := make([]*model.Meeting, 0, len(meetings))
	for _, m := range model.VisibleMeetings(actor, meetings) {
		if filter.match(m) {
			visible = append(visible, m)
		}
	}

	threshold, err := uc.settings.CostThreshold(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*MeetingView, 0, len(visible))
	for _, m := range visible {
		v, err := uc.view(ctx, m, threshold)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (uc *MeetingUseCase) Get(ctx context.Context, actor *model.User, id types.MeetingID) (*MeetingView, error) {
	if actor == nil {
		return nil, goerr.Wrap(ErrUnauthenticated, "sign in required")
	}

	meeting, err := uc.repo.Meeting().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrNotFound, "meeting not found", goerr.V("meetingID", id))
		}
		return nil, goerr.Wrap(err, "failed to get meeting", goerr.V("meetingID", id))
	}

	if !model.CanViewMeeting(actor, meeting) {
		// Hide existence from users without visibility
		return nil, goerr.Wrap(ErrNotFound, "meeting not found", goerr.V("meetingID", id))
	}

	threshold, err := uc.settings.CostThreshold(ctx)
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, meeting, threshold)
}

// validateReferences checks every attendee group points at an existing
// role and department, and that a rate can be resolved for it. Writes
// are rejected rather than recording groups that would silently
// contribute zero cost.
func (uc *MeetingUseCase) validateReferences(ctx context.Context, attendees []model.Attendee) error {
	for i, a := range attendees {
		if _, err := uc.repo.JobRole().Get(ctx, a.RoleID); err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return goerr.Wrap(ErrValidation, "unknown job role", goerr.V("index", i), goerr.V("roleID", a.RoleID))
			}
			return goerr.Wrap(err, "failed to get job role")
		}
		if _, err := uc.repo.Department().Get(ctx, a.DepartmentID); err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return goerr.Wrap(ErrValidation, "unknown department", goerr.V("index", i), goerr.V("departmentID", a.DepartmentID))
			}
			return goerr.Wrap(err, "failed to get department")
		}

		_, resolved, err := uc.engine.Resolver().Resolve(ctx, a.RoleID, a.DepartmentID)
		if err != nil {
			return goerr.Wrap(err, "failed to resolve rate")
		}
		if !resolved {
			return goerr.Wrap(ErrValidation, "no rate configured for attendee group",
				goerr.V("index", i), goerr.V("roleID", a.RoleID))
		}
	}
	return nil
}

func (uc *MeetingUseCase) Create(ctx context.Context, actor *model.User, meeting *model.Meeting) (*MeetingView, error) {
	if actor == nil {
		return nil, goerr.Wrap(ErrUnauthenticated, "sign in required")
	}

	meeting.ID = types.NewMeetingID()
	meeting.CreatedBy = actor.ID

	if err := meeting.Validate(); err != nil {
		return nil, goerr.Wrap(ErrValidation, err.Error())
	}
	if err := uc.validateReferences(ctx, meeting.Attendees); err != nil {
		return nil, err
	}

	created, err := uc.repo.Meeting().Create(ctx, meeting)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create meeting")
	}

	logging.From(ctx).Info("meeting created",
		"meetingID", created.ID, "createdBy", actor.ID)

	threshold, err := uc.settings.CostThreshold(ctx)
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, created, threshold)
}

func (uc *MeetingUseCase) Update(ctx context.Context, actor *model.User, id types.MeetingID, update *model.Meeting) (*MeetingView, error) {
	if actor == nil {
		return nil, goerr.Wrap(ErrUnauthenticated, "sign in required")
	}

	existing, err := uc.repo.Meeting().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrNotFound, "meeting not found", goerr.V("meetingID", id))
		}
		return nil, goerr.Wrap(err, "failed to get meeting", goerr.V("meetingID", id))
	}

	if !model.CanModifyMeeting(actor, existing) {
		return nil, goerr.Wrap(ErrNotAuthorized, "only the creator or an admin may modify a meeting")
	}

	update.ID = existing.ID
	update.CreatedBy = existing.CreatedBy

	if err := update.Validate(); err != nil {
		return nil, goerr.Wrap(ErrValidation, err.Error())
	}
	if err := uc.validateReferences(ctx, update.Attendees); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Meeting().Update(ctx, update)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update meeting", goerr.V("meetingID", id))
	}

	threshold, err := uc.settings.CostThreshold(ctx)
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, updated, threshold)
}

// Remove deletes a meeting and returns its cost as the amount saved.
// With cancelOnly set, meetings whose start time has passed are part
// of the cost record and are refused.
func (uc *MeetingUseCase) Remove(ctx context.Context, actor *model.User, id types.MeetingID, cancelOnly bool) (int64, error) {
	if actor == nil {
		return 0, goerr.Wrap(ErrUnauthenticated, "sign in required")
	}

	meeting, err := uc.repo.Meeting().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return 0, goerr.Wrap(ErrNotFound, "meeting not found", goerr.V("meetingID", id))
		}
		return 0, goerr.Wrap(err, "failed to get meeting", goerr.V("meetingID", id))
	}

	if !model.CanModifyMeeting(actor, meeting) {
		return 0, goerr.Wrap(ErrNotAuthorized, "only the creator or an admin may cancel a meeting")
	}
	if cancelOnly && meeting.Started(uc.now()) {
		return 0, goerr.Wrap(ErrCannotCancelPast, "meeting has already started", goerr.V("meetingID", id))
	}

	saved, err := uc.engine.MeetingCost(ctx, meeting.DurationMinutes, meeting.Attendees)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to compute meeting cost", goerr.V("meetingID", id))
	}

	if err := uc.repo.Meeting().Delete(ctx, id); err != nil {
		return 0, goerr.Wrap(err, "failed to delete meeting", goerr.V("meetingID", id))
	}

	logging.From(ctx).Info("meeting removed",
		"meetingID", id, "actorID", actor.ID, "savedCents", saved)
	return saved, nil
}
