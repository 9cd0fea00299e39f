package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/interfaces"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
	"github.com/meetingtax/meetingtax/pkg/service/cost"
)

const topMeetingLimit = 5

// ReportUseCase aggregates meeting costs over a recent window.
type ReportUseCase struct {
	repo   interfaces.Repository
	engine *cost.Engine
	now    func() time.Time
}

func NewReportUseCase(repo interfaces.Repository, engine *cost.Engine) *ReportUseCase {
	return &ReportUseCase{
		repo:   repo,
		engine: engine,
		now:    time.Now,
	}
}

// MeetingCostEntry names one meeting and its total cost inside a
// report.
type MeetingCostEntry struct {
	MeetingID types.MeetingID
	Name      string
	StartTime int64
	CostCents int64
}

// CostReport summarizes spend over the report window. Department and
// role buckets accumulate each attendee group's individually rounded
// contribution, so bucket sums may differ from the total by rounding.
type CostReport struct {
	Period           types.ReportPeriod
	FromMillis       int64
	ToMillis         int64
	TotalCents       int64
	MeetingCount     int64
	CostByDepartment map[types.DepartmentID]int64
	CostByRole       map[types.JobRoleID]int64
	TopMeetings      []MeetingCostEntry
}

// Costs builds a cost report over the trailing week or month for the
// meetings visible to the actor, optionally narrowed to a department.
func (uc *ReportUseCase) Costs(ctx context.Context, actor *model.User, period types.ReportPeriod, departmentID types.DepartmentID) (*CostReport, error) {
	if actor == nil {
		return nil, goerr.Wrap(ErrUnauthenticated, "sign in required")
	}
	if !period.IsValid() {
		return nil, goerr.Wrap(ErrValidation, "invalid report period", goerr.V("period", period))
	}

	now := uc.now()
	to := now.UnixMilli()
	from := now.Add(-period.Duration()).UnixMilli()

	meetings, err := uc.repo.Meeting().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list meetings")
	}
	visible := model.VisibleMeetings(actor, meetings)

	report := &CostReport{
		Period:           period,
		FromMillis:       from,
		ToMillis:         to,
		CostByDepartment: make(map[types.DepartmentID]int64),
		CostByRole:       make(map[types.JobRoleID]int64),
	}

	var entries []MeetingCostEntry
	for _, m := range visible {
		if m.StartTime < from || m.StartTime > to {
			continue
		}
		if departmentID != "" && !m.HasDepartment(departmentID) {
			continue
		}

		total, err := uc.engine.MeetingCost(ctx, m.DurationMinutes, m.Attendees)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to compute meeting cost", goerr.V("meetingID", m.ID))
		}

		report.TotalCents += total
		report.MeetingCount++
		entries = append(entries, MeetingCostEntry{
			MeetingID: m.ID,
			Name:      m.Name,
			StartTime: m.StartTime,
			CostCents: total,
		})

		for _, a := range m.Attendees {
			groupCents, resolved, err := uc.engine.GroupCost(ctx, m.DurationMinutes, a)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to compute group cost", goerr.V("meetingID", m.ID))
			}
			if !resolved {
				continue
			}
			report.CostByDepartment[a.DepartmentID] += groupCents
			report.CostByRole[a.RoleID] += groupCents
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CostCents > entries[j].CostCents
	})
	if len(entries) > topMeetingLimit {
		entries = entries[:topMeetingLimit]
	}
	report.TopMeetings = entries

	return report, nil
}
