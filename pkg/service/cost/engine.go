package cost

import (
	"context"
	"math"

	"github.com/meetingtax/meetingtax/pkg/domain/interfaces"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
)

// Engine computes the monetary cost of meeting time from hourly rates.
type Engine struct {
	resolver *Resolver
}

func NewEngine(rates interfaces.RateRepository) *Engine {
	return &Engine{resolver: NewResolver(rates)}
}

// Resolver exposes the engine's rate resolver.
func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

// MeetingCost returns the total cost of a meeting in cents. Per-group
// contributions are rateCents x (durationMinutes/60) x count, summed in
// fractional cents and rounded exactly once at the end. A group with no
// resolvable rate contributes zero; the write path rejects such groups,
// this keeps meetings readable after a rate is removed.
func (e *Engine) MeetingCost(ctx context.Context, durationMinutes int64, attendees []model.Attendee) (int64, error) {
	hours := float64(durationMinutes) / 60

	var total float64
	for _, a := range attendees {
		rate, ok, err := e.resolver.Resolve(ctx, a.RoleID, a.DepartmentID)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		total += float64(rate.RateCents) * hours * float64(a.Count)
	}

	return int64(math.Round(total)), nil
}

// GroupCost returns one attendee group's contribution rounded to whole
// cents, for per-department and per-role report buckets. ok=false when
// the group has no resolvable rate.
func (e *Engine) GroupCost(ctx context.Context, durationMinutes int64, attendee model.Attendee) (int64, bool, error) {
	rate, ok, err := e.resolver.Resolve(ctx, attendee.RoleID, attendee.DepartmentID)
	if err != nil || !ok {
		return 0, ok, err
	}

	cents := float64(rate.RateCents) * (float64(durationMinutes) / 60) * float64(attendee.Count)
	return int64(math.Round(cents)), true, nil
}
