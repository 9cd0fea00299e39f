package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/model/auth"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
	"github.com/meetingtax/meetingtax/pkg/usecase"
)

type attendeeBody struct {
	RoleID       string `json:"roleId"`
	DepartmentID string `json:"departmentId"`
	Count        int64  `json:"count"`
}

type recurrenceBody struct {
	Frequency string `json:"frequency"`
	EndDate   int64  `json:"endDate,omitempty"`
}

type meetingRequest struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	StartTime       int64           `json:"startTime"`
	DurationMinutes int64           `json:"durationMinutes"`
	Attendees       []attendeeBody  `json:"attendees"`
	Recurring       *recurrenceBody `json:"recurring,omitempty"`
}

func (req *meetingRequest) toModel() (*model.Meeting, error) {
	m := &model.Meeting{
		Name:            req.Name,
		Description:     req.Description,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
	}
	for _, a := range req.Attendees {
		m.Attendees = append(m.Attendees, model.Attendee{
			RoleID:       types.JobRoleID(a.RoleID),
			DepartmentID: types.DepartmentID(a.DepartmentID),
			Count:        a.Count,
		})
	}
	if req.Recurring != nil {
		freq, err := types.ParseFrequency(req.Recurring.Frequency)
		if err != nil {
			return nil, goerr.Wrap(usecase.ErrValidation, "invalid recurrence frequency",
				goerr.V("frequency", req.Recurring.Frequency))
		}
		m.Recurring = &model.Recurrence{Frequency: freq, EndDate: req.Recurring.EndDate}
	}
	return m, nil
}

type meetingResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	StartTime       int64           `json:"startTime"`
	DurationMinutes int64           `json:"durationMinutes"`
	CreatedBy       string          `json:"createdBy"`
	Attendees       []attendeeBody  `json:"attendees"`
	Recurring       *recurrenceBody `json:"recurring,omitempty"`
	CostCents       int64           `json:"costCents"`
	OverThreshold   bool            `json:"overThreshold"`
}

func toMeetingResponse(v *usecase.MeetingView) meetingResponse {
	m := v.Meeting
	resp := meetingResponse{
		ID:              m.ID.String(),
		Name:            m.Name,
		Description:     m.Description,
		StartTime:       m.StartTime,
		DurationMinutes: m.DurationMinutes,
		CreatedBy:       m.CreatedBy.String(),
		CostCents:       v.CostCents,
		OverThreshold:   v.OverThreshold,
	}
	resp.Attendees = make([]attendeeBody, 0, len(m.Attendees))
	for _, a := range m.Attendees {
		resp.Attendees = append(resp.Attendees, attendeeBody{
			RoleID:       a.RoleID.String(),
			DepartmentID: a.DepartmentID.String(),
			Count:        a.Count,
		})
	}
	if m.Recurring != nil {
		resp.Recurring = &recurrenceBody{
			Frequency: m.Recurring.Frequency.String(),
			EndDate:   m.Recurring.EndDate,
		}
	}
	return resp
}

func listMeetingsHandler(meetingUC *usecase.MeetingUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := meetingFilterFromQuery(r)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		views, err := meetingUC.List(r.Context(), auth.UserFrom(r.Context()), filter)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		resp := make([]meetingResponse, 0, len(views))
		for _, v := range views {
			resp = append(resp, toMeetingResponse(v))
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func getMeetingHandler(meetingUC *usecase.MeetingUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.MeetingID(chi.URLParam(r, "id"))
		view, err := meetingUC.Get(r.Context(), auth.UserFrom(r.Context()), id)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toMeetingResponse(view))
	}
}

func createMeetingHandler(meetingUC *usecase.MeetingUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req meetingRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		meeting, err := req.toModel()
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		view, err := meetingUC.Create(r.Context(), auth.UserFrom(r.Context()), meeting)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toMeetingResponse(view))
	}
}

func updateMeetingHandler(meetingUC *usecase.MeetingUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req meetingRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		update, err := req.toModel()
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		id := types.MeetingID(chi.URLParam(r, "id"))
		view, err := meetingUC.Update(r.Context(), auth.UserFrom(r.Context()), id, update)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toMeetingResponse(view))
	}
}

// meetingFilterFromQuery parses from/to (epoch ms) and department
// query parameters.
func meetingFilterFromQuery(r *http.Request) (usecase.MeetingFilter, error) {
	var filter usecase.MeetingFilter

	q := r.URL.Query()
	for _, bound := range []struct {
		name string
		dst  *int64
	}{
		{"from", &filter.FromMillis},
		{"to", &filter.ToMillis},
	} {
		raw := q.Get(bound.name)
		if raw == "" {
			continue
		}
		millis, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, goerr.Wrap(usecase.ErrValidation, "invalid time bound",
				goerr.V("param", bound.name), goerr.V("value", raw))
		}
		*bound.dst = millis
	}
	filter.DepartmentID = types.DepartmentID(q.Get("department"))

	return filter, nil
}

type removeMeetingResponse struct {
	Success    bool  `json:"success"`
	SavedCents int64 `json:"savedCents"`
}

func removeMeetingHandler(meetingUC *usecase.MeetingUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.MeetingID(chi.URLParam(r, "id"))
		cancelOnly := r.URL.Query().Get("cancelOnly") == "true"

		saved, err := meetingUC.Remove(r.Context(), auth.UserFrom(r.Context()), id, cancelOnly)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, removeMeetingResponse{Success: true, SavedCents: saved})
	}
}
