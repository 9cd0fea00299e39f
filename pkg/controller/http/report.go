package http

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/model/auth"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
	"github.com/meetingtax/meetingtax/pkg/usecase"
)

type topMeetingResponse struct {
	MeetingID string `json:"meetingId"`
	Name      string `json:"name"`
	StartTime int64  `json:"startTime"`
	CostCents int64  `json:"costCents"`
}

type costReportResponse struct {
	Period           string               `json:"period"`
	From             int64                `json:"from"`
	To               int64                `json:"to"`
	TotalCents       int64                `json:"totalCents"`
	MeetingCount     int64                `json:"meetingCount"`
	CostByDepartment map[string]int64     `json:"costByDepartment"`
	CostByRole       map[string]int64     `json:"costByRole"`
	TopMeetings      []topMeetingResponse `json:"topMeetings"`
}

func costReportHandler(reportUC *usecase.ReportUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		periodParam := r.URL.Query().Get("period")
		if periodParam == "" {
			periodParam = types.PeriodWeek.String()
		}
		period, err := types.ParseReportPeriod(periodParam)
		if err != nil {
			writeError(r.Context(), w, goerr.Wrap(usecase.ErrValidation, "invalid report period",
				goerr.V("period", periodParam)))
			return
		}

		departmentID := types.DepartmentID(r.URL.Query().Get("department"))

		report, err := reportUC.Costs(r.Context(), auth.UserFrom(r.Context()), period, departmentID)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		resp := costReportResponse{
			Period:           report.Period.String(),
			From:             report.FromMillis,
			To:               report.ToMillis,
			TotalCents:       report.TotalCents,
			MeetingCount:     report.MeetingCount,
			CostByDepartment: make(map[string]int64, len(report.CostByDepartment)),
			CostByRole:       make(map[string]int64, len(report.CostByRole)),
			TopMeetings:      make([]topMeetingResponse, 0, len(report.TopMeetings)),
		}
		for id, cents := range report.CostByDepartment {
			resp.CostByDepartment[id.String()] = cents
		}
		for id, cents := range report.CostByRole {
			resp.CostByRole[id.String()] = cents
		}
		for _, m := range report.TopMeetings {
			resp.TopMeetings = append(resp.TopMeetings, topMeetingResponse{
				MeetingID: m.MeetingID.String(),
				Name:      m.Name,
				StartTime: m.StartTime,
				CostCents: m.CostCents,
			})
		}

		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}
