package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meetingtax/meetingtax/pkg/domain/model/auth"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
	"github.com/meetingtax/meetingtax/pkg/usecase"
)

type rateResponse struct {
	ID             string `json:"id"`
	RoleID         string `json:"roleId"`
	RoleName       string `json:"roleName,omitempty"`
	DepartmentID   string `json:"departmentId,omitempty"`
	DepartmentName string `json:"departmentName,omitempty"`
	RateCents      int64  `json:"rateCents"`
	IsDefault      bool   `json:"isDefault"`
}

func toRateResponse(e *usecase.RateEntry) rateResponse {
	return rateResponse{
		ID:             e.Rate.ID.String(),
		RoleID:         e.Rate.RoleID.String(),
		RoleName:       e.RoleName,
		DepartmentID:   e.Rate.DepartmentID.String(),
		DepartmentName: e.DepartmentName,
		RateCents:      e.Rate.RateCents,
		IsDefault:      e.Rate.IsDefault(),
	}
}

func listRatesHandler(rateUC *usecase.RateUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := rateUC.List(r.Context(), auth.UserFrom(r.Context()))
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		resp := make([]rateResponse, 0, len(entries))
		for _, e := range entries {
			resp = append(resp, toRateResponse(e))
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func setRateHandler(rateUC *usecase.RateUseCase) http.HandlerFunc {
	type request struct {
		RoleID       string `json:"roleId"`
		DepartmentID string `json:"departmentId"`
		RateCents    int64  `json:"rateCents"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		rate, err := rateUC.Set(r.Context(), auth.UserFrom(r.Context()),
			types.JobRoleID(req.RoleID), types.DepartmentID(req.DepartmentID), req.RateCents)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, rateResponse{
			ID:           rate.ID.String(),
			RoleID:       rate.RoleID.String(),
			DepartmentID: rate.DepartmentID.String(),
			RateCents:    rate.RateCents,
			IsDefault:    rate.IsDefault(),
		})
	}
}

func removeRateHandler(rateUC *usecase.RateUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.RateID(chi.URLParam(r, "id"))
		if err := rateUC.RemoveOverride(r.Context(), auth.UserFrom(r.Context()), id); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}
