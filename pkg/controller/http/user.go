package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/model/auth"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
	"github.com/meetingtax/meetingtax/pkg/usecase"
)

type userEntryResponse struct {
	userResponse
	DepartmentName string `json:"departmentName,omitempty"`
}

func listUsersHandler(userUC *usecase.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := userUC.List(r.Context(), auth.UserFrom(r.Context()))
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		resp := make([]userEntryResponse, 0, len(entries))
		for _, e := range entries {
			resp = append(resp, userEntryResponse{
				userResponse:   toUserResponse(e.User),
				DepartmentName: e.DepartmentName,
			})
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func updateProfileHandler(userUC *usecase.UserUseCase) http.HandlerFunc {
	type request struct {
		Name         string `json:"name"`
		DepartmentID string `json:"departmentId"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		actor := auth.UserFrom(r.Context())
		updated, err := userUC.UpdateProfile(r.Context(), actor, req.Name, types.DepartmentID(req.DepartmentID))
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toUserResponse(updated))
	}
}

func updateUserRoleHandler(userUC *usecase.UserUseCase) http.HandlerFunc {
	type request struct {
		Role string `json:"role"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		role, err := types.ParseUserRole(req.Role)
		if err != nil {
			writeError(r.Context(), w, goerr.Wrap(usecase.ErrValidation, "invalid role", goerr.V("role", req.Role)))
			return
		}

		actor := auth.UserFrom(r.Context())
		id := types.UserID(chi.URLParam(r, "id"))

		updated, err := userUC.UpdateRole(r.Context(), actor, id, role)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toUserResponse(updated))
	}
}

func updateUserDepartmentHandler(userUC *usecase.UserUseCase) http.HandlerFunc {
	type request struct {
		DepartmentID string `json:"departmentId"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		actor := auth.UserFrom(r.Context())
		id := types.UserID(chi.URLParam(r, "id"))

		updated, err := userUC.UpdateDepartment(r.Context(), actor, id, types.DepartmentID(req.DepartmentID))
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toUserResponse(updated))
	}
}
