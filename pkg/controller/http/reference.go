package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/model/auth"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
	"github.com/meetingtax/meetingtax/pkg/usecase"
)

type referenceResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func toDepartmentResponse(d *model.Department) referenceResponse {
	return referenceResponse{ID: d.ID.String(), Name: d.Name, Slug: d.Slug}
}

func toJobRoleResponse(r *model.JobRole) referenceResponse {
	return referenceResponse{ID: r.ID.String(), Name: r.Name, Slug: r.Slug}
}

type nameRequest struct {
	Name string `json:"name"`
}

func listDepartmentsHandler(refUC *usecase.ReferenceUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		depts, err := refUC.ListDepartments(r.Context())
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		resp := make([]referenceResponse, 0, len(depts))
		for _, d := range depts {
			resp = append(resp, toDepartmentResponse(d))
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func createDepartmentHandler(refUC *usecase.ReferenceUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req nameRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		dept, err := refUC.CreateDepartment(r.Context(), auth.UserFrom(r.Context()), req.Name)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toDepartmentResponse(dept))
	}
}

func updateDepartmentHandler(refUC *usecase.ReferenceUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req nameRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		id := types.DepartmentID(chi.URLParam(r, "id"))
		dept, err := refUC.UpdateDepartment(r.Context(), auth.UserFrom(r.Context()), id, req.Name)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toDepartmentResponse(dept))
	}
}

func deleteDepartmentHandler(refUC *usecase.ReferenceUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.DepartmentID(chi.URLParam(r, "id"))
		if err := refUC.DeleteDepartment(r.Context(), auth.UserFrom(r.Context()), id); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

func listJobRolesHandler(refUC *usecase.ReferenceUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roles, err := refUC.ListJobRoles(r.Context())
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		resp := make([]referenceResponse, 0, len(roles))
		for _, role := range roles {
			resp = append(resp, toJobRoleResponse(role))
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func createJobRoleHandler(refUC *usecase.ReferenceUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req nameRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		role, err := refUC.CreateJobRole(r.Context(), auth.UserFrom(r.Context()), req.Name)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toJobRoleResponse(role))
	}
}

func updateJobRoleHandler(refUC *usecase.ReferenceUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req nameRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		id := types.JobRoleID(chi.URLParam(r, "id"))
		role, err := refUC.UpdateJobRole(r.Context(), auth.UserFrom(r.Context()), id, req.Name)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toJobRoleResponse(role))
	}
}

func deleteJobRoleHandler(refUC *usecase.ReferenceUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.JobRoleID(chi.URLParam(r, "id"))
		if err := refUC.DeleteJobRole(r.Context(), auth.UserFrom(r.Context()), id); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}
