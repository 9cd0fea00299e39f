package http

import (
	"net/http"

	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/model/auth"
	"github.com/meetingtax/meetingtax/pkg/usecase"
)

type userResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	DepartmentID string `json:"departmentId,omitempty"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role.String(),
		DepartmentID: u.DepartmentID.String(),
	}
}

type sessionResponse struct {
	Token  string       `json:"token"`
	Expiry int64        `json:"expiry"`
	User   userResponse `json:"user"`
}

func toSessionResponse(s *usecase.Session) sessionResponse {
	return sessionResponse{
		Token:  s.Token,
		Expiry: s.Expiry,
		User:   toUserResponse(s.User),
	}
}

func signUpHandler(authUC *usecase.AuthUseCase) http.HandlerFunc {
	type request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		session, err := authUC.SignUp(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toSessionResponse(session))
	}
}

func signInHandler(authUC *usecase.AuthUseCase) http.HandlerFunc {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		session, err := authUC.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toSessionResponse(session))
	}
}

func signOutHandler(authUC *usecase.AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := authUC.SignOut(r.Context(), bearerToken(r)); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

func meHandler(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	writeJSON(r.Context(), w, http.StatusOK, toUserResponse(user))
}

func resetRequestHandler(authUC *usecase.AuthUseCase) http.HandlerFunc {
	type request struct {
		Email   string `json:"email"`
		BaseURL string `json:"baseUrl"`
	}
	type response struct {
		Success   bool   `json:"success"`
		ResetLink string `json:"resetLink,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		// Unknown emails get the same success flag, just no link
		link, err := authUC.RequestPasswordReset(r.Context(), req.Email, req.BaseURL)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, response{Success: true, ResetLink: link})
	}
}

func resetConfirmHandler(authUC *usecase.AuthUseCase) http.HandlerFunc {
	type request struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		if err := authUC.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}
