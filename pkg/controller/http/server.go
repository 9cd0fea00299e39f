package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/meetingtax/meetingtax/pkg/usecase"
	"github.com/meetingtax/meetingtax/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", signUpHandler(uc.Auth))
			r.Post("/signin", signInHandler(uc.Auth))
			r.Post("/signout", signOutHandler(uc.Auth))
			r.Post("/reset/request", resetRequestHandler(uc.Auth))
			r.Post("/reset/confirm", resetConfirmHandler(uc.Auth))

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware(uc.Auth))
				r.Get("/me", meHandler)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(uc.Auth))

			r.Put("/profile", updateProfileHandler(uc.User))

			r.Get("/users", listUsersHandler(uc.User))
			r.Put("/users/{id}/role", updateUserRoleHandler(uc.User))
			r.Put("/users/{id}/department", updateUserDepartmentHandler(uc.User))

			r.Get("/departments", listDepartmentsHandler(uc.Reference))
			r.Post("/departments", createDepartmentHandler(uc.Reference))
			r.Put("/departments/{id}", updateDepartmentHandler(uc.Reference))
			r.Delete("/departments/{id}", deleteDepartmentHandler(uc.Reference))

			r.Get("/roles", listJobRolesHandler(uc.Reference))
			r.Post("/roles", createJobRoleHandler(uc.Reference))
			r.Put("/roles/{id}", updateJobRoleHandler(uc.Reference))
			r.Delete("/roles/{id}", deleteJobRoleHandler(uc.Reference))

			r.Get("/rates", listRatesHandler(uc.Rate))
			r.Put("/rates", setRateHandler(uc.Rate))
			r.Delete("/rates/{id}", removeRateHandler(uc.Rate))

			r.Get("/meetings", listMeetingsHandler(uc.Meeting))
			r.Post("/meetings", createMeetingHandler(uc.Meeting))
			r.Get("/meetings/{id}", getMeetingHandler(uc.Meeting))
			r.Put("/meetings/{id}", updateMeetingHandler(uc.Meeting))
			r.Delete("/meetings/{id}", removeMeetingHandler(uc.Meeting))

			r.Get("/reports/costs", costReportHandler(uc.Report))

			r.Get("/settings/{key}", getSettingHandler(uc.Setting))
			r.Put("/settings/{key}", setSettingHandler(uc.Setting))
		})
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
