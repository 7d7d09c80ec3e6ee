package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/hrsuite/hr-backend-go/internal/config"
	"github.com/hrsuite/hr-backend-go/internal/domain/user"
	"github.com/hrsuite/hr-backend-go/internal/handler/http/middleware"
	"github.com/hrsuite/hr-backend-go/internal/pkg/jwt"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth         AuthHandler
	User         UserHandler
	Employee     EmployeeHandler
	Position     PositionHandler
	Attendance   AttendanceHandler
	Absence      AbsenceHandler
	Leave        LeaveHandler
	Announcement AnnouncementHandler
	Notification NotificationHandler
	Audit        AuditHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	// Stored justification files are served statically in local mode
	uploadsDir := http.Dir(cfg.Storage.BasePath)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(uploadsDir)))

	ja := jwtService.JWTAuth()

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
			r.Post("/reset-password", h.Auth.ResetPassword)
			r.Get("/login/oauth/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(ja))
				r.Use(middleware.AuthRequired(ja))

				r.Post("/change-password", h.Auth.ChangePassword)
				r.Get("/sse-token", h.Auth.SSEToken)

				r.With(middleware.RequireAdminRH).Post("/register", h.Auth.Register)
			})
		})

		// SSE stream authenticates with a short-lived token in the query
		// string because EventSource cannot send headers
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(ja, jwtauth.TokenFromQuery))
			r.Use(middleware.SSERequired(ja))

			r.Get("/notifications/stream", h.Notification.Stream)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(ja))
			r.Use(middleware.AuthRequired(ja))

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdminRH)
				r.Get("/", h.User.List)
				r.Get("/{id}", h.User.Get)
				r.Put("/{id}", h.User.Update)
				r.Patch("/{id}/status", h.User.ToggleStatus)
				r.Delete("/{id}", h.User.Delete)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/my-team", h.Employee.MyTeam)
				r.Get("/{id}", h.Employee.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", h.Employee.List)
					r.Put("/{id}", h.Employee.Update)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdminRH)
					r.Post("/", h.Employee.Create)
					r.Delete("/{id}", h.Employee.Delete)
				})
			})

			r.Route("/positions", func(r chi.Router) {
				r.Get("/", h.Position.List)
				r.Get("/{id}", h.Position.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdminRH)
					r.Post("/", h.Position.Create)
					r.Put("/{id}", h.Position.Update)
					r.Patch("/{id}/status", h.Position.ToggleStatus)
					r.Delete("/{id}", h.Position.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Post("/record", h.Attendance.Record)
				r.Get("/today", h.Attendance.GetToday)
				r.Get("/my-history", h.Attendance.GetMyAttendance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/", h.Attendance.List)
					r.Get("/daily-summary", h.Attendance.DailySummary)
				})
			})

			r.Route("/absences", func(r chi.Router) {
				r.Get("/", h.Absence.List)
				r.Get("/{id}", h.Absence.Get)
				r.Post("/{id}/justification", h.Absence.SubmitJustification)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Absence.Declare)
					r.Patch("/{id}/justification", h.Absence.ProcessJustification)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", h.Leave.Create)
				r.Get("/my", h.Leave.ListMine)
				r.Get("/{id}", h.Leave.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", h.Leave.List)
					r.Patch("/{id}/process", h.Leave.Process)
				})
			})

			r.Route("/announcements", func(r chi.Router) {
				r.Get("/", h.Announcement.List)
				r.Get("/{id}", h.Announcement.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAnnouncementPublish))
					r.Post("/", h.Announcement.Create)
					r.Put("/{id}", h.Announcement.Update)
					r.Delete("/{id}", h.Announcement.Delete)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/{id}", h.Notification.Get)
				r.Patch("/{id}/read", h.Notification.MarkAsRead)
				r.Patch("/read-all", h.Notification.MarkAllAsRead)
				r.Delete("/{id}", h.Notification.Delete)
			})

			r.Route("/audit-logs", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAuditLogsView))
				r.Get("/", h.Audit.List)
			})
		})
	})

	return r
}
