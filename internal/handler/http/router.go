package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	checkClockHandler CheckClockHandler,
	scheduleHandler ScheduleHandler,
	reportHandler ReportHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "checkclock-cmlabs"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// SSE stream authenticates with its own short-lived query token,
		// outside the Authorization-header group.
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/check-clocks", func(r chi.Router) {
				r.Post("/", checkClockHandler.Submit)
				r.Get("/", checkClockHandler.ListMine)
				r.Get("/summary", reportHandler.Summary)
				r.Get("/work-hours", reportHandler.WorkHours)
				r.Get("/leave-summary", reportHandler.LeaveSummary)
			})

			r.Route("/admin/check-clocks", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", checkClockHandler.AdminList)
				r.Post("/", checkClockHandler.AdminSubmit)
				r.Get("/stats", reportHandler.CompanyStats)
				r.Get("/recent", reportHandler.RecentAttendance)
				r.Get("/{id}", checkClockHandler.AdminGet)
				r.Patch("/{id}/approve", checkClockHandler.Approve)
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", scheduleHandler.List)
				r.Get("/shift-types", scheduleHandler.ListShiftTypes)
				r.Post("/shift-types", scheduleHandler.CreateShiftType)
				r.Post("/assign", scheduleHandler.Assign)
				r.Get("/unassigned", scheduleHandler.ListUnassigned)
				r.Put("/{employeeID}", scheduleHandler.Update)
				r.Delete("/{employeeID}", scheduleHandler.Remove)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Patch("/read", notificationHandler.MarkAsRead)
				r.Patch("/read-all", notificationHandler.MarkAllAsRead)
				r.Delete("/{id}", notificationHandler.Delete)
				r.Get("/preferences", notificationHandler.GetPreferences)
				r.Put("/preferences", notificationHandler.UpdatePreference)
				r.Get("/sse-token", notificationHandler.GetSSEToken)
			})
		})
	})

	return r
}
