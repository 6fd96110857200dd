package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
	"github.com/escuela-horarios/attendance-backend/internal/handler/http/middleware"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the settings the router needs from config.
type RouterOptions struct {
	Env         string
	FrontendURL string
	LogLevel    slog.Level
	// FilesDir is served under /files when non-empty.
	FilesDir string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	authHandler AuthHandler,
	scheduleHandler ScheduleHandler,
	attendanceHandler AttendanceHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	if opts.FilesDir != "" {
		r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(opts.FilesDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/schedule/slots", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionScheduleView)).Get("/", scheduleHandler.ListSlots)
				r.With(middleware.RequirePermission(user.PermissionScheduleView)).Get("/{id}", scheduleHandler.GetSlot)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionScheduleManage))
					r.Post("/", scheduleHandler.CreateSlot)
					r.Put("/{id}", scheduleHandler.UpdateSlot)
					r.Delete("/{id}", scheduleHandler.DeleteSlot)
				})
			})

			r.With(middleware.RequirePermission(user.PermissionAttendanceRecord)).
				Put("/attendance/{role}", attendanceHandler.RecordAttendance)

			r.Route("/reports", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReportsView))
					r.Get("/teachers/{id}/attendance", reportHandler.TeacherAttendance)
					r.Get("/teachers/{id}/document", reportHandler.TeacherDocument)
					r.Get("/groups/{id}/attendance", reportHandler.GroupAttendance)
					r.Get("/groups/{id}/rows", reportHandler.GroupRows)
					r.Get("/checker/rows", reportHandler.CheckerRows)
				})

				r.With(middleware.RequirePermission(user.PermissionReportsRank)).
					Get("/teachers/ranking", reportHandler.TeacherRanking)
				r.With(middleware.RequirePermission(user.PermissionReportsExport)).
					Get("/teachers/{id}/export", reportHandler.TeacherExport)
			})
		})
	})
	return r
}
