package http

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/config"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// NewLogger builds the JSON logger shared by the request logger and the services.
func NewLogger(app config.AppConfig) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(app.Env != "development")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       parseLevel(app.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-reconciliation"),
		slog.String("version", "v1.0.0"),
		slog.String("env", app.Env),
	)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewRouter(
	cfg config.AppConfig,
	JWTService jwt.Service,
	logger *slog.Logger,
	attendanceHandler AttendanceHandler,
	anomalyHandler AnomalyHandler,
	directoryHandler DirectoryHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Retry-After"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/lookup", attendanceHandler.Lookup)
				r.Post("/submit", attendanceHandler.Submit)
			})

			r.Route("/gps/sessions", func(r chi.Router) {
				r.Post("/", anomalyHandler.StartSession)
				r.Route("/{id}", func(r chi.Router) {
					r.Post("/samples", anomalyHandler.AnalyzeSample)
					r.Delete("/", anomalyHandler.EndSession)
				})
			})

			r.Get("/employees/profiles", directoryHandler.ListEmployeeProfiles)
			r.Get("/shifts", directoryHandler.ListShifts)
			r.Get("/locations", directoryHandler.ListLocations)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
