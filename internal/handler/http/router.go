package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/developnetgeometry/unity-hrms-go/internal/handler/http/middleware"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/jwt"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the environment labels stamped onto request logs.
type RouterConfig struct {
	Env      string
	LogLevel string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	m *metrics.Metrics,
	attendanceHandler AttendanceHandler,
	overtimeHandler OvertimeHandler,
	correctionHandler CorrectionHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "unity-hrms"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Post("/ot-in", overtimeHandler.OTClockIn)
				r.Post("/ot-out", overtimeHandler.OTClockOut)
				r.Get("/my-status", attendanceHandler.MyStatus)
				r.Get("/today-summary", attendanceHandler.TodaySummary)

				// Submission and review share one endpoint; the service
				// enforces the admin check for reviews.
				r.Post("/corrections", correctionHandler.Handle)
				r.Get("/corrections", correctionHandler.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/ot-sessions/{id}/approve", overtimeHandler.Approve)
				})
			})
		})
	})

	return r
}
