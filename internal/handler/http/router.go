package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions carries the non-handler settings of the router.
type RouterOptions struct {
	Env            string
	AllowedOrigins []string
	LogLevel       slog.Level
	// Gatherer backs /metrics. Nil uses the default registry.
	Gatherer prometheus.Gatherer
}

func NewRouter(
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	summaryHandler SummaryHandler,
	settingsHandler SettingsHandler,
	opts RouterOptions,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/compute", attendanceHandler.Compute)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(auth.AttendanceViewers...))
					r.Get("/{employeeID}/{date}/penalties", attendanceHandler.Penalties)
				})

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(auth.AttendanceEditors...))
					r.Post("/manual", attendanceHandler.RecordManual)
					r.Post("/process", attendanceHandler.Process)
					r.Post("/process-pending", attendanceHandler.ProcessPending)
				})
			})

			r.Route("/summaries", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(auth.AttendanceViewers...))
					r.Get("/{employeeID}", summaryHandler.Get)
				})

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(auth.AttendanceEditors...))
					r.Post("/regenerate", summaryHandler.Regenerate)
					r.Post("/regenerate-all", summaryHandler.RegenerateAll)
				})
			})

			r.Route("/settings", func(r chi.Router) {
				r.Use(middleware.RequireRole(auth.RoleSuperAdmin, auth.RoleHRAdmin))
				r.Post("/cache/invalidate", settingsHandler.InvalidateCache)
			})
		})
	})
	return r
}
