// Package server exposes the club services as a JSON API.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/1taes/JOY-Intranet/internal/model"
	"github.com/1taes/JOY-Intranet/internal/search"
	"github.com/1taes/JOY-Intranet/internal/stats"
)

// AuthService is the account surface the API needs.
type AuthService interface {
	Login(ctx context.Context, uid, password string) (model.User, error)
	Register(ctx context.Context, uid, name, password string) error
}

// OrgChartService lists the organization chart.
type OrgChartService interface {
	Grouped(ctx context.Context) ([]string, map[string][]model.OrgMember, error)
}

// CalendarService lists schedule entries.
type CalendarService interface {
	ByDate(ctx context.Context, date string) ([]model.CalendarEntry, error)
	ByMonth(ctx context.Context, month string) ([]model.CalendarEntry, error)
	Today(ctx context.Context) ([]model.CalendarEntry, error)
}

// StatsService computes weekly summaries.
type StatsService interface {
	WeeklySummary(ctx context.Context, uid, week string) (stats.Summary, error)
}

// SearchService queries the ledgers.
type SearchService interface {
	Search(ctx context.Context, q search.Query) ([]search.Result, error)
}

// Deps bundles everything the router serves.
type Deps struct {
	Auth     AuthService
	OrgChart OrgChartService
	Calendar CalendarService
	Stats    StatsService
	Search   SearchService
	Logger   *slog.Logger
	Registry *prometheus.Registry
}

// Server is the HTTP API over the club services.
type Server struct {
	deps      Deps
	collector *Collector
}

// New builds a Server and registers its metrics. A nil Registry gets a
// private one, which keeps tests isolated.
func New(deps Deps) *Server {
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Server{deps: deps, collector: NewCollector(deps.Registry)}
}

// Collector returns the metrics collector, for wiring into the gateway.
func (s *Server) Collector() *Collector {
	return s.collector
}

// Router builds the chi router for all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", MetricsHandler(s.deps.Registry))

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/register", s.handleRegister)
		r.Get("/orgchart", s.handleOrgChart)
		r.Get("/calendar", s.handleCalendar)
		r.Get("/stats/weekly", s.handleWeeklyStats)
		r.Get("/search", s.handleSearch)
	})

	return r
}

// instrument logs each request and feeds the HTTP counter. The route label
// is the chi pattern, not the raw path, to keep its cardinality bounded.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		s.collector.RecordHTTPRequest(r.Method, route, ww.Status())
		s.deps.Logger.Debug("request served",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
