package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bikeshare-dashboard/internal/errors"
	"bikeshare-dashboard/internal/handlers"
	"bikeshare-dashboard/internal/middleware"
	"bikeshare-dashboard/internal/observability"
	"bikeshare-dashboard/internal/services"
)

type Server struct {
	analytics      *services.Analytics
	router         chi.Router
	logger         *slog.Logger
	metrics        *observability.Metrics
	apiHandlers    *handlers.APIHandlers
	sseHandlers    *handlers.SSEHandlers
	pageHandlers   *handlers.PageHandlers
	exportHandlers *handlers.ExportHandlers
}

type Options struct {
	DefaultVariant string
	Metrics        *observability.Metrics
	// Middleware runs inside the router, so route patterns are known to it.
	Middleware []middleware.Middleware
}

func NewServer(analytics *services.Analytics, logger *slog.Logger, opts Options) *Server {
	s := &Server{
		analytics:      analytics,
		router:         chi.NewRouter(),
		logger:         logger,
		metrics:        opts.Metrics,
		apiHandlers:    handlers.NewAPIHandlers(analytics, logger),
		sseHandlers:    handlers.NewSSEHandlers(analytics, logger),
		pageHandlers:   handlers.NewPageHandlers(analytics, logger, opts.DefaultVariant),
		exportHandlers: handlers.NewExportHandlers(analytics, logger),
	}
	for _, m := range opts.Middleware {
		s.router.Use(m)
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.router

	// Dashboard pages
	r.Get("/", s.pageHandlers.HandleDashboard)
	r.Get("/v/{variant}", s.pageHandlers.HandleDashboard)

	r.Get("/health", s.apiHandlers.HandleHealth)
	r.Get("/admin/stats", s.apiHandlers.HandleStats)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	// Chart data feed
	r.Route("/api", func(r chi.Router) {
		r.Get("/seasonal", s.apiHandlers.HandleSeasonal)
		r.Get("/weather", s.apiHandlers.HandleWeather)
		r.Get("/monthly", s.apiHandlers.HandleMonthly)
		r.Get("/rfm", s.apiHandlers.HandleRFM)
		r.Get("/summary", s.apiHandlers.HandleSummary)
	})

	// Datastar SSE endpoints
	r.Get("/sse/v/{variant}/refresh", s.sseHandlers.HandleRefresh)

	r.Get("/export/{table}.{format}", s.exportHandlers.HandleExport)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteError(w, r, s.logger, errors.NotFound("Resource not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		appErr := errors.New(errors.CodeBadRequest, "Method not allowed")
		appErr.StatusCode = http.StatusMethodNotAllowed
		errors.WriteError(w, r, s.logger, appErr)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
