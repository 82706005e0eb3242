// Package web provides the HTTP server for the read-only analytics API.
// Every endpoint is a thin query layer over the normalized schema; nothing
// here writes to the sink.
package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/greenspot/grocer/internal/analytics"
	"github.com/greenspot/grocer/internal/config"
	mw "github.com/greenspot/grocer/internal/web/middleware"
)

// Server is the analytics API server.
type Server struct {
	analytics *analytics.Service
	pool      *pgxpool.Pool
	cfg       *config.Config
	router    *chi.Mux
	server    *http.Server
}

// NewServer wires routes and middleware for the API.
func NewServer(svc *analytics.Service, pool *pgxpool.Pool, cfg *config.Config) *Server {
	s := &Server{
		analytics: svc,
		pool:      pool,
		cfg:       cfg,
		router:    chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(mw.Logger)
	s.router.Use(mw.Metrics)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))

	if s.cfg.Rate.Enabled {
		limiter := mw.NewRateLimiter(s.cfg.Rate.RequestsPerMinute)
		s.router.Use(limiter.Middleware)
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(&s.cfg.Security))

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/summary", s.handleExecutiveSummary)
			r.Get("/sales/daily", s.handleDailySales)
			r.Get("/products", s.handleProductPerformance)
			r.Get("/categories", s.handleCategoryPerformance)
			r.Get("/customers", s.handleCustomerInsights)
			r.Get("/inventory", s.handleInventoryStatus)
			r.Get("/vendors", s.handleVendorPerformance)
		})

		r.Get("/export/{table}", s.handleExport)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
