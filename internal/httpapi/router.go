// Package httpapi serves the web UI, the JSON API and the live query channel.
package httpapi

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/raphaelgruber/movierec/internal/metrics"
	"github.com/raphaelgruber/movierec/internal/models"
	"github.com/raphaelgruber/movierec/internal/service"
	"github.com/raphaelgruber/movierec/web"
)

// Recommender is the query surface the handlers need.
type Recommender interface {
	Recommend(ctx context.Context, query string) (*models.RecommendationSet, error)
	Suggest(ctx context.Context, query string, limit int) ([]models.TitleSuggestion, error)
	Ready() bool
	Stats() service.Stats
}

// Server holds the handler dependencies.
type Server struct {
	recommender Recommender
	metrics     *metrics.Collector
	logger      *slog.Logger
	version     string
	page        *template.Template
}

// New creates a Server. collector and logger may be nil.
func New(recommender Recommender, collector *metrics.Collector, logger *slog.Logger, version string) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	page, err := template.ParseFS(web.Templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{
		recommender: recommender,
		metrics:     collector,
		logger:      logger,
		version:     version,
		page:        page,
	}, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(AccessLog(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/health", s.handleHealth)
	r.Get("/stats", s.handleStats)

	r.Route("/api", func(r chi.Router) {
		r.Get("/recommend", s.handleRecommend)
		r.Get("/titles", s.handleTitles)
	})

	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	}

	static, err := fs.Sub(web.Static, "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	} else {
		s.logger.Warn("static assets unavailable", "error", err)
	}

	return r
}
