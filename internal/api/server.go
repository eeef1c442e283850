// Package api provides the HTTP API server and handlers for yamdb.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/yamdb/yamdb-server/internal/service"
	"github.com/yamdb/yamdb-server/internal/store"
)

// Services groups the business services used by the API server.
type Services struct {
	Auth       *service.AuthService
	Users      *service.UserService
	Categories *service.CategoryService
	Genres     *service.GenreService
	Titles     *service.TitleService
	Reviews    *service.ReviewService
	Comments   *service.CommentService
}

// Options tunes the HTTP surface.
type Options struct {
	// CORSOrigins lists allowed origins; empty disables CORS headers.
	CORSOrigins []string
	// Version is reported in the OpenAPI document.
	Version string
	// HealthChecks are reported by GET /health next to the database.
	HealthChecks []HealthChecker
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    store.Store
	services *Services
	checks   []HealthChecker
	router   chi.Router
	api      huma.API
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		store:    st,
		services: services,
		checks:   opts.HealthChecks,
		router:   router,
		logger:   logger,
	}

	s.setupMiddleware(opts)

	version := opts.Version
	if version == "" {
		version = "1.0.0"
	}
	humaConfig := huma.DefaultConfig("yamdb API", version)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerCategoryRoutes()
	s.registerGenreRoutes()
	s.registerTitleRoutes()
	s.registerReviewRoutes()
	s.registerCommentRoutes()

	router.NotFound(s.handleNotFound)
	router.MethodNotAllowed(s.handleMethodNotAllowed)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the huma API, mainly for tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(opts Options) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)

	if len(opts.CORSOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{
				http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
			},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}
}
