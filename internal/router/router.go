package router

import (
	"net/http"

	"movies-search-api/internal/handler"
	"movies-search-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Resource is a handler group mounted under /api/v1.
type Resource interface {
	Routes(r chi.Router)
}

// Config holds the configuration for creating a router.
type Config struct {
	Handler *handler.Handler
	Movies  Resource
	Persons Resource
	Genres  Resource
	Metrics http.Handler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// RequestID runs first so Recovery and Logging can report the id.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
		}

		if cfg.Movies != nil {
			r.Route("/movies", cfg.Movies.Routes)
		}
		if cfg.Persons != nil {
			r.Route("/persons", cfg.Persons.Routes)
		}
		if cfg.Genres != nil {
			r.Route("/genres", cfg.Genres.Routes)
		}
	})

	return r
}
