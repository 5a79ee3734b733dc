package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movies-search-api/internal/cache"
	"movies-search-api/internal/config"
	"movies-search-api/internal/handler"
	"movies-search-api/internal/metrics"
	"movies-search-api/internal/model"
	"movies-search-api/internal/router"
	"movies-search-api/internal/search"
	"movies-search-api/internal/service"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting movies search API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize cache store
	store := newStore(cfg)
	defer store.Close()

	// Initialize Elasticsearch gateway
	gateway, err := search.NewElasticGateway(search.ElasticConfig{
		Addresses: []string{cfg.Elastic.Address()},
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
		Debug:     cfg.App.Debug,
	})
	if err != nil {
		log.Fatalf("Failed to initialize Elasticsearch client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := gateway.Ping(ctx); err != nil {
		log.Printf("Warning: Elasticsearch ping failed: %v", err)
	} else {
		log.Printf("Elasticsearch client initialized (%s)", cfg.Elastic.Address())
	}
	cancel()

	deps := service.Dependencies{
		Cache:       store,
		Gateway:     gateway,
		TTL:         cfg.Cache.TTL,
		NegativeTTL: cfg.Cache.NegativeTTL,
		Debug:       cfg.App.Debug,
	}

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		prom := metrics.NewPrometheus(cfg.Metrics.Namespace)
		deps.Observer = prom
		metricsHandler = prom.Handler()
	}

	// Initialize services
	filmService := service.NewFilmService(deps)
	personService := service.NewPersonService(deps)
	genreService := service.NewGenreService(deps)

	// Create router
	r := router.New(router.Config{
		Handler: handler.New(cfg.App.Name, cfg.App.Version,
			handler.Dependency{Name: "cache", Pinger: store},
			handler.Dependency{Name: "elasticsearch", Pinger: gateway},
		),
		Movies:  handler.NewResourceHandler[model.Film](filmService, "Film", "Films"),
		Persons: handler.NewResourceHandler[model.Person](personService, "Person", "Persons"),
		Genres:  handler.NewResourceHandler[model.Genre](genreService, "Genre", "Genres"),
		Metrics: metricsHandler,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	fmt.Println("Goodbye!")
}

// newStore builds the configured cache store. An unreachable Redis falls
// back to the in-memory store so the API can still serve from Elasticsearch.
func newStore(cfg *config.Config) cache.Store {
	if cfg.Cache.IsMemory() {
		log.Println("In-memory cache store initialized")
		return cache.NewMemoryStore(cfg.Cache.TTL)
	}

	redisCfg := cache.RedisStoreConfig{
		Addr:       cfg.Cache.RedisAddress(),
		Password:   cfg.Cache.RedisPassword,
		DB:         cfg.Cache.RedisDB,
		KeyPrefix:  cfg.Cache.RedisKeyPrefix,
		DefaultTTL: cfg.Cache.TTL,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := cache.NewRedisClient(ctx, redisCfg)
	if err != nil {
		log.Printf("Warning: Redis connection failed, using in-memory cache: %v", err)
		return cache.NewMemoryStore(cfg.Cache.TTL)
	}

	log.Printf("Redis cache store initialized (%s)", redisCfg.Addr)
	return cache.NewRedisStore(client, redisCfg)
}
