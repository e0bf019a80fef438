package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"devshare/internal/auth"
	"devshare/internal/config"
	"devshare/internal/handler"
	"devshare/internal/middleware"
	"devshare/internal/repository/postgres"
	contentsvc "devshare/internal/service/content"
	"devshare/internal/snippets"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Every content type must have a registered constraint spec before we
	// accept traffic. A gap here is a deployment error, not a user error.
	if err := contentsvc.VerifyRegistry(); err != nil {
		log.Fatalf("Constraint registry incomplete: %v", err)
	}

	// Create JWT verifier
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	contentRepo := postgres.NewContentRepository(repoConfig)

	// Load the snippet language registry (embedded YAML)
	languages, err := snippets.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load language registry: %v", err)
	}
	logger.Info("language registry loaded", "languages", len(languages.Languages()))

	// Create services
	composer := contentsvc.NewComposer(languages)
	contentService := contentsvc.NewContentService(contentRepo, composer, logger)

	// Create handlers
	contentHandler := handler.NewContentHandler(contentService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", contentHandler.HealthCheck)

	// Content routes
	mux.HandleFunc("POST /api/content", contentHandler.CreateContent)
	mux.HandleFunc("GET /api/content", contentHandler.ListContentByTags)
	mux.HandleFunc("GET /api/content/trending", contentHandler.ListTrendingContent) // Must come before {id} route
	mux.HandleFunc("GET /api/content/questions", contentHandler.ListQuestions)      // Must come before {id} route
	mux.HandleFunc("GET /api/content/{id}", contentHandler.GetContent)
	mux.HandleFunc("GET /api/content/{id}/discussions", contentHandler.ListDiscussions)

	// Engagement routes
	mux.HandleFunc("POST /api/content/{id}/likes", contentHandler.LikeContent)
	mux.HandleFunc("DELETE /api/content/{id}/likes", contentHandler.UnlikeContent)
	mux.HandleFunc("POST /api/content/{id}/ratings", contentHandler.RateContent)
	mux.HandleFunc("POST /api/content/{id}/publish", contentHandler.PublishContent)

	// Creator routes
	mux.HandleFunc("GET /api/creators/{id}/content", contentHandler.ListCreatorContent)

	// Build middleware chain
	var rootHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	rootHandler = middleware.AuthMiddleware(jwtVerifier)(rootHandler)
	rootHandler = middleware.Recovery(logger)(rootHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	rootHandler = corsHandler.Handler(rootHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      rootHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
