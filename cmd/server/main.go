// Package main provides the entry point for the goUserDirectory service.
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

	"github.com/chybatronik/goUserDirectory/internal/cache"
	"github.com/chybatronik/goUserDirectory/internal/config"
	"github.com/chybatronik/goUserDirectory/internal/database"
	"github.com/chybatronik/goUserDirectory/internal/handlers"
	"github.com/chybatronik/goUserDirectory/internal/logging"
	"github.com/chybatronik/goUserDirectory/internal/middleware"
	"github.com/chybatronik/goUserDirectory/internal/models"
	"github.com/chybatronik/goUserDirectory/internal/types"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// Build information (set during build)
	Version   = "dev"
	BuildTime = ""
)

// StoreAdapter implements the handlers.DirectoryService interface
type StoreAdapter struct{}

// ListUsers implements the DirectoryService interface
func (sa *StoreAdapter) ListUsers(ctx context.Context, pool *pgxpool.Pool, params types.ListUsersParams) ([]models.User, int64, error) {
	return database.ListUsers(ctx, pool, params)
}

// SearchUsers implements the DirectoryService interface
func (sa *StoreAdapter) SearchUsers(ctx context.Context, pool *pgxpool.Pool, params types.SearchUsersParams) ([]models.User, int64, int64, error) {
	return database.SearchUsers(ctx, pool, params)
}

// SoftDeleteUser implements the DirectoryService interface
func (sa *StoreAdapter) SoftDeleteUser(ctx context.Context, pool *pgxpool.Pool, id int64) (int64, error) {
	return database.SoftDeleteUser(ctx, pool, id)
}

func main() {
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	logger := setupStructuredLogging(appConfig)
	logStartupEvents(logger, appConfig)

	logger.Startup("Initializing database connection...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewConnectionPool(appConfig)
	if err != nil {
		logger.Error("Failed to create database connection pool", logging.FieldError, err)
		log.Fatalf("FATAL: Failed to create database connection pool: %v", err)
	}
	defer pool.Close()

	if err := database.ValidateConnection(ctx, pool); err != nil {
		logger.Error("Database connection validation failed", logging.FieldError, err)
		log.Fatalf("FATAL: Database connection validation failed: %v", err)
	}

	logger.Database("Database connection established successfully")

	responseCache, err := cache.New(appConfig.Cache.Dir, time.Duration(appConfig.Cache.TTLSeconds)*time.Second)
	if err != nil {
		logger.Error("Failed to initialize response cache", logging.FieldError, err)
		log.Fatalf("FATAL: Failed to initialize response cache: %v", err)
	}

	logger.Startup("Response cache initialized",
		"dir", appConfig.Cache.Dir,
		"ttl_seconds", appConfig.Cache.TTLSeconds,
	)

	server := setupHTTPServer(appConfig, pool, responseCache, logger)

	go func() {
		logger.Startup("HTTP server starting",
			"host", appConfig.Server.Host,
			"port", appConfig.Server.Port,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed to start", logging.FieldError, err)
			log.Fatalf("FATAL: HTTP server failed to start: %v", err)
		}
	}()

	logger.Startup("goUserDirectory service started successfully")

	gracefulShutdown(server, pool, appConfig.Application.ShutdownTimeout, logger)
}

// setupHTTPServer configures and returns an HTTP server with structured logging and middleware
func setupHTTPServer(appConfig *config.Config, pool *pgxpool.Pool, responseCache *cache.ResponseCache, logger *logging.Logger) *http.Server {
	healthHandler := handlers.NewHealthHandler("goUserDirectory", Version, logger)

	if appConfig.HealthCheck.Enabled {
		dbHealthChecker := database.NewHealthChecker(pool)
		healthHandler.AddChecker(dbHealthChecker)
	}

	storeAdapter := &StoreAdapter{}
	directoryHandler := handlers.NewDirectoryHandler(logger, pool, responseCache, storeAdapter)

	mux := http.NewServeMux()

	mux.HandleFunc("/health", healthHandler.ServeHTTP)
	mux.HandleFunc("/users", directoryHandler.ListUsers)
	mux.HandleFunc("/search", directoryHandler.SearchUsers)
	mux.HandleFunc("/delete", directoryHandler.DeleteUser)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("goUserDirectory is running"))
	})

	// Middleware chain, outermost first: rate limiting, request ID,
	// request logging.
	rps := float64(appConfig.Application.RateLimitRequests) / 60.0
	handler := http.Handler(mux)
	handler = middleware.NewLoggingMiddleware(logger, handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.SecurityRateLimit(rps, 20)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", appConfig.Server.Host, appConfig.Server.Port),
		Handler:      handler,
		ReadTimeout:  time.Duration(appConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(appConfig.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(appConfig.Server.IdleTimeout) * time.Second,
	}

	return server
}

// gracefulShutdown handles graceful shutdown of the service
func gracefulShutdown(server *http.Server, pool *pgxpool.Pool, shutdownTimeout int, logger *logging.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	logger.Startup("Received signal, initiating graceful shutdown", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownTimeout)*time.Second)
	defer cancel()

	logger.Startup("Shutting down HTTP server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", logging.FieldError, err)
	} else {
		logger.Startup("HTTP server shutdown completed")
	}

	logger.Startup("Closing database connections...")
	pool.Close()
	logger.Startup("Database connections closed")

	logger.Startup("goUserDirectory service shutdown completed")
}

// setupStructuredLogging initializes the structured logger based on configuration
func setupStructuredLogging(cfg *config.Config) *logging.Logger {
	logger := logging.NewStructuredLogger(
		cfg.Logging.Level,
		cfg.Logging.Format,
		"goUserDirectory",
		Version,
	)

	return logger.WithServiceContext()
}

// logStartupEvents logs comprehensive startup information
func logStartupEvents(logger *logging.Logger, cfg *config.Config) {
	logger.Startup("goUserDirectory service starting up",
		"version", Version,
		"service", "goUserDirectory",
	)

	logger.Startup("configuration loaded successfully",
		"environment", cfg.Application.Environment,
		"log_level", cfg.Logging.Level,
		"server_port", cfg.Server.Port,
		"server_host", cfg.Server.Host,
		"db_host", cfg.Database.Host,
		"db_port", cfg.Database.Port,
		"db_name", cfg.Database.Database,
		"cache_dir", cfg.Cache.Dir,
		"cache_ttl_seconds", cfg.Cache.TTLSeconds,
		"health_check_enabled", cfg.HealthCheck.Enabled,
	)
}
