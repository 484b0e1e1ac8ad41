package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/tessalate/internal/config"
	"github.com/joshua-takyi/tessalate/internal/connect"
	"github.com/joshua-takyi/tessalate/internal/container"
	"github.com/joshua-takyi/tessalate/internal/models"
	"github.com/joshua-takyi/tessalate/internal/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("Starting Tessalate API server", "environment", cfg.Environment, "store", cfg.StoreBackend)

	switch cfg.StoreBackend {
	case config.BackendMongo:
		client, err := connect.MongoDBConnect(cfg.MongoDBURI, cfg.MongoDBPassword)
		if err != nil {
			logger.Error("Failed to connect to MongoDB", "error", err)
			os.Exit(1)
		}
		logger.Info("Connected to MongoDB successfully")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = models.MongodbNewRepo(client, cfg.MongoDBDatabase).EnsureIndexes(ctx)
		cancel()
		if err != nil {
			logger.Warn("Failed to create MongoDB indexes", "error", err)
		}
	case config.BackendRedis:
		if _, err := connect.RedisConnect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
			logger.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		logger.Info("Connected to Redis successfully", "addr", cfg.RedisAddr)
	}

	appContainer, err := container.NewContainer(cfg, logger, connect.MongoDBClient, connect.RedisClient)
	if err != nil {
		logger.Error("Failed to build dependency container", "error", err)
		os.Exit(1)
	}

	router := routes.SetupRoutes(appContainer)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	if err := connect.MongoDBDisconnect(); err != nil {
		logger.Error("Error disconnecting from MongoDB", "error", err)
	}
	if err := connect.RedisDisconnect(); err != nil {
		logger.Error("Error disconnecting from Redis", "error", err)
	}

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
