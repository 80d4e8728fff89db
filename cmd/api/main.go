package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"storefront-api/internal/auth"
	"storefront-api/internal/config"
	"storefront-api/internal/database"
	"storefront-api/internal/handlers"
	"storefront-api/internal/logger"
	"storefront-api/internal/migrations"
	"storefront-api/internal/routes"
	"storefront-api/internal/storage"
	"storefront-api/internal/store"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg := config.Load()

	zlog, cleanup := logger.New(logger.Options{
		Level: cfg.Log.Level,
		JSON:  cfg.Log.JSON,
		File:  cfg.Log.File,
	})
	defer cleanup()

	// 1. --- Database Connection ---
	db, err := database.Open(cfg.DB.DSN, cfg.DB.MaxOpenConns, cfg.DB.MaxIdleConns)
	if err != nil {
		zlog.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()

	if err := migrations.Run(db, cfg.DB.MigrationsDir); err != nil {
		zlog.Fatal("running migrations", zap.Error(err))
	}

	// 2. --- Token Service ---
	if cfg.JWT.AccessSecret == "" {
		zlog.Fatal("ACCESS_TOKEN_SECRET environment variable is not set")
	}
	tokens := auth.NewTokenService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.ResetSecret, cfg.JWT.Issuer)

	// 3. --- Object Storage ---
	if cfg.AWS.Bucket == "" {
		zlog.Fatal("AWS_S3_BUCKET environment variable is not set")
	}
	objectStorage, err := storage.NewS3Storage(context.Background(), cfg.AWS.Region, cfg.AWS.Bucket)
	if err != nil {
		zlog.Fatal("initialising object storage", zap.Error(err))
	}

	// --- Application Setup ---
	// All dependencies are injected into the Handlers struct.
	app := &handlers.Handlers{
		Log:        zlog,
		Users:      store.NewUserStore(db),
		Products:   store.NewProductStore(db),
		Categories: store.NewCategoryStore(db),
		Tokens:     store.NewTokenStore(db),
		Auth:       tokens,
		Storage:    objectStorage,
		Env:        cfg.Env,
		UploadDir:  cfg.UploadDir,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, cfg, zlog)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: router,
	}

	// --- Start Server ---
	go func() {
		zlog.Info("starting API server", zap.String("port", cfg.HTTP.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server stopped unexpectedly", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("forced shutdown", zap.Error(err))
	}
	zlog.Info("server exited")
}
