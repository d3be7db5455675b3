// Package main provides the entry point for the HTTP server.
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

	"github.com/gin-gonic/gin"

	"github.com/minhtri0795/github-dashboard-server/internal/config"
	"github.com/minhtri0795/github-dashboard-server/internal/database/database"
	"github.com/minhtri0795/github-dashboard-server/internal/database/migrate"
	"github.com/minhtri0795/github-dashboard-server/internal/health"
	"github.com/minhtri0795/github-dashboard-server/internal/middleware"
	"github.com/minhtri0795/github-dashboard-server/internal/notifier"
	prRouter "github.com/minhtri0795/github-dashboard-server/internal/pullrequest/router"
	statsRouter "github.com/minhtri0795/github-dashboard-server/internal/statistics/router"
	userRouter "github.com/minhtri0795/github-dashboard-server/internal/user/router"
	webhookRouter "github.com/minhtri0795/github-dashboard-server/internal/webhook/router"
	"github.com/minhtri0795/github-dashboard-server/pkg/logger"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	appLogger, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	db, err := database.New()
	if err != nil {
		appLogger.Fatalw("failed to connect to database", "error", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			appLogger.Errorw("failed to close database connection", "error", err)
		}
	}()

	if err := migrate.Migrate(db); err != nil {
		appLogger.Fatalw("failed to run migrations", "error", err)
	}

	var sink notifier.Notifier = notifier.NewNop()
	if cfg.Notifier.Enabled() {
		sink = notifier.NewDiscord(cfg.Notifier.WebhookURL, appLogger)
		appLogger.Infow("discord notifications enabled")
	} else {
		appLogger.Infow("discord notifications disabled, DISCORD_WEBHOOK_URL not set")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.Logger(appLogger))
	r.Use(middleware.Recovery(appLogger))

	healthHandler := health.New(db, appLogger)
	r.GET("/health", healthHandler.Check)

	webhookRouter.RegisterRoutes(r, db, sink, appLogger)
	statsRouter.RegisterRoutes(r, db, appLogger)
	userRouter.RegisterRoutes(r, db, appLogger)
	prRouter.RegisterRoutes(r, db, appLogger)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Infow("starting server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Infow("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Errorw("server forced to shutdown", "error", err)
	}
	appLogger.Infow("server stopped")
}
