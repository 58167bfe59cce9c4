package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drivebook/car-rental-api/internal/audit"
	"github.com/drivebook/car-rental-api/internal/cache"
	"github.com/drivebook/car-rental-api/internal/config"
	dbpkg "github.com/drivebook/car-rental-api/internal/db"
	"github.com/drivebook/car-rental-api/internal/logger"
	"github.com/drivebook/car-rental-api/internal/middleware"
	"github.com/drivebook/car-rental-api/internal/notify"
	"github.com/drivebook/car-rental-api/internal/payments"
	"github.com/drivebook/car-rental-api/internal/routes"
	"github.com/drivebook/car-rental-api/internal/storage"
)

func main() {

	cfg := config.Load()
	logger.Init(cfg.Env)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db := dbpkg.NewDB(cfg)

	ratings := cache.NewRatingsCache(cfg)
	s3 := storage.NewS3Storage(cfg)

	payProvider, err := payments.NewProvider(cfg.MPAccessToken)
	if err != nil {
		log.Fatalf("failed to init payments: %v", err)
	}

	mailDispatcher := notify.NewDispatcher(notify.NewMailer(cfg))
	auditDispatcher := audit.NewDispatcher(audit.New(db))

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Ratings:  ratings,
		Storage:  s3,
		Payments: payProvider,
		Mail:     mailDispatcher,
		Audit:    auditDispatcher,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		slog.Info("server running", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "err", err)
	}

	mailDispatcher.Close()
	auditDispatcher.Close()

	if err := ratings.Close(); err != nil {
		slog.Error("redis close failed", "err", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
