package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/jengzang/pace-analyzer/internal/api"
	"github.com/jengzang/pace-analyzer/internal/cache"
	"github.com/jengzang/pace-analyzer/internal/config"
	"github.com/jengzang/pace-analyzer/internal/database"
	"github.com/jengzang/pace-analyzer/internal/logger"
	"github.com/jengzang/pace-analyzer/internal/metrics"
	"github.com/jengzang/pace-analyzer/internal/repository"
	"github.com/jengzang/pace-analyzer/internal/service"
)

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	log := logger.New()
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		log.WithError(err).Fatal("invalid LOCAL_TZ")
	}

	// 初始化数据库
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	if err := database.NewMigrationManager(db, log).Run(ctx); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	m := metrics.New()

	var resultCache service.ResultCache
	analysisCache, err := cache.NewAnalysisCache(ctx, cfg.RedisURL, cfg.CacheTTL)
	switch {
	case err != nil:
		log.WithError(err).Warn("analysis cache unavailable, continuing without it")
	case analysisCache != nil:
		resultCache = analysisCache
		defer analysisCache.Close()
	}

	profiles := service.NewProfileService(repository.NewProfileRepository(db))
	runs := service.NewRunService(repository.NewRunRepository(db), profiles, resultCache, m, log, service.RunServiceConfig{
		Location:       loc,
		SampleInterval: cfg.SampleInterval(),
	})

	// 初始化路由
	router := api.SetupRouter(ctx, cfg, api.Deps{
		Runs:     runs,
		Profiles: profiles,
		Metrics:  m,
		Logger:   log,
	})

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
