package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	_ "github.com/parkgrid/parkgrid-api/api/swagger"
	"github.com/parkgrid/parkgrid-api/internal/repository"
	"github.com/parkgrid/parkgrid-api/internal/router"
	"github.com/parkgrid/parkgrid-api/internal/service"
	"github.com/parkgrid/parkgrid-api/pkg/cache"
	"github.com/parkgrid/parkgrid-api/pkg/config"
	"github.com/parkgrid/parkgrid-api/pkg/database"
	"github.com/parkgrid/parkgrid-api/pkg/jobs"
	"github.com/parkgrid/parkgrid-api/pkg/logger"
	"github.com/parkgrid/parkgrid-api/pkg/mailer"
)

// @title ParkGrid API
// @version 1.0.0
// @description Parking management backend: vehicles, slots and the slot-request workflow
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var redisClient *redis.Client
	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, continuing without cache", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.SlotListTTL, logr, true)
		}
	}

	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	actionLogRepo := repository.NewActionLogRepository(db)

	validate := validator.New()

	authSvc := service.NewAuthService(userRepo, actionLogRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})

	notifier := service.NewNotificationService(mailer.NewSMTP(cfg.SMTP), metricsSvc, jobs.Config{
		Workers:    cfg.Notifications.Workers,
		BufferSize: cfg.Notifications.BufferSize,
		MaxRetries: cfg.Notifications.MaxRetries,
		RetryDelay: cfg.Notifications.RetryDelay,
	}, logr)

	userSvc := service.NewUserService(userRepo, requestRepo, actionLogRepo, validate, logr)
	vehicleSvc := service.NewVehicleService(vehicleRepo, requestRepo, actionLogRepo, validate, logr)
	slotSvc := service.NewSlotService(slotRepo, cacheSvc, metricsSvc, actionLogRepo, validate, logr)
	requestSvc := service.NewRequestService(requestRepo, slotRepo, vehicleRepo, notifier, cacheSvc, metricsSvc, actionLogRepo, validate, logr)
	reportSvc := service.NewReportService(slotRepo, cacheSvc, metricsSvc, logr)
	auditSvc := service.NewAuditService(actionLogRepo, logr)

	engine := router.Setup(router.Deps{
		Config:     cfg,
		Logger:     logr,
		Metrics:    metricsSvc,
		Auth:       authSvc,
		Users:      userSvc,
		Vehicles:   vehicleSvc,
		Slots:      slotSvc,
		Requests:   requestSvc,
		Reports:    reportSvc,
		Audit:      auditSvc,
		ActionLogs: actionLogRepo,
	})

	if cfg.Notifications.Enabled {
		notifier.Start(context.Background())
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("forced shutdown", "error", err)
	}

	// Stop notification workers only after the HTTP side stops accepting work.
	if cfg.Notifications.Enabled {
		notifier.Stop()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	logr.Info("server stopped")
}
