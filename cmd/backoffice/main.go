package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/appubr/backoffice/internal/activity"
	"github.com/appubr/backoffice/internal/admin"
	"github.com/appubr/backoffice/internal/app"
	"github.com/appubr/backoffice/internal/auth"
	"github.com/appubr/backoffice/internal/authz"
	"github.com/appubr/backoffice/internal/bookings"
	"github.com/appubr/backoffice/internal/catalog"
	"github.com/appubr/backoffice/internal/dashboard"
	"github.com/appubr/backoffice/internal/finance"
	"github.com/appubr/backoffice/internal/hr"
	"github.com/appubr/backoffice/internal/inventory"
	"github.com/appubr/backoffice/internal/observability"
	"github.com/appubr/backoffice/internal/platform/db"
	"github.com/appubr/backoffice/internal/projects"
	"github.com/appubr/backoffice/internal/session"
	"github.com/appubr/backoffice/internal/shared"
	"github.com/appubr/backoffice/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessions, err := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, cfg.SessionCookie, cfg.IsProduction())
	if err != nil {
		logger.Error("init session manager", slog.Any("error", err))
		os.Exit(1)
	}

	guard := authz.NewGuard(authz.GuardConfig{
		Rules:          authz.DefaultRules(),
		PublicPrefixes: authz.DefaultPublicPrefixes(),
		StaticPrefixes: authz.DefaultStaticPrefixes(),
	})

	auditLogger := shared.NewAuditLogger(dbpool)

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, sessions)

	hrRepo := hr.NewRepository(dbpool)
	hrService := hr.NewService(hrRepo, auditLogger)
	hrHandler := hr.NewHandler(logger, hrService)

	financeRepo := finance.NewRepository(dbpool)
	financeService := finance.NewService(financeRepo, auditLogger)
	financeHandler := finance.NewHandler(logger, financeService)

	inventoryRepo := inventory.NewRepository(dbpool)
	inventoryService := inventory.NewService(inventoryRepo, auditLogger)
	inventoryHandler := inventory.NewHandler(logger, inventoryService)

	catalogRepo := catalog.NewRepository(dbpool)
	catalogService := catalog.NewService(catalogRepo, auditLogger)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	bookingsRepo := bookings.NewRepository(dbpool)
	bookingsService := bookings.NewService(bookingsRepo, auditLogger)
	bookingsHandler := bookings.NewHandler(logger, bookingsService)

	activityRepo := activity.NewRepository(dbpool)
	activityService := activity.NewService(activityRepo, auditLogger)
	activityHandler := activity.NewHandler(logger, activityService)

	projectsRepo := projects.NewRepository(dbpool)
	projectsService := projects.NewService(projectsRepo, auditLogger)
	projectsHandler := projects.NewHandler(logger, projectsService)

	adminRepo := admin.NewRepository(dbpool)
	adminService := admin.NewService(adminRepo, auditLogger)
	adminHandler := admin.NewHandler(logger, adminService)

	dashboardRepo := dashboard.NewRepository(dbpool)
	dashboardCache := dashboard.NewCache(redisClient, cfg.DashboardCacheTTL)
	dashboardService := dashboard.NewService(dashboardRepo, dashboardCache)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Sessions:         sessions,
		Guard:            guard,
		AuthHandler:      authHandler,
		DashboardHandler: dashboardHandler,
		HRHandler:        hrHandler,
		FinanceHandler:   financeHandler,
		InventoryHandler: inventoryHandler,
		CatalogHandler:   catalogHandler,
		BookingsHandler:  bookingsHandler,
		ActivityHandler:  activityHandler,
		ProjectsHandler:  projectsHandler,
		AdminHandler:     adminHandler,
		JobHandler:       jobHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
