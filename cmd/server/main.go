package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/flyer-backend/config"
	"github.com/ikkim/flyer-backend/internal/app/controller"
	"github.com/ikkim/flyer-backend/internal/app/repository"
	"github.com/ikkim/flyer-backend/internal/app/service"
	"github.com/ikkim/flyer-backend/internal/middleware"
	"github.com/ikkim/flyer-backend/internal/router"
	"github.com/ikkim/flyer-backend/internal/scheduler"
	"github.com/ikkim/flyer-backend/internal/storage"
	"github.com/ikkim/flyer-backend/internal/store"
	"github.com/ikkim/flyer-backend/pkg/logger"
	"github.com/ikkim/flyer-backend/pkg/metrics"
	pkgredis "github.com/ikkim/flyer-backend/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	format := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		format = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      format,
		EnableColor: true,
	})

	logger.Info("Starting flyer backend server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if cfg.Flyer.PublicBaseURL == "" {
		logger.Warn("PUBLIC_BASE_URL is not set; edit and public links will be relative", nil)
	}

	// Storage backend, chosen once for the life of the process
	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	backend, err := store.Open(startCtx, cfg)
	cancelStart()
	if err != nil {
		logger.Fatal("Failed to open storage backend", err)
	}
	repos := repository.New(backend)
	defer func() {
		if err := repos.Close(); err != nil {
			logger.Error("Failed to close storage backend", err)
		}
	}()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	flyerMetrics := metrics.NewFlyerMetrics(registry)
	jobMetrics := metrics.NewJobMetrics(registry)

	// Admin session revocation needs Redis; without it logout is client side only
	var revoker service.SessionRevoker
	if redisClient, err := pkgredis.New(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, admin logout will not revoke sessions", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer redisClient.Close()
		revoker = pkgredis.NewSessionRevoker(redisClient, cfg.Redis.Prefix)
	}

	// Image uploads
	var uploader storage.ImageUploader = storage.NewInlineUploader()
	if cfg.S3.Enabled() {
		uploader = storage.NewS3Uploader(cfg.S3)
	}
	logger.Info("Image uploader configured", map[string]interface{}{
		"uploader": uploader.Name(),
	})

	// Initialize services
	requestService := service.NewRequestService(repos)
	approvalService := service.NewApprovalService(repos, cfg.Flyer.PublicBaseURL, flyerMetrics)
	vendorService := service.NewVendorService(repos, cfg.Flyer.PublicBaseURL)
	flyerService := service.NewFlyerService(repos, flyerMetrics)
	ticketService := service.NewTicketService(repos)
	notificationService := service.NewNotificationService(repos)
	dashboardService := service.NewDashboardService(repos)
	uploadService := service.NewUploadService(repos, uploader, flyerMetrics)
	authService := service.NewAuthService(cfg.Admin.KeyHash, cfg.Admin.JWTSecret, cfg.Admin.TokenExpiry, revoker)

	if cfg.Admin.KeyHash == "" {
		logger.Warn("ADMIN_KEY_HASH is not set; admin login is disabled", nil)
	}

	// Initialize controllers
	controllers := router.Controllers{
		Auth:         controller.NewAuthController(authService),
		Request:      controller.NewRequestController(requestService, approvalService),
		Flyer:        controller.NewFlyerController(flyerService),
		Manager:      controller.NewManagerController(vendorService, ticketService, notificationService),
		Vendor:       controller.NewVendorController(vendorService),
		Ticket:       controller.NewTicketController(ticketService),
		Notification: controller.NewNotificationController(notificationService, dashboardService),
		Upload:       controller.NewUploadController(uploadService),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Setup router
	r := router.NewRouter(controllers, authMiddleware, repos, registry, cfg)
	engine := r.Setup()

	// Start view retention scheduler
	retention := scheduler.NewViewRetentionScheduler(
		repos.FlyerViews,
		jobMetrics,
		cfg.Flyer.ViewRetentionCron,
		cfg.Flyer.ViewRetentionDays,
	)
	if err := retention.Start(); err != nil {
		logger.Error("Failed to start view retention scheduler", err)
	} else {
		defer retention.Stop()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"backend": repos.BackendName(),
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
