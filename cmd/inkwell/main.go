// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Command inkwell runs the Inkwell blogging platform API server together
// with its background scheduler.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/router"
	"inkwell/internal/scheduler"
	"inkwell/internal/service"
	"inkwell/internal/storage"
	"inkwell/internal/store"
	"inkwell/internal/token"
)

func main() {
	// Structured logger. Text output is fine for both dev and the container
	// log collector.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey for view deduplication and the trending cache.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	viewDedup := cache.NewViewDedup(valkeyClient, cache.DefaultViewWindow)
	topCache := cache.NewTopCache(valkeyClient, cache.DefaultTopTTL)

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	articleStore := store.NewArticleStore(db)
	commentStore := store.NewCommentStore(db)
	likeStore := store.NewLikeStore(db)
	bookmarkStore := store.NewBookmarkStore(db)
	followStore := store.NewFollowStore(db)
	notificationStore := store.NewNotificationStore(db)
	activityStore := store.NewActivityStore(db)
	collaboratorStore := store.NewCollaboratorStore(db)
	reportStore := store.NewReportStore(db)
	analyticsStore := store.NewAnalyticsStore(db)

	// Connect to S3-compatible object storage (optional, avatars only).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, avatar uploads disabled")
	}

	// Token issuer shared by the auth service and the middleware.
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)

	// Wire the service layer.
	authSvc := service.NewAuthService(userStore, issuer)
	articleSvc := service.NewArticleService(articleStore, userStore, collaboratorStore, activityStore, viewDedup)
	socialSvc := service.NewSocialService(articleStore, userStore, likeStore, bookmarkStore, commentStore, followStore, notificationStore, activityStore)
	userSvc := service.NewUserService(userStore, commentStore, followStore, storageClient)
	searchSvc := service.NewSearchService(articleStore, userStore)
	activitySvc := service.NewActivityService(activityStore, notificationStore)
	collabSvc := service.NewCollaborationService(articleStore, userStore, collaboratorStore, notificationStore)
	moderationSvc := service.NewModerationService(reportStore, articleStore, commentStore)
	analyticsSvc := service.NewAnalyticsService(analyticsStore, activityStore, followStore, topCache)

	// Background scheduler: publish due articles, reconcile counters.
	sched := scheduler.New(articleStore, userStore, cfg.PublishInterval, cfg.ReconcileInterval)
	schedCtx, stopSched := context.WithCancel(context.Background())
	defer stopSched()
	go sched.Run(schedCtx)

	// Rate limiter for the API surface.
	limiter := middleware.NewRateLimiter(100, time.Minute)
	defer limiter.Stop()

	secureCookies := !cfg.IsDev()
	r := router.New(router.Deps{
		Tokens:        issuer,
		RateLimiter:   limiter,
		Auth:          handlers.NewAuth(authSvc, cfg.JWTTTL, secureCookies),
		Articles:      handlers.NewArticles(articleSvc),
		Social:        handlers.NewSocial(socialSvc),
		Users:         handlers.NewUsers(userSvc),
		Search:        handlers.NewSearch(searchSvc),
		Activity:      handlers.NewActivity(activitySvc),
		Collaborators: handlers.NewCollaborators(collabSvc),
		Moderation:    handlers.NewModeration(moderationSvc),
		Analytics:     handlers.NewAnalytics(analyticsSvc),
	})

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Stop the scheduler, then give active requests up to 30 seconds.
	stopSched()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
