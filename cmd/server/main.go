// Package main runs the guestbook HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vowbook/backend/config"
	"github.com/vowbook/backend/internal/admin"
	"github.com/vowbook/backend/internal/auth"
	"github.com/vowbook/backend/internal/events"
	"github.com/vowbook/backend/internal/middleware"
	"github.com/vowbook/backend/internal/models"
	"github.com/vowbook/backend/internal/notify"
	"github.com/vowbook/backend/internal/slideshow"
	"github.com/vowbook/backend/internal/submissions"
	"github.com/vowbook/backend/internal/worker"
	"github.com/vowbook/backend/pkg/database"
	"github.com/vowbook/backend/pkg/queue"
	"github.com/vowbook/backend/pkg/redis"
	"github.com/vowbook/backend/pkg/response"
	"github.com/vowbook/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			MediaBucket:          cfg.AWS.MediaBucket,
			PresignExpireSeconds: cfg.AWS.PresignExpireSeconds,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	jobQueue := queue.NewQueue(rdb.Client, logger)

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, logger)

	// Events
	eventRepo := events.NewRepository(pool)
	resolver := events.NewResolver(authRepo, eventRepo)
	eventHandler := events.NewHandler(eventRepo, resolver, logger)

	// Submissions (intake + moderation)
	submissionRepo := submissions.NewRepository(pool)
	submissionHandler := submissions.NewHandler(submissionRepo, eventRepo, resolver, s3Client, jobQueue, logger)

	// Slideshow
	slideshowHandler := slideshow.NewHandler(submissionRepo, resolver, cfg.App.ImageDwellMs, logger)

	// Admin provisioning
	adminRepo := admin.NewRepository(pool)
	adminHandler := admin.NewHandler(adminRepo, eventRepo, logger)

	// Notifications
	notifyRepo := notify.NewRepository(pool)
	notifyHandler := notify.NewHandler(notifyRepo, resolver)
	mailer := notify.NewMailer(cfg.Email, cfg.App.PublicBaseURL)
	processor := worker.NewProcessor(eventRepo, notifyRepo, mailer, s3Client, jobQueue, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/register", authHandler.Register)
	}

	// Public event page and guest intake (no JWT)
	router.GET("/events/:slug", eventHandler.GetBySlug)
	router.GET("/events/:slug/submissions", submissionHandler.ListPublic)
	router.GET("/events/:slug/submissions/:id/media-url", submissionHandler.PublicMediaURL)
	router.POST("/events/:slug/submissions", submissionHandler.Create)
	router.POST("/events/:slug/submissions/upload-url", submissionHandler.GenerateUploadURL)

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(jwtService))
	{
		api.GET("/auth/me", authHandler.Me)

		// Dashboard
		api.GET("/dashboard/event", eventHandler.GetMine)
		api.PATCH("/dashboard/event", eventHandler.Update)
		api.GET("/dashboard/stats", submissionHandler.Stats)
		api.GET("/dashboard/submissions", submissionHandler.ListDashboard)
		api.GET("/dashboard/slideshow", slideshowHandler.Get)
		api.GET("/dashboard/notifications", notifyHandler.List)

		// Per-submission moderation
		api.PATCH("/submissions/:id/moderate", submissionHandler.ToggleModerated)
		api.PATCH("/submissions/:id/favorite", submissionHandler.ToggleFavorite)
		api.DELETE("/submissions/:id", submissionHandler.Delete)
		api.GET("/submissions/:id/media-url", submissionHandler.MediaURL)
		api.GET("/submissions/:id/download-url", submissionHandler.DownloadURL)

		// Provisioning (admin only)
		adminGroup := api.Group("/admin")
		adminGroup.Use(middleware.RequireRole(string(models.RoleAdmin)))
		{
			adminGroup.POST("/couples", adminHandler.CreateCouple)
			adminGroup.GET("/couples", adminHandler.ListCouples)
			adminGroup.POST("/events", adminHandler.CreateEvent)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Background worker (notification emails, blob cleanup)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go processor.Run(workerCtx)

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	workerCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
