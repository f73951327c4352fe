// Package main runs the community day feedback hub HTTP server.
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

	"github.com/aws-community-vadodara/feedback-hub/config"
	"github.com/aws-community-vadodara/feedback-hub/internal/auth"
	"github.com/aws-community-vadodara/feedback-hub/internal/event"
	"github.com/aws-community-vadodara/feedback-hub/internal/feedback"
	"github.com/aws-community-vadodara/feedback-hub/internal/jobs"
	"github.com/aws-community-vadodara/feedback-hub/internal/middleware"
	"github.com/aws-community-vadodara/feedback-hub/internal/sessions"
	"github.com/aws-community-vadodara/feedback-hub/internal/stats"
	"github.com/aws-community-vadodara/feedback-hub/internal/whitelist"
	"github.com/aws-community-vadodara/feedback-hub/pkg/database"
	"github.com/aws-community-vadodara/feedback-hub/pkg/redis"
	"github.com/aws-community-vadodara/feedback-hub/pkg/response"
	"github.com/aws-community-vadodara/feedback-hub/pkg/storage"
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
			ResumesBucket:        cfg.AWS.ResumesBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// Identity
	whitelistRepo := whitelist.NewRepository(pool)
	whitelistHandler := whitelist.NewHandler(whitelistRepo, logger)
	userRepo := auth.NewRepository(pool)
	resolver := auth.NewResolver(whitelistRepo, userRepo, jwtService, cfg.Admin)
	authHandler := auth.NewHandler(resolver, logger)

	// Event clock
	eventRepo := event.NewRepository(pool, cfg.Event)
	eventClock := event.NewClock(eventRepo)
	eventHandler := event.NewHandler(eventRepo, logger)

	// Sessions
	sessionRepo := sessions.NewRepository(pool)
	sessionHandler := sessions.NewHandler(sessionRepo, logger)

	// Feedback
	feedbackRepo := feedback.NewRepository(pool)
	feedbackGuard := feedback.NewGuard(feedbackRepo, sessionRepo)
	feedbackHandler := feedback.NewHandler(feedbackGuard, feedbackRepo, logger)

	// Job portal
	jobRepo := jobs.NewRepository(pool)
	resumeRepo := jobs.NewResumeRepository(pool)
	applicationRepo := jobs.NewApplicationRepository(pool)
	var blobs jobs.BlobStore
	if s3Client != nil {
		blobs = s3Client
	}
	jobHandler := jobs.NewHandler(jobRepo, resumeRepo, applicationRepo, blobs, logger)

	statsHandler := stats.NewHandler(sessionRepo, feedbackRepo, whitelistRepo, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RateLimit(rdb.Client, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute, cfg.RateLimit.MaxRequests, logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	api := router.Group("/api")

	// Auth (public)
	api.POST("/auth/login", authHandler.Login)

	// Authenticated API
	authed := api.Group("")
	authed.Use(middleware.JWT(jwtService))
	{
		authed.GET("/auth/me", authHandler.Me)

		// Agenda and event settings
		authed.GET("/sessions", sessionHandler.List)
		authed.GET("/sessions/:sessionId", sessionHandler.Get)
		authed.GET("/event/settings", eventHandler.Get)

		// Feedback
		authed.GET("/feedback/mine", feedbackHandler.Mine)
		authed.GET("/feedback/categories", feedbackHandler.Categories)

		// Job portal (read side)
		authed.GET("/jobs", jobHandler.List)
		authed.GET("/jobs/resumes/check", jobHandler.CheckResume)
	}

	// Submission surfaces open only once the event has started. The stores
	// still enforce uniqueness on their own; this gate only controls when
	// the feature is reachable.
	gated := api.Group("")
	gated.Use(middleware.JWT(jwtService), middleware.RequireEventStarted(eventClock, logger))
	{
		gated.POST("/feedback", feedbackHandler.Submit)
		gated.POST("/jobs/resumes", jobHandler.SubmitResume)
		gated.POST("/jobs/apply", jobHandler.Apply)
	}

	// Admin API
	admin := api.Group("/admin")
	admin.Use(middleware.JWT(jwtService), middleware.RequireRole("admin"))
	{
		admin.GET("/stats", statsHandler.Get)

		admin.GET("/attendees", whitelistHandler.List)
		admin.POST("/attendees", whitelistHandler.Create)
		admin.PUT("/attendees/:id", whitelistHandler.Update)
		admin.DELETE("/attendees/:id", whitelistHandler.Delete)
		admin.POST("/attendees/import", whitelistHandler.Import)

		admin.GET("/sessions", sessionHandler.List)
		admin.POST("/sessions", sessionHandler.Create)
		admin.PUT("/sessions/:id", sessionHandler.Update)
		admin.DELETE("/sessions/:id", sessionHandler.Delete)
		admin.POST("/sessions/import", sessionHandler.Import)

		admin.GET("/event-settings", eventHandler.Get)
		admin.PUT("/event-settings", eventHandler.Update)

		admin.GET("/feedback/session/:sessionId", feedbackHandler.BySession)
		admin.GET("/feedback/category/:category", feedbackHandler.ByCategory)
		admin.GET("/feedback/categories/stats", feedbackHandler.CategoryStats)
		admin.GET("/export/feedback", feedbackHandler.Export)
	}

	// Job portal admin
	adminJobs := api.Group("/jobs")
	adminJobs.Use(middleware.JWT(jwtService), middleware.RequireRole("admin"))
	{
		adminJobs.POST("", jobHandler.CreateJob)
		adminJobs.DELETE("/:id", jobHandler.DeleteJob)
		adminJobs.POST("/import", jobHandler.ImportJobs)
		adminJobs.DELETE("/applications/:id", jobHandler.DeleteApplication)
		adminJobs.GET("/admin/resumes", jobHandler.ListResumes)
		adminJobs.GET("/admin/applications", jobHandler.ListApplications)
		adminJobs.GET("/admin/export/resumes", jobHandler.ExportResumes)
		adminJobs.GET("/admin/export/applications", jobHandler.ExportApplications)
		adminJobs.GET("/admin/download/resume/:id", jobHandler.DownloadResume)
		adminJobs.GET("/admin/download/application/:id", jobHandler.DownloadApplicationResume)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

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
