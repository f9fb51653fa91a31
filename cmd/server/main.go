package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskflow/internal/authz"
	"taskflow/internal/cache"
	"taskflow/internal/config"
	"taskflow/internal/database"
	"taskflow/internal/handler"
	"taskflow/internal/presence"
	"taskflow/internal/queue"
	"taskflow/internal/repository"
	"taskflow/internal/router"
	"taskflow/internal/service"
	"taskflow/internal/storage"
	"taskflow/internal/validator"
	"taskflow/pkg/auth"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("Configuration loaded")

	// Register custom validators
	validator.RegisterCustomValidators()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Database
	mongoDB := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
	defer mongoDB.Close()

	// Redis cache and presence tracking share one client
	redisCache := cache.NewRedis(cfg.RedisURI)
	defer redisCache.Close()

	tracker := presence.NewTracker(redisCache.Client(), cfg.PresenceTTL)

	// Attachment storage: S3 first, plain HTTP host as fallback
	uploaders := []storage.Uploader{
		storage.NewS3Uploader(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3UseSSL),
	}
	if cfg.FallbackUploadURL != "" {
		uploaders = append(uploaders, storage.NewHTTPUploader(cfg.FallbackUploadURL))
	}
	uploader := storage.NewChain(uploaders...)

	// JWT Manager
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	// Repository layer
	userRepo := repository.NewUserRepository(mongoDB.Database)
	taskRepo := repository.NewTaskRepository(mongoDB.Database)
	teamRepo := repository.NewTeamRepository(mongoDB.Database)
	notificationRepo := repository.NewNotificationRepository(mongoDB.Database)
	activityRepo := repository.NewActivityRepository(mongoDB.Database)

	// Authorization
	authorizer := authz.NewLocalAuthorizer(teamRepo)

	// Effect queue and processor
	effectQueue := queue.NewMemoryQueue(100)
	effects := service.NewQueueEffects(effectQueue)
	effectProcessor := queue.NewProcessor(effectQueue, notificationRepo, activityRepo, 2)

	// Service layer
	promoter := service.NewPromotionEngine(userRepo, redisCache, effects)
	authService := service.NewAuthService(userRepo, redisCache, jwtManager, tracker, effects, service.AuthServiceConfig{
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
		AdminSecretKey:  cfg.AdminSecretKey,
	})
	userService := service.NewUserService(userRepo, redisCache, effects)
	taskService := service.NewTaskService(taskRepo, userRepo, authorizer, uploader, effects, promoter, cfg.UploadMaxBytes)
	teamService := service.NewTeamService(teamRepo, userRepo, authorizer, effects, promoter)
	notificationService := service.NewNotificationService(notificationRepo)
	activityService := service.NewActivityService(activityRepo)

	// Handler layer
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	taskHandler := handler.NewTaskHandler(taskService)
	teamHandler := handler.NewTeamHandler(teamService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	activityHandler := handler.NewActivityHandler(activityService)
	presenceHandler := handler.NewPresenceHandler(tracker)

	// Router
	r := router.Setup(&router.Config{
		AuthHandler:         authHandler,
		UserHandler:         userHandler,
		TaskHandler:         taskHandler,
		TeamHandler:         teamHandler,
		NotificationHandler: notificationHandler,
		ActivityHandler:     activityHandler,
		PresenceHandler:     presenceHandler,
		JWTManager:          jwtManager,
		UserService:         userService,
	})

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start effect processor
	effectProcessor.Start(ctx)

	// Create HTTP server for graceful shutdown support
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down server...")

	// Stop accepting new requests, finish in-flight ones
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	// Drain the effect processor after the server stops producing effects
	effectProcessor.Stop()

	log.Println("Server stopped")
}
