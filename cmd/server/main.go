package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GuiAmaralD/pet-adoption-system/internal/application"
	"github.com/GuiAmaralD/pet-adoption-system/internal/auth"
	"github.com/GuiAmaralD/pet-adoption-system/internal/config"
	"github.com/GuiAmaralD/pet-adoption-system/internal/database"
	"github.com/GuiAmaralD/pet-adoption-system/internal/domain/media"
	"github.com/GuiAmaralD/pet-adoption-system/internal/handler"
	"github.com/GuiAmaralD/pet-adoption-system/internal/health"
	"github.com/GuiAmaralD/pet-adoption-system/internal/kafka"
	"github.com/GuiAmaralD/pet-adoption-system/internal/logger"
	"github.com/GuiAmaralD/pet-adoption-system/internal/middleware"
	"github.com/GuiAmaralD/pet-adoption-system/internal/repository"
	"github.com/GuiAmaralD/pet-adoption-system/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "pet-adoption-system")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting pet-adoption-system",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DB, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.OwnerModel{}, &repository.PetModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DB.URL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenTTL)

	// Initialize Kafka producer
	producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer func() { _ = producer.Close() }()

	// Initialize object storage client
	uploader, err := storage.NewGCSUploader(context.Background())
	if err != nil {
		log.Fatal("failed to create storage client", zap.Error(err))
	}
	defer func() { _ = uploader.Close() }()

	// Initialize repositories
	petRepo := repository.NewGormPetRepository(db)
	ownerRepo := repository.NewGormOwnerRepository(db)

	// Initialize application services
	petService := application.NewPetService(
		petRepo,
		ownerRepo,
		media.NewValidator(),
		uploader,
		cfg.Storage.Bucket,
		producer,
		log,
	)
	accountService := application.NewAccountService(ownerRepo, petRepo, jwtManager, log)

	// Initialize HTTP handlers
	petHandler := handler.NewPetHandler(petService)
	authHandler := handler.NewAuthHandler(accountService)
	accountHandler := handler.NewAccountHandler(accountService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "pet-adoption-system")
	healthHandler.RegisterRoutes(router)

	// Register routes
	authHandler.RegisterRoutes(&router.RouterGroup)
	accountHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	petHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down pet-adoption-system...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("pet-adoption-system stopped")
}
