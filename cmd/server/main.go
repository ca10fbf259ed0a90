package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/database"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/database/repository"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/router"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/services"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/services/api_key"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/services/auth"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/utils"
)

// @title Coursia API
// @version 1.0
// @description AI-assisted online course creation backend.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	configureLogging()
	utils.InitSentry()
	defer sentry.Flush(2 * time.Second)

	if err := database.InitDB(); err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	userRepo := repository.NewUserRepository()
	refreshTokenRepo := repository.NewRefreshTokenRepository()
	apiKeyRepo := repository.NewAPIKeyRepository()
	courseRepo := repository.NewCourseRepository()
	jobRepo := repository.NewGenerationJobRepository()
	mediaRepo := repository.NewMediaAssetRepository()
	profileRepo := repository.NewCreatorProfileRepository()

	authService := auth.NewAuthService(userRepo, refreshTokenRepo)
	if err := authService.CreateAdminUser(); err != nil {
		logrus.Errorf("Admin bootstrap failed: %v", err)
	}
	apiKeyService := api_key.NewAPIKeyService(apiKeyRepo)

	stopChan := make(chan struct{})

	tokenCleanup := auth.NewTokenCleanupService(refreshTokenRepo)
	tokenCleanup.Start(stopChan)

	hub := services.NewSSEHub()

	var rabbit *services.RabbitMQService
	if os.Getenv("RABBITMQ_HOST") != "" {
		var err error
		rabbit, err = services.NewRabbitMQService()
		if err != nil {
			logrus.Warnf("RabbitMQ unavailable, progress events will be applied in-process: %v", err)
			rabbit = nil
		}
	}

	jobService := services.NewGenerationJobService(jobRepo, hub, rabbit)
	jobService.StartConsumer(stopChan)
	jobService.StartRetentionCleanup(stopChan)

	aiClient := services.NewAIClient()
	storage := services.NewStorageService()

	courseService := services.NewCourseService(aiClient, services.NewFallbackCourseService(), courseRepo, jobService)
	slideService := services.NewSlideService(aiClient)
	brandingService := services.NewBrandingService(aiClient, storage)
	marketingService := services.NewMarketingService(aiClient)
	mediaService := services.NewMediaService(storage, mediaRepo)
	profileService := services.NewCreatorProfileService(profileRepo)

	r := router.SetupRouter(&router.Dependencies{
		AuthService:   authService,
		APIKeyService: apiKeyService,
		CourseService: courseService,
		SlideService:  slideService,
		Branding:      brandingService,
		Marketing:     marketingService,
		Media:         mediaService,
		Profile:       profileService,
		Jobs:          jobService,
		Hub:           hub,
		UserRepo:      userRepo,
	})

	port := getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logrus.Infof("Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server")
	close(stopChan)
	if rabbit != nil {
		rabbit.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Forced shutdown: %v", err)
	}

	logrus.Info("Server stopped")
}

func configureLogging() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
