package main

import (
	"context"
	"log"

	"github.com/devconnect/devconnect-api/adapters/event"
	httpAdapter "github.com/devconnect/devconnect-api/adapters/http"
	"github.com/devconnect/devconnect-api/adapters/persistence"
	authUC "github.com/devconnect/devconnect-api/internal/application/usecase/auth"
	profileUC "github.com/devconnect/devconnect-api/internal/application/usecase/profile"
	"github.com/devconnect/devconnect-api/internal/config"
	"github.com/devconnect/devconnect-api/pkg/auth"
	"github.com/devconnect/devconnect-api/pkg/logger"
	"github.com/devconnect/devconnect-api/pkg/tracing"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting DevConnect API Server...")

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "devconnect-api")
	if err != nil {
		appLogger.Warn("Tracing disabled", zap.Error(err))
	} else {
		defer tp.Shutdown(context.Background())
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("Cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	profileCache := persistence.NewRedisProfileCache(redisClient, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use Cases
	registerUseCase := authUC.NewRegisterUseCase(userRepo, jwtSvc, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	currentUserUseCase := authUC.NewGetCurrentUserUseCase(userRepo)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, userRepo, profileCache, kafkaClient, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(registerUseCase, loginUseCase, currentUserUseCase)
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase, appLogger)

	router := httpAdapter.NewRouter(authHandler, profileHandler, jwtSvc, appLogger)

	appLogger.Info("Server running", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
