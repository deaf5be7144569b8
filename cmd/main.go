package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Payphone-Digital/property-api/config"
	"github.com/Payphone-Digital/property-api/internal/handler"
	"github.com/Payphone-Digital/property-api/internal/repository"
	"github.com/Payphone-Digital/property-api/internal/router"
	"github.com/Payphone-Digital/property-api/internal/service"
	"github.com/Payphone-Digital/property-api/pkg/database"
	"github.com/Payphone-Digital/property-api/pkg/logger"
	"github.com/Payphone-Digital/property-api/pkg/redis"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(logger.Options{
		Environment: cfg.App.Environment,
		LogsPath:    cfg.App.LogsPath,
	}); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.GetLogger()
	log.Info("starting application",
		zap.String("name", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
		zap.String("port", cfg.App.Port),
	)

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer func() {
		if closeErr := database.CloseDB(db); closeErr != nil {
			log.Error("failed to close database", zap.Error(closeErr))
		}
	}()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}
	if err := database.SeedAdminUser(db, cfg.Seed); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}

	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		// Redis only backs the rate limiter, the API runs without it.
		log.Warn("redis unavailable, continuing without it", zap.Error(err))
		redisClient = nil
	}
	defer func() {
		if closeErr := redisClient.Close(); closeErr != nil {
			log.Error("failed to close redis", zap.Error(closeErr))
		}
	}()

	uow := repository.NewUnitOfWork(db)
	jwtService := service.NewJWTService(cfg.JWT)
	authService := service.NewAuthService(uow, jwtService, cfg.JWT.RefreshTokenTTL)
	ownerService := service.NewOwnerService(uow)
	propertyService := service.NewPropertyService(uow)
	imageService := service.NewPropertyImageService(uow)
	traceService := service.NewPropertyTraceService(uow)

	engine := router.Setup(cfg, jwtService, redisClient, router.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		Owner:  handler.NewOwnerHandler(ownerService),
		Prop:   handler.NewPropertyHandler(propertyService),
		Image:  handler.NewPropertyImageHandler(imageService),
		Trace:  handler.NewPropertyTraceHandler(traceService),
		Health: handler.NewHealthHandler(db, redisClient),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.App.Timeout,
		WriteTimeout: cfg.App.Timeout,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
