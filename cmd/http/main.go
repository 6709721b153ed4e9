package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"waterhealth-service/internal/app/config"
	"waterhealth-service/internal/app/contracts"
	"waterhealth-service/internal/app/delivery/http/controllers"
	"waterhealth-service/internal/app/delivery/http/middlewares"
	"waterhealth-service/internal/app/delivery/http/routers"
	"waterhealth-service/internal/app/drivers/database"
	"waterhealth-service/internal/app/drivers/logger"
	"waterhealth-service/internal/app/drivers/messaging"
	"waterhealth-service/internal/app/drivers/storage"
	"waterhealth-service/internal/app/services/core/archiver"
	"waterhealth-service/internal/app/services/core/refresher"
	"waterhealth-service/internal/app/services/health_cards"
	"waterhealth-service/internal/app/services/shared/credential"
	"waterhealth-service/internal/app/services/shared/eventqueue"
	"waterhealth-service/internal/app/services/shared/locker"
	"waterhealth-service/internal/app/services/shared/redis"
	archivestorage "waterhealth-service/internal/app/services/shared/storage"
	"waterhealth-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Redis:          database.NewRedisClient(driverConfig),
		Logger:         log,
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig),
		Minio:          storage.NewMinio(driverConfig),
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	bootstrapingTheApp(bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		log.Info("Server starting", zap.String(constvars.LoggingServerAddressKey, internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to release resources", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) {
	log := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig

	// Refresh events
	var eventPublisher contracts.HealthCardEventPublisher = eventqueue.NewNoopPublisher(log)
	var eventQueue *eventqueue.Service
	if bootstrap.RabbitMQ != nil {
		queue, err := eventqueue.NewService(bootstrap.RabbitMQ, log, internalConfig.Archiver.BatchSize)
		if err != nil {
			log.Fatal("Failed to initialize health card event queue", zap.Error(err))
		}
		eventQueue = queue
		eventPublisher = queue
	}

	// Health card
	healthCardRemoteClient := health_cards.NewHealthCardRemoteClient(
		internalConfig.HealthCard.BaseUrl,
		time.Duration(internalConfig.HealthCard.RequestTimeoutInSeconds)*time.Second,
		log,
	)
	healthCardUsecase := health_cards.NewHealthCardUsecase(healthCardRemoteClient, eventPublisher, internalConfig, log)

	// Workers
	if bootstrap.Redis != nil {
		redisRepository := redis.NewRedisRepository(bootstrap.Redis)
		lockerService := locker.NewLockService(redisRepository, log)

		if eventQueue != nil && bootstrap.Minio != nil {
			archiveStorage := archivestorage.NewMinioStorage(bootstrap.Minio, bootstrap.DriverConfig.Minio.BucketName)
			archiverWorker := archiver.NewWorker(log, internalConfig, lockerService, eventQueue, archiveStorage, redisRepository)
			bootstrap.WorkerStop = archiverWorker.Start(context.Background())
		}

		if internalConfig.HealthCard.RefreshCronSpec != "" && len(internalConfig.HealthCard.RefreshWatchlist) > 0 {
			credentialProvider := credential.NewStaticCredentialProvider(internalConfig.HealthCard.ServiceToken)
			refresherWorker := refresher.NewWorker(log, internalConfig, lockerService, healthCardUsecase, credentialProvider)
			refresherWorker.Start(context.Background())
			bootstrap.RefresherStop = refresherWorker.Stop
		}
	} else {
		log.Warn("Redis is not configured, background workers are disabled")
	}

	// Delivery
	middlewares := middlewares.NewMiddlewares(log, internalConfig)
	healthCardController := controllers.NewHealthCardController(log, healthCardUsecase)
	healthCheckController := controllers.NewHealthCheckController()

	routers.SetupRoutes(bootstrap.Router, internalConfig, middlewares, healthCardController, healthCheckController)
}
