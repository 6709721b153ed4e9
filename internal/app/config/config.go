package config

import (
	"waterhealth-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", ""),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "info"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", ""),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Host:       utils.GetEnvString("MINIO_HOST", ""),
			Username:   utils.GetEnvString("MINIO_USERNAME", ""),
			Password:   utils.GetEnvString("MINIO_PASSWORD", ""),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "health-card-archive"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                      utils.GetEnvString("APP_ENV", "development"),
			Port:                     utils.GetEnvString("APP_PORT", ":8080"),
			Version:                  utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:           utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			PublicBaseUrl:            utils.GetEnvString("APP_PUBLIC_BASE_URL", "http://localhost:3000"),
			CorsAllowedOrigins:       utils.GetEnvStringSlice("APP_CORS_ALLOWED_ORIGINS", []string{"*"}),
			MaxRequests:              utils.GetEnvInt("APP_MAX_REQUESTS", 20),
			ShutdownTimeoutInSeconds: utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
		},
		HealthCard: AppHealthCard{
			BaseUrl:                 utils.GetEnvString("HEALTH_CARD_BASE_URL", "http://localhost:5000/api"),
			RequestTimeoutInSeconds: utils.GetEnvInt("HEALTH_CARD_REQUEST_TIMEOUT_IN_SECONDS", 15),
			RefreshCronSpec:         utils.GetEnvString("HEALTH_CARD_REFRESH_CRON_SPEC", ""),
			RefreshWatchlist:        utils.GetEnvStringSlice("HEALTH_CARD_REFRESH_WATCHLIST", nil),
			ServiceToken:            utils.GetEnvString("HEALTH_CARD_SERVICE_TOKEN", ""),
		},
		Archiver: AppArchiver{
			MaxAttempts:          utils.GetEnvInt("ARCHIVER_MAX_ATTEMPTS", 3),
			BatchSize:            utils.GetEnvInt("ARCHIVER_BATCH_SIZE", 10),
			TickIntervalInSecond: utils.GetEnvInt("ARCHIVER_TICK_INTERVAL_IN_SECONDS", 10),
			LockTTLInSecond:      utils.GetEnvInt("ARCHIVER_LOCK_TTL_IN_SECONDS", 30),
			MarkerTTLInHours:     utils.GetEnvInt("ARCHIVER_MARKER_TTL_IN_HOURS", 72),
		},
	}
}
