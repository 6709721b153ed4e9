package eventqueue

import (
	"context"
	"waterhealth-service/internal/app/contracts"
	"waterhealth-service/internal/app/models"
	"waterhealth-service/internal/pkg/constvars"
	"waterhealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type noopPublisher struct {
	log *zap.Logger
}

// NewNoopPublisher is used when RabbitMQ is not configured.
func NewNoopPublisher(log *zap.Logger) contracts.HealthCardEventPublisher {
	return &noopPublisher{log: log}
}

func (p *noopPublisher) PublishHealthCardRefreshed(ctx context.Context, event *models.HealthCardRefreshedEvent) error {
	p.log.Debug("eventqueue.noopPublisher dropping event",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingEventIDKey, event.ID),
	)
	return nil
}
