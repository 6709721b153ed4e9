package contracts

import (
	"context"
	"waterhealth-service/internal/app/models"
)

type HealthCardEventQueue interface {
	HealthCardEventPublisher
	Reenqueue(ctx context.Context, event *models.HealthCardRefreshedEvent) error
	EnqueueToDeadQueue(ctx context.Context, event *models.HealthCardRefreshedEvent) error
	FetchN(ctx context.Context, max int) ([]models.QueuedHealthCardEvent, error)
	AckMessage(ctx context.Context, deliveryTag uint64) error
}
