package contracts

import (
	"context"
	"waterhealth-service/internal/app/models"
)

type HealthCardArchiveStorage interface {
	// ArchiveHealthCard stores the snapshot and returns the object name it was written to.
	ArchiveHealthCard(ctx context.Context, healthCard *models.HealthCard) (string, error)
}
