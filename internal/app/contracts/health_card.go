package contracts

import (
	"context"
	"waterhealth-service/internal/app/models"
	"waterhealth-service/internal/pkg/dto/responses"
)

type HealthCardUsecase interface {
	FetchHealthCard(ctx context.Context, waterbodyID string) (*responses.HealthCardResult, error)
	RefreshHealthCard(ctx context.Context, waterbodyID, credential string) (*responses.HealthCardResult, error)
}

// HealthCardRemoteClient returns exceptions.ErrHealthCardNotFound (wrapped) when
// the remote answers 404 and a RemoteUnavailable error for every other failure.
type HealthCardRemoteClient interface {
	FindHealthCardByWaterbodyID(ctx context.Context, waterbodyID string) (*models.HealthCard, error)
	RefreshHealthCard(ctx context.Context, waterbodyID, credential string) (*models.HealthCard, error)
}

type HealthCardEventPublisher interface {
	PublishHealthCardRefreshed(ctx context.Context, event *models.HealthCardRefreshedEvent) error
}

type CredentialProvider interface {
	Credential(ctx context.Context) (string, error)
}
