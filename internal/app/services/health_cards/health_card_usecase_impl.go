package health_cards

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"
	"waterhealth-service/internal/app/config"
	"waterhealth-service/internal/app/contracts"
	"waterhealth-service/internal/app/models"
	"waterhealth-service/internal/pkg/constvars"
	"waterhealth-service/internal/pkg/dto/responses"
	"waterhealth-service/internal/pkg/exceptions"
	"waterhealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type healthCardUsecase struct {
	RemoteClient   contracts.HealthCardRemoteClient
	EventPublisher contracts.HealthCardEventPublisher
	InternalConfig *config.InternalConfig
	Log            *zap.Logger

	now       func() time.Time
	intn      func(n int) int
	publishes sync.WaitGroup
}

func NewHealthCardUsecase(
	remoteClient contracts.HealthCardRemoteClient,
	eventPublisher contracts.HealthCardEventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.HealthCardUsecase {
	return &healthCardUsecase{
		RemoteClient:   remoteClient,
		EventPublisher: eventPublisher,
		InternalConfig: internalConfig,
		Log:            logger,
		now:            time.Now,
		intn:           rand.IntN,
	}
}

func (uc *healthCardUsecase) FetchHealthCard(ctx context.Context, waterbodyID string) (*responses.HealthCardResult, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("healthCardUsecase.FetchHealthCard called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWaterbodyIDKey, waterbodyID),
	)

	healthCard, err := uc.RemoteClient.FindHealthCardByWaterbodyID(ctx, waterbodyID)
	if err == nil {
		return &responses.HealthCardResult{HealthCard: healthCard, IsDemo: false}, nil
	}
	if !errors.Is(err, exceptions.ErrHealthCardNotFound) {
		uc.Log.Error("healthCardUsecase.FetchHealthCard remote failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingWaterbodyIDKey, waterbodyID),
			zap.Error(err),
		)
		return nil, err
	}

	placeholder := newFetchPlaceholder(waterbodyID, uc.now(), uc.qrCodeFor(ctx, waterbodyID))
	uc.Log.Info("healthCardUsecase.FetchHealthCard serving demo placeholder",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWaterbodyIDKey, waterbodyID),
		zap.Bool(constvars.LoggingIsDemoKey, true),
	)
	return &responses.HealthCardResult{HealthCard: placeholder, IsDemo: true}, nil
}

func (uc *healthCardUsecase) RefreshHealthCard(ctx context.Context, waterbodyID, credential string) (*responses.HealthCardResult, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("healthCardUsecase.RefreshHealthCard called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWaterbodyIDKey, waterbodyID),
	)

	if !utils.IsBearerCredential(credential) {
		uc.Log.Warn("healthCardUsecase.RefreshHealthCard rejected credential",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingWaterbodyIDKey, waterbodyID),
		)
		return nil, exceptions.ErrHealthCardUnauthenticated()
	}

	healthCard, err := uc.RemoteClient.RefreshHealthCard(ctx, waterbodyID, credential)
	if err == nil {
		uc.publishRefreshed(ctx, healthCard)
		return &responses.HealthCardResult{HealthCard: healthCard, IsDemo: false}, nil
	}
	if !errors.Is(err, exceptions.ErrHealthCardNotFound) {
		uc.Log.Error("healthCardUsecase.RefreshHealthCard remote failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingWaterbodyIDKey, waterbodyID),
			zap.Error(err),
		)
		return nil, err
	}

	riskScore := uc.intn(constvars.DemoHealthCardRiskScoreRange)
	placeholder := newRefreshPlaceholder(waterbodyID, uc.now(), uc.qrCodeFor(ctx, waterbodyID), riskScore)
	uc.Log.Info("healthCardUsecase.RefreshHealthCard serving demo placeholder",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWaterbodyIDKey, waterbodyID),
		zap.Int(constvars.LoggingRiskScoreKey, riskScore),
		zap.Bool(constvars.LoggingIsDemoKey, true),
	)
	return &responses.HealthCardResult{HealthCard: placeholder, IsDemo: true}, nil
}

// qrCodeFor points at the public card page. A failed render leaves the QR
// code empty rather than failing the placeholder.
func (uc *healthCardUsecase) qrCodeFor(ctx context.Context, waterbodyID string) string {
	publicURL := utils.BuildHealthCardPublicURL(uc.InternalConfig.App.PublicBaseUrl, waterbodyID)
	qrCode, err := utils.GenerateQRCodeDataURL(publicURL)
	if err != nil {
		uc.Log.Error("healthCardUsecase.qrCodeFor error generating QR code",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingWaterbodyIDKey, waterbodyID),
			zap.Error(exceptions.ErrHealthCardQRCodeGenerate(err)),
		)
		return ""
	}
	return qrCode
}

// publishRefreshed hands the event to the broker in the background, detached
// from the caller's context and bounded by HealthCardEventPublishTimeout.
func (uc *healthCardUsecase) publishRefreshed(ctx context.Context, healthCard *models.HealthCard) {
	event := &models.HealthCardRefreshedEvent{
		ID:          utils.GenerateEventID(),
		WaterbodyID: healthCard.WaterbodyID,
		RiskScore:   healthCard.RiskScore,
		UpdatedAt:   healthCard.UpdatedAt,
		HealthCard:  healthCard,
	}
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constvars.HealthCardEventPublishTimeout)

	uc.publishes.Add(1)
	go func() {
		defer uc.publishes.Done()
		defer cancel()

		err := uc.EventPublisher.PublishHealthCardRefreshed(publishCtx, event)
		if err != nil {
			uc.Log.Error("healthCardUsecase.publishRefreshed error publishing event",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(publishCtx)),
				zap.String(constvars.LoggingEventIDKey, event.ID),
				zap.Error(err),
			)
		}
	}()
}
