package health_cards

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"waterhealth-service/internal/app/contracts"
	"waterhealth-service/internal/app/models"
	"waterhealth-service/internal/pkg/constvars"
	"waterhealth-service/internal/pkg/exceptions"
	"waterhealth-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type healthCardRemoteClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	Log        *zap.Logger
}

// NewHealthCardRemoteClient talks to the remote system of record. Every call
// is a single attempt bounded by timeout.
func NewHealthCardRemoteClient(baseUrl string, timeout time.Duration, logger *zap.Logger) contracts.HealthCardRemoteClient {
	return &healthCardRemoteClient{
		BaseUrl:    strings.TrimRight(baseUrl, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Log:        logger,
	}
}

func (c *healthCardRemoteClient) FindHealthCardByWaterbodyID(ctx context.Context, waterbodyID string) (*models.HealthCard, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("healthCardRemoteClient.FindHealthCardByWaterbodyID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWaterbodyIDKey, waterbodyID),
	)

	endpoint := fmt.Sprintf(constvars.HealthCardRemotePathFormat, c.BaseUrl, url.PathEscape(waterbodyID))
	return c.do(ctx, constvars.MethodGet, endpoint, "")
}

func (c *healthCardRemoteClient) RefreshHealthCard(ctx context.Context, waterbodyID, credential string) (*models.HealthCard, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("healthCardRemoteClient.RefreshHealthCard called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWaterbodyIDKey, waterbodyID),
	)

	endpoint := fmt.Sprintf(constvars.HealthCardRemoteRefreshPathFormat, c.BaseUrl, url.PathEscape(waterbodyID))
	return c.do(ctx, constvars.MethodPatch, endpoint, credential)
}

// do performs one request. A 404 yields exceptions.ErrHealthCardNotFound,
// anything other than a valid 2xx record yields a RemoteUnavailable error.
func (c *healthCardRemoteClient) do(ctx context.Context, method, endpoint, credential string) (*models.HealthCard, error) {
	requestID := utils.GetRequestID(ctx)

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		c.Log.Error("healthCardRemoteClient error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUpstreamURLKey, endpoint),
			zap.Error(err),
		)
		return nil, exceptions.ErrHealthCardRemoteUnavailable(err, 0, constvars.ErrDevCreateHTTPRequest)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	if credential != "" {
		req.Header.Set(constvars.HeaderAuthorization, credential)
	}
	if requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("healthCardRemoteClient error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUpstreamURLKey, endpoint),
			zap.Error(err),
		)
		return nil, exceptions.ErrHealthCardRemoteUnavailable(err, 0, constvars.ErrDevHealthCardRemoteRequest)
	}
	defer resp.Body.Close()

	if resp.StatusCode == constvars.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		c.Log.Info("healthCardRemoteClient remote has no record",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUpstreamURLKey, endpoint),
		)
		return nil, exceptions.ErrHealthCardNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		statusErr := errors.New(http.StatusText(resp.StatusCode))
		c.Log.Error("healthCardRemoteClient unexpected status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUpstreamURLKey, endpoint),
			zap.Int(constvars.LoggingUpstreamStatusKey, resp.StatusCode),
		)
		return nil, exceptions.ErrHealthCardRemoteUnavailable(statusErr, resp.StatusCode, fmt.Sprintf(constvars.ErrDevHealthCardRemoteStatus, resp.StatusCode))
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Log.Error("healthCardRemoteClient error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrHealthCardRemoteUnavailable(err, resp.StatusCode, constvars.ErrDevReadBody)
	}

	healthCard := new(models.HealthCard)
	err = json.Unmarshal(bodyBytes, healthCard)
	if err != nil {
		c.Log.Error("healthCardRemoteClient error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrHealthCardRemoteUnavailable(err, resp.StatusCode, constvars.ErrDevHealthCardMalformedBody)
	}

	err = utils.ValidateStruct(healthCard)
	if err != nil {
		c.Log.Error("healthCardRemoteClient remote record failed validation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingHealthCardIDKey, healthCard.ID),
			zap.String(constvars.LoggingErrorMessageKey, exceptions.FormatAllValidationErrors(err)),
		)
		return nil, exceptions.ErrHealthCardRemoteUnavailable(err, resp.StatusCode, constvars.ErrDevHealthCardInvalidRecord)
	}

	c.Log.Info("healthCardRemoteClient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingHealthCardIDKey, healthCard.ID),
		zap.Int(constvars.LoggingRiskScoreKey, healthCard.RiskScore),
	)
	return healthCard, nil
}
