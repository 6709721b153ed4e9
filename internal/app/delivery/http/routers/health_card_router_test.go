package routers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"waterhealth-service/internal/app/config"
	"waterhealth-service/internal/app/delivery/http/controllers"
	"waterhealth-service/internal/app/delivery/http/middlewares"
	"waterhealth-service/internal/app/models"
	"waterhealth-service/internal/pkg/constvars"
	"waterhealth-service/internal/pkg/dto/responses"
	"waterhealth-service/internal/pkg/exceptions"
	"waterhealth-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockHealthCardUsecase struct {
	mock.Mock
}

func (m *MockHealthCardUsecase) FetchHealthCard(ctx context.Context, waterbodyID string) (*responses.HealthCardResult, error) {
	args := m.Called(ctx, waterbodyID)
	result, _ := args.Get(0).(*responses.HealthCardResult)
	return result, args.Error(1)
}

func (m *MockHealthCardUsecase) RefreshHealthCard(ctx context.Context, waterbodyID, credential string) (*responses.HealthCardResult, error) {
	args := m.Called(ctx, waterbodyID, credential)
	result, _ := args.Get(0).(*responses.HealthCardResult)
	return result, args.Error(1)
}

type healthCardEnvelope struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	IsDemo     bool               `json:"isDemo"`
	HealthCard *models.HealthCard `json:"healthCard"`
}

type errorEnvelope struct {
	StatusCode int    `json:"status_code"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
}

func newTestRouter(usecase *MockHealthCardUsecase) *chi.Mux {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:     "api",
			Version:            "v1",
			MaxRequests:        1000,
			CorsAllowedOrigins: []string{"*"},
		},
	}

	router := chi.NewRouter()
	SetupRoutes(
		router,
		internalConfig,
		middlewares.NewMiddlewares(logger, internalConfig),
		controllers.NewHealthCardController(logger, usecase),
		controllers.NewHealthCheckController(),
	)
	return router
}

func demoResult(waterbodyID string) *responses.HealthCardResult {
	qrCode, _ := utils.GenerateQRCodeDataURL("https://waterhealth.example.org/health-card/" + waterbodyID)
	return &responses.HealthCardResult{
		HealthCard: &models.HealthCard{
			ID:                   "demo-" + waterbodyID,
			WaterbodyID:          waterbodyID,
			RiskScore:            45,
			ContaminationHistory: []models.ContaminationEvent{
				{Quality: models.ContaminationQualityMedium, Severity: models.ContaminationSeverityMedium},
			},
			QRCode: qrCode,
			IsDemo: true,
		},
		IsDemo: true,
	}
}

func TestHealthCardRouter_Fetch(t *testing.T) {
	t.Run("demo placeholder", func(t *testing.T) {
		usecase := new(MockHealthCardUsecase)
		usecase.On("FetchHealthCard", mock.Anything, "wb-42").Return(demoResult("wb-42"), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/health-cards/wb-42", nil)
		rr := httptest.NewRecorder()
		newTestRouter(usecase).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constvars.MIMEApplicationJSON, rr.Header().Get(constvars.HeaderContentType))
		assert.True(t, strings.HasPrefix(rr.Header().Get(constvars.HeaderXRequestID), constvars.REQUEST_ID_PREFIX))

		var body healthCardEnvelope
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.True(t, body.IsDemo)
		assert.Equal(t, constvars.GetDemoHealthCardMessage, body.Message)
		assert.Equal(t, "wb-42", body.HealthCard.WaterbodyID)
		assert.Equal(t, 45, body.HealthCard.RiskScore)
		assert.True(t, body.HealthCard.IsDemo)
		assert.Len(t, body.HealthCard.ContaminationHistory, 1)
	})

	t.Run("client request id is echoed", func(t *testing.T) {
		usecase := new(MockHealthCardUsecase)
		usecase.On("FetchHealthCard", mock.MatchedBy(func(ctx context.Context) bool {
			return utils.GetRequestID(ctx) == "client-req-1"
		}), "wb-42").Return(demoResult("wb-42"), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/health-cards/wb-42", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-req-1")
		rr := httptest.NewRecorder()
		newTestRouter(usecase).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "client-req-1", rr.Header().Get(constvars.HeaderXRequestID))
		usecase.AssertExpectations(t)
	})

	t.Run("remote unavailable maps to 502", func(t *testing.T) {
		usecase := new(MockHealthCardUsecase)
		remoteErr := exceptions.ErrHealthCardRemoteUnavailable(errors.New("connection refused"), 0, constvars.ErrDevHealthCardRemoteRequest)
		usecase.On("FetchHealthCard", mock.Anything, "wb-42").Return(nil, remoteErr)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/health-cards/wb-42", nil)
		rr := httptest.NewRecorder()
		newTestRouter(usecase).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)

		var body errorEnvelope
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, constvars.ErrClientHealthCardServiceUnavailable, body.Message)
	})

	t.Run("blank or oversized ids are rejected before the usecase", func(t *testing.T) {
		usecase := new(MockHealthCardUsecase)
		router := newTestRouter(usecase)

		for _, path := range []string{"/api/v1/health-cards/%20%20", "/api/v1/health-cards/" + strings.Repeat("a", 129)} {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code, path)
		}
		usecase.AssertNotCalled(t, "FetchHealthCard", mock.Anything, mock.Anything)
	})
}

func TestHealthCardRouter_Refresh(t *testing.T) {
	t.Run("authorization header is forwarded as credential", func(t *testing.T) {
		usecase := new(MockHealthCardUsecase)
		genuine := &responses.HealthCardResult{HealthCard: &models.HealthCard{ID: "hc-42", WaterbodyID: "wb-42", RiskScore: 10}}
		usecase.On("RefreshHealthCard", mock.Anything, "wb-42", "Bearer abc").Return(genuine, nil)

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/health-cards/wb-42/refresh", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer abc")
		rr := httptest.NewRecorder()
		newTestRouter(usecase).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var body healthCardEnvelope
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.False(t, body.IsDemo)
		assert.Equal(t, constvars.RefreshHealthCardSuccessMessage, body.Message)
		assert.Equal(t, 10, body.HealthCard.RiskScore)
		usecase.AssertExpectations(t)
	})

	t.Run("unauthenticated maps to 401", func(t *testing.T) {
		usecase := new(MockHealthCardUsecase)
		usecase.On("RefreshHealthCard", mock.Anything, "wb-42", "").Return(nil, exceptions.ErrHealthCardUnauthenticated())

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/health-cards/wb-42/refresh", nil)
		rr := httptest.NewRecorder()
		newTestRouter(usecase).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		var body errorEnvelope
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, constvars.ErrClientNotLoggedIn, body.Message)
	})

	t.Run("fetch verb is not accepted on refresh", func(t *testing.T) {
		usecase := new(MockHealthCardUsecase)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/health-cards/wb-42/refresh", nil)
		rr := httptest.NewRecorder()
		newTestRouter(usecase).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
		usecase.AssertNotCalled(t, "RefreshHealthCard", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHealthCardRouter_QRCode(t *testing.T) {
	t.Run("serves png", func(t *testing.T) {
		usecase := new(MockHealthCardUsecase)
		usecase.On("FetchHealthCard", mock.Anything, "wb-42").Return(demoResult("wb-42"), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/health-cards/wb-42/qr", nil)
		rr := httptest.NewRecorder()
		newTestRouter(usecase).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constvars.MIMEImagePNG, rr.Header().Get(constvars.HeaderContentType))
		assert.True(t, strings.HasPrefix(rr.Body.String(), "\x89PNG"))
	})

	t.Run("card without qr code", func(t *testing.T) {
		usecase := new(MockHealthCardUsecase)
		result := &responses.HealthCardResult{HealthCard: &models.HealthCard{ID: "hc-42", WaterbodyID: "wb-42"}}
		usecase.On("FetchHealthCard", mock.Anything, "wb-42").Return(result, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/health-cards/wb-42/qr", nil)
		rr := httptest.NewRecorder()
		newTestRouter(usecase).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})
}

func TestHealthCheckRoute(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	newTestRouter(new(MockHealthCardUsecase)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
