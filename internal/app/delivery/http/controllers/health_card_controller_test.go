package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"waterhealth-service/internal/pkg/constvars"
	"waterhealth-service/internal/pkg/dto/responses"
	"waterhealth-service/internal/pkg/exceptions"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
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

func newRefreshRequest(waterbodyID, credential string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/health-cards/"+waterbodyID+"/refresh", nil)
	if credential != "" {
		req.Header.Set(constvars.HeaderAuthorization, credential)
	}

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(constvars.URLParamWaterbodyID, waterbodyID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, "req-1")
	return req.WithContext(ctx)
}

func TestRefreshHealthCard_UnauthenticatedIsLoggedWithItsKey(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	usecase := new(MockHealthCardUsecase)
	usecase.On("RefreshHealthCard", mock.Anything, "wb-42", "").
		Return(nil, exceptions.ErrHealthCardUnauthenticated())

	rec := httptest.NewRecorder()
	NewHealthCardController(zap.New(core), usecase).RefreshHealthCard(rec, newRefreshRequest("wb-42", ""))

	assert.Equal(t, constvars.StatusUnauthorized, rec.Code)
	usecase.AssertExpectations(t)

	entries := logs.FilterMessage("HealthCardController.RefreshHealthCard error from usecase").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, true, fields[constvars.LoggingUnauthenticatedKey])
	assert.Equal(t, "req-1", fields[constvars.LoggingRequestIDKey])
}

func TestRefreshHealthCard_OtherErrorsAreNotFlaggedUnauthenticated(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	usecase := new(MockHealthCardUsecase)
	usecase.On("RefreshHealthCard", mock.Anything, "wb-42", "Bearer token").
		Return(nil, exceptions.ErrHealthCardRemoteUnavailable(assert.AnError, 503, "upstream down"))

	rec := httptest.NewRecorder()
	NewHealthCardController(zap.New(core), usecase).RefreshHealthCard(rec, newRefreshRequest("wb-42", "Bearer token"))

	assert.Equal(t, constvars.StatusBadGateway, rec.Code)

	entries := logs.FilterMessage("HealthCardController.RefreshHealthCard error from usecase").All()
	require.Len(t, entries, 1)
	assert.Equal(t, false, entries[0].ContextMap()[constvars.LoggingUnauthenticatedKey])
}
