package controllers

import (
	"errors"
	"net/http"
	"waterhealth-service/internal/app/contracts"
	"waterhealth-service/internal/pkg/constvars"
	"waterhealth-service/internal/pkg/dto/requests"
	"waterhealth-service/internal/pkg/dto/responses"
	"waterhealth-service/internal/pkg/exceptions"
	"waterhealth-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type HealthCardController struct {
	Log               *zap.Logger
	HealthCardUsecase contracts.HealthCardUsecase
}

func NewHealthCardController(logger *zap.Logger, healthCardUsecase contracts.HealthCardUsecase) *HealthCardController {
	return &HealthCardController{
		Log:               logger,
		HealthCardUsecase: healthCardUsecase,
	}
}

func (ctrl *HealthCardController) FetchHealthCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("HealthCardController.FetchHealthCard requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	waterbodyID, err := ctrl.waterbodyIDFromPath(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("HealthCardController.FetchHealthCard called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWaterbodyIDKey, waterbodyID),
	)

	result, err := ctrl.HealthCardUsecase.FetchHealthCard(ctx, waterbodyID)
	if err != nil {
		ctrl.Log.Error("HealthCardController.FetchHealthCard error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	message := constvars.GetHealthCardSuccessMessage
	if result.IsDemo {
		message = constvars.GetDemoHealthCardMessage
	}
	ctrl.writeHealthCard(w, message, result)
}

func (ctrl *HealthCardController) RefreshHealthCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("HealthCardController.RefreshHealthCard requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	waterbodyID, err := ctrl.waterbodyIDFromPath(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("HealthCardController.RefreshHealthCard called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWaterbodyIDKey, waterbodyID),
	)

	credential := r.Header.Get(constvars.HeaderAuthorization)
	result, err := ctrl.HealthCardUsecase.RefreshHealthCard(ctx, waterbodyID, credential)
	if err != nil {
		ctrl.Log.Error("HealthCardController.RefreshHealthCard error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Bool(constvars.LoggingUnauthenticatedKey, errors.Is(err, exceptions.ErrUnauthenticated)),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	message := constvars.RefreshHealthCardSuccessMessage
	if result.IsDemo {
		message = constvars.RefreshDemoHealthCardMessage
	}
	ctrl.writeHealthCard(w, message, result)
}

// GetHealthCardQRCode serves the card's QR code as a PNG image.
func (ctrl *HealthCardController) GetHealthCardQRCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("HealthCardController.GetHealthCardQRCode requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	waterbodyID, err := ctrl.waterbodyIDFromPath(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.HealthCardUsecase.FetchHealthCard(ctx, waterbodyID)
	if err != nil {
		ctrl.Log.Error("HealthCardController.GetHealthCardQRCode error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	png, err := utils.DecodeQRCodeDataURL(result.HealthCard.QRCode)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrHealthCardQRCodeDecode(err))
		return
	}

	ctrl.Log.Info("HealthCardController.GetHealthCardQRCode succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWaterbodyIDKey, waterbodyID),
		zap.Bool(constvars.LoggingIsDemoKey, result.IsDemo),
	)
	utils.WriteImageResponse(w, constvars.MIMEImagePNG, png)
}

func (ctrl *HealthCardController) waterbodyIDFromPath(r *http.Request) (string, error) {
	params := requests.HealthCardPathParams{
		WaterbodyID: chi.URLParam(r, constvars.URLParamWaterbodyID),
	}
	err := utils.ValidateStruct(params)
	if err != nil {
		return "", exceptions.ErrURLParamIDValidation(err, constvars.URLParamWaterbodyID)
	}
	return params.WaterbodyID, nil
}

func (ctrl *HealthCardController) writeHealthCard(w http.ResponseWriter, message string, result *responses.HealthCardResult) {
	utils.WriteJSONResponse(w, constvars.StatusOK, responses.HealthCardResponse{
		Success:          true,
		Message:          message,
		HealthCardResult: *result,
	})
}
