package controllers

import (
	"net/http"
	"waterhealth-service/internal/pkg/constvars"
	"waterhealth-service/internal/pkg/utils"
)

type HealthCheckController struct{}

func NewHealthCheckController() *HealthCheckController {
	return &HealthCheckController{}
}

func (ctrl *HealthCheckController) Liveness(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, nil)
}
