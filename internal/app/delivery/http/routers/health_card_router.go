package routers

import (
	"waterhealth-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachHealthCardRoutes(router chi.Router, healthCardController *controllers.HealthCardController) {
	router.Get("/{waterbody_id}", healthCardController.FetchHealthCard)
	router.Patch("/{waterbody_id}/refresh", healthCardController.RefreshHealthCard)
	router.Get("/{waterbody_id}/qr", healthCardController.GetHealthCardQRCode)
}
