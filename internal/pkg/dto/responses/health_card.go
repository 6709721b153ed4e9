package responses

import "waterhealth-service/internal/app/models"

// HealthCardResult is what fetch and refresh hand back to every caller.
type HealthCardResult struct {
	HealthCard *models.HealthCard `json:"healthCard"`
	IsDemo     bool               `json:"isDemo"`
}

type HealthCardResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	HealthCardResult
}
