package health_cards

import (
	"time"
	"waterhealth-service/internal/app/models"
	"waterhealth-service/internal/pkg/constvars"
)

// newFetchPlaceholder builds the demo card served when the remote has no record
// on read. It always carries exactly one synthetic contamination event.
func newFetchPlaceholder(waterbodyID string, now time.Time, qrCode string) *models.HealthCard {
	eventDate := now.Add(-constvars.DemoContaminationEventAge)
	eventLocation := constvars.DemoHealthCardLocation
	eventNotes := constvars.DemoContaminationNotes

	healthCard := newPlaceholderBase(waterbodyID, now, qrCode)
	healthCard.RiskScore = constvars.DemoHealthCardRiskScore
	healthCard.LastTestedDate = &eventDate
	healthCard.ContaminationHistory = []models.ContaminationEvent{
		{
			Date:     eventDate,
			Quality:  models.ContaminationQualityMedium,
			Severity: models.ContaminationSeverityMedium,
			Location: &eventLocation,
			Notes:    &eventNotes,
		},
	}
	return healthCard
}

// newRefreshPlaceholder builds the demo card served when the remote has no
// record on refresh. Its history is always empty.
func newRefreshPlaceholder(waterbodyID string, now time.Time, qrCode string, riskScore int) *models.HealthCard {
	lastTestedDate := now

	healthCard := newPlaceholderBase(waterbodyID, now, qrCode)
	healthCard.RiskScore = riskScore
	healthCard.LastTestedDate = &lastTestedDate
	healthCard.ContaminationHistory = []models.ContaminationEvent{}
	return healthCard
}

func newPlaceholderBase(waterbodyID string, now time.Time, qrCode string) *models.HealthCard {
	healthCard := &models.HealthCard{
		ID:            constvars.DemoHealthCardIDPrefix + waterbodyID,
		WaterbodyID:   waterbodyID,
		WaterbodyName: constvars.DemoHealthCardWaterbodyName,
		Location:      constvars.DemoHealthCardLocation,
		QRCode:        qrCode,
		IsDemo:        true,
	}
	healthCard.SetCreatedAtUpdatedAt(now.Add(-constvars.DemoHealthCardAge), now)
	return healthCard
}
