package models

import "time"

type ContaminationQuality string

type ContaminationSeverity string

const (
	ContaminationQualityMedium  ContaminationQuality = "medium"
	ContaminationQualityHigh    ContaminationQuality = "high"
	ContaminationQualityDisease ContaminationQuality = "disease"
)

const (
	ContaminationSeverityMedium   ContaminationSeverity = "medium"
	ContaminationSeverityHigh     ContaminationSeverity = "high"
	ContaminationSeverityCritical ContaminationSeverity = "critical"
)

var contaminationSeverityByQuality = map[ContaminationQuality]ContaminationSeverity{
	ContaminationQualityMedium:  ContaminationSeverityMedium,
	ContaminationQualityHigh:    ContaminationSeverityHigh,
	ContaminationQualityDisease: ContaminationSeverityCritical,
}

// SeverityForQuality returns the only severity a quality level may carry.
func SeverityForQuality(quality ContaminationQuality) (ContaminationSeverity, bool) {
	severity, ok := contaminationSeverityByQuality[quality]
	return severity, ok
}

// HealthCard is the public surveillance snapshot of one monitored waterbody.
// Every field is always serialized so demo and genuine records share one shape.
// Remote records are checked for value ranges and event coherence, not field presence.
type HealthCard struct {
	ID                   string               `json:"id"`
	WaterbodyID          string               `json:"waterbodyId"`
	WaterbodyName        string               `json:"waterbodyName"`
	Location             string               `json:"location"`
	Latitude             *float64             `json:"latitude" validate:"omitempty,latitude"`
	Longitude            *float64             `json:"longitude" validate:"omitempty,longitude"`
	RiskScore            int                  `json:"riskScore" validate:"gte=0,lte=100"`
	LastTestedDate       *time.Time           `json:"lastTestedDate"`
	ContaminationHistory []ContaminationEvent `json:"contaminationHistory" validate:"dive"`
	QRCode               string               `json:"qrCode"`
	IsDemo               bool                 `json:"isDemo"`
	TimeModel
}

type ContaminationEvent struct {
	Date     time.Time             `json:"date" validate:"required"`
	Quality  ContaminationQuality  `json:"quality" validate:"required,oneof=medium high disease"`
	Location *string               `json:"location,omitempty"`
	Notes    *string               `json:"notes,omitempty"`
	Severity ContaminationSeverity `json:"severity" validate:"required,oneof=medium high critical,severity_matches_quality"`
}

// HealthCardRefreshedEvent is published after a refresh returned a genuine record.
type HealthCardRefreshedEvent struct {
	ID          string      `json:"id"`
	WaterbodyID string      `json:"waterbody_id"`
	RiskScore   int         `json:"risk_score"`
	UpdatedAt   time.Time   `json:"updated_at"`
	HealthCard  *HealthCard `json:"health_card"`
	FailedCount int         `json:"failed_count"`
}

// QueuedHealthCardEvent is a refresh event fetched from the queue but not yet acknowledged.
type QueuedHealthCardEvent struct {
	DeliveryTag uint64
	Event       HealthCardRefreshedEvent
}
