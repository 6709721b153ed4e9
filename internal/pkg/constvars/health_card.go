package constvars

import "time"

const (
	HealthCardRemotePathFormat        = "%s/health-cards/%s"
	HealthCardRemoteRefreshPathFormat = "%s/health-cards/%s/refresh"
	HealthCardPublicPathFormat        = "%s/health-card/%s"
)

// Placeholder values for waterbodies the remote service has no record of.
const (
	DemoHealthCardIDPrefix       = "demo-"
	DemoHealthCardRiskScore      = 45
	DemoHealthCardRiskScoreRange = 100
	DemoHealthCardWaterbodyName  = "Demo Waterbody"
	DemoHealthCardLocation       = "Demo Location"
	DemoContaminationNotes       = "Demo contamination event for preview purposes"

	DemoHealthCardAge         = 7 * 24 * time.Hour
	DemoContaminationEventAge = 2 * 24 * time.Hour
)

const (
	QRCodeSizeInPixels  = 256
	QRCodeDataURLPrefix = "data:image/png;base64,"
)

const (
	HealthCardRefreshedQueueName  = "health_card_refreshed_queue"
	HealthCardRefreshedDLQName    = "health_card_refreshed_dlq"
	HealthCardArchiveObjectFormat = "health-cards/%s/%s.json"
	HealthCardArchiveMarkerFormat = "healthcard:archived:%s"
	HealthCardRefresherLockKey    = "healthcard:refresher:leader"
	HealthCardArchiverLockKey     = "healthcard:archiver:leader"
)

const HealthCardEventPublishTimeout = 5 * time.Second
