package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Health card messages
	GetHealthCardSuccessMessage     = "get health card successfully"
	GetDemoHealthCardMessage        = "no health card recorded yet, showing demo data"
	RefreshHealthCardSuccessMessage = "health card refreshed successfully"
	RefreshDemoHealthCardMessage    = "no health card recorded yet, showing refreshed demo data"
	HealthCheckSuccessMessage       = "ok"
)
