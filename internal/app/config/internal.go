package config

type InternalConfig struct {
	App        App           `mapstructure:"app"`
	HealthCard AppHealthCard `mapstructure:"health_card"`
	Archiver   AppArchiver   `mapstructure:"archiver"`
}

type App struct {
	Env                      string   `mapstructure:"env"`
	Port                     string   `mapstructure:"port"`
	Version                  string   `mapstructure:"version"`
	EndpointPrefix           string   `mapstructure:"endpoint_prefix"`
	PublicBaseUrl            string   `mapstructure:"public_base_url"`
	CorsAllowedOrigins       []string `mapstructure:"cors_allowed_origins"`
	MaxRequests              int      `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds int      `mapstructure:"shutdown_timeout_in_seconds"`
}

type AppHealthCard struct {
	BaseUrl                 string `mapstructure:"base_url"`
	RequestTimeoutInSeconds int    `mapstructure:"request_timeout_in_seconds"`
	// RefreshCronSpec is the schedule of the watchlist refresher (e.g. "@hourly"); empty disables it
	RefreshCronSpec  string   `mapstructure:"refresh_cron_spec"`
	RefreshWatchlist []string `mapstructure:"refresh_watchlist"`
	ServiceToken     string   `mapstructure:"service_token"`
}

type AppArchiver struct {
	MaxAttempts          int `mapstructure:"max_attempts"`
	BatchSize            int `mapstructure:"batch_size"`
	TickIntervalInSecond int `mapstructure:"tick_interval_in_second"`
	LockTTLInSecond      int `mapstructure:"lock_ttl_in_second"`
	MarkerTTLInHours     int `mapstructure:"marker_ttl_in_hours"`
}
