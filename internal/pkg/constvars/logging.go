package constvars

const (
	LoggingRequestIDKey         = "request_id"
	LoggingMethodKey            = "method"
	LoggingEndpointKey          = "endpoint"
	LoggingRemoteAddrKey        = "remote_addr"
	LoggingUserAgentKey         = "user_agent"
	LoggingQueryKey             = "query"
	LoggingStatusCodeKey        = "status_code"
	LoggingDurationKey          = "duration"
	LoggingSuccessKey           = "success"
	LoggingOperationKey         = "operation"
	LoggingErrorCodeKey         = "error_code"
	LoggingErrorMessageKey      = "error_message"
	LoggingWaterbodyIDKey       = "waterbody_id"
	LoggingHealthCardIDKey      = "health_card_id"
	LoggingRiskScoreKey         = "risk_score"
	LoggingIsDemoKey            = "is_demo"
	LoggingUpstreamURLKey       = "upstream_url"
	LoggingUpstreamStatusKey    = "upstream_status"
	LoggingEventIDKey           = "event_id"
	LoggingQueueNameKey         = "queue_name"
	LoggingFailedCountKey       = "failed_count"
	LoggingFetchedCountKey      = "fetched_count"
	LoggingRefreshedCountKey    = "refreshed_count"
	LoggingDemoCountKey         = "demo_count"
	LoggingObjectNameKey        = "object_name"
	LoggingBucketNameKey        = "bucket_name"
	LoggingRedisKey             = "redis_key"
	LoggingLockValueKey         = "lock_value"
	LoggingLockExpirationKey    = "lock_expiration"
	LoggingLockStoredKey        = "lock_stored_value"
	LoggingLockExpectedKey      = "lock_expected_value"
	LoggingCronSpecKey          = "cron_spec"
	LoggingWatchlistSizeKey     = "watchlist_size"
	LoggingUnauthenticatedKey   = "unauthenticated"
	LoggingIsClientRequestIDKey = "is_client_request_id"
	LoggingServerAddressKey     = "address"
	LoggingTickTimeKey          = "now"
	LoggingFileKey              = "file"
	LoggingLineKey              = "line"
	LoggingFunctionNameKey      = "function_name"
)
