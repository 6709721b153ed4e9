package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":                 "is required",
	"min":                      "must be at least %s",
	"max":                      "must be at most %s",
	"oneof":                    "must be one of [%s]",
	"gte":                      "must be greater than or equal to %s",
	"lte":                      "must be less than or equal to %s",
	"latitude":                 "must be a valid latitude",
	"longitude":                "must be a valid longitude",
	"severity_matches_quality": "must match the severity defined for its quality",
	"waterbody_id_not_blank":   "must not be blank",
}

var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"gte":   true,
	"lte":   true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientHealthCardServiceUnavailable  = "health card service is unavailable, please try again later"
	ErrClientTooManyRequests               = "too many requests, please slow down"
)

// Error messages for developers
const (
	ErrDevURLParamIDValidationFailed = "failed to validate url param %s"
	ErrDevCannotMarshalJSON          = "cannot marshal JSON"
	ErrDevCannotParseJSON            = "cannot parse JSON"
	ErrDevCreateHTTPRequest          = "failed to create HTTP request"
	ErrDevSendHTTPRequest            = "failed to send HTTP request"
	ErrDevReadBody                   = "failed to read body"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevMissingRequestID           = "request id missing from context"
	ErrDevAuthCredentialMissing      = "bearer credential missing or malformed"
	ErrDevHealthCardRemoteStatus     = "health card service responded with unexpected status %d"
	ErrDevHealthCardRemoteRequest    = "health card service request failed"
	ErrDevHealthCardMalformedBody    = "health card service returned a malformed body"
	ErrDevHealthCardInvalidRecord    = "health card service returned an invalid record"
	ErrDevHealthCardQRCodeGenerate   = "failed to generate health card QR code"
	ErrDevHealthCardQRCodeDecode     = "failed to decode health card QR code"
	ErrDevRedisGetData               = "failed to get data from redis"
	ErrDevRedisSetData               = "failed to set data to redis"
	ErrDevRedisDeleteData            = "failed to delete data from redis"
	ErrDevRedisExpireData            = "failed to update expiry in redis"
	ErrDevRedisUnlock                = "failed to release redis lock"
	ErrDevRabbitMQPublishMessage     = "failed to publish message to queue %s"
	ErrDevRabbitMQFetchMessage       = "failed to fetch message from queue %s"
	ErrDevRabbitMQAckMessage         = "failed to acknowledge message from queue %s"
	ErrDevMinioCreateObject          = "failed to create object in bucket %s"
	ErrDevCredentialProviderNoToken  = "credential provider has no token configured"
	ErrDevTooManyRequests            = "rate limit exceeded"
)
