package constvars

const (
	RegexBearerCredential = `^Bearer .+`
)
