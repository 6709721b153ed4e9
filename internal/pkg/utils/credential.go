package utils

import (
	"regexp"

	"waterhealth-service/internal/pkg/constvars"
)

var bearerCredentialPattern = regexp.MustCompile(constvars.RegexBearerCredential)

// IsBearerCredential reports whether credential has the "Bearer <token>"
// shape. The token itself is never inspected here.
func IsBearerCredential(credential string) bool {
	return bearerCredentialPattern.MatchString(credential)
}
