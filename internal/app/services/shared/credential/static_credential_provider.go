package credential

import (
	"context"
	"strings"
	"waterhealth-service/internal/app/contracts"
	"waterhealth-service/internal/pkg/constvars"
	"waterhealth-service/internal/pkg/exceptions"
)

type staticCredentialProvider struct {
	token string
}

// NewStaticCredentialProvider serves a configured service token as a bearer
// credential. A token that already carries the scheme is used as-is.
func NewStaticCredentialProvider(token string) contracts.CredentialProvider {
	return &staticCredentialProvider{token: strings.TrimSpace(token)}
}

func (p *staticCredentialProvider) Credential(ctx context.Context) (string, error) {
	if p.token == "" {
		return "", exceptions.ErrCredentialProviderNoToken()
	}
	if strings.HasPrefix(p.token, constvars.AuthorizationSchemeBearer) {
		return p.token, nil
	}
	return constvars.AuthorizationSchemeBearer + p.token, nil
}
