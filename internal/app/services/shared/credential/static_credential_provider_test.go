package credential

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticCredentialProvider(t *testing.T) {
	ctx := context.Background()

	credential, err := NewStaticCredentialProvider("svc-token").Credential(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "Bearer svc-token", credential)

	credential, err = NewStaticCredentialProvider("Bearer already-prefixed").Credential(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "Bearer already-prefixed", credential)

	_, err = NewStaticCredentialProvider("   ").Credential(ctx)
	assert.Error(t, err)
}
