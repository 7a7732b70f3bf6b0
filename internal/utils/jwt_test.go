// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateNodeToken("hub", "employee", "emp-1", 1)
	require.NoError(t, err)

	claims, err := ValidateNodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "hub", claims.Node)
	assert.Equal(t, "employee", claims.Role)
	assert.Equal(t, "emp-1", claims.Subject)
}

func TestExpiredTokenRejected(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateNodeToken("branch", "customer", "C1", -1)
	require.NoError(t, err)

	_, err = ValidateNodeToken(token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	SetJWTSecret("secret-a")
	token, err := GenerateNodeToken("hub", "peer", "hub", 1)
	require.NoError(t, err)

	SetJWTSecret("secret-b")
	_, err = ValidateNodeToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	SetJWTSecret("test-secret")

	_, err := ValidateNodeToken("not.a.token")
	assert.Error(t, err)
}
