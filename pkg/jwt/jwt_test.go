package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-outreach-service/config"
)

func newTestService(secret string, expiry time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{Secret: secret, AccessExpiry: expiry})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	service := newTestService("test-secret", time.Hour)

	token, tokenID, err := service.GenerateAccessToken("clinic-1", "outreach@clinic.test")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "clinic-1", claims.UserID)
	assert.Equal(t, "outreach@clinic.test", claims.Email)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	service := newTestService("test-secret", time.Hour)
	other := newTestService("other-secret", time.Hour)

	token, _, err := service.GenerateAccessToken("clinic-1", "outreach@clinic.test")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	service := newTestService("test-secret", -time.Minute)

	token, _, err := service.GenerateAccessToken("clinic-1", "outreach@clinic.test")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	service := newTestService("test-secret", time.Hour)

	_, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)
}
