package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriconnect/agriconnect-api/internal/domain/enum"
)

func TestJWTManager_AccessTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID, "asha@example.com", "Asha", enum.RoleBuyer)
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, "Asha", claims.Name)
	assert.Equal(t, enum.RoleBuyer, claims.Role)
}

func TestJWTManager_RefreshTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := manager.GenerateRefreshToken(userID)
	require.NoError(t, err)

	parsed, err := manager.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	other := NewJWTManager("other-secret", time.Hour, 24*time.Hour)

	token, err := manager.GenerateAccessToken(uuid.New(), "a@example.com", "A", enum.RoleBuyer)
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RefreshTokenIsNotAnAccessToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	refresh, err := manager.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(refresh)
	assert.Error(t, err)
}
