package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"roomnest/internal/model"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "asha@example.com", model.RoleStudent)
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, model.RoleStudent, claims.Role)

	// Fixed 7-day expiry.
	expiry := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
	assert.Equal(t, AccessTokenExpiry, expiry)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateAccessToken(uuid.New(), "asha@example.com", model.RoleStudent)
	assert.NoError(t, err)

	claims, err := NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestRefreshTokenCarriesTokenID(t *testing.T) {
	svc := NewJWTService("test-secret")

	tokenID, token, err := svc.GenerateRefreshToken(uuid.New(), "asha@example.com", model.RoleOwner)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	extracted, err := svc.ExtractTokenID(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewJWTService("test-secret")

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	_, err = svc.ValidateToken("")
	assert.Error(t, err)
}

func TestRefreshTokenExpiryExceedsAccess(t *testing.T) {
	assert.True(t, RefreshTokenExpiry > AccessTokenExpiry)
	assert.Equal(t, 7*24*time.Hour, AccessTokenExpiry)
}
