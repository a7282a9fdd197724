package util

import (
	"testing"
	"time"

	"horizon_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{
		ID:       "111222333444555666",
		Username: "jo",
		Avatar:   "abcd",
		IsAdmin:  true,
		RoleName: "Staff",
	}

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	assert.NoError(t, err)

	claims, err := ParseJWT(token, "test-secret")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Username, claims.Username)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "Staff", claims.Role)
}

func TestJWTWrongSecret(t *testing.T) {
	user := &model.User{ID: "1", Username: "jo"}
	token, err := GenerateJWT(user, "secret-a", time.Hour)
	assert.NoError(t, err)

	_, err = ParseJWT(token, "secret-b")
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	user := &model.User{ID: "1", Username: "jo"}
	token, err := GenerateJWT(user, "secret", -time.Minute)
	assert.NoError(t, err)

	_, err = ParseJWT(token, "secret")
	assert.Error(t, err)
}
