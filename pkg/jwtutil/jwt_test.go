package jwtutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ketanMehtaa/gymone/pkg/config"
)

func newTestService(hours int) *TokenService {
	return New(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: hours})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService(24)
	gymID := "gym-1"

	token, err := svc.Generate("user-1", "admin@example.com", "ADMIN", &gymID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
	require.NotNil(t, claims.GymID)
	assert.Equal(t, "gym-1", *claims.GymID)
}

func TestValidate_NoGymForSuperAdmin(t *testing.T) {
	svc := newTestService(24)

	token, err := svc.Generate("root-1", "root@example.com", "SUPER_ADMIN", nil)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Nil(t, claims.GymID)
}

func TestValidate_Expired(t *testing.T) {
	// A negative lifetime dates the expiry in the past.
	svc := newTestService(-1)

	token, err := svc.Generate("user-1", "admin@example.com", "ADMIN", nil)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestValidate_Malformed(t *testing.T) {
	svc := newTestService(24)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		claims, err := svc.Validate(token)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrInvalid)
	}
}

func TestValidate_WrongKey(t *testing.T) {
	issuer := newTestService(24)
	verifier := New(&config.JWTConfig{SigningKey: "another-key", ExpirationHours: 24})

	token, err := issuer.Generate("user-1", "admin@example.com", "ADMIN", nil)
	require.NoError(t, err)

	claims, err := verifier.Validate(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalid)
}
