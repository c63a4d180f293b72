package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc, err := NewJWTService("secret", 2)
	require.NoError(t, err)

	token, expiresAt, err := svc.GenerateToken(7, "TEACHER")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), expiresAt, time.Minute)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.PersonID)
	assert.Equal(t, "TEACHER", claims.Role)
}

func TestJWTService_Rejects(t *testing.T) {
	svc, err := NewJWTService("secret", 1)
	require.NoError(t, err)

	_, err = svc.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenMalformed)

	other, err := NewJWTService("other-secret", 1)
	require.NoError(t, err)
	token, _, err := other.GenerateToken(1, "ADMIN")
	require.NoError(t, err)
	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	svc.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	expired, _, err := svc.GenerateToken(1, "ADMIN")
	require.NoError(t, err)
	_, err = svc.ParseToken(expired)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestNewJWTService_Validates(t *testing.T) {
	_, err := NewJWTService("", 1)
	assert.Error(t, err)
	_, err = NewJWTService("s", 0)
	assert.Error(t, err)
}
