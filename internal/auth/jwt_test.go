package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedbackManagement/internal/testutil"
	"feedbackManagement/models"
)

func TestTokenCodec_RoundTrip(t *testing.T) {
	c := NewTokenCodec(testutil.TestSecret, time.Hour)
	tok, err := c.Encode(42, models.RoleManager)
	require.NoError(t, err)

	claims, err := c.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "manager", claims.Role)
}

func TestTokenCodec_RejectsWrongSecret(t *testing.T) {
	tok, err := NewTokenCodec("other", time.Hour).Encode(1, models.RoleEmployee)
	require.NoError(t, err)
	_, err = NewTokenCodec(testutil.TestSecret, time.Hour).Decode(tok)
	assert.Error(t, err)
}

func TestTokenCodec_RejectsExpired(t *testing.T) {
	c := NewTokenCodec(testutil.TestSecret, time.Minute)
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c.WithClock(func() time.Time { return start })
	tok, err := c.Encode(1, models.RoleEmployee)
	require.NoError(t, err)

	c.WithClock(func() time.Time { return start.Add(2 * time.Minute) })
	_, err = c.Decode(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenCodec_RejectsMalformedAndUnsigned(t *testing.T) {
	c := NewTokenCodec(testutil.TestSecret, time.Hour)
	_, err := c.Decode("not-a-jwt")
	assert.Error(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": 1, "role": "employee", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = c.Decode(unsigned)
	assert.Error(t, err)
}

func TestTokenCodec_RequiresExpiryAndClaims(t *testing.T) {
	c := NewTokenCodec(testutil.TestSecret, time.Hour)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1, "role": "employee"}).
		SignedString([]byte(testutil.TestSecret))
	require.NoError(t, err)
	_, err = c.Decode(noExp)
	assert.Error(t, err)

	badRole := testutil.GenerateJWTHS256(t, testutil.TestSecret, 1, "admin", time.Hour)
	_, err = c.Decode(badRole)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	h, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", h)
	assert.True(t, VerifyPassword("hunter22", h))
	assert.False(t, VerifyPassword("hunter23", h))
}
