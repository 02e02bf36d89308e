package utils

import (
	"MediCore/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestNewTokenMakerKeyLength(t *testing.T) {
	_, err := NewTokenMaker([]byte("short"))
	assert.Error(t, err)

	_, err = NewTokenMaker(testKey)
	assert.NoError(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	maker, err := NewTokenMaker(testKey)
	require.NoError(t, err)

	want := models.Principal{UserID: 42, Role: models.RoleDoctor, Username: "house"}
	token, err := maker.GenerateToken(want)
	require.NoError(t, err)

	claims, err := maker.ValidateToken(token)
	require.NoError(t, err)
	got, err := claims.Principal()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTokenExpired(t *testing.T) {
	maker, err := NewTokenMaker(testKey)
	require.NoError(t, err)

	issued := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	maker.now = func() time.Time { return issued }
	token, err := maker.GenerateToken(models.Principal{UserID: 1, Role: models.RolePatient})
	require.NoError(t, err)

	maker.now = func() time.Time { return issued.Add(SessionTokenExpiry + time.Minute) }
	_, err = maker.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenWrongKey(t *testing.T) {
	maker, err := NewTokenMaker(testKey)
	require.NoError(t, err)
	token, err := maker.GenerateToken(models.Principal{UserID: 1, Role: models.RolePatient})
	require.NoError(t, err)

	other, err := NewTokenMaker([]byte("ffffffffffffffffffffffffffffffff"))
	require.NoError(t, err)
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestClaimsPrincipalRejectsBadRole(t *testing.T) {
	_, err := TokenClaims{UserID: "1", Role: "superuser"}.Principal()
	assert.Error(t, err)

	_, err = TokenClaims{UserID: "abc", Role: "admin"}.Principal()
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("pw1")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", hashed)
	assert.True(t, CheckPassword(hashed, "pw1"))
	assert.False(t, CheckPassword(hashed, "pw2"))
}
