package utils

import (
	"bytes"
	"context"
	"testing"

	"MediCore/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegistration(t *testing.T) {
	assert.NoError(t, ValidateRegistration("alice", "pw1", "alice@x.com"))

	err := ValidateRegistration("", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username")
	assert.Contains(t, err.Error(), "password")
	assert.Contains(t, err.Error(), "email")

	assert.Error(t, ValidateRegistration("alice", "pw1", "not-an-email"))
	assert.Error(t, ValidateRegistration("al ice", "pw1", "alice@x.com"))
}

func TestValidateLogin(t *testing.T) {
	assert.NoError(t, ValidateLogin("admin", "admin"))
	assert.Error(t, ValidateLogin("admin", ""))
}

func TestValidateProfile(t *testing.T) {
	assert.NoError(t, ValidateProfile("alice", "alice@x.com", ""))
	assert.NoError(t, ValidateProfile("alice", "alice@x.com", "newpw"))
	assert.Error(t, ValidateProfile("", "alice@x.com", ""))
}

func TestValidateDoctor(t *testing.T) {
	assert.NoError(t, ValidateDoctor("house", "house@x.com", "pw", "Diagnostics", "Nephrology", 12, true))
	assert.NoError(t, ValidateDoctor("house", "house@x.com", "", "Diagnostics", "", 0, false))

	err := ValidateDoctor("house", "house@x.com", "", "Diagnostics", "", 0, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")

	assert.Error(t, ValidateDoctor("house", "house@x.com", "pw", "", "", 1, true))
	assert.Error(t, ValidateDoctor("house", "house@x.com", "pw", "Diagnostics", "", -1, true))
}

func TestValidateBooking(t *testing.T) {
	assert.NoError(t, ValidateBooking(2, "2025-03-01"))
	assert.Error(t, ValidateBooking(0, "2025-03-01"))
	assert.Error(t, ValidateBooking(2, "01/03/2025"))
	assert.Error(t, ValidateBooking(2, ""))
}

func TestValidateContactAcceptsAnyEmailText(t *testing.T) {
	assert.NoError(t, ValidateContact("Ada", "Lovelace", "not an email", "Hello", "Hi there"))
	assert.NoError(t, ValidateContact("Plato", "", "plato@x.com", "Hello", "Hi there"))
	assert.Error(t, ValidateContact("", "Lovelace", "ada@x.com", "Hello", "Hi there"))
}

func TestValidatePasswordReset(t *testing.T) {
	assert.NoError(t, ValidatePasswordReset("a@x.com", "123456", "newpw"))

	err := ValidatePasswordReset("a@x.com", "12", "newpw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrInvalidResetCode.Error())
}

func TestResetCodeStorage(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()
	c, err := cache.NewCache(client)
	require.NoError(t, err)
	ctx := context.Background()

	code, err := GetResetCode(ctx, c, "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, code)

	generated, err := GenerateResetCode()
	require.NoError(t, err)
	assert.Regexp(t, `^\d{6}$`, generated)

	require.NoError(t, SetResetCode(ctx, c, "a@x.com", generated))
	assert.Equal(t, ResetCodeExpiry, server.TTL("reset_code:a@x.com"))

	code, err = GetResetCode(ctx, c, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, code)
	assert.Equal(t, generated, *code)

	require.NoError(t, DeleteResetCode(ctx, c, "a@x.com"))
	code, err = GetResetCode(ctx, c, "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, code)
}

func TestResetAttemptCounter(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()
	c, err := cache.NewCache(client)
	require.NoError(t, err)
	ctx := context.Background()

	exhausted, err := ResetAttemptsExhausted(ctx, c, "a@x.com")
	require.NoError(t, err)
	assert.False(t, exhausted)

	for i := 1; i <= MaxResetAttempts; i++ {
		n, err := RecordFailedResetAttempt(ctx, c, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, int64(i), n)
	}
	assert.Equal(t, ResetCodeExpiry, server.TTL("reset_attempts:a@x.com"))

	exhausted, err = ResetAttemptsExhausted(ctx, c, "a@x.com")
	require.NoError(t, err)
	assert.True(t, exhausted)

	require.NoError(t, ClearResetAttempts(ctx, c, "a@x.com"))
	exhausted, err = ResetAttemptsExhausted(ctx, c, "a@x.com")
	require.NoError(t, err)
	assert.False(t, exhausted)
}

func TestGenerateResetCodeVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := GenerateResetCode()
		require.NoError(t, err)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestNewResetCodeMessage(t *testing.T) {
	m := NewResetCodeMessage("noreply@hms.com", "a@x.com", "654321")
	assert.Equal(t, []string{"a@x.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Password Reset Code"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "654321")
}

func TestSMTPMailerRequiresHost(t *testing.T) {
	m := &SMTPMailer{}
	assert.Error(t, m.SendResetCode("a@x.com", "123456"))
}
