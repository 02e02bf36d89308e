package utils

import (
	"MediCore/cache"
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"
)

const (
	// ResetCodeExpiry is how long an emailed reset code stays valid.
	ResetCodeExpiry = 15 * time.Minute
	// MaxResetAttempts is how many wrong codes an email may submit before its pending code is dropped.
	MaxResetAttempts = 5
)

var resetCodeSpace = big.NewInt(1000000)

// GenerateResetCode generates a random 6-digit reset code.
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, resetCodeSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func resetCodeKey(email string) string {
	return "reset_code:" + email
}

func resetAttemptsKey(email string) string {
	return "reset_attempts:" + email
}

// SetResetCode stores the reset code for an email.
func SetResetCode(ctx context.Context, c *cache.Cache, email, code string) error {
	return c.Set(ctx, resetCodeKey(email), code, ResetCodeExpiry)
}

// GetResetCode returns nil when no code is pending for the email.
func GetResetCode(ctx context.Context, c *cache.Cache, email string) (*string, error) {
	code, err := c.Get(ctx, resetCodeKey(email))
	if err != nil {
		return nil, err
	}
	if code == "" {
		return nil, nil
	}
	return &code, nil
}

// DeleteResetCode deletes the reset code for an email.
func DeleteResetCode(ctx context.Context, c *cache.Cache, email string) error {
	return c.Delete(ctx, resetCodeKey(email))
}

// ClearResetAttempts forgets the wrong codes submitted for an email.
func ClearResetAttempts(ctx context.Context, c *cache.Cache, email string) error {
	return c.Delete(ctx, resetAttemptsKey(email))
}

// RecordFailedResetAttempt counts a wrong code for the email and returns the running total.
// The counter lives as long as a code, starting from the first miss.
func RecordFailedResetAttempt(ctx context.Context, c *cache.Cache, email string) (int64, error) {
	return c.Incr(ctx, resetAttemptsKey(email), ResetCodeExpiry)
}

// ResetAttemptsExhausted reports whether the email has used up its wrong guesses.
func ResetAttemptsExhausted(ctx context.Context, c *cache.Cache, email string) (bool, error) {
	raw, err := c.Get(ctx, resetAttemptsKey(email))
	if err != nil || raw == "" {
		return false, err
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, err
	}
	return n >= MaxResetAttempts, nil
}
