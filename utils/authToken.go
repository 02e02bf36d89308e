package utils

import (
	"MediCore/models"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/o1egl/paseto"
)

// SessionTokenExpiry bounds the lifetime of a login.
const SessionTokenExpiry = 24 * time.Hour

var ErrTokenExpired = errors.New("token expired")

// TokenClaims is the data carried by a session token.
type TokenClaims struct {
	UserID   string    `json:"userId"`
	Role     string    `json:"role"`
	Username string    `json:"username"`
	Expiry   time.Time `json:"expiry"`
}

// Principal converts validated claims back into a session identity.
func (c TokenClaims) Principal() (models.Principal, error) {
	id, err := strconv.ParseInt(c.UserID, 10, 64)
	if err != nil {
		return models.Principal{}, fmt.Errorf("invalid user id in token: %w", err)
	}
	role, err := models.ParseRole(c.Role)
	if err != nil {
		return models.Principal{}, err
	}
	return models.Principal{UserID: id, Role: role, Username: c.Username}, nil
}

// TokenMaker encrypts and decrypts PASETO v2 local tokens.
type TokenMaker struct {
	symmetricKey []byte
	expiry       time.Duration
	now          func() time.Time
}

// NewTokenMaker requires a 32 byte symmetric key.
func NewTokenMaker(key []byte) (*TokenMaker, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("symmetric key must be 32 bytes long, got %d", len(key))
	}
	return &TokenMaker{symmetricKey: key, expiry: SessionTokenExpiry, now: time.Now}, nil
}

// GenerateToken issues a session token for the principal.
func (m *TokenMaker) GenerateToken(p models.Principal) (string, error) {
	claims := TokenClaims{
		UserID:   strconv.FormatInt(p.UserID, 10),
		Role:     p.Role.String(),
		Username: p.Username,
		Expiry:   m.now().Add(m.expiry),
	}

	token, err := paseto.NewV2().Encrypt(m.symmetricKey, claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// ValidateToken decrypts the token and checks its expiry.
func (m *TokenMaker) ValidateToken(token string) (*TokenClaims, error) {
	var claims TokenClaims
	if err := paseto.NewV2().Decrypt(token, m.symmetricKey, &claims, nil); err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}

	if m.now().After(claims.Expiry) {
		return nil, ErrTokenExpired
	}
	return &claims, nil
}
