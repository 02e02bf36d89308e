package utils

import (
	"MediCore/models"
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"
)

const (
	sessionName     = "medicore_session"
	sessionTokenKey = "token"
)

func init() {
	// Flashes are stored as []interface{} inside the gob encoded cookie.
	gob.Register([]interface{}{})
}

// SessionManager keeps the login identity and one-shot notices in a signed cookie session.
// The identity itself is a PASETO token so it expires independently of the cookie.
type SessionManager struct {
	store  sessions.Store
	tokens *TokenMaker
}

// NewSessionManager builds a cookie backed session manager.
func NewSessionManager(secret []byte, tokens *TokenMaker, secure bool) (*SessionManager, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 bytes long, got %d", len(secret))
	}
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(SessionTokenExpiry.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store, tokens: tokens}, nil
}

func (m *SessionManager) session(c *gin.Context) *sessions.Session {
	session, err := m.store.Get(c.Request, sessionName)
	if err != nil {
		// A cookie signed with another secret decodes to a fresh session.
		log.Debug().Err(err).Msg("Discarding unreadable session cookie")
	}
	return session
}

// Login stores the principal in the session.
func (m *SessionManager) Login(c *gin.Context, p models.Principal) error {
	token, err := m.tokens.GenerateToken(p)
	if err != nil {
		return err
	}
	session := m.session(c)
	session.Values[sessionTokenKey] = token
	return session.Save(c.Request, c.Writer)
}

// Principal returns the identity of the current session, if any.
func (m *SessionManager) Principal(c *gin.Context) (models.Principal, bool) {
	token, ok := m.session(c).Values[sessionTokenKey].(string)
	if !ok || token == "" {
		return models.Principal{}, false
	}

	claims, err := m.tokens.ValidateToken(token)
	if err != nil {
		log.Debug().Err(err).Msg("Rejecting session token")
		return models.Principal{}, false
	}
	p, err := claims.Principal()
	if err != nil {
		return models.Principal{}, false
	}
	return p, true
}

// Clear removes every value held in the session.
func (m *SessionManager) Clear(c *gin.Context) error {
	session := m.session(c)
	for key := range session.Values {
		delete(session.Values, key)
	}
	return session.Save(c.Request, c.Writer)
}

// AddFlash queues a notice for the next rendered page.
func (m *SessionManager) AddFlash(c *gin.Context, message string) {
	session := m.session(c)
	session.AddFlash(message)
	if err := session.Save(c.Request, c.Writer); err != nil {
		log.Error().Err(err).Msg("Failed to save flash message")
	}
}

// Flashes pops the queued notices.
func (m *SessionManager) Flashes(c *gin.Context) []string {
	session := m.session(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(c.Request, c.Writer); err != nil {
		log.Error().Err(err).Msg("Failed to save session after reading flashes")
	}

	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}
