package middlewares

import (
	"MediCore/models"
	"MediCore/utils"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// contextKey defines a custom context key type to store the session identity in the context.
type contextKey string

const principalKey contextKey = "principal"

const (
	loginPath         = "/login"
	loginRequiredText = "Please log in to access this page."
	unauthorizedText  = "Unauthorized access"
)

// SessionAuthMiddleware resolves the session token into a Principal and adds it to the request context.
// Anonymous requests pass through untouched.
func SessionAuthMiddleware(sessions *utils.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, ok := sessions.Principal(c); ok {
			ctx := context.WithValue(c.Request.Context(), principalKey, p)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// RequireSession sends anonymous visitors to the login page.
func RequireSession(sessions *utils.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := ExtractPrincipalFromContext(c.Request.Context()); err != nil {
			sessions.AddFlash(c, loginRequiredText)
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RoleAuthMiddleware restricts access to sessions holding exactly the given role.
func RoleAuthMiddleware(sessions *utils.SessionManager, requiredRole models.Role) gin.HandlerFunc {
	if _, err := models.ParseRole(string(requiredRole)); err != nil {
		panic(err)
	}

	return func(c *gin.Context) {
		p, err := ExtractPrincipalFromContext(c.Request.Context())
		if err != nil || !p.Is(requiredRole) {
			sessions.AddFlash(c, unauthorizedText)
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ExtractPrincipalFromContext retrieves the session identity from the context.
func ExtractPrincipalFromContext(ctx context.Context) (models.Principal, error) {
	p, ok := ctx.Value(principalKey).(models.Principal)
	if !ok {
		return models.Principal{}, errors.New("principal not found in context")
	}
	return p, nil
}

// CurrentPrincipal is ExtractPrincipalFromContext for gin handlers.
func CurrentPrincipal(c *gin.Context) (models.Principal, bool) {
	p, err := ExtractPrincipalFromContext(c.Request.Context())
	return p, err == nil
}
