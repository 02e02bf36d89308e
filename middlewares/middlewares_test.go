package middlewares

import (
	"MediCore/models"
	"MediCore/utils"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSessions(t *testing.T) *utils.SessionManager {
	t.Helper()
	tokens, err := utils.NewTokenMaker([]byte(strings.Repeat("k", 32)))
	require.NoError(t, err)
	sessions, err := utils.NewSessionManager([]byte(strings.Repeat("s", 32)), tokens, false)
	require.NoError(t, err)
	return sessions
}

func serve(router http.Handler, method, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newGatedRouter(t *testing.T) *gin.Engine {
	sessions := newSessions(t)
	router := gin.New()
	router.Use(SessionAuthMiddleware(sessions))
	router.GET("/as/:role", func(c *gin.Context) {
		role, err := models.ParseRole(c.Param("role"))
		require.NoError(t, err)
		require.NoError(t, sessions.Login(c, models.Principal{UserID: 7, Role: role, Username: "u"}))
		c.String(http.StatusOK, "ok")
	})
	router.GET("/flashes", func(c *gin.Context) {
		c.String(http.StatusOK, strings.Join(sessions.Flashes(c), "|"))
	})
	router.GET("/any", RequireSession(sessions), func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		require.True(t, ok)
		c.String(http.StatusOK, p.Role.String())
	})
	router.GET("/admin", RoleAuthMiddleware(sessions, models.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, "admin area")
	})
	return router
}

func TestRoleAuthMiddleware(t *testing.T) {
	router := newGatedRouter(t)

	w := serve(router, http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	flashes := serve(router, http.MethodGet, "/flashes", w.Result().Cookies())
	assert.Equal(t, "Unauthorized access", flashes.Body.String())

	doctor := serve(router, http.MethodGet, "/as/doctor", nil).Result().Cookies()
	w = serve(router, http.MethodGet, "/admin", doctor)
	assert.Equal(t, http.StatusFound, w.Code)

	w = serve(router, http.MethodGet, "/any", doctor)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "doctor", w.Body.String())

	admin := serve(router, http.MethodGet, "/as/admin", nil).Result().Cookies()
	w = serve(router, http.MethodGet, "/admin", admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin area", w.Body.String())
}

func TestRequireSession(t *testing.T) {
	router := newGatedRouter(t)

	w := serve(router, http.MethodGet, "/any", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	flashes := serve(router, http.MethodGet, "/flashes", w.Result().Cookies())
	assert.Equal(t, loginRequiredText, flashes.Body.String())
}

func TestForgedCookieIsAnonymous(t *testing.T) {
	router := newGatedRouter(t)

	forged := []*http.Cookie{{Name: "medicore_session", Value: "not-a-valid-cookie"}}
	w := serve(router, http.MethodGet, "/any", forged)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestRoleAuthMiddlewareRejectsUnknownRole(t *testing.T) {
	assert.Panics(t, func() {
		RoleAuthMiddleware(newSessions(t), models.Role("nurse"))
	})
}

func TestExtractPrincipalFromContext(t *testing.T) {
	_, err := ExtractPrincipalFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.Error(t, err)
}

func TestRateLimiter(t *testing.T) {
	router := gin.New()
	router.Use(NewRateLimiterMiddleware(RateLimiterConfig{RequestsPerSecond: 0.001, Burst: 1}))
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, http.MethodGet, "/", nil).Code)

	unlimited := gin.New()
	unlimited.Use(NewRateLimiterMiddleware(RateLimiterConfig{}))
	unlimited.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusOK, serve(unlimited, http.MethodGet, "/", nil).Code)
	}
}

func TestCorsMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(CorsMiddleware(DefaultCorsConfig([]string{"https://app.example"})))
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "deny", w.Header().Get("X-Frame-Options"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHttpError(t *testing.T) {
	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.New(ErrorTemplate).Parse("{{.Status}}: {{.Message}}")))
	router.Use(LoggingMiddleware())
	router.GET("/", func(c *gin.Context) {
		HttpError(c, "Appointment not found", http.StatusNotFound, errors.New("no row"))
	})

	w := serve(router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "404: Appointment not found", w.Body.String())
}
